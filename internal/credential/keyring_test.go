package credential

import (
	"strings"
	"testing"
)

func TestResolveFromEnv(t *testing.T) {
	t.Setenv(EnvToken, "env-token")

	token, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if token != "env-token" {
		t.Errorf("token = %q, want env-token", token)
	}
}

func TestErrTokenMissingNamesRemediation(t *testing.T) {
	msg := ErrTokenMissing.Error()
	for _, want := range []string{EnvToken, "Enable Things URLs"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error text missing %q: %s", want, msg)
		}
	}
}
