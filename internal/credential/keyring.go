// Package credential resolves the Things URL-scheme auth token. Update
// commands require it; creation and read operations never do.
package credential

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

// EnvToken is the environment variable consulted first.
const EnvToken = "THINGS_AUTH_TOKEN"

const (
	serviceName = "things-mcp"
	tokenKey    = "url-scheme-token"
)

// ErrTokenMissing reports that no auth token could be resolved. Its text
// names where the token lives in Things so the failure is actionable.
var ErrTokenMissing = fmt.Errorf(
	"no Things auth token found: set %s or store it in the keyring; "+
		"the token is in Things → Settings → General → Enable Things URLs → Manage",
	EnvToken)

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/things-mcp/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("things-mcp-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Resolve returns the auth token from the environment, falling back to
// the system keyring. A missing token is ErrTokenMissing.
func Resolve() (string, error) {
	if token := os.Getenv(EnvToken); token != "" {
		return token, nil
	}

	ring, err := openKeyring()
	if err != nil {
		return "", ErrTokenMissing
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		if !errors.Is(err, keyring.ErrKeyNotFound) {
			return "", fmt.Errorf("reading auth token from keyring: %w", err)
		}
		return "", ErrTokenMissing
	}

	return string(item.Data), nil
}

// Store saves the auth token in the system keyring for later Resolve
// calls without the environment variable.
func Store(token string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Set(keyring.Item{Key: tokenKey, Data: []byte(token)}); err != nil {
		return fmt.Errorf("storing auth token: %w", err)
	}
	return nil
}
