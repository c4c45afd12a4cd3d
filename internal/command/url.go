// Package command builds Things URL-scheme commands and parses the
// responses captured by the xcall helper. Building is pure string work;
// nothing here touches the network or the filesystem.
package command

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/nkootstra/things-mcp/internal/model"
)

// Command names understood by the Things URL scheme.
const (
	CmdAdd           = "add"
	CmdAddProject    = "add-project"
	CmdUpdate        = "update"
	CmdUpdateProject = "update-project"
	CmdShow          = "show"
	CmdSearch        = "search"
	CmdVersion       = "version"
	CmdJSON          = "json"
)

const (
	scheme       = "things"
	callbackPath = "x-callback-url"
	tokenParam   = "auth-token"
)

// Param is a single command parameter. A nil Value is omitted from the
// URL entirely; an empty string is emitted as an empty value, which is
// the documented way to clear an optional field in Things.
type Param struct {
	Key   string
	Value *string
}

// StringParam returns a set parameter.
func StringParam(key, value string) Param {
	return Param{Key: key, Value: &value}
}

// OptionalParam returns a parameter that is omitted when value is nil.
func OptionalParam(key string, value *string) Param {
	return Param{Key: key, Value: value}
}

// BoolParam returns a parameter with the literal value "true" or "false".
func BoolParam(key string, value bool) Param {
	v := "false"
	if value {
		v = "true"
	}
	return Param{Key: key, Value: &v}
}

// OptionalBoolParam returns a boolean parameter that is omitted when
// value is nil.
func OptionalBoolParam(key string, value *bool) Param {
	if value == nil {
		return Param{Key: key}
	}
	return BoolParam(key, *value)
}

// BuildURL produces the callback-wrapped form of a Things command URL.
// The token, when non-empty, is always the first parameter. Parameters
// are emitted in slice order; nil values are dropped. When nothing
// survives, the URL carries no query string at all.
func BuildURL(cmd string, params []Param, token string) string {
	base := fmt.Sprintf("%s:///%s/%s", scheme, callbackPath, cmd)

	var parts []string
	if token != "" {
		parts = append(parts, tokenParam+"="+encode(token))
	}
	for _, p := range params {
		if p.Value == nil {
			continue
		}
		parts = append(parts, p.Key+"="+encode(*p.Value))
	}

	if len(parts) == 0 {
		return base
	}
	return base + "?" + strings.Join(parts, "&")
}

// BuildJSONURL produces the bulk json command URL. The items are
// serialized as a JSON array and carried as a single data parameter.
func BuildJSONURL(items []model.Item, token string, reveal bool) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("json command requires at least one item")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return "", fmt.Errorf("item %d: %w", i, err)
		}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("serializing json command payload: %w", err)
	}

	params := []Param{StringParam("data", string(payload))}
	if reveal {
		params = append(params, BoolParam("reveal", true))
	}
	return BuildURL(CmdJSON, params, token), nil
}

// DirectForm rewrites a callback-wrapped URL to the plain command form
// used by the fire-and-forget dispatch path. Applying it to a URL that
// is already in direct form is a no-op.
func DirectForm(u string) string {
	return strings.Replace(u, ":///"+callbackPath+"/", ":///", 1)
}

// encode percent-encodes a parameter value. Query escaping is used so
// reserved characters (&, comma, colon, @, newline) come out as percent
// sequences, with the plus-for-space convention rewritten to %20 since
// Things does not decode plus signs.
func encode(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
