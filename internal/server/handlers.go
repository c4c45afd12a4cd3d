package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nkootstra/things-mcp/internal/command"
	"github.com/nkootstra/things-mcp/internal/launcher"
	"github.com/nkootstra/things-mcp/internal/store"
)

// handlers holds the dependencies shared by every tool handler.
type handlers struct {
	store        store.Store
	launcher     *launcher.Launcher
	resolveToken func() (string, error)
}

// writeResult is the serialized outcome of a write-path tool call.
type writeResult struct {
	Success bool              `json:"success"`
	ID      string            `json:"id,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// jsonResult serializes v as the tool's text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// dispatchResult converts a captured command response into a tool result.
func dispatchResult(resp command.Response) (*mcp.CallToolResult, error) {
	return jsonResult(writeResult{
		Success: true,
		ID:      resp.ID,
		Fields:  resp.Fields,
	})
}

// stringArg returns the string argument for key, or nil when the caller
// did not supply it. An explicit empty string is preserved; that is
// how a field gets cleared on the Things side.
func stringArg(args map[string]any, key string) *string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// boolArg returns the boolean argument for key, or nil when absent.
func boolArg(args map[string]any, key string) *bool {
	v, ok := args[key]
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

// sliceArg returns the string-array argument for key joined with sep,
// or nil when absent.
func sliceArg(args map[string]any, key, sep string) *string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	parts := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			parts = append(parts, s)
		}
	}
	joined := strings.Join(parts, sep)
	return &joined
}

// paramBuilder accumulates command parameters using the per-command
// field translation table, so tool field names can never silently
// diverge from URL parameter names.
type paramBuilder struct {
	cmd    string
	params []command.Param
	err    error
}

func newParamBuilder(cmd string) *paramBuilder {
	return &paramBuilder{cmd: cmd}
}

func (b *paramBuilder) add(field string, value *string) {
	if b.err != nil || value == nil {
		return
	}
	name, ok := command.ParamName(b.cmd, field)
	if !ok {
		b.err = fmt.Errorf("field %q is not supported by the %s command", field, b.cmd)
		return
	}
	b.params = append(b.params, command.StringParam(name, *value))
}

func (b *paramBuilder) addBool(field string, value *bool) {
	if value == nil {
		return
	}
	v := "false"
	if *value {
		v = "true"
	}
	b.add(field, &v)
}

func (b *paramBuilder) build() ([]command.Param, error) {
	return b.params, b.err
}
