package command

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ResponseKind discriminates the two response shapes the xcall helper
// produces, plus the empty success case.
type ResponseKind int

const (
	// ResponseEmpty is a successful dispatch with no further data.
	ResponseEmpty ResponseKind = iota
	// ResponseFields is a structured x-callback response; ID holds the
	// created item identifier when Things reported one.
	ResponseFields
	// ResponseBareID is a plain string response treated as the created
	// item identifier directly; Fields is nil.
	ResponseBareID
)

// Response is the parsed outcome of a captured command dispatch.
type Response struct {
	Kind   ResponseKind
	ID     string
	Fields map[string]string
}

// Identifier fields Things uses in x-callback responses, in lookup order.
var idFields = []string{"x-things-id", "x-things-ids"}

// ParseResponse interprets the helper's standard output. A JSON object
// with no array-typed member becomes a fields mapping with every value
// coerced to its string form; anything else non-empty is taken as a bare
// identifier string.
func ParseResponse(stdout string) Response {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return Response{Kind: ResponseEmpty}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err == nil {
		if fields, ok := coerceFields(raw); ok {
			resp := Response{Kind: ResponseFields, Fields: fields}
			for _, key := range idFields {
				if id, ok := fields[key]; ok && id != "" {
					resp.ID = id
					break
				}
			}
			return resp
		}
	}

	return Response{Kind: ResponseBareID, ID: trimmed}
}

// coerceFields stringifies every member of a JSON object. It reports
// false when any top-level value is an array, which disqualifies the
// object form.
func coerceFields(raw map[string]json.RawMessage) (map[string]string, bool) {
	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		trimmed := bytes.TrimSpace(value)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			return nil, false
		}
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			fields[key] = s
			continue
		}
		// Numbers, booleans, nulls, and nested objects keep their
		// literal JSON text.
		fields[key] = string(trimmed)
	}
	return fields, true
}
