package model

import (
	"encoding/json"
	"fmt"
)

// ItemKind discriminates the entries of a bulk JSON command payload.
type ItemKind string

const (
	ItemTodo          ItemKind = "to-do"
	ItemProject       ItemKind = "project"
	ItemHeading       ItemKind = "heading"
	ItemChecklistItem ItemKind = "checklist-item"
)

// Operations a bulk item may carry. An empty operation means create.
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// Item is one entry of a bulk JSON command payload. Attributes are
// validated only at the boundary (known kind, known operation) and
// otherwise passed through to the serializer untouched, so no supported
// field is ever dropped by this layer.
type Item struct {
	Kind       ItemKind
	Operation  string // "", OpCreate, or OpUpdate
	ID         string // target identifier for OpUpdate
	Attributes map[string]any
}

// Validate checks that the item has a recognized kind and operation,
// and that update items name their target.
func (i Item) Validate() error {
	switch i.Kind {
	case ItemTodo, ItemProject, ItemHeading, ItemChecklistItem:
	case "":
		return fmt.Errorf("item type must not be empty")
	default:
		return fmt.Errorf("unknown item type %q", i.Kind)
	}

	switch i.Operation {
	case "", OpCreate:
	case OpUpdate:
		if i.ID == "" {
			return fmt.Errorf("update item of type %q requires an id", i.Kind)
		}
	default:
		return fmt.Errorf("unknown operation %q", i.Operation)
	}
	return nil
}

// IsUpdate reports whether the item mutates an existing entity, which
// makes the whole payload require the auth token.
func (i Item) IsUpdate() bool {
	return i.Operation == OpUpdate
}

// itemJSON is the canonical wire form.
type itemJSON struct {
	Type       ItemKind       `json:"type"`
	Operation  string         `json:"operation,omitempty"`
	ID         string         `json:"id,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

// MarshalJSON emits the canonical {"type": ..., "attributes": {...}} form.
func (i Item) MarshalJSON() ([]byte, error) {
	attrs := i.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	return json.Marshal(itemJSON{
		Type:       i.Kind,
		Operation:  i.Operation,
		ID:         i.ID,
		Attributes: attrs,
	})
}

// UnmarshalJSON parses the canonical form and validates it.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.Kind = raw.Type
	i.Operation = raw.Operation
	i.ID = raw.ID
	i.Attributes = raw.Attributes
	return i.Validate()
}
