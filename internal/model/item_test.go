package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestItemValidate(t *testing.T) {
	cases := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"create to-do", Item{Kind: ItemTodo, Operation: OpCreate}, false},
		{"implicit create", Item{Kind: ItemProject}, false},
		{"update with id", Item{Kind: ItemTodo, Operation: OpUpdate, ID: "abc"}, false},
		{"update without id", Item{Kind: ItemTodo, Operation: OpUpdate}, true},
		{"empty kind", Item{}, true},
		{"unknown kind", Item{Kind: "folder"}, true},
		{"unknown operation", Item{Kind: ItemTodo, Operation: "delete"}, true},
	}
	for _, tc := range cases {
		err := tc.item.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestItemMarshal(t *testing.T) {
	item := Item{
		Kind:       ItemTodo,
		Attributes: map[string]any{"title": "Buy milk", "checklist-items": []any{"oat"}},
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, `"type":"to-do"`) {
		t.Errorf("missing type: %s", s)
	}
	if strings.Contains(s, `"operation"`) || strings.Contains(s, `"id"`) {
		t.Errorf("empty operation and id must be omitted: %s", s)
	}
	// Attributes pass through untouched, unknown keys included.
	if !strings.Contains(s, `"checklist-items":["oat"]`) {
		t.Errorf("attribute dropped: %s", s)
	}
}

func TestItemMarshalNilAttributes(t *testing.T) {
	data, err := json.Marshal(Item{Kind: ItemHeading})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"attributes":{}`) {
		t.Errorf("nil attributes must serialize as an empty object: %s", data)
	}
}

func TestItemUnmarshal(t *testing.T) {
	var item Item
	raw := `{"type": "project", "operation": "update", "id": "p1", "attributes": {"title": "New"}}`
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if item.Kind != ItemProject || item.Operation != OpUpdate || item.ID != "p1" {
		t.Errorf("unexpected item: %+v", item)
	}
	if !item.IsUpdate() {
		t.Error("IsUpdate() = false for an update item")
	}
	if item.Attributes["title"] != "New" {
		t.Errorf("Attributes = %v", item.Attributes)
	}
}

func TestItemUnmarshalValidates(t *testing.T) {
	var item Item
	raw := `{"type": "to-do", "operation": "update", "attributes": {}}`
	if err := json.Unmarshal([]byte(raw), &item); err == nil {
		t.Fatal("expected validation error for update without id")
	}
}

func TestStatusFromCode(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, StatusOpen},
		{1, StatusOpen},
		{2, StatusCanceled},
		{3, StatusCompleted},
	}
	for _, tc := range cases {
		if got := StatusFromCode(tc.code); got != tc.want {
			t.Errorf("StatusFromCode(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestStartFromCode(t *testing.T) {
	if got := StartFromCode(nil); got != "" {
		t.Errorf("StartFromCode(nil) = %q, want empty", got)
	}
	for code, want := range map[int]string{0: StartInbox, 1: StartAnytime, 2: StartSomeday, 9: ""} {
		c := code
		if got := StartFromCode(&c); got != want {
			t.Errorf("StartFromCode(%d) = %q, want %q", code, got, want)
		}
	}
}
