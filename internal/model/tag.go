package model

// Tag is a label that can be attached to todos and projects. Tags form a
// single-level hierarchy through ParentID.
type Tag struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Shortcut *string `json:"shortcut,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}
