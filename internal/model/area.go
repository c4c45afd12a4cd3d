package model

// Area is a top-level organizational grouping above projects.
type Area struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Visible bool   `json:"visible"`
}
