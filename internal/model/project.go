package model

// Project is a container for todos, itself schedulable and completable.
// The counts cover non-trashed child todos only; heading pseudo-rows are
// excluded.
type Project struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
	Start     string `json:"start,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	Deadline  string `json:"deadline,omitempty"`

	AreaID    *string `json:"areaId,omitempty"`
	AreaTitle *string `json:"areaTitle,omitempty"`

	CreatedAt   string  `json:"createdAt"`
	ModifiedAt  *string `json:"modifiedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`

	Tags []string `json:"tags"`

	OpenTodoCount  int `json:"openTodoCount"`
	TotalTodoCount int `json:"totalTodoCount"`
}

// Heading is a named sub-grouping of todos within a project.
type Heading struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ProjectDetail is a project expanded with its headings and child todos.
// Each child todo carries its resolved heading id/title, tags, and
// checklist items. Counts are not included here; the todo list itself is.
type ProjectDetail struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
	Start     string `json:"start,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	Deadline  string `json:"deadline,omitempty"`

	AreaID    *string `json:"areaId,omitempty"`
	AreaTitle *string `json:"areaTitle,omitempty"`

	CreatedAt   string  `json:"createdAt"`
	ModifiedAt  *string `json:"modifiedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`

	Tags []string `json:"tags"`

	Headings []Heading `json:"headings"`
	Todos    []Todo    `json:"todos"`
}
