package model

// Status values as exposed to clients. The Things database stores these as
// integer codes; see StatusFromCode.
const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// Scheduling buckets. A todo with no bucket reports an empty string.
const (
	StartInbox   = "inbox"
	StartAnytime = "anytime"
	StartSomeday = "someday"
)

// Status codes in the TMTask table.
const (
	StatusCodeOpen      = 0
	StatusCodeCanceled  = 2
	StatusCodeCompleted = 3
)

// Start (bucket) codes in the TMTask table.
const (
	StartCodeInbox   = 0
	StartCodeAnytime = 1
	StartCodeSomeday = 2
)

// StatusFromCode maps a TMTask status code to its client-facing name.
// The classification is closed: anything that is not completed or
// canceled is open.
func StatusFromCode(code int) string {
	switch code {
	case StatusCodeCompleted:
		return StatusCompleted
	case StatusCodeCanceled:
		return StatusCanceled
	default:
		return StatusOpen
	}
}

// StartFromCode maps a TMTask start code to its bucket name. A nil or
// unrecognized code means the todo has no scheduling bucket.
func StartFromCode(code *int) string {
	if code == nil {
		return ""
	}
	switch *code {
	case StartCodeInbox:
		return StartInbox
	case StartCodeAnytime:
		return StartAnytime
	case StartCodeSomeday:
		return StartSomeday
	default:
		return ""
	}
}

// Todo is a single actionable item reconstructed from the Things database.
// It is built fresh on every query and never written back.
type Todo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	Status     string `json:"status"`
	Start      string `json:"start,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	Deadline   string `json:"deadline,omitempty"`
	TodayIndex int    `json:"todayIndex"`

	ProjectID    *string `json:"projectId,omitempty"`
	ProjectTitle *string `json:"projectTitle,omitempty"`

	// Area is the todo's own area, or its parent project's area when the
	// todo itself has none.
	AreaID    *string `json:"areaId,omitempty"`
	AreaTitle *string `json:"areaTitle,omitempty"`

	HeadingID    *string `json:"headingId,omitempty"`
	HeadingTitle *string `json:"headingTitle,omitempty"`

	CreatedAt   string  `json:"createdAt"`
	ModifiedAt  *string `json:"modifiedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`

	// Tags holds tag titles in alphabetical order. Always present,
	// never null, even when empty.
	Tags []string `json:"tags"`

	// ChecklistItems holds the todo's checklist in stored order.
	// Always present, never null.
	ChecklistItems []ChecklistItem `json:"checklistItems"`
}

// ChecklistItem is a sub-entry within a todo's checklist.
type ChecklistItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
