package store

import (
	"context"
	"errors"

	"github.com/nkootstra/things-mcp/internal/model"
)

// ErrClosed is returned by every query issued after Close.
var ErrClosed = errors.New("store is closed")

// List names accepted by TodoFilter.List. Each selects a mutually
// exclusive predicate set; see buildTodoQuery.
const (
	ListInbox    = "inbox"
	ListToday    = "today"
	ListAnytime  = "anytime"
	ListSomeday  = "someday"
	ListUpcoming = "upcoming"
	ListLogbook  = "logbook"
	ListTrash    = "trash"
)

// DefaultLimit caps result pages when the caller does not set one.
const DefaultLimit = 50

// TodoFilter controls filtering for todo queries. All fields are
// optional; the zero value returns all non-trashed todos up to
// DefaultLimit.
type TodoFilter struct {
	List      string  // one of the List* constants, or "" (no list predicate)
	ProjectID *string // parent project UUID (resolved through headings)
	AreaID    *string // area UUID; matches the inherited area as well
	Tag       *string // tag title
	Query     *string // substring match against title or notes
	Status    *string // "open", "completed", or "canceled"
	Limit     int
}

// ProjectFilter controls filtering for project queries.
type ProjectFilter struct {
	Status *string
	AreaID *string
	Query  *string
	Limit  int
}

// Store is the read-only query surface over the Things database. Lookups
// by id return (nil, nil) when no matching row of the right type exists;
// errors are reserved for genuine query failures.
type Store interface {
	GetTodos(ctx context.Context, filter TodoFilter) ([]model.Todo, error)
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	GetProjects(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	GetProjectByID(ctx context.Context, id string) (*model.ProjectDetail, error)
	GetAreas(ctx context.Context) ([]model.Area, error)
	GetTags(ctx context.Context) ([]model.Tag, error)
	Close() error
}
