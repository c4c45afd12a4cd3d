// Package testutil seeds throwaway Things databases for store tests.
// The production store only ever reads, so fixtures write through their
// own handle and hand out a read-only store afterwards.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nkootstra/things-mcp/internal/store"
)

// schema mirrors the slice of the Things database this server reads:
// the unified task table, areas, tags, the task-tag association, and
// checklist items.
const schema = `
CREATE TABLE TMTask (
	uuid                 TEXT PRIMARY KEY,
	title                TEXT NOT NULL DEFAULT '',
	type                 INTEGER NOT NULL DEFAULT 0,
	status               INTEGER NOT NULL DEFAULT 0,
	notes                TEXT NOT NULL DEFAULT '',
	trashed              INTEGER NOT NULL DEFAULT 0,
	start                INTEGER,
	startDate            INTEGER,
	deadline             INTEGER,
	stopDate             REAL,
	creationDate         REAL NOT NULL DEFAULT 0,
	userModificationDate REAL,
	todayIndex           INTEGER NOT NULL DEFAULT 0,
	project              TEXT,
	area                 TEXT,
	actionGroup          TEXT,
	"index"              INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE TMArea (
	uuid    TEXT PRIMARY KEY,
	title   TEXT NOT NULL DEFAULT '',
	visible INTEGER NOT NULL DEFAULT 1,
	"index" INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE TMTag (
	uuid     TEXT PRIMARY KEY,
	title    TEXT NOT NULL DEFAULT '',
	shortcut TEXT,
	parent   TEXT,
	"index"  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE TMTaskTag (
	tasks TEXT NOT NULL,
	tags  TEXT NOT NULL
);

CREATE TABLE TMChecklistItem (
	uuid    TEXT PRIMARY KEY,
	title   TEXT NOT NULL DEFAULT '',
	status  INTEGER NOT NULL DEFAULT 0,
	task    TEXT NOT NULL,
	"index" INTEGER NOT NULL DEFAULT 0
);
`

// Task describes one TMTask row to seed. Zero values produce an open,
// non-trashed to-do with no dates and no parents.
type Task struct {
	UUID             string
	Type             int // 0 to-do, 1 project, 2 heading
	Title            string
	Notes            string
	Status           int
	Trashed          bool
	Start            *int
	StartDate        *int
	Deadline         *int
	StopDate         *float64
	CreationDate     float64
	ModificationDate *float64
	TodayIndex       int
	Project          *string
	Area             *string
	Heading          *string
	Index            int
}

// Fixture is a seeded Things database living in a test temp directory.
type Fixture struct {
	t    *testing.T
	db   *sqlx.DB
	path string
}

// NewFixture creates an empty Things-schema database.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "main.sqlite")
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture database: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating fixture schema: %v", err)
	}

	return &Fixture{t: t, db: db, path: path}
}

// AddTask inserts a TMTask row and returns its uuid.
func (f *Fixture) AddTask(task Task) string {
	f.t.Helper()

	if task.UUID == "" {
		task.UUID = uuid.New().String()
	}
	_, err := f.db.Exec(`
		INSERT INTO TMTask (
			uuid, title, type, status, notes, trashed,
			start, startDate, deadline, stopDate,
			creationDate, userModificationDate, todayIndex,
			project, area, actionGroup, "index"
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.UUID, task.Title, task.Type, task.Status, task.Notes, boolToInt(task.Trashed),
		task.Start, task.StartDate, task.Deadline, task.StopDate,
		task.CreationDate, task.ModificationDate, task.TodayIndex,
		task.Project, task.Area, task.Heading, task.Index,
	)
	if err != nil {
		f.t.Fatalf("seeding task %q: %v", task.Title, err)
	}
	return task.UUID
}

// AddArea inserts a TMArea row and returns its uuid.
func (f *Fixture) AddArea(title string, visible bool, index int) string {
	f.t.Helper()

	id := uuid.New().String()
	_, err := f.db.Exec(
		`INSERT INTO TMArea (uuid, title, visible, "index") VALUES (?, ?, ?, ?)`,
		id, title, boolToInt(visible), index,
	)
	if err != nil {
		f.t.Fatalf("seeding area %q: %v", title, err)
	}
	return id
}

// AddTag inserts a TMTag row and returns its uuid.
func (f *Fixture) AddTag(title string, shortcut, parent *string) string {
	f.t.Helper()

	id := uuid.New().String()
	_, err := f.db.Exec(
		"INSERT INTO TMTag (uuid, title, shortcut, parent) VALUES (?, ?, ?, ?)",
		id, title, shortcut, parent,
	)
	if err != nil {
		f.t.Fatalf("seeding tag %q: %v", title, err)
	}
	return id
}

// TagTask associates a tag with a task.
func (f *Fixture) TagTask(taskID, tagID string) {
	f.t.Helper()

	if _, err := f.db.Exec(
		"INSERT INTO TMTaskTag (tasks, tags) VALUES (?, ?)", taskID, tagID); err != nil {
		f.t.Fatalf("seeding task tag: %v", err)
	}
}

// AddChecklistItem inserts a checklist item for a task and returns its
// uuid. done=true seeds the completed status code.
func (f *Fixture) AddChecklistItem(taskID, title string, done bool, index int) string {
	f.t.Helper()

	status := 0
	if done {
		status = 3
	}
	id := uuid.New().String()
	_, err := f.db.Exec(
		`INSERT INTO TMChecklistItem (uuid, title, status, task, "index") VALUES (?, ?, ?, ?, ?)`,
		id, title, status, taskID, index,
	)
	if err != nil {
		f.t.Fatalf("seeding checklist item %q: %v", title, err)
	}
	return id
}

// Path returns the location of the seeded database file.
func (f *Fixture) Path() string {
	return f.path
}

// Store closes the seeding handle and opens the database through the
// production read-only store. Both are cleaned up with the test.
func (f *Fixture) Store() *store.SQLiteStore {
	f.t.Helper()

	if err := f.db.Close(); err != nil {
		f.t.Fatalf("closing fixture database: %v", err)
	}

	s, err := store.Open(f.path)
	if err != nil {
		f.t.Fatalf("opening store: %v", err)
	}
	f.t.Cleanup(func() {
		// Double close is fine here; tests that close explicitly get
		// ErrClosed which the cleanup ignores.
		_ = s.Close()
	})
	return s
}

// Ptr returns a pointer to v, for filling optional fixture fields.
func Ptr[T any](v T) *T {
	return &v
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
