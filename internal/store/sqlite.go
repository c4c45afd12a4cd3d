package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// TMTask type discriminants. Todos, projects, and headings share one table.
const (
	taskTypeTodo    = 0
	taskTypeProject = 1
	taskTypeHeading = 2
)

// SQLiteStore implements Store over a read-only copy of the Things
// database. The database is owned and mutated exclusively by Things
// itself; this store never writes to it.
type SQLiteStore struct {
	db *sqlx.DB

	// snapshot is the path of the temporary copy taken by OpenLive,
	// removed on Close. Empty when Open was used directly.
	snapshot string

	closed bool
}

// Open opens the database at dbPath read-only. The immutable flag keeps
// the driver from touching the WAL or creating journal files.
func Open(dbPath string) (*SQLiteStore, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("locating things database at %s: %w", dbPath, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", dbPath)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening things database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening things database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// OpenLive snapshots the live database at dbPath into a temporary file
// and opens the snapshot read-only. Snapshotting makes WAL-resident
// changes visible and avoids touching a database Things has open. The
// snapshot is removed on Close and on every error path.
func OpenLive(dbPath string) (*SQLiteStore, error) {
	snap, err := snapshotDatabase(dbPath)
	if err != nil {
		return nil, err
	}

	s, err := Open(snap)
	if err != nil {
		removeSnapshot(snap)
		return nil, err
	}
	s.snapshot = snap
	return s, nil
}

// Close releases the database handle and removes any snapshot. Queries
// issued after Close fail with ErrClosed.
func (s *SQLiteStore) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	err := s.db.Close()
	if s.snapshot != "" {
		removeSnapshot(s.snapshot)
	}
	if err != nil {
		return fmt.Errorf("closing things database: %w", err)
	}
	return nil
}

// ready guards every query against use after Close.
func (s *SQLiteStore) ready() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// isNoRows reports whether err is the no-result sentinel, which id
// lookups translate to a nil model rather than an error.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
