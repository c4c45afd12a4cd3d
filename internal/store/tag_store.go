package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nkootstra/things-mcp/internal/model"
)

// GetTags retrieves all tags ordered by title. The parent relationship
// is passed through as-is; the hierarchy is single-level.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]model.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT uuid, title, shortcut, parent FROM TMTag ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Title, &t.Shortcut, &t.ParentID); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// loadTagTitles batch-loads tag titles for a set of task ids, keyed by
// task, in alphabetical order. An empty id set short-circuits without
// touching the database.
func (s *SQLiteStore) loadTagTitles(
	ctx context.Context,
	ids []string,
) (map[string][]string, error) {
	tags := make(map[string][]string)
	if len(ids) == 0 {
		return tags, nil
	}

	query, args, err := sqlx.In(`
		SELECT tt.tasks, g.title
		FROM TMTaskTag tt
		INNER JOIN TMTag g ON tt.tags = g.uuid
		WHERE tt.tasks IN (?)
		ORDER BY g.title`, ids)
	if err != nil {
		return nil, fmt.Errorf("building tag query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying tags for tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task, title string
		if err := rows.Scan(&task, &title); err != nil {
			return nil, fmt.Errorf("scanning task tag row: %w", err)
		}
		tags[task] = append(tags[task], title)
	}
	return tags, rows.Err()
}
