package store

import (
	"context"
	"fmt"

	"github.com/nkootstra/things-mcp/internal/model"
)

// GetAreas retrieves all areas in stored order.
func (s *SQLiteStore) GetAreas(ctx context.Context) ([]model.Area, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT uuid, title, COALESCE(visible, 0) FROM TMArea ORDER BY "index"`)
	if err != nil {
		return nil, fmt.Errorf("querying areas: %w", err)
	}
	defer rows.Close()

	var areas []model.Area
	for rows.Next() {
		var a model.Area
		var visibleInt int
		if err := rows.Scan(&a.ID, &a.Title, &visibleInt); err != nil {
			return nil, fmt.Errorf("scanning area row: %w", err)
		}
		a.Visible = visibleInt != 0
		areas = append(areas, a)
	}
	return areas, rows.Err()
}
