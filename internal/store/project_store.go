package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/nkootstra/things-mcp/internal/dates"
	"github.com/nkootstra/things-mcp/internal/model"
)

// projectSelect is the shared projection for project queries.
const projectSelect = `
SELECT
	p.uuid                 AS uuid,
	p.title                AS title,
	COALESCE(p.notes, '')  AS notes,
	p.status               AS status,
	p.start                AS start,
	p.startDate            AS start_date,
	p.deadline             AS deadline,
	p.creationDate         AS creation_date,
	p.userModificationDate AS modification_date,
	p.stopDate             AS stop_date,
	a.uuid                 AS area_uuid,
	a.title                AS area_title
FROM TMTask p
LEFT JOIN TMArea a ON p.area = a.uuid`

// projectListSelect extends projectSelect with correlated child-todo
// counts. Children filed under one of the project's headings count too;
// trashed todos and heading pseudo-rows never do.
const projectListSelect = `
SELECT
	p.uuid                 AS uuid,
	p.title                AS title,
	COALESCE(p.notes, '')  AS notes,
	p.status               AS status,
	p.start                AS start,
	p.startDate            AS start_date,
	p.deadline             AS deadline,
	p.creationDate         AS creation_date,
	p.userModificationDate AS modification_date,
	p.stopDate             AS stop_date,
	a.uuid                 AS area_uuid,
	a.title                AS area_title,
	(SELECT COUNT(*) FROM TMTask c
		WHERE c.type = 0 AND c.trashed = 0
		AND (c.project = p.uuid OR c.actionGroup IN (
			SELECT hh.uuid FROM TMTask hh
			WHERE hh.type = 2 AND hh.project = p.uuid))) AS total_count,
	(SELECT COUNT(*) FROM TMTask c
		WHERE c.type = 0 AND c.trashed = 0 AND c.status = 0
		AND (c.project = p.uuid OR c.actionGroup IN (
			SELECT hh.uuid FROM TMTask hh
			WHERE hh.type = 2 AND hh.project = p.uuid))) AS open_count
FROM TMTask p
LEFT JOIN TMArea a ON p.area = a.uuid`

// projectRow is the flat scan target for projectSelect.
type projectRow struct {
	UUID             string   `db:"uuid"`
	Title            string   `db:"title"`
	Notes            string   `db:"notes"`
	Status           int      `db:"status"`
	Start            *int     `db:"start"`
	StartDate        *int     `db:"start_date"`
	Deadline         *int     `db:"deadline"`
	CreationDate     float64  `db:"creation_date"`
	ModificationDate *float64 `db:"modification_date"`
	StopDate         *float64 `db:"stop_date"`
	AreaUUID         *string  `db:"area_uuid"`
	AreaTitle        *string  `db:"area_title"`
	TotalCount       *int     `db:"total_count"`
	OpenCount        *int     `db:"open_count"`
}

// GetProjects retrieves non-trashed projects matching the filter, with
// open/total child-todo counts and tags attached.
func (s *SQLiteStore) GetProjects(
	ctx context.Context,
	filter ProjectFilter,
) ([]model.Project, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	conditions := []string{"p.type = ?", "p.trashed = 0"}
	args := []interface{}{taskTypeProject}

	if filter.Status != nil {
		code, err := statusCode(*filter.Status)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, "p.status = ?")
		args = append(args, code)
	}
	if filter.AreaID != nil {
		conditions = append(conditions, "p.area = ?")
		args = append(args, *filter.AreaID)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(p.title LIKE ? OR p.notes LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := projectListSelect +
		" WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY p.todayIndex ASC, p.creationDate DESC" +
		fmt.Sprintf(" LIMIT %d", limit)

	var rows []projectRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}

	projects := make([]model.Project, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, toProject(r))
		ids = append(ids, r.UUID)
	}

	tags, err := s.loadTagTitles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if t, ok := tags[projects[i].ID]; ok {
			projects[i].Tags = t
		}
	}

	return projects, nil
}

// GetProjectByID retrieves a single project expanded with its headings
// and child todos. Returns (nil, nil) when the id does not exist or
// refers to a non-project row.
func (s *SQLiteStore) GetProjectByID(
	ctx context.Context,
	id string,
) (*model.ProjectDetail, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var row projectRow
	err := s.db.GetContext(ctx, &row,
		projectSelect+" WHERE p.type = ? AND p.uuid = ?", taskTypeProject, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}

	p := toProject(row)
	detail := model.ProjectDetail{
		ID:          p.ID,
		Title:       p.Title,
		Notes:       p.Notes,
		Status:      p.Status,
		Start:       p.Start,
		StartDate:   p.StartDate,
		Deadline:    p.Deadline,
		AreaID:      p.AreaID,
		AreaTitle:   p.AreaTitle,
		CreatedAt:   p.CreatedAt,
		ModifiedAt:  p.ModifiedAt,
		CompletedAt: p.CompletedAt,
		Tags:        p.Tags,
		Headings:    []model.Heading{},
		Todos:       []model.Todo{},
	}

	tags, err := s.loadTagTitles(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if t, ok := tags[id]; ok {
		detail.Tags = t
	}

	// Non-trashed headings in stored order.
	rows, err := s.db.QueryxContext(ctx, `
		SELECT uuid, title FROM TMTask
		WHERE type = ? AND trashed = 0 AND project = ?
		ORDER BY "index"`, taskTypeHeading, id)
	if err != nil {
		return nil, fmt.Errorf("querying headings for project %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var h model.Heading
		if err := rows.Scan(&h.ID, &h.Title); err != nil {
			return nil, fmt.Errorf("scanning heading row: %w", err)
		}
		detail.Headings = append(detail.Headings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Non-trashed child todos in stored order, heading resolved.
	var todoRows []todoRow
	err = s.db.SelectContext(ctx, &todoRows,
		todoSelect+` WHERE t.type = ? AND t.trashed = 0
			AND COALESCE(t.project, h.project) = ?
			ORDER BY t."index"`, taskTypeTodo, id)
	if err != nil {
		return nil, fmt.Errorf("querying todos for project %s: %w", id, err)
	}

	todos := make([]model.Todo, 0, len(todoRows))
	todoIDs := make([]string, 0, len(todoRows))
	for _, r := range todoRows {
		todos = append(todos, toTodo(r))
		todoIDs = append(todoIDs, r.UUID)
	}
	if err := s.attachRelations(ctx, todos, todoIDs); err != nil {
		return nil, err
	}
	detail.Todos = todos

	return &detail, nil
}

// toProject converts a scanned row into the client-facing read model.
func toProject(r projectRow) model.Project {
	p := model.Project{
		ID:        r.UUID,
		Title:     r.Title,
		Notes:     r.Notes,
		Status:    model.StatusFromCode(r.Status),
		Start:     model.StartFromCode(r.Start),
		AreaID:    r.AreaUUID,
		AreaTitle: r.AreaTitle,
		CreatedAt: dates.TimestampToISO(r.CreationDate),
		Tags:      []string{},
	}

	if r.StartDate != nil {
		p.StartDate = dates.DayIntegerToDate(*r.StartDate)
	}
	if r.Deadline != nil {
		p.Deadline = dates.DayIntegerToDate(*r.Deadline)
	}
	if r.ModificationDate != nil {
		iso := dates.TimestampToISO(*r.ModificationDate)
		p.ModifiedAt = &iso
	}
	if r.StopDate != nil {
		iso := dates.TimestampToISO(*r.StopDate)
		p.CompletedAt = &iso
	}
	if r.TotalCount != nil {
		p.TotalTodoCount = *r.TotalCount
	}
	if r.OpenCount != nil {
		p.OpenTodoCount = *r.OpenCount
	}

	return p
}
