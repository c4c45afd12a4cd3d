package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nkootstra/things-mcp/internal/dates"
	"github.com/nkootstra/things-mcp/internal/model"
)

// todoSelect is the shared projection for todo queries. Headings live in
// the same table, so the parent project is resolved through the heading
// when the todo itself carries none, and the area is inherited from the
// parent project the same way.
const todoSelect = `
SELECT
	t.uuid                    AS uuid,
	t.title                   AS title,
	COALESCE(t.notes, '')     AS notes,
	t.status                  AS status,
	t.start                   AS start,
	t.startDate               AS start_date,
	t.deadline                AS deadline,
	COALESCE(t.todayIndex, 0) AS today_index,
	t.creationDate            AS creation_date,
	t.userModificationDate    AS modification_date,
	t.stopDate                AS stop_date,
	t."index"                 AS position,
	p.uuid                    AS project_uuid,
	p.title                   AS project_title,
	h.uuid                    AS heading_uuid,
	h.title                   AS heading_title,
	a.uuid                    AS area_uuid,
	a.title                   AS area_title
FROM TMTask t
LEFT JOIN TMTask h ON t.actionGroup = h.uuid
LEFT JOIN TMTask p ON COALESCE(t.project, h.project) = p.uuid
LEFT JOIN TMArea a ON COALESCE(t.area, p.area) = a.uuid`

// todoRow is the flat scan target for todoSelect.
type todoRow struct {
	UUID             string   `db:"uuid"`
	Title            string   `db:"title"`
	Notes            string   `db:"notes"`
	Status           int      `db:"status"`
	Start            *int     `db:"start"`
	StartDate        *int     `db:"start_date"`
	Deadline         *int     `db:"deadline"`
	TodayIndex       int      `db:"today_index"`
	CreationDate     float64  `db:"creation_date"`
	ModificationDate *float64 `db:"modification_date"`
	StopDate         *float64 `db:"stop_date"`
	Position         *int     `db:"position"`
	ProjectUUID      *string  `db:"project_uuid"`
	ProjectTitle     *string  `db:"project_title"`
	HeadingUUID      *string  `db:"heading_uuid"`
	HeadingTitle     *string  `db:"heading_title"`
	AreaUUID         *string  `db:"area_uuid"`
	AreaTitle        *string  `db:"area_title"`
}

// GetTodos retrieves todos matching the filter, with tags and checklist
// items attached. Trashed todos are excluded unless the trash list is
// requested.
func (s *SQLiteStore) GetTodos(
	ctx context.Context,
	filter TodoFilter,
) ([]model.Todo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query, args, err := buildTodoQuery(filter, dates.TodayAsDayInteger(time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	var rows []todoRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}

	todos := make([]model.Todo, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		todos = append(todos, toTodo(r))
		ids = append(ids, r.UUID)
	}

	if err := s.attachRelations(ctx, todos, ids); err != nil {
		return nil, err
	}
	return todos, nil
}

// GetTodoByID retrieves a single todo with tags and checklist items.
// Returns (nil, nil) when the id does not exist or refers to a project
// or heading row.
func (s *SQLiteStore) GetTodoByID(
	ctx context.Context,
	id string,
) (*model.Todo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var row todoRow
	err := s.db.GetContext(ctx, &row,
		todoSelect+" WHERE t.type = ? AND t.uuid = ?", taskTypeTodo, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}

	todos := []model.Todo{toTodo(row)}
	if err := s.attachRelations(ctx, todos, []string{row.UUID}); err != nil {
		return nil, err
	}
	return &todos[0], nil
}

// attachRelations loads tags and checklist items for the given todos in
// two batch queries keyed by the page's full id set. Per-row lookups are
// deliberately avoided.
func (s *SQLiteStore) attachRelations(
	ctx context.Context,
	todos []model.Todo,
	ids []string,
) error {
	tags, err := s.loadTagTitles(ctx, ids)
	if err != nil {
		return err
	}
	checklists, err := s.loadChecklistItems(ctx, ids)
	if err != nil {
		return err
	}

	for i := range todos {
		if t, ok := tags[todos[i].ID]; ok {
			todos[i].Tags = t
		}
		if c, ok := checklists[todos[i].ID]; ok {
			todos[i].ChecklistItems = c
		}
	}
	return nil
}

// loadChecklistItems batch-loads checklist items for a set of task ids,
// keyed by parent task, in stored order. An empty id set short-circuits
// without touching the database.
func (s *SQLiteStore) loadChecklistItems(
	ctx context.Context,
	ids []string,
) (map[string][]model.ChecklistItem, error) {
	items := make(map[string][]model.ChecklistItem)
	if len(ids) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(`
		SELECT task, uuid, title, status
		FROM TMChecklistItem
		WHERE task IN (?)
		ORDER BY "index"`, ids)
	if err != nil {
		return nil, fmt.Errorf("building checklist query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying checklist items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task string
		var item model.ChecklistItem
		var status int
		if err := rows.Scan(&task, &item.ID, &item.Title, &status); err != nil {
			return nil, fmt.Errorf("scanning checklist item row: %w", err)
		}
		item.Completed = status == model.StatusCodeCompleted
		items[task] = append(items[task], item)
	}
	return items, rows.Err()
}

// buildTodoQuery constructs the SQL query and args for a TodoFilter.
// today is the current UTC day as days since the Things epoch, used by
// the today/anytime/upcoming predicates.
func buildTodoQuery(filter TodoFilter, today int) (string, []interface{}, error) {
	conditions := []string{"t.type = ?"}
	args := []interface{}{taskTypeTodo}

	if filter.List == ListTrash {
		conditions = append(conditions, "t.trashed = 1")
	} else {
		conditions = append(conditions, "t.trashed = 0")
	}

	switch filter.List {
	case "", ListTrash:
		// No list predicate beyond the trashed handling above.
	case ListInbox:
		conditions = append(conditions,
			"t.status = ?", "t.start = ?", "t.project IS NULL")
		args = append(args, model.StatusCodeOpen, model.StartCodeInbox)
	case ListToday:
		conditions = append(conditions,
			"t.status = ?",
			"(t.todayIndex > 0 OR (t.startDate IS NOT NULL AND t.startDate <= ?))")
		args = append(args, model.StatusCodeOpen, today)
	case ListAnytime:
		conditions = append(conditions,
			"t.status = ?", "t.start = ?",
			"(t.startDate IS NULL OR t.startDate <= ?)")
		args = append(args, model.StatusCodeOpen, model.StartCodeAnytime, today)
	case ListSomeday:
		conditions = append(conditions, "t.status = ?", "t.start = ?")
		args = append(args, model.StatusCodeOpen, model.StartCodeSomeday)
	case ListUpcoming:
		conditions = append(conditions,
			"t.status = ?", "t.start = ?",
			"t.startDate IS NOT NULL", "t.startDate > ?")
		args = append(args, model.StatusCodeOpen, model.StartCodeAnytime, today)
	case ListLogbook:
		conditions = append(conditions, "t.status = ?")
		args = append(args, model.StatusCodeCompleted)
	default:
		return "", nil, fmt.Errorf("unknown list %q", filter.List)
	}

	if filter.Status != nil {
		code, err := statusCode(*filter.Status)
		if err != nil {
			return "", nil, err
		}
		conditions = append(conditions, "t.status = ?")
		args = append(args, code)
	}
	if filter.ProjectID != nil {
		conditions = append(conditions, "COALESCE(t.project, h.project) = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.AreaID != nil {
		conditions = append(conditions, "COALESCE(t.area, p.area) = ?")
		args = append(args, *filter.AreaID)
	}
	if filter.Tag != nil {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM TMTaskTag tt
			INNER JOIN TMTag g ON tt.tags = g.uuid
			WHERE tt.tasks = t.uuid AND g.title = ?)`)
		args = append(args, *filter.Tag)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(t.title LIKE ? OR t.notes LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := todoSelect + " WHERE " + strings.Join(conditions, " AND ")

	if filter.List == ListLogbook {
		query += " ORDER BY t.stopDate DESC"
	} else {
		query += " ORDER BY t.todayIndex ASC, t.creationDate DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	return query, args, nil
}

// statusCode maps a client-facing status name to its TMTask code.
func statusCode(status string) (int, error) {
	switch status {
	case model.StatusOpen:
		return model.StatusCodeOpen, nil
	case model.StatusCompleted:
		return model.StatusCodeCompleted, nil
	case model.StatusCanceled:
		return model.StatusCodeCanceled, nil
	default:
		return 0, fmt.Errorf("unknown status %q", status)
	}
}

// toTodo converts a scanned row into the client-facing read model.
func toTodo(r todoRow) model.Todo {
	todo := model.Todo{
		ID:             r.UUID,
		Title:          r.Title,
		Notes:          r.Notes,
		Status:         model.StatusFromCode(r.Status),
		Start:          model.StartFromCode(r.Start),
		TodayIndex:     r.TodayIndex,
		ProjectID:      r.ProjectUUID,
		ProjectTitle:   r.ProjectTitle,
		AreaID:         r.AreaUUID,
		AreaTitle:      r.AreaTitle,
		HeadingID:      r.HeadingUUID,
		HeadingTitle:   r.HeadingTitle,
		CreatedAt:      dates.TimestampToISO(r.CreationDate),
		Tags:           []string{},
		ChecklistItems: []model.ChecklistItem{},
	}

	if r.StartDate != nil {
		todo.StartDate = dates.DayIntegerToDate(*r.StartDate)
	}
	if r.Deadline != nil {
		todo.Deadline = dates.DayIntegerToDate(*r.Deadline)
	}
	if r.ModificationDate != nil {
		iso := dates.TimestampToISO(*r.ModificationDate)
		todo.ModifiedAt = &iso
	}
	if r.StopDate != nil {
		iso := dates.TimestampToISO(*r.StopDate)
		todo.CompletedAt = &iso
	}

	return todo
}
