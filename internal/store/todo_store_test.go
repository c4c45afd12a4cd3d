package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/nkootstra/things-mcp/internal/dates"
	"github.com/nkootstra/things-mcp/internal/store"
	"github.com/nkootstra/things-mcp/tests/testutil"
)

func today() int {
	return dates.TodayAsDayInteger(time.Now().UTC())
}

func TestGetTodosInbox(t *testing.T) {
	f := testutil.NewFixture(t)

	inInbox := f.AddTask(testutil.Task{Title: "Loose thought", Start: testutil.Ptr(0)})
	projectID := f.AddTask(testutil.Task{Type: 1, Title: "Renovation", Start: testutil.Ptr(1)})
	f.AddTask(testutil.Task{Title: "In a project", Start: testutil.Ptr(0), Project: &projectID})
	f.AddTask(testutil.Task{Title: "Scheduled", Start: testutil.Ptr(1)})
	f.AddTask(testutil.Task{Title: "Trashed", Start: testutil.Ptr(0), Trashed: true})

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{List: store.ListInbox})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}

	if len(todos) != 1 {
		t.Fatalf("got %d todos, want 1", len(todos))
	}
	if todos[0].ID != inInbox {
		t.Errorf("got %q, want the unparented inbox to-do", todos[0].Title)
	}
	if todos[0].Start != "inbox" {
		t.Errorf("Start = %q, want inbox", todos[0].Start)
	}
}

func TestGetTodosToday(t *testing.T) {
	f := testutil.NewFixture(t)

	pinned := f.AddTask(testutil.Task{Title: "Pinned", Start: testutil.Ptr(1), TodayIndex: 1})
	due := f.AddTask(testutil.Task{Title: "Due", Start: testutil.Ptr(1), StartDate: testutil.Ptr(today() - 2), TodayIndex: 2})
	f.AddTask(testutil.Task{Title: "Future", Start: testutil.Ptr(1), StartDate: testutil.Ptr(today() + 1)})
	f.AddTask(testutil.Task{Title: "Unscheduled", Start: testutil.Ptr(1)})
	f.AddTask(testutil.Task{Title: "Done today", Start: testutil.Ptr(1), TodayIndex: 3, Status: 3})

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{List: store.ListToday})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}

	if len(todos) != 2 {
		t.Fatalf("got %d todos, want 2", len(todos))
	}
	// Ordered by todayIndex.
	if todos[0].ID != pinned || todos[1].ID != due {
		t.Errorf("got [%s %s], want [Pinned Due]", todos[0].Title, todos[1].Title)
	}
}

func TestGetTodosUpcoming(t *testing.T) {
	f := testutil.NewFixture(t)

	future := f.AddTask(testutil.Task{Title: "Next week", Start: testutil.Ptr(1), StartDate: testutil.Ptr(today() + 7)})
	f.AddTask(testutil.Task{Title: "Started already", Start: testutil.Ptr(1), StartDate: testutil.Ptr(today())})
	f.AddTask(testutil.Task{Title: "No date", Start: testutil.Ptr(1)})
	f.AddTask(testutil.Task{Title: "Someday", Start: testutil.Ptr(2), StartDate: testutil.Ptr(today() + 7)})

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{List: store.ListUpcoming})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}

	if len(todos) != 1 || todos[0].ID != future {
		t.Fatalf("upcoming returned %d todos, want only the future-dated one", len(todos))
	}
	if todos[0].StartDate == "" {
		t.Error("StartDate not populated")
	}
}

func TestGetTodosLogbookOrder(t *testing.T) {
	f := testutil.NewFixture(t)

	older := f.AddTask(testutil.Task{Title: "Older", Status: 3, StopDate: testutil.Ptr(1000.0)})
	newer := f.AddTask(testutil.Task{Title: "Newer", Status: 3, StopDate: testutil.Ptr(2000.0)})
	f.AddTask(testutil.Task{Title: "Still open"})
	f.AddTask(testutil.Task{Title: "Canceled", Status: 2, StopDate: testutil.Ptr(3000.0)})

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{List: store.ListLogbook})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}

	if len(todos) != 2 {
		t.Fatalf("got %d todos, want 2 completed", len(todos))
	}
	if todos[0].ID != newer || todos[1].ID != older {
		t.Errorf("logbook not ordered by completion date descending: [%s %s]",
			todos[0].Title, todos[1].Title)
	}
	if todos[0].CompletedAt == nil {
		t.Error("CompletedAt not populated for a completed to-do")
	}
}

func TestGetTodosTrash(t *testing.T) {
	f := testutil.NewFixture(t)

	trashed := f.AddTask(testutil.Task{Title: "Discarded", Trashed: true})
	f.AddTask(testutil.Task{Title: "Kept"})

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{List: store.ListTrash})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}

	if len(todos) != 1 || todos[0].ID != trashed {
		t.Fatalf("trash returned %d todos, want only the trashed one", len(todos))
	}
}

func TestGetTodosUnknownList(t *testing.T) {
	f := testutil.NewFixture(t)
	s := f.Store()

	if _, err := s.GetTodos(context.Background(), store.TodoFilter{List: "nonsense"}); err == nil {
		t.Fatal("expected error for unknown list name")
	}
}

func TestGetTodosFilters(t *testing.T) {
	f := testutil.NewFixture(t)

	areaID := f.AddArea("Home", true, 0)
	projectID := f.AddTask(testutil.Task{Type: 1, Title: "Garden", Area: &areaID})
	headingID := f.AddTask(testutil.Task{Type: 2, Title: "Phase one", Project: &projectID})

	direct := f.AddTask(testutil.Task{Title: "Water plants", Project: &projectID})
	underHeading := f.AddTask(testutil.Task{Title: "Buy seeds", Heading: &headingID})
	f.AddTask(testutil.Task{Title: "Unrelated"})

	tagID := f.AddTag("errand", nil, nil)
	f.TagTask(underHeading, tagID)

	s := f.Store()
	ctx := context.Background()

	// Project filter resolves membership through the heading too.
	todos, err := s.GetTodos(ctx, store.TodoFilter{ProjectID: &projectID})
	if err != nil {
		t.Fatalf("GetTodos by project: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("project filter returned %d todos, want 2", len(todos))
	}
	seen := map[string]bool{}
	for _, td := range todos {
		seen[td.ID] = true
		if td.AreaID == nil || *td.AreaID != areaID {
			t.Errorf("%q did not inherit the project's area", td.Title)
		}
	}
	if !seen[direct] || !seen[underHeading] {
		t.Error("project filter missed a direct or heading-filed child")
	}

	// Area filter matches the inherited area.
	todos, err = s.GetTodos(ctx, store.TodoFilter{AreaID: &areaID})
	if err != nil {
		t.Fatalf("GetTodos by area: %v", err)
	}
	if len(todos) != 2 {
		t.Errorf("area filter returned %d todos, want 2", len(todos))
	}

	// Tag filter matches by tag title.
	tag := "errand"
	todos, err = s.GetTodos(ctx, store.TodoFilter{Tag: &tag})
	if err != nil {
		t.Fatalf("GetTodos by tag: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != underHeading {
		t.Fatalf("tag filter returned %d todos, want the tagged one", len(todos))
	}
	if len(todos[0].Tags) != 1 || todos[0].Tags[0] != "errand" {
		t.Errorf("Tags = %v, want [errand]", todos[0].Tags)
	}

	// Search matches titles and notes.
	q := "seeds"
	todos, err = s.GetTodos(ctx, store.TodoFilter{Query: &q})
	if err != nil {
		t.Fatalf("GetTodos by search: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != underHeading {
		t.Fatalf("search returned %d todos, want the matching one", len(todos))
	}
}

func TestGetTodosStatusFilter(t *testing.T) {
	f := testutil.NewFixture(t)

	f.AddTask(testutil.Task{Title: "Open"})
	canceled := f.AddTask(testutil.Task{Title: "Dropped", Status: 2})

	s := f.Store()
	status := "canceled"
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{Status: &status})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}

	if len(todos) != 1 || todos[0].ID != canceled {
		t.Fatalf("status filter returned %d todos, want the canceled one", len(todos))
	}
	if todos[0].Status != "canceled" {
		t.Errorf("Status = %q, want canceled", todos[0].Status)
	}
}

func TestGetTodosExcludesProjectsAndHeadings(t *testing.T) {
	f := testutil.NewFixture(t)

	f.AddTask(testutil.Task{Type: 1, Title: "A project"})
	f.AddTask(testutil.Task{Type: 2, Title: "A heading"})
	todoID := f.AddTask(testutil.Task{Title: "A to-do"})

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}

	if len(todos) != 1 || todos[0].ID != todoID {
		t.Fatalf("got %d rows, want only the to-do", len(todos))
	}
}

func TestGetTodosLimit(t *testing.T) {
	f := testutil.NewFixture(t)

	for i := 0; i < 5; i++ {
		f.AddTask(testutil.Task{Title: "Task", CreationDate: float64(i)})
	}

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{Limit: 3})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("got %d todos, want 3", len(todos))
	}
}

func TestGetTodoByID(t *testing.T) {
	f := testutil.NewFixture(t)

	id := f.AddTask(testutil.Task{
		Title:        "Pack bags",
		Notes:        "passport, charger",
		Start:        testutil.Ptr(1),
		Deadline:     testutil.Ptr(100),
		CreationDate: 3600,
	})
	f.AddChecklistItem(id, "Passport", true, 0)
	f.AddChecklistItem(id, "Charger", false, 1)
	tagID := f.AddTag("travel", nil, nil)
	f.TagTask(id, tagID)

	s := f.Store()
	todo, err := s.GetTodoByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTodoByID: %v", err)
	}
	if todo == nil {
		t.Fatal("got nil, want the to-do")
	}

	if todo.Title != "Pack bags" || todo.Notes != "passport, charger" {
		t.Errorf("unexpected title/notes: %q %q", todo.Title, todo.Notes)
	}
	if todo.Deadline != "2001-04-11" {
		t.Errorf("Deadline = %q, want 2001-04-11", todo.Deadline)
	}
	if todo.CreatedAt != "2001-01-01T01:00:00.000Z" {
		t.Errorf("CreatedAt = %q", todo.CreatedAt)
	}
	if len(todo.Tags) != 1 || todo.Tags[0] != "travel" {
		t.Errorf("Tags = %v, want [travel]", todo.Tags)
	}
	if len(todo.ChecklistItems) != 2 {
		t.Fatalf("got %d checklist items, want 2", len(todo.ChecklistItems))
	}
	if todo.ChecklistItems[0].Title != "Passport" || !todo.ChecklistItems[0].Completed {
		t.Errorf("first checklist item wrong: %+v", todo.ChecklistItems[0])
	}
	if todo.ChecklistItems[1].Title != "Charger" || todo.ChecklistItems[1].Completed {
		t.Errorf("second checklist item wrong: %+v", todo.ChecklistItems[1])
	}
}

func TestGetTodoByIDMissingOrWrongType(t *testing.T) {
	f := testutil.NewFixture(t)
	projectID := f.AddTask(testutil.Task{Type: 1, Title: "Not a to-do"})

	s := f.Store()
	ctx := context.Background()

	todo, err := s.GetTodoByID(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("GetTodoByID: %v", err)
	}
	if todo != nil {
		t.Error("got a to-do for a missing id")
	}

	todo, err = s.GetTodoByID(ctx, projectID)
	if err != nil {
		t.Fatalf("GetTodoByID: %v", err)
	}
	if todo != nil {
		t.Error("got a to-do for a project id")
	}
}

func TestGetTodosEmptyRelations(t *testing.T) {
	f := testutil.NewFixture(t)
	f.AddTask(testutil.Task{Title: "Bare"})

	s := f.Store()
	todos, err := s.GetTodos(context.Background(), store.TodoFilter{})
	if err != nil {
		t.Fatalf("GetTodos: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("got %d todos, want 1", len(todos))
	}
	if todos[0].Tags == nil || todos[0].ChecklistItems == nil {
		t.Error("Tags and ChecklistItems must be empty slices, not nil")
	}
}

func TestStoreClosed(t *testing.T) {
	f := testutil.NewFixture(t)
	s := f.Store()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := s.GetTodos(context.Background(), store.TodoFilter{}); err != store.ErrClosed {
		t.Errorf("GetTodos after Close = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != store.ErrClosed {
		t.Errorf("second Close = %v, want ErrClosed", err)
	}
}
