package store_test

import (
	"context"
	"testing"

	"github.com/nkootstra/things-mcp/internal/store"
	"github.com/nkootstra/things-mcp/tests/testutil"
)

func TestGetProjectsCounts(t *testing.T) {
	f := testutil.NewFixture(t)

	projectID := f.AddTask(testutil.Task{Type: 1, Title: "Website"})
	headingID := f.AddTask(testutil.Task{Type: 2, Title: "Launch", Project: &projectID})

	f.AddTask(testutil.Task{Title: "Write copy", Project: &projectID})
	f.AddTask(testutil.Task{Title: "Deploy", Heading: &headingID})
	f.AddTask(testutil.Task{Title: "Design", Project: &projectID, Status: 3})
	f.AddTask(testutil.Task{Title: "Old idea", Project: &projectID, Trashed: true})

	s := f.Store()
	projects, err := s.GetProjects(context.Background(), store.ProjectFilter{})
	if err != nil {
		t.Fatalf("GetProjects: %v", err)
	}

	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	p := projects[0]
	if p.TotalTodoCount != 3 {
		t.Errorf("TotalTodoCount = %d, want 3", p.TotalTodoCount)
	}
	if p.OpenTodoCount != 2 {
		t.Errorf("OpenTodoCount = %d, want 2", p.OpenTodoCount)
	}
}

func TestGetProjectsFilters(t *testing.T) {
	f := testutil.NewFixture(t)

	areaID := f.AddArea("Work", true, 0)
	inArea := f.AddTask(testutil.Task{Type: 1, Title: "Quarterly report", Area: &areaID})
	f.AddTask(testutil.Task{Type: 1, Title: "Side project"})
	done := f.AddTask(testutil.Task{Type: 1, Title: "Shipped", Status: 3})
	f.AddTask(testutil.Task{Type: 1, Title: "Binned", Trashed: true})
	f.AddTask(testutil.Task{Title: "Just a to-do"})

	s := f.Store()
	ctx := context.Background()

	projects, err := s.GetProjects(ctx, store.ProjectFilter{AreaID: &areaID})
	if err != nil {
		t.Fatalf("GetProjects by area: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != inArea {
		t.Fatalf("area filter returned %d projects, want the one in the area", len(projects))
	}
	if projects[0].AreaTitle == nil || *projects[0].AreaTitle != "Work" {
		t.Error("AreaTitle not resolved")
	}

	status := "completed"
	projects, err = s.GetProjects(ctx, store.ProjectFilter{Status: &status})
	if err != nil {
		t.Fatalf("GetProjects by status: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != done {
		t.Fatalf("status filter returned %d projects, want the completed one", len(projects))
	}

	q := "report"
	projects, err = s.GetProjects(ctx, store.ProjectFilter{Query: &q})
	if err != nil {
		t.Fatalf("GetProjects by search: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != inArea {
		t.Fatalf("search returned %d projects, want the matching one", len(projects))
	}
}

func TestGetProjectByID(t *testing.T) {
	f := testutil.NewFixture(t)

	projectID := f.AddTask(testutil.Task{Type: 1, Title: "Move house", Notes: "big one"})
	h1 := f.AddTask(testutil.Task{Type: 2, Title: "Before", Project: &projectID, Index: 0})
	h2 := f.AddTask(testutil.Task{Type: 2, Title: "After", Project: &projectID, Index: 1})
	f.AddTask(testutil.Task{Type: 2, Title: "Scrapped", Project: &projectID, Trashed: true})

	first := f.AddTask(testutil.Task{Title: "Give notice", Project: &projectID, Index: 0})
	second := f.AddTask(testutil.Task{Title: "Unpack", Heading: &h2, Index: 1})
	f.AddTask(testutil.Task{Title: "Old plan", Project: &projectID, Trashed: true})

	tagID := f.AddTag("life", nil, nil)
	f.TagTask(projectID, tagID)

	s := f.Store()
	detail, err := s.GetProjectByID(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetProjectByID: %v", err)
	}
	if detail == nil {
		t.Fatal("got nil, want the project")
	}

	if detail.Title != "Move house" || detail.Notes != "big one" {
		t.Errorf("unexpected title/notes: %q %q", detail.Title, detail.Notes)
	}
	if len(detail.Tags) != 1 || detail.Tags[0] != "life" {
		t.Errorf("Tags = %v, want [life]", detail.Tags)
	}

	if len(detail.Headings) != 2 {
		t.Fatalf("got %d headings, want 2 non-trashed", len(detail.Headings))
	}
	if detail.Headings[0].ID != h1 || detail.Headings[1].ID != h2 {
		t.Errorf("headings not in stored order: %+v", detail.Headings)
	}

	if len(detail.Todos) != 2 {
		t.Fatalf("got %d todos, want 2 non-trashed", len(detail.Todos))
	}
	if detail.Todos[0].ID != first || detail.Todos[1].ID != second {
		t.Errorf("todos not in stored order: [%s %s]", detail.Todos[0].Title, detail.Todos[1].Title)
	}
	if detail.Todos[1].HeadingID == nil || *detail.Todos[1].HeadingID != h2 {
		t.Error("heading-filed to-do did not resolve its heading")
	}
}

func TestGetProjectByIDMissingOrWrongType(t *testing.T) {
	f := testutil.NewFixture(t)
	todoID := f.AddTask(testutil.Task{Title: "Not a project"})

	s := f.Store()
	ctx := context.Background()

	detail, err := s.GetProjectByID(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("GetProjectByID: %v", err)
	}
	if detail != nil {
		t.Error("got a project for a missing id")
	}

	detail, err = s.GetProjectByID(ctx, todoID)
	if err != nil {
		t.Fatalf("GetProjectByID: %v", err)
	}
	if detail != nil {
		t.Error("got a project for a to-do id")
	}
}
