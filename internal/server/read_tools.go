package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/nkootstra/things-mcp/internal/store"
)

// registerReadTools registers every tool that queries the local Things
// database.
func registerReadTools(s *mcpserver.MCPServer, h *handlers) {
	s.AddTool(mcp.NewTool("get_todos",
		mcp.WithDescription("List to-dos from the Things database, optionally scoped to a built-in list or narrowed by project, area, tag, status, or a text search."),
		mcp.WithString("list", mcp.Description("Built-in list: inbox, today, anytime, someday, upcoming, logbook, or trash"),
			mcp.Enum(store.ListInbox, store.ListToday, store.ListAnytime, store.ListSomeday, store.ListUpcoming, store.ListLogbook, store.ListTrash)),
		mcp.WithString("projectId", mcp.Description("Only to-dos in this project")),
		mcp.WithString("areaId", mcp.Description("Only to-dos in this area, including those inheriting it from their project")),
		mcp.WithString("tag", mcp.Description("Only to-dos carrying this tag title")),
		mcp.WithString("search", mcp.Description("Substring match against title or notes")),
		mcp.WithString("status", mcp.Description("Only to-dos with this status"),
			mcp.Enum("open", "completed", "canceled")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 50)")),
	), h.handleGetTodos)

	s.AddTool(mcp.NewTool("get_todo",
		mcp.WithDescription("Fetch a single to-do by ID with its tags and checklist."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the to-do")),
	), h.handleGetTodo)

	s.AddTool(mcp.NewTool("get_projects",
		mcp.WithDescription("List projects from the Things database with open and total to-do counts."),
		mcp.WithString("status", mcp.Description("Only projects with this status"),
			mcp.Enum("open", "completed", "canceled")),
		mcp.WithString("areaId", mcp.Description("Only projects in this area")),
		mcp.WithString("search", mcp.Description("Substring match against title or notes")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 50)")),
	), h.handleGetProjects)

	s.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Fetch a single project by ID with its headings and to-dos."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the project")),
	), h.handleGetProject)

	s.AddTool(mcp.NewTool("get_areas",
		mcp.WithDescription("List all areas."),
	), h.handleGetAreas)

	s.AddTool(mcp.NewTool("get_tags",
		mcp.WithDescription("List all tags with shortcuts and parent relationships."),
	), h.handleGetTags)
}

func (h *handlers) handleGetTodos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	filter := store.TodoFilter{
		ProjectID: stringArg(args, "projectId"),
		AreaID:    stringArg(args, "areaId"),
		Tag:       stringArg(args, "tag"),
		Query:     stringArg(args, "search"),
		Status:    stringArg(args, "status"),
		Limit:     req.GetInt("limit", 0),
	}
	if list := stringArg(args, "list"); list != nil {
		filter.List = *list
	}

	todos, err := h.store.GetTodos(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(todos)
}

func (h *handlers) handleGetTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	todo, err := h.store.GetTodoByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if todo == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no to-do with id %s", id)), nil
	}
	return jsonResult(todo)
}

func (h *handlers) handleGetProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	filter := store.ProjectFilter{
		Status: stringArg(args, "status"),
		AreaID: stringArg(args, "areaId"),
		Query:  stringArg(args, "search"),
		Limit:  req.GetInt("limit", 0),
	}

	projects, err := h.store.GetProjects(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(projects)
}

func (h *handlers) handleGetProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := h.store.GetProjectByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if project == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no project with id %s", id)), nil
	}
	return jsonResult(project)
}

func (h *handlers) handleGetAreas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	areas, err := h.store.GetAreas(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(areas)
}

func (h *handlers) handleGetTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := h.store.GetTags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tags)
}
