package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/nkootstra/things-mcp/internal/command"
	"github.com/nkootstra/things-mcp/internal/model"
)

// registerWriteTools registers every tool that dispatches a URL-scheme
// command to Things.
func registerWriteTools(s *mcpserver.MCPServer, h *handlers) {
	s.AddTool(mcp.NewTool("add_todo",
		mcp.WithDescription("Create a new to-do in Things. Provide either title for a single to-do or titles for several."),
		mcp.WithString("title", mcp.Description("Title of the to-do")),
		mcp.WithArray("titles", mcp.Description("Titles for creating multiple to-dos at once"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("notes", mcp.Description("Notes for the to-do")),
		mcp.WithString("when", mcp.Description("Schedule: today, tomorrow, evening, anytime, someday, or a date (YYYY-MM-DD)")),
		mcp.WithString("deadline", mcp.Description("Deadline date (YYYY-MM-DD)")),
		mcp.WithArray("tags", mcp.Description("Tag titles to apply"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("checklistItems", mcp.Description("Checklist item titles"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("listId", mcp.Description("ID of the project or area to add to")),
		mcp.WithString("list", mcp.Description("Title of the project or area to add to")),
		mcp.WithString("headingId", mcp.Description("ID of the heading to add under")),
		mcp.WithString("heading", mcp.Description("Title of the heading to add under")),
		mcp.WithBoolean("completed", mcp.Description("Create the to-do already completed")),
		mcp.WithBoolean("canceled", mcp.Description("Create the to-do already canceled")),
		mcp.WithBoolean("showQuickEntry", mcp.Description("Show the quick entry dialog instead of creating directly")),
		mcp.WithBoolean("reveal", mcp.Description("Reveal the created to-do in Things")),
		mcp.WithString("creationDate", mcp.Description("Backdated creation date (ISO-8601)")),
		mcp.WithString("completionDate", mcp.Description("Backdated completion date (ISO-8601)")),
	), h.handleAddTodo)

	s.AddTool(mcp.NewTool("add_project",
		mcp.WithDescription("Create a new project in Things."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the project")),
		mcp.WithString("notes", mcp.Description("Notes for the project")),
		mcp.WithString("when", mcp.Description("Schedule: today, tomorrow, evening, anytime, someday, or a date (YYYY-MM-DD)")),
		mcp.WithString("deadline", mcp.Description("Deadline date (YYYY-MM-DD)")),
		mcp.WithArray("tags", mcp.Description("Tag titles to apply"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("areaId", mcp.Description("ID of the area to file the project under")),
		mcp.WithString("area", mcp.Description("Title of the area to file the project under")),
		mcp.WithArray("toDos", mcp.Description("Titles of initial to-dos inside the project"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("completed", mcp.Description("Create the project already completed")),
		mcp.WithBoolean("canceled", mcp.Description("Create the project already canceled")),
		mcp.WithBoolean("reveal", mcp.Description("Reveal the created project in Things")),
		mcp.WithString("creationDate", mcp.Description("Backdated creation date (ISO-8601)")),
		mcp.WithString("completionDate", mcp.Description("Backdated completion date (ISO-8601)")),
	), h.handleAddProject)

	s.AddTool(mcp.NewTool("update_todo",
		mcp.WithDescription("Update an existing to-do in Things. Requires the URL-scheme auth token. Pass an empty string to clear an optional field."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the to-do to update")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("notes", mcp.Description("Replacement notes")),
		mcp.WithString("prependNotes", mcp.Description("Text prepended to the existing notes")),
		mcp.WithString("appendNotes", mcp.Description("Text appended to the existing notes")),
		mcp.WithString("when", mcp.Description("New schedule")),
		mcp.WithString("deadline", mcp.Description("New deadline (YYYY-MM-DD)")),
		mcp.WithArray("tags", mcp.Description("Replacement tag titles"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("addTags", mcp.Description("Tag titles added to the existing ones"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("checklistItems", mcp.Description("Replacement checklist item titles"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("prependChecklistItems", mcp.Description("Checklist items prepended to the existing ones"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("appendChecklistItems", mcp.Description("Checklist items appended to the existing ones"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("completed", mcp.Description("Mark the to-do completed")),
		mcp.WithBoolean("canceled", mcp.Description("Mark the to-do canceled")),
		mcp.WithBoolean("reveal", mcp.Description("Reveal the to-do in Things")),
		mcp.WithBoolean("duplicate", mcp.Description("Duplicate the to-do before updating")),
		mcp.WithString("creationDate", mcp.Description("New creation date (ISO-8601)")),
		mcp.WithString("completionDate", mcp.Description("New completion date (ISO-8601)")),
	), h.handleUpdateTodo)

	s.AddTool(mcp.NewTool("update_project",
		mcp.WithDescription("Update an existing project in Things. Requires the URL-scheme auth token. Pass an empty string to clear an optional field."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the project to update")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("notes", mcp.Description("Replacement notes")),
		mcp.WithString("prependNotes", mcp.Description("Text prepended to the existing notes")),
		mcp.WithString("appendNotes", mcp.Description("Text appended to the existing notes")),
		mcp.WithString("when", mcp.Description("New schedule")),
		mcp.WithString("deadline", mcp.Description("New deadline (YYYY-MM-DD)")),
		mcp.WithArray("tags", mcp.Description("Replacement tag titles"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("addTags", mcp.Description("Tag titles added to the existing ones"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("areaId", mcp.Description("ID of the new parent area")),
		mcp.WithString("area", mcp.Description("Title of the new parent area")),
		mcp.WithBoolean("completed", mcp.Description("Mark the project completed")),
		mcp.WithBoolean("canceled", mcp.Description("Mark the project canceled")),
		mcp.WithBoolean("reveal", mcp.Description("Reveal the project in Things")),
		mcp.WithBoolean("duplicate", mcp.Description("Duplicate the project before updating")),
		mcp.WithString("creationDate", mcp.Description("New creation date (ISO-8601)")),
		mcp.WithString("completionDate", mcp.Description("New completion date (ISO-8601)")),
	), h.handleUpdateProject)

	s.AddTool(mcp.NewTool("bulk_create",
		mcp.WithDescription("Create or update several Things items in one call using the JSON command. Items with operation \"update\" require the auth token."),
		mcp.WithArray("items", mcp.Required(), mcp.Description("Items in Things JSON form: {type, operation?, id?, attributes}")),
		mcp.WithBoolean("reveal", mcp.Description("Reveal the created items in Things")),
	), h.handleBulkCreate)

	s.AddTool(mcp.NewTool("show",
		mcp.WithDescription("Navigate Things to an item or built-in list. Provide id or query."),
		mcp.WithString("id", mcp.Description("ID of the item or built-in list (inbox, today, upcoming, anytime, someday, logbook)")),
		mcp.WithString("query", mcp.Description("Title of an area, project, tag, or built-in list to show")),
		mcp.WithArray("filter", mcp.Description("Tag titles to filter the shown list by"), mcp.Items(map[string]any{"type": "string"})),
	), h.handleShow)

	s.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Open the Things search window with a query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for")),
	), h.handleSearch)

	s.AddTool(mcp.NewTool("version",
		mcp.WithDescription("Report the Things app and URL-scheme version."),
	), h.handleVersion)
}

func (h *handlers) dispatch(ctx context.Context, url string) (*mcp.CallToolResult, error) {
	resp, err := h.launcher.Execute(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return dispatchResult(resp)
}

func (h *handlers) handleAddTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	title := stringArg(args, "title")
	titles := sliceArg(args, "titles", "\n")
	if title == nil && titles == nil {
		return mcp.NewToolResultError("either title or titles must be provided"), nil
	}

	b := newParamBuilder(command.CmdAdd)
	b.add("title", title)
	b.add("titles", titles)
	b.add("notes", stringArg(args, "notes"))
	b.add("when", stringArg(args, "when"))
	b.add("deadline", stringArg(args, "deadline"))
	b.add("tags", sliceArg(args, "tags", ","))
	b.add("checklistItems", sliceArg(args, "checklistItems", "\n"))
	b.add("listId", stringArg(args, "listId"))
	b.add("list", stringArg(args, "list"))
	b.add("headingId", stringArg(args, "headingId"))
	b.add("heading", stringArg(args, "heading"))
	b.addBool("completed", boolArg(args, "completed"))
	b.addBool("canceled", boolArg(args, "canceled"))
	b.addBool("showQuickEntry", boolArg(args, "showQuickEntry"))
	b.addBool("reveal", boolArg(args, "reveal"))
	b.add("creationDate", stringArg(args, "creationDate"))
	b.add("completionDate", stringArg(args, "completionDate"))

	params, err := b.build()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.dispatch(ctx, command.BuildURL(command.CmdAdd, params, ""))
}

func (h *handlers) handleAddProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	title := stringArg(args, "title")
	if title == nil || *title == "" {
		return mcp.NewToolResultError("title must be provided"), nil
	}

	b := newParamBuilder(command.CmdAddProject)
	b.add("title", title)
	b.add("notes", stringArg(args, "notes"))
	b.add("when", stringArg(args, "when"))
	b.add("deadline", stringArg(args, "deadline"))
	b.add("tags", sliceArg(args, "tags", ","))
	b.add("areaId", stringArg(args, "areaId"))
	b.add("area", stringArg(args, "area"))
	b.add("toDos", sliceArg(args, "toDos", "\n"))
	b.addBool("completed", boolArg(args, "completed"))
	b.addBool("canceled", boolArg(args, "canceled"))
	b.addBool("reveal", boolArg(args, "reveal"))
	b.add("creationDate", stringArg(args, "creationDate"))
	b.add("completionDate", stringArg(args, "completionDate"))

	params, err := b.build()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.dispatch(ctx, command.BuildURL(command.CmdAddProject, params, ""))
}

func (h *handlers) handleUpdateTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	id := stringArg(args, "id")
	if id == nil || *id == "" {
		return mcp.NewToolResultError("id must be provided"), nil
	}

	// The token gate comes before any URL construction.
	token, err := h.resolveToken()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b := newParamBuilder(command.CmdUpdate)
	b.add("id", id)
	b.add("title", stringArg(args, "title"))
	b.add("notes", stringArg(args, "notes"))
	b.add("prependNotes", stringArg(args, "prependNotes"))
	b.add("appendNotes", stringArg(args, "appendNotes"))
	b.add("when", stringArg(args, "when"))
	b.add("deadline", stringArg(args, "deadline"))
	b.add("tags", sliceArg(args, "tags", ","))
	b.add("addTags", sliceArg(args, "addTags", ","))
	b.add("checklistItems", sliceArg(args, "checklistItems", "\n"))
	b.add("prependChecklistItems", sliceArg(args, "prependChecklistItems", "\n"))
	b.add("appendChecklistItems", sliceArg(args, "appendChecklistItems", "\n"))
	b.addBool("completed", boolArg(args, "completed"))
	b.addBool("canceled", boolArg(args, "canceled"))
	b.addBool("reveal", boolArg(args, "reveal"))
	b.addBool("duplicate", boolArg(args, "duplicate"))
	b.add("creationDate", stringArg(args, "creationDate"))
	b.add("completionDate", stringArg(args, "completionDate"))

	params, err := b.build()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.dispatch(ctx, command.BuildURL(command.CmdUpdate, params, token))
}

func (h *handlers) handleUpdateProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	id := stringArg(args, "id")
	if id == nil || *id == "" {
		return mcp.NewToolResultError("id must be provided"), nil
	}

	token, err := h.resolveToken()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b := newParamBuilder(command.CmdUpdateProject)
	b.add("id", id)
	b.add("title", stringArg(args, "title"))
	b.add("notes", stringArg(args, "notes"))
	b.add("prependNotes", stringArg(args, "prependNotes"))
	b.add("appendNotes", stringArg(args, "appendNotes"))
	b.add("when", stringArg(args, "when"))
	b.add("deadline", stringArg(args, "deadline"))
	b.add("tags", sliceArg(args, "tags", ","))
	b.add("addTags", sliceArg(args, "addTags", ","))
	b.add("areaId", stringArg(args, "areaId"))
	b.add("area", stringArg(args, "area"))
	b.addBool("completed", boolArg(args, "completed"))
	b.addBool("canceled", boolArg(args, "canceled"))
	b.addBool("reveal", boolArg(args, "reveal"))
	b.addBool("duplicate", boolArg(args, "duplicate"))
	b.add("creationDate", stringArg(args, "creationDate"))
	b.add("completionDate", stringArg(args, "completionDate"))

	params, err := b.build()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.dispatch(ctx, command.BuildURL(command.CmdUpdateProject, params, token))
}

func (h *handlers) handleBulkCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	rawItems, ok := args["items"]
	if !ok {
		return mcp.NewToolResultError("items must be provided"), nil
	}

	// Round-trip through JSON so the items pass Item validation while
	// their attributes stay untouched.
	data, err := json.Marshal(rawItems)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid items: %v", err)), nil
	}
	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid items: %v", err)), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultError("items must not be empty"), nil
	}

	var token string
	for _, item := range items {
		if item.IsUpdate() {
			t, err := h.resolveToken()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			token = t
			break
		}
	}

	reveal := false
	if r := boolArg(args, "reveal"); r != nil {
		reveal = *r
	}

	url, err := command.BuildJSONURL(items, token, reveal)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.dispatch(ctx, url)
}

func (h *handlers) handleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	id := stringArg(args, "id")
	query := stringArg(args, "query")
	if id == nil && query == nil {
		return mcp.NewToolResultError("either id or query must be provided"), nil
	}

	b := newParamBuilder(command.CmdShow)
	b.add("id", id)
	b.add("query", query)
	b.add("filter", sliceArg(args, "filter", ","))

	params, err := b.build()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.dispatch(ctx, command.BuildURL(command.CmdShow, params, ""))
}

func (h *handlers) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	query := stringArg(args, "query")
	if query == nil || *query == "" {
		return mcp.NewToolResultError("query must be provided"), nil
	}

	b := newParamBuilder(command.CmdSearch)
	b.add("query", query)

	params, err := b.build()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.dispatch(ctx, command.BuildURL(command.CmdSearch, params, ""))
}

func (h *handlers) handleVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.dispatch(ctx, command.BuildURL(command.CmdVersion, nil, ""))
}
