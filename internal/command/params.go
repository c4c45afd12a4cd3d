package command

// paramTables maps each command's tool-facing field names (camelCase,
// as they appear in tool input schemas) to their URL parameter names
// (hyphenated lowercase, as the Things scheme expects). The tables are
// exhaustive: every externally supported field appears here, so none
// can be silently dropped during translation.
var paramTables = map[string]map[string]string{
	CmdAdd: {
		"title":          "title",
		"titles":         "titles",
		"notes":          "notes",
		"when":           "when",
		"deadline":       "deadline",
		"tags":           "tags",
		"checklistItems": "checklist-items",
		"listId":         "list-id",
		"list":           "list",
		"headingId":      "heading-id",
		"heading":        "heading",
		"completed":      "completed",
		"canceled":       "canceled",
		"showQuickEntry": "show-quick-entry",
		"reveal":         "reveal",
		"creationDate":   "creation-date",
		"completionDate": "completion-date",
	},
	CmdAddProject: {
		"title":          "title",
		"notes":          "notes",
		"when":           "when",
		"deadline":       "deadline",
		"tags":           "tags",
		"areaId":         "area-id",
		"area":           "area",
		"toDos":          "to-dos",
		"completed":      "completed",
		"canceled":       "canceled",
		"reveal":         "reveal",
		"creationDate":   "creation-date",
		"completionDate": "completion-date",
	},
	CmdUpdate: {
		"id":                    "id",
		"title":                 "title",
		"notes":                 "notes",
		"prependNotes":          "prepend-notes",
		"appendNotes":           "append-notes",
		"when":                  "when",
		"deadline":              "deadline",
		"tags":                  "tags",
		"addTags":               "add-tags",
		"checklistItems":        "checklist-items",
		"prependChecklistItems": "prepend-checklist-items",
		"appendChecklistItems":  "append-checklist-items",
		"completed":             "completed",
		"canceled":              "canceled",
		"reveal":                "reveal",
		"duplicate":             "duplicate",
		"creationDate":          "creation-date",
		"completionDate":        "completion-date",
	},
	CmdUpdateProject: {
		"id":             "id",
		"title":          "title",
		"notes":          "notes",
		"prependNotes":   "prepend-notes",
		"appendNotes":    "append-notes",
		"when":           "when",
		"deadline":       "deadline",
		"tags":           "tags",
		"addTags":        "add-tags",
		"areaId":         "area-id",
		"area":           "area",
		"completed":      "completed",
		"canceled":       "canceled",
		"reveal":         "reveal",
		"duplicate":      "duplicate",
		"creationDate":   "creation-date",
		"completionDate": "completion-date",
	},
	CmdShow: {
		"id":     "id",
		"query":  "query",
		"filter": "filter",
	},
	CmdSearch: {
		"query": "query",
	},
	CmdVersion: {},
	CmdJSON: {
		"data":   "data",
		"reveal": "reveal",
	},
}

// ParamName resolves a tool-facing field name to its URL parameter name
// for the given command.
func ParamName(cmd, field string) (string, bool) {
	table, ok := paramTables[cmd]
	if !ok {
		return "", false
	}
	name, ok := table[field]
	return name, ok
}
