// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

// =============================================================================
// SCHEMA
// =============================================================================

// ParamRule describes one parameter of an action.
type ParamRule struct {
	// Name of the parameter key.
	Name string

	// Required parameters must be present and non-empty.
	Required bool

	// MaxLen bounds the string length in runes (0 = unbounded).
	MaxLen int

	// Description explains the parameter in the translation prompt.
	Description string
}

// Rule describes the full parameter set of one action.
type Rule struct {
	// Action this rule applies to.
	Action Action

	// Params in documentation order; required entries first.
	Params []ParamRule

	// Example is a worked example embedded in the translation prompt.
	Example string
}

// Parameter length limits, shared between the schema and its docs.
const (
	MaxNameLen  = 256
	MaxBodyLen  = 10000
	MaxQueryLen = 1000
)

// schema is the fixed rule table. This is the single source of truth for
// command shape; the validator, the translation prompt, and the MCP tool
// descriptions all derive from it.
var schema = map[Action]Rule{
	ActionCreateObject: {
		Action: ActionCreateObject,
		Params: []ParamRule{
			{Name: "name", Required: true, MaxLen: MaxNameLen, Description: "title of the new object"},
			{Name: "type_key", Required: true, Description: "object type key, e.g. page, note, task"},
			{Name: "body", MaxLen: MaxBodyLen, Description: "markdown body content"},
			{Name: "properties", Description: "extra properties as a JSON object"},
		},
		Example: `{"action":"CREATE_OBJECT","parameters":{"name":"Q3 Roadmap","type_key":"page","body":"# Goals"},"description":"Create a page named Q3 Roadmap"}`,
	},
	ActionUpdateObject: {
		Action: ActionUpdateObject,
		Params: []ParamRule{
			{Name: "object_id", Required: true, Description: "id of the object to update"},
			{Name: "name", MaxLen: MaxNameLen, Description: "new title"},
			{Name: "body", MaxLen: MaxBodyLen, Description: "new markdown body"},
			{Name: "properties", Description: "properties to set as a JSON object"},
		},
		Example: `{"action":"UPDATE_OBJECT","parameters":{"object_id":"obj_123","name":"Renamed"},"description":"Rename object obj_123"}`,
	},
	ActionDeleteObject: {
		Action: ActionDeleteObject,
		Params: []ParamRule{
			{Name: "object_id", Required: true, Description: "id of the object to delete"},
		},
		Example: `{"action":"DELETE_OBJECT","parameters":{"object_id":"obj_123"},"description":"Delete object obj_123"}`,
	},
	ActionSearchObjects: {
		Action: ActionSearchObjects,
		Params: []ParamRule{
			{Name: "query", Required: true, MaxLen: MaxQueryLen, Description: "full-text search query"},
			{Name: "space_id", Description: "space to search in (defaults to the selected space)"},
		},
		Example: `{"action":"SEARCH_OBJECTS","parameters":{"query":"meeting notes"},"description":"Search for meeting notes"}`,
	},
	ActionListObjects: {
		Action: ActionListObjects,
		Params: []ParamRule{
			{Name: "space_id", Description: "space to list (defaults to the selected space)"},
			{Name: "type_filter", Description: "only list objects of this type key"},
		},
		Example: `{"action":"LIST_OBJECTS","parameters":{},"description":"List all objects"}`,
	},
	ActionGetObject: {
		Action: ActionGetObject,
		Params: []ParamRule{
			{Name: "object_id", Required: true, Description: "id of the object to fetch"},
			{Name: "space_id", Description: "space the object lives in"},
		},
		Example: `{"action":"GET_OBJECT","parameters":{"object_id":"obj_123"},"description":"Show object obj_123"}`,
	},
	ActionAddRelation: {
		Action: ActionAddRelation,
		Params: []ParamRule{
			{Name: "source_id", Required: true, Description: "id of the source object"},
			{Name: "target_id", Required: true, Description: "id of the target object"},
		},
		Example: `{"action":"ADD_RELATION","parameters":{"source_id":"obj_1","target_id":"obj_2"},"description":"Link obj_1 to obj_2"}`,
	},
}

// RuleFor returns the rule set for an action.
func RuleFor(action Action) (Rule, bool) {
	r, ok := schema[action]
	return r, ok
}

// Required returns the required parameter names of a rule.
func (r Rule) Required() []string {
	var names []string
	for _, p := range r.Params {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}
