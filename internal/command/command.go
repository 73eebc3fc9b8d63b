// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// ACTIONS
// =============================================================================

// Action identifies the operation a command requests.
type Action string

const (
	ActionCreateObject  Action = "CREATE_OBJECT"
	ActionUpdateObject  Action = "UPDATE_OBJECT"
	ActionDeleteObject  Action = "DELETE_OBJECT"
	ActionSearchObjects Action = "SEARCH_OBJECTS"
	ActionListObjects   Action = "LIST_OBJECTS"
	ActionGetObject     Action = "GET_OBJECT"

	// ActionAddRelation is reserved; the executor rejects it explicitly.
	ActionAddRelation Action = "ADD_RELATION"
)

// Actions returns the validatable actions in schema order.
func Actions() []Action {
	return []Action{
		ActionCreateObject,
		ActionUpdateObject,
		ActionDeleteObject,
		ActionSearchObjects,
		ActionListObjects,
		ActionGetObject,
		ActionAddRelation,
	}
}

// String returns the wire form of the action.
func (a Action) String() string {
	return string(a)
}

// =============================================================================
// CANDIDATE AND COMMAND
// =============================================================================

// Candidate is a parsed-but-untrusted command extracted from an LLM
// reply. It must pass Validate before it can be acted on.
type Candidate struct {
	Action      Action            `json:"action"`
	Parameters  map[string]string `json:"parameters"`
	Description string            `json:"description,omitempty"`
}

// UnmarshalJSON accepts loosely-typed parameter values (numbers, bools)
// and coerces them to strings, since models frequently emit 42 where
// "42" was asked for.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Action      string                     `json:"action"`
		Parameters  map[string]json.RawMessage `json:"parameters"`
		Description string                     `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Action = Action(strings.ToUpper(strings.TrimSpace(raw.Action)))
	c.Description = raw.Description
	c.Parameters = make(map[string]string, len(raw.Parameters))

	for key, val := range raw.Parameters {
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			c.Parameters[key] = s
			continue
		}
		// Not a JSON string: keep the raw token (number, bool, object).
		c.Parameters[key] = strings.Trim(string(val), "\n ")
	}
	return nil
}

// Command is a validated, trusted command ready for execution. It is
// only ever constructed by Validate.
type Command struct {
	Action      Action
	Parameters  map[string]string
	Description string
}

// Param returns a trimmed parameter value.
func (c Command) Param(key string) string {
	return strings.TrimSpace(c.Parameters[key])
}

// Summary returns a one-line human description, falling back to the
// action name when the model supplied none.
func (c Command) Summary() string {
	if strings.TrimSpace(c.Description) != "" {
		return c.Description
	}
	return fmt.Sprintf("%s command", c.Action)
}
