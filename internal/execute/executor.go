// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package execute

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/corvid-labs/anyhub/internal/anytype"
	"github.com/corvid-labs/anyhub/internal/command"
)

// =============================================================================
// TYPES
// =============================================================================

// ObjectAPI is the slice of the object API client the executor uses.
type ObjectAPI interface {
	Configured() bool
	CheckReachable(ctx context.Context) error
	CreateObject(ctx context.Context, spaceID string, req anytype.CreateRequest) (*anytype.Object, error)
	UpdateObject(ctx context.Context, spaceID, objectID string, req anytype.UpdateRequest) (*anytype.Object, error)
	DeleteObject(ctx context.Context, spaceID, objectID string) error
	GetObject(ctx context.Context, spaceID, objectID string) (*anytype.Object, error)
	ListObjects(ctx context.Context, spaceID string) ([]anytype.Object, error)
	SearchObjects(ctx context.Context, spaceID, query string) ([]anytype.Object, error)
}

// Outcome is the normalized result of executing one command.
type Outcome struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

func fail(msg string) Outcome {
	return Outcome{Success: false, Error: msg}
}

// Executor dispatches validated commands against the object API.
type Executor struct {
	api     ObjectAPI
	spaceID string
}

// NewExecutor creates an executor bound to one space.
func NewExecutor(api ObjectAPI, spaceID string) *Executor {
	return &Executor{api: api, spaceID: spaceID}
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute runs one validated command. It never returns an error: all
// failures, including recovered panics, come back as a failed Outcome.
func (e *Executor) Execute(ctx context.Context, cmd command.Command) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = fail(fmt.Sprintf("internal error: %v", r))
		}
	}()

	// Precondition order is fixed: a missing endpoint must fail before
	// the probe, and the probe before any API call.
	if e.api == nil || !e.api.Configured() {
		return fail("endpoint is not configured")
	}
	if err := e.api.CheckReachable(ctx); err != nil {
		return fail("cannot connect to the object API, check your configuration")
	}

	// Mutations always target the selected space; GET and SEARCH may name
	// one explicitly. Either way the space must be known before any call.
	switch cmd.Action {
	case command.ActionCreateObject, command.ActionUpdateObject, command.ActionDeleteObject:
		if e.spaceID == "" {
			return fail("no space selected")
		}
	case command.ActionGetObject, command.ActionSearchObjects:
		if spaceIDOr(cmd, e.spaceID) == "" {
			return fail("no space selected")
		}
	}

	switch cmd.Action {
	case command.ActionCreateObject:
		return e.createObject(ctx, cmd)
	case command.ActionUpdateObject:
		return e.updateObject(ctx, cmd)
	case command.ActionDeleteObject:
		return e.deleteObject(ctx, cmd)
	case command.ActionGetObject:
		return e.getObject(ctx, cmd)
	case command.ActionSearchObjects:
		return e.searchObjects(ctx, cmd)
	case command.ActionListObjects:
		return e.listObjects(ctx, cmd)
	case command.ActionAddRelation:
		// Explicit stub. Failing loudly beats silently dropping the
		// relation the user asked for.
		return fail("not yet implemented")
	default:
		return fail(fmt.Sprintf("unknown operation: %s", cmd.Action))
	}
}

// =============================================================================
// ACTION HANDLERS
// =============================================================================

func (e *Executor) createObject(ctx context.Context, cmd command.Command) Outcome {
	req := anytype.CreateRequest{
		Name:    cmd.Param("name"),
		TypeKey: cmd.Param("type_key"),
		Body:    cmd.Param("body"),
	}
	if props := cmd.Param("properties"); props != "" {
		var m map[string]any
		if err := json.Unmarshal([]byte(props), &m); err == nil {
			req.Properties = m
		}
	}

	obj, err := e.api.CreateObject(ctx, e.spaceID, req)
	if err != nil {
		return fail("failed to create object")
	}
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Created %q", obj.Name),
		Data:    map[string]any{"object": obj},
	}
}

func (e *Executor) updateObject(ctx context.Context, cmd command.Command) Outcome {
	req := anytype.UpdateRequest{
		Name: cmd.Param("name"),
		Body: cmd.Param("body"),
	}
	if props := cmd.Param("properties"); props != "" {
		var m map[string]any
		if err := json.Unmarshal([]byte(props), &m); err == nil {
			req.Properties = m
		}
	}

	obj, err := e.api.UpdateObject(ctx, e.spaceID, cmd.Param("object_id"), req)
	if err != nil {
		return fail("failed to update object")
	}
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Updated %q", obj.Name),
		Data:    map[string]any{"object": obj},
	}
}

func (e *Executor) deleteObject(ctx context.Context, cmd command.Command) Outcome {
	objectID := cmd.Param("object_id")
	if err := e.api.DeleteObject(ctx, e.spaceID, objectID); err != nil {
		return fail("failed to delete object")
	}
	return Outcome{
		Success: true,
		Message: "Deleted object " + objectID,
		Data:    map[string]any{"objectId": objectID},
	}
}

func (e *Executor) getObject(ctx context.Context, cmd command.Command) Outcome {
	obj, err := e.api.GetObject(ctx, spaceIDOr(cmd, e.spaceID), cmd.Param("object_id"))
	if err != nil {
		return fail("object not found")
	}
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Found %q", obj.Name),
		Data:    map[string]any{"object": obj},
	}
}

func (e *Executor) searchObjects(ctx context.Context, cmd command.Command) Outcome {
	query := cmd.Param("query")
	results, err := e.api.SearchObjects(ctx, spaceIDOr(cmd, e.spaceID), query)
	if err != nil {
		return fail("search failed")
	}
	// An empty result set is a successful search, not an error.
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Found %d result(s) for %q", len(results), query),
		Data: map[string]any{
			"query":       query,
			"resultCount": len(results),
			"results":     results,
		},
	}
}

func (e *Executor) listObjects(ctx context.Context, cmd command.Command) Outcome {
	objects, err := e.api.ListObjects(ctx, spaceIDOr(cmd, e.spaceID))
	if err != nil {
		return fail("failed to list objects")
	}

	if typeFilter := cmd.Param("type_filter"); typeFilter != "" {
		filtered := objects[:0]
		for _, o := range objects {
			if o.TypeKey == typeFilter {
				filtered = append(filtered, o)
			}
		}
		objects = filtered
	}

	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Listed %d object(s)", len(objects)),
		Data: map[string]any{
			"objectCount": len(objects),
			"objects":     objects,
		},
	}
}

// spaceIDOr prefers the command's space_id parameter over the executor's
// selected space.
func spaceIDOr(cmd command.Command, fallback string) string {
	if s := cmd.Param("space_id"); s != "" {
		return s
	}
	return fallback
}
