// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corvid-labs/anyhub/internal/anytype"
)

// hubTools holds the dependencies the tool handlers share.
type hubTools struct {
	api        API
	translator Translator
	spaceID    string
}

// spaceOr falls back to the configured default space.
func (t *hubTools) spaceOr(spaceID string) string {
	if spaceID != "" {
		return spaceID
	}
	return t.spaceID
}

// =============================================================================
// INPUT TYPES
// =============================================================================

type ListObjectsInput struct {
	SpaceID    string `json:"space_id,omitempty" jsonschema:"Space to list (defaults to the configured space)"`
	TypeFilter string `json:"type_filter,omitempty" jsonschema:"Only return objects with this type key"`
}

type GetObjectInput struct {
	SpaceID  string `json:"space_id,omitempty" jsonschema:"Space the object lives in (defaults to the configured space)"`
	ObjectID string `json:"object_id" jsonschema:"ID of the object to fetch"`
}

type SearchObjectsInput struct {
	SpaceID string `json:"space_id,omitempty" jsonschema:"Space to search (defaults to the configured space)"`
	Query   string `json:"query" jsonschema:"Full-text search query"`
}

type CreateObjectInput struct {
	SpaceID string `json:"space_id,omitempty" jsonschema:"Space to create in (defaults to the configured space)"`
	Name    string `json:"name" jsonschema:"Title of the new object"`
	TypeKey string `json:"type_key" jsonschema:"Object type key, e.g. page, note, task"`
	Body    string `json:"body,omitempty" jsonschema:"Markdown body content"`
}

type UpdateObjectInput struct {
	SpaceID  string `json:"space_id,omitempty" jsonschema:"Space the object lives in (defaults to the configured space)"`
	ObjectID string `json:"object_id" jsonschema:"ID of the object to update"`
	Name     string `json:"name,omitempty" jsonschema:"New title"`
	Body     string `json:"body,omitempty" jsonschema:"New markdown body"`
}

type DeleteObjectInput struct {
	SpaceID  string `json:"space_id,omitempty" jsonschema:"Space the object lives in (defaults to the configured space)"`
	ObjectID string `json:"object_id" jsonschema:"ID of the object to delete"`
}

type TranslateCommandInput struct {
	Text string `json:"text" jsonschema:"Natural-language request to translate into a structured command"`
}

// EmptyInput is for tools that take no arguments.
type EmptyInput struct{}

// =============================================================================
// HANDLERS
// =============================================================================

func (t *hubTools) ListSpaces(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	spaces, err := t.api.ListSpaces(ctx)
	if err != nil {
		return toolError("Failed to list spaces: %v", err), nil, nil
	}
	return toolJSON(spaces)
}

func (t *hubTools) ListObjects(ctx context.Context, _ *mcp.CallToolRequest, input ListObjectsInput) (*mcp.CallToolResult, any, error) {
	objects, err := t.api.ListObjects(ctx, t.spaceOr(input.SpaceID))
	if err != nil {
		return toolError("Failed to list objects: %v", err), nil, nil
	}
	if input.TypeFilter != "" {
		filtered := objects[:0]
		for _, o := range objects {
			if o.TypeKey == input.TypeFilter {
				filtered = append(filtered, o)
			}
		}
		objects = filtered
	}
	return toolJSON(map[string]any{"objectCount": len(objects), "objects": objects})
}

func (t *hubTools) GetObject(ctx context.Context, _ *mcp.CallToolRequest, input GetObjectInput) (*mcp.CallToolResult, any, error) {
	obj, err := t.api.GetObject(ctx, t.spaceOr(input.SpaceID), input.ObjectID)
	if err != nil {
		return toolError("Failed to fetch object %s: %v", input.ObjectID, err), nil, nil
	}
	return toolJSON(obj)
}

func (t *hubTools) SearchObjects(ctx context.Context, _ *mcp.CallToolRequest, input SearchObjectsInput) (*mcp.CallToolResult, any, error) {
	results, err := t.api.SearchObjects(ctx, t.spaceOr(input.SpaceID), input.Query)
	if err != nil {
		return toolError("Search failed: %v", err), nil, nil
	}
	return toolJSON(map[string]any{
		"query":       input.Query,
		"resultCount": len(results),
		"results":     results,
	})
}

func (t *hubTools) CreateObject(ctx context.Context, _ *mcp.CallToolRequest, input CreateObjectInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" || input.TypeKey == "" {
		return toolError("Both name and type_key are required."), nil, nil
	}
	obj, err := t.api.CreateObject(ctx, t.spaceOr(input.SpaceID), anytype.CreateRequest{
		Name:    input.Name,
		TypeKey: input.TypeKey,
		Body:    input.Body,
	})
	if err != nil {
		return toolError("Failed to create object: %v", err), nil, nil
	}
	return toolJSON(obj)
}

func (t *hubTools) UpdateObject(ctx context.Context, _ *mcp.CallToolRequest, input UpdateObjectInput) (*mcp.CallToolResult, any, error) {
	if input.ObjectID == "" {
		return toolError("object_id is required."), nil, nil
	}
	obj, err := t.api.UpdateObject(ctx, t.spaceOr(input.SpaceID), input.ObjectID, anytype.UpdateRequest{
		Name: input.Name,
		Body: input.Body,
	})
	if err != nil {
		return toolError("Failed to update object: %v", err), nil, nil
	}
	return toolJSON(obj)
}

func (t *hubTools) DeleteObject(ctx context.Context, _ *mcp.CallToolRequest, input DeleteObjectInput) (*mcp.CallToolResult, any, error) {
	if input.ObjectID == "" {
		return toolError("object_id is required."), nil, nil
	}
	if err := t.api.DeleteObject(ctx, t.spaceOr(input.SpaceID), input.ObjectID); err != nil {
		return toolError("Failed to delete object: %v", err), nil, nil
	}
	return toolJSON(map[string]any{"deleted": input.ObjectID})
}

func (t *hubTools) TranslateCommand(ctx context.Context, _ *mcp.CallToolRequest, input TranslateCommandInput) (*mcp.CallToolResult, any, error) {
	res := t.translator.TranslateWithRetry(ctx, input.Text)
	if !res.Ok() {
		return toolError("Translation failed: %s", res.Message), nil, nil
	}
	return toolJSON(map[string]any{
		"action":      res.Command.Action,
		"parameters":  res.Command.Parameters,
		"description": res.Command.Description,
	})
}

// =============================================================================
// RESULT HELPERS
// =============================================================================

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
