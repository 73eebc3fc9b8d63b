// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corvid-labs/anyhub/internal/anytype"
	"github.com/corvid-labs/anyhub/internal/execute"
	"github.com/corvid-labs/anyhub/internal/translate"
)

// =============================================================================
// SERVER
// =============================================================================

// API is the object API surface the tool handlers need.
type API interface {
	execute.ObjectAPI
	ListSpaces(ctx context.Context) ([]anytype.Space, error)
}

// Translator is the translation surface the translate_command tool needs.
type Translator interface {
	TranslateWithRetry(ctx context.Context, userText string) translate.Result
}

// New creates a fully configured MCP server with all tools registered.
func New(version string, api API, tr Translator, spaceID string) *mcp.Server {
	ht := &hubTools{api: api, translator: tr, spaceID: spaceID}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "anyhub",
		Version: version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_spaces",
		Description: "List all spaces visible to the configured API key",
	}, ht.ListSpaces)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_objects",
		Description: "List the objects in a space, optionally filtered by type key",
	}, ht.ListObjects)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_object",
		Description: "Fetch one object by ID, including its properties and body",
	}, ht.GetObject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_objects",
		Description: "Full-text search within a space, most recently modified first",
	}, ht.SearchObjects)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_object",
		Description: "Create an object with a name, type key, and optional markdown body",
	}, ht.CreateObject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_object",
		Description: "Update an object's name, body, or properties",
	}, ht.UpdateObject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_object",
		Description: "Delete an object by ID (irreversible)",
	}, ht.DeleteObject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "translate_command",
		Description: "Translate a natural-language request into a structured knowledge base command without executing it",
	}, ht.TranslateCommand)

	return srv
}
