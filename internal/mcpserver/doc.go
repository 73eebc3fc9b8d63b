// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mcpserver exposes the knowledge hub over the Model Context
// Protocol, so external agents can drive the same object operations and
// the same natural-language translation the chat surface uses.
//
// Tool handlers delegate to the object API client and the translator;
// no business logic lives here. Results are returned as JSON text
// content, failures as MCP tool errors rather than protocol errors, so
// a calling agent can read and react to them.
package mcpserver
