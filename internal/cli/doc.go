// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and runs the non-TUI
// command handlers.
//
// Parsing is hand-rolled: the surface is small and stable, commands
// take free-form natural language as their trailing arguments, and flag
// packages fight that shape. ParseArgs never exits or prints; it
// returns a Command and Args for the caller to act on, which keeps it
// trivially testable.
package cli
