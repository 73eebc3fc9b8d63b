// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat ties user input to transcript updates: a keyword gate
// decides whether a message is a command or plain conversation, and the
// orchestrator drives command-routed messages through translation and
// execution, updating a single assistant message in place as the
// pipeline progresses.
//
// The gate is a deliberately simple, false-positive-tolerant heuristic.
// A conversational message that slips through still fails safely
// downstream (the translator reports what it could not do); a command
// that is misrouted to conversation silently does nothing, which is the
// worse failure mode. Nothing thrown inside the pipeline escapes the
// orchestrator; it is the last line of defense before the UI.
package chat
