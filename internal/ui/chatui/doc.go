// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatui is the full-screen Bubble Tea chat interface.
//
// The model renders the transcript in a viewport above a single-line
// input. Submitting a line hands it to the orchestrator in a tea.Cmd;
// the command pipeline mutates the pending assistant message in place,
// so redrawing the transcript after the command returns shows the final
// state of the same bubble. Input is disabled while a pipeline cycle is
// in flight, which serializes commands per session.
package chatui
