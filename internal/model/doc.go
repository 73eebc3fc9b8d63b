// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts:
// messages, roles, and the command-pipeline metadata attached to a
// message while it moves through translation and execution.
package model
