// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat sessions and prompt templates on disk.
//
// Sessions are one JSON file each under the history directory, named by
// their sortable session ID so directory order is chronological. Writes
// go through an atomic temp-file rename; a corrupt session file is
// skipped on listing rather than failing the whole listing. Templates
// live in a diskv key-value store, seeded with a default set on first
// run.
//
// The access pattern is read-all, mutate-in-memory, write-back. That is
// fine for a single local user; two concurrent processes can clobber
// each other's last write, which is a documented limitation.
package storage
