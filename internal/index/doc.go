// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains a local SQLite reverse-reference index over
// knowledge objects.
//
// The object API only exposes forward references (an object's child and
// link IDs); answering "what points at X" would otherwise require a
// full scan per question. Refresh rebuilds the edge table from a
// snapshot of objects; Backlinks answers the reverse question from the
// index. The index is a cache, never authoritative: it can always be
// rebuilt from the API.
package index
