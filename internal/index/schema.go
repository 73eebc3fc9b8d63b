// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

// =============================================================================
// SCHEMA
// =============================================================================

// schemaSQL creates the edge table. One row per directed reference;
// kind distinguishes structural embeddings from link relations.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS refs (
	source_id TEXT NOT NULL,
	target_id TEXT NOT NULL,
	kind      TEXT NOT NULL CHECK (kind IN ('child', 'link')),
	PRIMARY KEY (source_id, target_id, kind)
);

CREATE INDEX IF NOT EXISTS idx_refs_target ON refs (target_id);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
