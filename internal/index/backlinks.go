// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/corvid-labs/anyhub/internal/anytype"
)

// =============================================================================
// TYPES
// =============================================================================

// RefKind distinguishes the two reference kinds in the edge table.
type RefKind string

const (
	// KindChild is a structural embedding found in an object's body.
	KindChild RefKind = "child"
	// KindLink is a cross-reference relation from an object's properties.
	KindLink RefKind = "link"
)

// Backlink is one inbound reference to an object.
type Backlink struct {
	SourceID string
	Kind     RefKind
}

// Index is the SQLite-backed reverse-reference index.
type Index struct {
	db *sql.DB
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Open opens (and creates if needed) the index database at path.
// Use ":memory:" for an ephemeral index.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	// The index is only ever touched by one process; a single connection
	// sidesteps SQLite write-lock contention entirely.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// =============================================================================
// REFRESH
// =============================================================================

// Refresh rebuilds the edge table from a snapshot of objects. The
// rebuild is transactional: readers either see the old index or the new
// one, never a half-written mix.
func (ix *Index) Refresh(ctx context.Context, objects []anytype.Object) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin refresh: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM refs`); err != nil {
		return fmt.Errorf("clear refs: %w", err)
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO refs (source_id, target_id, kind) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = ins.Close() }()

	for _, obj := range objects {
		for _, target := range obj.ChildIDs {
			if _, err := ins.ExecContext(ctx, obj.ID, target, string(KindChild)); err != nil {
				return fmt.Errorf("insert child ref: %w", err)
			}
		}
		for _, target := range obj.LinkIDs {
			if _, err := ins.ExecContext(ctx, obj.ID, target, string(KindLink)); err != nil {
				return fmt.Errorf("insert link ref: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('refreshed_at', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record refresh time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit refresh: %w", err)
	}
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Backlinks returns the objects referencing targetID, ordered by source
// ID for stable output.
func (ix *Index) Backlinks(ctx context.Context, targetID string) ([]Backlink, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT source_id, kind FROM refs WHERE target_id = ? ORDER BY source_id, kind`,
		targetID)
	if err != nil {
		return nil, fmt.Errorf("query backlinks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links []Backlink
	for rows.Next() {
		var bl Backlink
		var kind string
		if err := rows.Scan(&bl.SourceID, &kind); err != nil {
			return nil, fmt.Errorf("scan backlink: %w", err)
		}
		bl.Kind = RefKind(kind)
		links = append(links, bl)
	}
	return links, rows.Err()
}

// RefreshedAt returns when the index was last rebuilt, or the zero time
// if it never was.
func (ix *Index) RefreshedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := ix.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = 'refreshed_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query refresh time: %w", err)
	}
	return time.Parse(time.RFC3339, value)
}
