// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/anyhub/internal/anytype"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })
	return ix
}

func sampleObjects() []anytype.Object {
	return []anytype.Object{
		{ID: "a", ChildIDs: []string{"b", "c"}},
		{ID: "b", LinkIDs: []string{"c"}},
		{ID: "c"},
	}
}

func TestBacklinks(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Refresh(ctx, sampleObjects()))

	links, err := ix.Backlinks(ctx, "c")
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.Equal(t, Backlink{SourceID: "a", Kind: KindChild}, links[0])
	require.Equal(t, Backlink{SourceID: "b", Kind: KindLink}, links[1])
}

func TestBacklinksNoneIsEmpty(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Refresh(ctx, sampleObjects()))

	links, err := ix.Backlinks(ctx, "a")
	require.NoError(t, err)
	require.Empty(t, links)
}

func TestRefreshReplacesOldEdges(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Refresh(ctx, sampleObjects()))

	// Second snapshot: "a" no longer references "c".
	require.NoError(t, ix.Refresh(ctx, []anytype.Object{
		{ID: "a", ChildIDs: []string{"b"}},
		{ID: "b", LinkIDs: []string{"c"}},
	}))

	links, err := ix.Backlinks(ctx, "c")
	require.NoError(t, err)
	require.Len(t, links, 1, "stale edges must be gone after refresh")
	require.Equal(t, "b", links[0].SourceID)
}

func TestRefreshedAt(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	ts, err := ix.RefreshedAt(ctx)
	require.NoError(t, err)
	require.True(t, ts.IsZero(), "fresh index must have no refresh timestamp")

	require.NoError(t, ix.Refresh(ctx, nil))

	ts, err = ix.RefreshedAt(ctx)
	require.NoError(t, err)
	require.False(t, ts.IsZero())
}
