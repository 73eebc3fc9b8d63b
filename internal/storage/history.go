// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corvid-labs/anyhub/internal/model"
	"github.com/corvid-labs/anyhub/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrSessionNotFound means no session file exists for the ID.
	ErrSessionNotFound = errors.New("session not found")
)

// =============================================================================
// HISTORY STORE
// =============================================================================

// History stores chat sessions as one JSON file per session.
type History struct {
	dir         string
	maxSessions int
}

// NewHistory creates a session store rooted at dir, keeping at most
// maxSessions sessions (oldest pruned first; 0 means unlimited).
func NewHistory(dir string, maxSessions int) (*History, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &History{dir: dir, maxSessions: maxSessions}, nil
}

func (h *History) path(id string) string {
	return filepath.Join(h.dir, id+".json")
}

// Save writes a session to disk atomically and prunes over-cap sessions.
func (h *History) Save(tr *model.Transcript) error {
	data, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := util.AtomicWriteFile(h.path(tr.ID), data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return h.prune()
}

// Load reads one session by ID.
func (h *History) Load(id string) (*model.Transcript, error) {
	data, err := os.ReadFile(h.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var tr model.Transcript
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &tr, nil
}

// List returns all sessions newest-first. Corrupt files are skipped so
// one bad write cannot hide the rest of the history.
func (h *History) List() ([]*model.Transcript, error) {
	ids, err := h.ids()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.Transcript, 0, len(ids))
	for _, id := range ids {
		tr, err := h.Load(id)
		if err != nil {
			continue
		}
		sessions = append(sessions, tr)
	}

	// Session IDs sort chronologically; reverse for newest-first.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID > sessions[j].ID
	})
	return sessions, nil
}

// Delete removes one session.
func (h *History) Delete(id string) error {
	if err := os.Remove(h.path(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Search returns sessions whose title or message content contains the
// query, case-insensitive, newest-first.
func (h *History) Search(query string) ([]*model.Transcript, error) {
	all, err := h.List()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var hits []*model.Transcript
	for _, tr := range all {
		if sessionMatches(tr, q) {
			hits = append(hits, tr)
		}
	}
	return hits, nil
}

func sessionMatches(tr *model.Transcript, q string) bool {
	if strings.Contains(strings.ToLower(tr.Title), q) {
		return true
	}
	for _, m := range tr.Messages {
		if strings.Contains(strings.ToLower(m.Content), q) {
			return true
		}
	}
	return false
}

// ids returns session IDs in ascending (oldest-first) order.
func (h *History) ids() ([]string, error) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// prune removes the oldest sessions beyond the cap.
func (h *History) prune() error {
	if h.maxSessions <= 0 {
		return nil
	}
	ids, err := h.ids()
	if err != nil {
		return err
	}
	for len(ids) > h.maxSessions {
		if err := os.Remove(h.path(ids[0])); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("prune session: %w", err)
		}
		ids = ids[1:]
	}
	return nil
}
