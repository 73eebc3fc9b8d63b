// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
)

// =============================================================================
// TEMPLATE TYPES
// =============================================================================

// Template is a reusable prompt a session can link to.
type Template struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// ErrTemplateNotFound means no template exists for the ID.
var ErrTemplateNotFound = errors.New("template not found")

// defaultTemplates seed the store on first run.
var defaultTemplates = []Template{
	{
		Title:  "Daily note",
		Prompt: "Create a note titled with today's date summarizing: ",
	},
	{
		Title:  "Meeting notes",
		Prompt: "Create a page for meeting notes with attendees, decisions, and action items about: ",
	},
	{
		Title:  "Reading list entry",
		Prompt: "Add a bookmark object for this link with a one-line summary: ",
	},
}

// =============================================================================
// TEMPLATE STORE
// =============================================================================

// Templates is a diskv-backed prompt template store.
type Templates struct {
	kv *diskv.Diskv
}

// NewTemplates opens the template store at dir, seeding the defaults if
// the store is empty.
func NewTemplates(dir string) (*Templates, error) {
	kv := diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 1024 * 1024,
	})
	t := &Templates{kv: kv}
	if err := t.seed(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Templates) seed() error {
	cancel := make(chan struct{})
	defer close(cancel)
	for range t.kv.Keys(cancel) {
		return nil // non-empty store, already seeded
	}
	for _, tpl := range defaultTemplates {
		tpl.ID = "tpl_" + uuid.NewString()[:8]
		if err := t.Put(tpl); err != nil {
			return fmt.Errorf("seed templates: %w", err)
		}
	}
	return nil
}

// Put stores a template, assigning an ID when missing.
func (t *Templates) Put(tpl Template) error {
	if tpl.ID == "" {
		tpl.ID = "tpl_" + uuid.NewString()[:8]
	}
	data, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	return t.kv.Write(tpl.ID, data)
}

// Get reads one template by ID.
func (t *Templates) Get(id string) (Template, error) {
	data, err := t.kv.Read(id)
	if err != nil {
		return Template{}, ErrTemplateNotFound
	}
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("decode template %s: %w", id, err)
	}
	return tpl, nil
}

// List returns all templates sorted by title.
func (t *Templates) List() ([]Template, error) {
	var tpls []Template
	for key := range t.kv.Keys(nil) {
		tpl, err := t.Get(key)
		if err != nil {
			continue
		}
		tpls = append(tpls, tpl)
	}
	sort.Slice(tpls, func(i, j int) bool { return tpls[i].Title < tpls[j].Title })
	return tpls, nil
}

// Delete removes one template.
func (t *Templates) Delete(id string) error {
	if !t.kv.Has(id) {
		return ErrTemplateNotFound
	}
	return t.kv.Erase(id)
}
