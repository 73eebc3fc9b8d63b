// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/corvid-labs/anyhub/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the in-memory message list for one chat session.
type Transcript struct {
	// ID is a sortable session identifier (unix millis + random suffix)
	// so a lexical sort of IDs is chronological.
	ID string `json:"id"`

	// Title is the session title ("" until generated).
	Title string `json:"title"`

	// LinkedTemplateID references a saved prompt template, if any.
	LinkedTemplateID string `json:"linked_template_id,omitempty"`

	// Messages in append order.
	Messages []*Message `json:"messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTranscript creates an empty transcript with a fresh ID.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		ID:        NewSessionID(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSessionID builds a sortable session ID from a timestamp.
func NewSessionID(t time.Time) string {
	return fmt.Sprintf("%013d_%s", t.UnixMilli(), uuid.NewString()[:8])
}

// Append adds a message and bumps the updated timestamp.
func (t *Transcript) Append(m *Message) {
	t.Messages = append(t.Messages, m)
	t.UpdatedAt = time.Now()
}

// Last returns the most recent message, or nil when empty.
func (t *Transcript) Last() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[len(t.Messages)-1]
}

// LastAssistant returns the most recent assistant message, or nil.
func (t *Transcript) LastAssistant() *Message {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == RoleAssistant {
			return t.Messages[i]
		}
	}
	return nil
}

// FirstUserText returns the first user message content, used for titles
// and previews before a generated title exists.
func (t *Transcript) FirstUserText() string {
	for _, m := range t.Messages {
		if m.Role == RoleUser {
			return m.Content
		}
	}
	return ""
}

// DisplayTitle returns the title, falling back to a preview of the first
// user message, then to a placeholder.
func (t *Transcript) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if first := t.FirstUserText(); first != "" {
		return util.Truncate(util.CollapseWhitespace(first), 50)
	}
	return "New conversation"
}

// Len returns the message count.
func (t *Transcript) Len() int {
	return len(t.Messages)
}
