// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/corvid-labs/anyhub/internal/command"
	"github.com/corvid-labs/anyhub/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// EXECUTION STATUS
// =============================================================================

// ExecStatus tracks a command-routed message through the pipeline.
type ExecStatus string

const (
	// ExecNone marks plain conversation messages.
	ExecNone ExecStatus = ""
	// ExecPending means translation or execution is in flight.
	ExecPending ExecStatus = "pending"
	// ExecSuccess is terminal: the command executed.
	ExecSuccess ExecStatus = "success"
	// ExecFailed is terminal: translation or execution failed.
	ExecFailed ExecStatus = "failed"
)

// Terminal reports whether the status will no longer change.
func (s ExecStatus) Terminal() bool {
	return s == ExecSuccess || s == ExecFailed
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in a conversation transcript.
//
// Once a later message has been appended a Message is immutable, with
// one exception: the pipeline fields (Content, ExecutionStatus,
// ExecutionError) of a command-routed assistant message are updated in
// place as execution proceeds, so the UI shows one evolving bubble per
// command.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Command-pipeline metadata, set only on command-routed messages.
	Command         *command.Command `json:"command,omitempty"`
	ExecutionStatus ExecStatus       `json:"execution_status,omitempty"`
	ExecutionError  string           `json:"execution_error,omitempty"`
}

// NewMessage creates a message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewPipelineMessage creates the assistant message that will track a
// command through translation and execution.
func NewPipelineMessage(content string) *Message {
	m := NewMessage(RoleAssistant, content)
	m.ExecutionStatus = ExecPending
	return m
}

// MarkSuccess transitions a pipeline message to its success terminal
// state with the given visible text.
func (m *Message) MarkSuccess(text string) {
	m.Content = text
	m.ExecutionStatus = ExecSuccess
	m.ExecutionError = ""
}

// MarkFailed transitions a pipeline message to its failed terminal state.
// The visible text is kept (it may carry the partial "understood" line);
// errText is recorded alongside.
func (m *Message) MarkFailed(text, errText string) {
	m.Content = text
	m.ExecutionStatus = ExecFailed
	m.ExecutionError = errText
}

// IsCommand reports whether this message carries pipeline metadata.
func (m *Message) IsCommand() bool {
	return m.ExecutionStatus != ExecNone
}

// Preview returns a single-line truncated preview of the content.
func (m *Message) Preview(maxLen int) string {
	return util.Truncate(util.CollapseWhitespace(m.Content), maxLen)
}
