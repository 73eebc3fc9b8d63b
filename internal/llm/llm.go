// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

var (
	// ErrNotConfigured means the selected provider is missing a key or URL.
	ErrNotConfigured = errors.New("provider is not configured")

	// ErrInvalidKey means the backend rejected the API key.
	ErrInvalidKey = errors.New("invalid api key")

	// ErrUnavailable means the backend could not be reached.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrUnknownProvider means the configured provider name is not known.
	ErrUnknownProvider = errors.New("unknown provider")
)

// ProviderError wraps a backend failure with the provider name attached.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// =============================================================================
// CORE TYPES
// =============================================================================

// Message is one turn of conversation context sent to a backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Model describes one selectable model on a backend.
type Model struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// CompletionRequest is a single chat completion call.
type CompletionRequest struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Provider is a chat model backend.
//
// Complete blocks until the backend answers or ctx is done; callers own
// the deadline. ValidateKey performs a cheap authenticated round trip.
type Provider interface {
	Name() string
	ValidateKey(ctx context.Context) error
	ListModels(ctx context.Context) ([]Model, error)
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// =============================================================================
// TITLES
// =============================================================================

const titlePrompt = "Summarize the following message as a conversation title " +
	"of at most 4 words. Reply with the title only, no quotes, no punctuation."

// GenerateTitle asks the provider for a short session title derived from
// the first user message. The reply is clamped to 4 words client-side
// since models do not reliably honor length instructions.
func GenerateTitle(ctx context.Context, p Provider, firstUserText string) (string, error) {
	reply, err := p.Complete(ctx, CompletionRequest{
		System:      titlePrompt,
		Messages:    []Message{{Role: "user", Content: firstUserText}},
		MaxTokens:   32,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}

	title := strings.Trim(strings.TrimSpace(reply), `"'`)
	words := strings.Fields(title)
	if len(words) > 4 {
		words = words[:4]
	}
	if len(words) == 0 {
		return "", fmt.Errorf("empty title from %s", p.Name())
	}
	return strings.Join(words, " "), nil
}
