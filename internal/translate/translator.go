// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corvid-labs/anyhub/internal/command"
	"github.com/corvid-labs/anyhub/internal/llm"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// FailureKind classifies why a translation did not produce a command.
type FailureKind string

const (
	// FailureNone means translation succeeded.
	FailureNone FailureKind = ""

	// FailureInput means the request text was empty.
	FailureInput FailureKind = "input"

	// FailureConfig means no provider is usable.
	FailureConfig FailureKind = "config"

	// FailureTimeout means the model did not answer within the deadline.
	FailureTimeout FailureKind = "timeout"

	// FailureProvider means the backend call itself failed.
	FailureProvider FailureKind = "provider"

	// FailureParse means the reply contained no decodable JSON command.
	FailureParse FailureKind = "parse"

	// FailureValidation means the decoded candidate broke a schema rule.
	FailureValidation FailureKind = "validation"
)

// Retryable reports whether a repeat attempt could plausibly succeed.
// Parse and validation failures are deterministic for a given prompt;
// retrying them only burns tokens on an identical reply.
func (k FailureKind) Retryable() bool {
	return k == FailureTimeout || k == FailureProvider
}

// Result is the outcome of one translation attempt.
type Result struct {
	// Command is set on success, nil otherwise.
	Command *command.Command

	// Candidate is set when the reply parsed but failed validation; it
	// shows what the model understood even though it is unusable.
	Candidate *command.Candidate

	// Raw is the model's reply text, kept for diagnostics on parse
	// failures.
	Raw string

	// Kind and Message describe the failure (Kind == FailureNone means
	// success).
	Kind    FailureKind
	Message string
}

// Ok reports whether the result carries a usable command.
func (r Result) Ok() bool {
	return r.Kind == FailureNone && r.Command != nil
}

func failure(kind FailureKind, msg string) Result {
	return Result{Kind: kind, Message: msg}
}

// =============================================================================
// TRANSLATOR
// =============================================================================

// DefaultTimeout bounds one model call during translation.
const DefaultTimeout = 30 * time.Second

// Translator turns request text into validated commands via a provider.
type Translator struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewTranslator creates a translator with the default timeout. A nil
// provider is allowed and reported as a configuration failure per call,
// so callers can construct the pipeline before configuration is
// complete.
func NewTranslator(p llm.Provider) *Translator {
	return &Translator{provider: p, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-attempt deadline.
func (t *Translator) WithTimeout(d time.Duration) *Translator {
	t.timeout = d
	return t
}

// Translate performs one translation attempt.
func (t *Translator) Translate(ctx context.Context, userText string) Result {
	if strings.TrimSpace(userText) == "" {
		return failure(FailureInput, "provide a command to translate")
	}
	if t.provider == nil {
		return failure(FailureConfig, "configuration is incomplete")
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	reply, err := t.provider.Complete(ctx, llm.CompletionRequest{
		System:      SystemPrompt(),
		Messages:    []llm.Message{{Role: "user", Content: userText}},
		MaxTokens:   512,
		Temperature: 0.1,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return failure(FailureTimeout, "translation timed out")
		}
		if errors.Is(err, llm.ErrNotConfigured) || errors.Is(err, llm.ErrInvalidKey) {
			return failure(FailureConfig, "configuration is incomplete")
		}
		return failure(FailureProvider, err.Error())
	}

	return parseReply(reply)
}

// parseReply extracts, decodes, and validates the model's reply.
func parseReply(reply string) Result {
	raw, ok := ExtractJSON(reply)
	if !ok {
		return Result{
			Kind:    FailureParse,
			Message: "failed to parse AI response as valid MCP command",
			Raw:     reply,
		}
	}

	var cand command.Candidate
	if err := json.Unmarshal([]byte(raw), &cand); err != nil {
		return Result{
			Kind:    FailureParse,
			Message: "failed to parse AI response as valid MCP command",
			Raw:     reply,
		}
	}

	// "{}" decodes cleanly but carries no command at all. A candidate
	// missing both action and parameters is a parse failure, not a
	// validation failure against an empty action name.
	if cand.Action == "" && len(cand.Parameters) == 0 {
		return Result{
			Kind:    FailureParse,
			Message: "failed to parse AI response as valid MCP command",
			Raw:     reply,
		}
	}

	cmd, err := command.Validate(cand)
	if err != nil {
		return Result{
			Kind:      FailureValidation,
			Message:   fmt.Sprintf("Validation failed: %v", err),
			Candidate: &cand,
			Raw:       reply,
		}
	}

	return Result{Command: &cmd, Raw: reply}
}
