// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package translate

import (
	"context"
	"time"
)

// =============================================================================
// RETRY
// =============================================================================

const (
	// DefaultMaxRetries is the number of repeat attempts after the first
	// (3 attempts total).
	DefaultMaxRetries = 2

	// baseBackoff is doubled per attempt: 1s, 2s, 4s.
	baseBackoff = time.Second
)

// TranslateWithRetry runs Translate, repeating on transient failures
// with exponential backoff. Deterministic failures (empty input, broken
// configuration, unparseable or invalid model output) return
// immediately: the retry would see the same prompt and the same reply.
func (t *Translator) TranslateWithRetry(ctx context.Context, userText string) Result {
	return t.translateWithRetry(ctx, userText, DefaultMaxRetries)
}

func (t *Translator) translateWithRetry(ctx context.Context, userText string, maxRetries int) Result {
	var res Result
	for attempt := 0; ; attempt++ {
		res = t.Translate(ctx, userText)
		if !res.Kind.Retryable() || attempt >= maxRetries {
			return res
		}

		backoff := baseBackoff * (1 << attempt)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return res
		}
	}
}

// TranslateBatch translates a batch of request texts. The current
// surface only ever submits one message at a time, so this delegates
// per element; the signature exists so callers hold a stable contract
// if batching ever becomes real.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string) []Result {
	results := make([]Result, 0, len(texts))
	for _, text := range texts {
		results = append(results, t.TranslateWithRetry(ctx, text))
	}
	return results
}
