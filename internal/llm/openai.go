// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// =============================================================================
// OPENAI PROVIDER
// =============================================================================

// openaiModels is the static model catalog. The chat completions API is
// served by many compatible gateways, so a live /models listing would
// mix in fine-tunes and embeddings; a curated list is more useful.
var openaiModels = []Model{
	{ID: "gpt-4o", Description: "Flagship multimodal model"},
	{ID: "gpt-4o-mini", Description: "Fast, low-cost general model"},
	{ID: "gpt-4.1", Description: "Long-context successor to gpt-4o"},
	{ID: "o3-mini", Description: "Compact reasoning model"},
}

// OpenAI talks to an OpenAI-compatible chat completions API.
type OpenAI struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAI creates an OpenAI provider. baseURL should include the /v1
// segment (the default is https://api.openai.com/v1).
func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	return &OpenAI{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func (o *OpenAI) WithHTTPClient(hc *http.Client) *OpenAI {
	o.httpClient = hc
	return o
}

func (o *OpenAI) Name() string { return "openai" }

// ValidateKey performs a cheap authenticated GET against /models.
func (o *OpenAI) ValidateKey(ctx context.Context) error {
	if o.apiKey == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidKey
	default:
		return &ProviderError{Provider: o.Name(), Op: "validate key",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

// ListModels returns the static catalog.
func (o *OpenAI) ListModels(_ context.Context) ([]Model, error) {
	return append([]Model(nil), openaiModels...), nil
}

// Complete performs one non-streaming chat completion.
func (o *OpenAI) Complete(ctx context.Context, creq CompletionRequest) (string, error) {
	if o.apiKey == "" {
		return "", ErrNotConfigured
	}

	type wireMsg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	msgs := make([]wireMsg, 0, len(creq.Messages)+1)
	if creq.System != "" {
		msgs = append(msgs, wireMsg{Role: "system", Content: creq.System})
	}
	for _, m := range creq.Messages {
		msgs = append(msgs, wireMsg{Role: m.Role, Content: m.Content})
	}

	payload := map[string]any{
		"model":    o.model,
		"messages": msgs,
	}
	if creq.MaxTokens > 0 {
		payload["max_tokens"] = creq.MaxTokens
	}
	if creq.Temperature > 0 {
		payload["temperature"] = creq.Temperature
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrInvalidKey
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: o.Name(), Op: "complete",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))}
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", &ProviderError{Provider: o.Name(), Op: "complete",
			Err: fmt.Errorf("response contained no choices")}
	}
	return out.Choices[0].Message.Content, nil
}

// truncateBody keeps error bodies short enough for error strings.
func truncateBody(b []byte) string {
	const max = 200
	s := string(b)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
