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
// ANTHROPIC PROVIDER
// =============================================================================

const anthropicAPIVersion = "2023-06-01"

// anthropicModels is the static model catalog.
var anthropicModels = []Model{
	{ID: "claude-sonnet-4-20250514", Description: "Balanced speed and capability"},
	{ID: "claude-opus-4-20250514", Description: "Most capable model"},
	{ID: "claude-3-5-haiku-20241022", Description: "Fast, low-cost model"},
}

// Anthropic talks to the Anthropic Messages API.
type Anthropic struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewAnthropic creates an Anthropic provider. baseURL is the API root
// without a version segment (the default is https://api.anthropic.com).
func NewAnthropic(apiKey, baseURL, model string) *Anthropic {
	return &Anthropic{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func (a *Anthropic) WithHTTPClient(hc *http.Client) *Anthropic {
	a.httpClient = hc
	return a
}

func (a *Anthropic) Name() string { return "anthropic" }

// ValidateKey performs a cheap authenticated GET against /v1/models.
func (a *Anthropic) ValidateKey(ctx context.Context) error {
	if a.apiKey == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/v1/models", nil)
	if err != nil {
		return err
	}
	a.setHeaders(req)

	resp, err := a.httpClient.Do(req)
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
		return &ProviderError{Provider: a.Name(), Op: "validate key",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

// ListModels returns the static catalog.
func (a *Anthropic) ListModels(_ context.Context) ([]Model, error) {
	return append([]Model(nil), anthropicModels...), nil
}

// Complete performs one non-streaming message call. The Messages API
// takes the system prompt as a top-level field, not a message role.
func (a *Anthropic) Complete(ctx context.Context, creq CompletionRequest) (string, error) {
	if a.apiKey == "" {
		return "", ErrNotConfigured
	}

	maxTokens := creq.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	payload := map[string]any{
		"model":      a.model,
		"max_tokens": maxTokens,
		"messages":   creq.Messages,
	}
	if creq.System != "" {
		payload["system"] = creq.System
	}
	if creq.Temperature > 0 {
		payload["temperature"] = creq.Temperature
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/v1/messages", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	a.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
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
		return "", &ProviderError{Provider: a.Name(), Op: "complete",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))}
	}

	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &ProviderError{Provider: a.Name(), Op: "complete",
		Err: fmt.Errorf("response contained no text block")}
}

func (a *Anthropic) setHeaders(req *http.Request) {
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
}
