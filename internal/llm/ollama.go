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
	"strings"
	"time"
)

// =============================================================================
// OLLAMA PROVIDER
// =============================================================================

// Ollama talks to a local Ollama daemon. Unlike the hosted backends it
// needs no key, and its model list is live: whatever is pulled locally.
type Ollama struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllama creates an Ollama provider (default base http://127.0.0.1:11434).
func NewOllama(baseURL, model string) *Ollama {
	return &Ollama{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func (o *Ollama) WithHTTPClient(hc *http.Client) *Ollama {
	o.httpClient = hc
	return o
}

func (o *Ollama) Name() string { return "ollama" }

// ValidateKey checks that the daemon is running. There is no key; a
// reachable daemon is a valid configuration.
func (o *Ollama) ValidateKey(ctx context.Context) error {
	if o.baseURL == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/version", nil)
	if err != nil {
		return err
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// ListModels returns the locally pulled models, embedding models
// filtered out since they cannot chat.
func (o *Ollama) ListModels(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: o.Name(), Op: "list models",
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out struct {
		Models []struct {
			Name    string `json:"name"`
			Details struct {
				Family string `json:"family"`
			} `json:"details"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode model list: %w", err)
	}

	models := make([]Model, 0, len(out.Models))
	for _, m := range out.Models {
		if isEmbeddingModel(m.Name, m.Details.Family) {
			continue
		}
		models = append(models, Model{ID: m.Name})
	}
	return models, nil
}

// isEmbeddingModel filters models that only produce vectors.
func isEmbeddingModel(name, family string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "embed") ||
		strings.Contains(strings.ToLower(family), "bert")
}

// Complete performs one non-streaming chat call.
func (o *Ollama) Complete(ctx context.Context, creq CompletionRequest) (string, error) {
	if o.baseURL == "" {
		return "", ErrNotConfigured
	}

	msgs := make([]Message, 0, len(creq.Messages)+1)
	if creq.System != "" {
		msgs = append(msgs, Message{Role: "system", Content: creq.System})
	}
	msgs = append(msgs, creq.Messages...)

	options := map[string]any{}
	if creq.Temperature > 0 {
		options["temperature"] = creq.Temperature
	}
	if creq.MaxTokens > 0 {
		options["num_predict"] = creq.MaxTokens
	}

	payload := map[string]any{
		"model":    o.model,
		"messages": msgs,
		"stream":   false,
	}
	if len(options) > 0 {
		payload["options"] = options
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: o.Name(), Op: "complete",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))}
	}

	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	return out.Message.Content, nil
}
