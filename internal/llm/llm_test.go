// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corvid-labs/anyhub/internal/config"
)

func TestOpenAIComplete(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hi there"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", srv.URL, "gpt-4o-mini")
	reply, err := p.Complete(context.Background(), CompletionRequest{
		System:   "be brief",
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	msgs, _ := gotPayload["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" {
		t.Errorf("first message role = %v", first["role"])
	}
}

func TestOpenAIInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewOpenAI("sk-bad", srv.URL, "gpt-4o-mini")
	if err := p.ValidateKey(context.Background()); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("ValidateKey() error = %v, want ErrInvalidKey", err)
	}
	if _, err := p.Complete(context.Background(), CompletionRequest{}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Complete() error = %v, want ErrInvalidKey", err)
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	p := NewOpenAI("", "http://example.invalid", "gpt-4o-mini")
	if err := p.ValidateKey(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ValidateKey() error = %v, want ErrNotConfigured", err)
	}
}

func TestAnthropicComplete(t *testing.T) {
	var gotPayload map[string]any
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotHeaders = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"reply text"}]}`))
	}))
	defer srv.Close()

	p := NewAnthropic("ak-test", srv.URL, "claude-3-5-haiku-20241022")
	reply, err := p.Complete(context.Background(), CompletionRequest{
		System:   "be brief",
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "reply text" {
		t.Errorf("reply = %q", reply)
	}
	if gotHeaders.Get("x-api-key") != "ak-test" {
		t.Errorf("x-api-key = %q", gotHeaders.Get("x-api-key"))
	}
	if gotHeaders.Get("anthropic-version") != anthropicAPIVersion {
		t.Errorf("anthropic-version = %q", gotHeaders.Get("anthropic-version"))
	}
	// System prompt travels as a top-level field, never a message role.
	if gotPayload["system"] != "be brief" {
		t.Errorf("system field = %v", gotPayload["system"])
	}
	msgs, _ := gotPayload["messages"].([]any)
	if len(msgs) != 1 {
		t.Errorf("sent %d messages, want 1", len(msgs))
	}
	if gotPayload["max_tokens"] == nil {
		t.Error("max_tokens must always be set for the messages API")
	}
}

func TestOllamaListModelsFiltersEmbeddings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[
			{"name":"llama3.2:3b"},
			{"name":"nomic-embed-text"},
			{"name":"qwen2.5:7b"}
		]}`))
	}))
	defer srv.Close()

	models, err := NewOllama(srv.URL, "llama3.2:3b").ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want embeddings filtered out: %v", len(models), models)
	}
	for _, m := range models {
		if m.ID == "nomic-embed-text" {
			t.Error("embedding model leaked into chat model list")
		}
	}
}

func TestOllamaCompleteNonStreaming(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"message":{"content":"local reply"}}`))
	}))
	defer srv.Close()

	reply, err := NewOllama(srv.URL, "llama3.2:3b").Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "local reply" {
		t.Errorf("reply = %q", reply)
	}
	if gotPayload["stream"] != false {
		t.Error("stream must be disabled")
	}
}

func TestGenerateTitleClampsToFourWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"content":"  \"A Very Long Title With Extra Words\"  "}}`))
	}))
	defer srv.Close()

	title, err := GenerateTitle(context.Background(), NewOllama(srv.URL, "m"), "first message")
	if err != nil {
		t.Fatalf("GenerateTitle() error = %v", err)
	}
	if title != "A Very Long Title" {
		t.Errorf("title = %q", title)
	}
}

func TestNewSelectsConfiguredProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{"openai", "openai", false},
		{"anthropic", "anthropic", false},
		{"ollama", "ollama", false},
		{"mystery", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LLM.Provider = tt.provider
			p, err := New(cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownProvider) {
					t.Errorf("error = %v, want ErrUnknownProvider", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}
