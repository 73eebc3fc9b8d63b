// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.Provider != "ollama" {
		t.Errorf("default provider = %q, want ollama", cfg.LLM.Provider)
	}
	if cfg.History.MaxSessions != DefaultMaxSessions {
		t.Errorf("default max sessions = %d", cfg.History.MaxSessions)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("default theme = %q", cfg.UI.Theme)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("missing file should yield defaults, got provider %q", cfg.LLM.Provider)
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("{{{ not toml"), 0600)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom malformed: %v", err)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("malformed file should fall back to defaults")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.Providers.OpenAI.APIKey = "sk-test"
	cfg.Anytype.SpaceID = "space-1"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.LLM.Provider != "openai" || loaded.LLM.Model != "gpt-4o-mini" {
		t.Errorf("roundtrip lost llm settings: %+v", loaded.LLM)
	}
	if loaded.Anytype.SpaceID != "space-1" {
		t.Errorf("roundtrip lost space id")
	}
}

func TestValidateClampsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Provider = "FOO"
	cfg.UI.Theme = "sparkle"
	cfg.History.MaxSessions = -5
	cfg.Anytype.Endpoint = "not a url"

	cfg.Validate()

	if cfg.LLM.Provider != "ollama" {
		t.Errorf("bad provider not clamped: %q", cfg.LLM.Provider)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("bad theme not clamped: %q", cfg.UI.Theme)
	}
	if cfg.History.MaxSessions != DefaultMaxSessions {
		t.Errorf("bad max sessions not clamped: %d", cfg.History.MaxSessions)
	}
	if cfg.Anytype.Endpoint != "" {
		t.Errorf("invalid endpoint not cleared: %q", cfg.Anytype.Endpoint)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ANYHUB_PROVIDER", "anthropic")
	t.Setenv("ANYHUB_SPACE", "env-space")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("env provider override not applied: %q", cfg.LLM.Provider)
	}
	if cfg.Anytype.SpaceID != "env-space" {
		t.Errorf("env space override not applied: %q", cfg.Anytype.SpaceID)
	}
}

func TestGetSetKeys(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("llm.model", "llama3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := cfg.Get("llm.model")
	if err != nil || got != "llama3" {
		t.Errorf("Get(llm.model) = %q, %v", got, err)
	}

	if err := cfg.Set("bogus.key", "x"); err == nil {
		t.Error("Set(bogus.key) should fail")
	}

	cfg.Providers.OpenAI.APIKey = "sk-secret"
	masked, _ := cfg.Get("openai.api_key")
	if strings.Contains(masked, "sk-secret") {
		t.Errorf("Get must not reveal key material: %q", masked)
	}
}

func TestMaskKey(t *testing.T) {
	if MaskKey("") != "[not set]" {
		t.Errorf("empty key mask = %q", MaskKey(""))
	}
	masked := MaskKey("sk-abcdef")
	if strings.Contains(masked, "abcdef") {
		t.Errorf("mask leaks key: %q", masked)
	}
	if masked != MaskKey("sk-abcdef") {
		t.Error("mask not deterministic")
	}
}

func TestChatConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = ""
	if cfg.ChatConfigured() {
		t.Error("no model should not be configured")
	}
	cfg.LLM.Model = "llama3"
	if !cfg.ChatConfigured() {
		t.Error("ollama with model should be configured (no key needed)")
	}

	cfg.LLM.Provider = "openai"
	if cfg.ChatConfigured() {
		t.Error("openai without key should not be configured")
	}
	cfg.Providers.OpenAI.APIKey = "sk-x"
	if !cfg.ChatConfigured() {
		t.Error("openai with key and model should be configured")
	}
}
