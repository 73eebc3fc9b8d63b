// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm abstracts the chat model backends behind one Provider
// interface. Three backends are supported: OpenAI-compatible and
// Anthropic APIs over HTTPS, and a local Ollama daemon.
//
// Providers are constructed from configuration by New. Outbound calls
// are paced by a shared rate limiter so bursts of pipeline traffic do
// not trip provider-side limits. Keys never appear in errors or logs;
// use config.MaskKey for display.
package llm
