// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/corvid-labs/anyhub/internal/config"
)

// =============================================================================
// PROVIDER REGISTRY
// =============================================================================

// ProviderNames lists the supported backend names in display order.
func ProviderNames() []string {
	return []string{"openai", "anthropic", "ollama"}
}

// New constructs the configured provider, wrapped with rate pacing.
func New(cfg *config.Config) (Provider, error) {
	var p Provider
	switch cfg.LLM.Provider {
	case "openai":
		p = NewOpenAI(cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.BaseURL, cfg.LLM.Model)
	case "anthropic":
		p = NewAnthropic(cfg.Providers.Anthropic.APIKey, cfg.Providers.Anthropic.BaseURL, cfg.LLM.Model)
	case "ollama":
		p = NewOllama(cfg.Providers.Ollama.BaseURL, cfg.LLM.Model)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.LLM.Provider)
	}
	return Paced(p), nil
}

// =============================================================================
// RATE PACING
// =============================================================================

// pacedProvider spaces outbound calls so pipeline bursts (translate,
// then title generation, then retries) do not trip provider limits.
type pacedProvider struct {
	Provider
	limiter *rate.Limiter
}

// Paced wraps a provider with a 2 req/s limiter, burst 4.
func Paced(p Provider) Provider {
	return &pacedProvider{Provider: p, limiter: rate.NewLimiter(rate.Limit(2), 4)}
}

func (p *pacedProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.Provider.Complete(ctx, req)
}

func (p *pacedProvider) ListModels(ctx context.Context) ([]Model, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.Provider.ListModels(ctx)
}
