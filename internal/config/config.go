// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/corvid-labs/anyhub/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete anyhub configuration.
type Config struct {
	// Version of the config schema (informational).
	Version string `toml:"version"`

	// LLM selects the conversation backend.
	LLM LLMConfig `toml:"llm"`

	// Providers holds per-backend settings.
	Providers ProvidersConfig `toml:"providers"`

	// Anytype holds the object API settings.
	Anytype AnytypeConfig `toml:"anytype"`

	// History controls chat-history persistence.
	History HistoryConfig `toml:"history"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui"`
}

// LLMConfig selects the active conversation provider and model.
type LLMConfig struct {
	// Provider is one of "openai", "anthropic", "ollama".
	Provider string `toml:"provider"`
	// Model is the model identifier passed to the provider.
	Model string `toml:"model"`
}

// ProvidersConfig holds credentials and endpoints per backend.
type ProvidersConfig struct {
	OpenAI    OpenAIConfig    `toml:"openai"`
	Anthropic AnthropicConfig `toml:"anthropic"`
	Ollama    OllamaConfig    `toml:"ollama"`
}

// OpenAIConfig configures the OpenAI backend.
type OpenAIConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// OllamaConfig configures the local Ollama backend.
type OllamaConfig struct {
	BaseURL string `toml:"base_url"`
}

// AnytypeConfig configures the object/space API.
type AnytypeConfig struct {
	// Endpoint is the API base URL, e.g. http://127.0.0.1:31009.
	Endpoint string `toml:"endpoint"`
	// APIKey is sent as a bearer token when non-empty.
	APIKey string `toml:"api_key"`
	// SpaceID is the default space for object operations.
	SpaceID string `toml:"space_id"`
}

// HistoryConfig controls chat-history persistence.
type HistoryConfig struct {
	// Dir overrides the session directory (default ~/.anyhub/sessions).
	Dir string `toml:"dir"`
	// MaxSessions caps stored sessions; oldest are evicted (0 = default).
	MaxSessions int `toml:"max_sessions"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "dark", "light", or "auto".
	Theme string `toml:"theme"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// CurrentVersion is the config schema version written on save.
	CurrentVersion = "1"

	// DefaultMaxSessions caps stored chat sessions.
	DefaultMaxSessions = 100
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "",
		},
		Providers: ProvidersConfig{
			OpenAI:    OpenAIConfig{BaseURL: "https://api.openai.com/v1"},
			Anthropic: AnthropicConfig{BaseURL: "https://api.anthropic.com"},
			Ollama:    OllamaConfig{BaseURL: "http://127.0.0.1:11434"},
		},
		Anytype: AnytypeConfig{
			Endpoint: "http://127.0.0.1:31009",
		},
		History: HistoryConfig{
			MaxSessions: DefaultMaxSessions,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the anyhub configuration directory (~/.anyhub).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".anyhub"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config from the default location, applying defaults and
// environment overrides. A missing file is not an error; a malformed file
// is replaced by defaults (the broken file is left on disk untouched).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, derr := toml.Decode(string(data), cfg); derr != nil {
			// Corrupt config falls back to defaults rather than blocking
			// startup; overrides below still apply.
			cfg = DefaultConfig()
		}
	case errors.Is(err, os.ErrNotExist):
		// First run; defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.Validate()
	return cfg, nil
}

// applyEnvOverrides applies ANYHUB_* environment variables on top of the
// file values. Environment always wins.
func (c *Config) applyEnvOverrides() {
	setIfPresent := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setIfPresent("ANYHUB_PROVIDER", &c.LLM.Provider)
	setIfPresent("ANYHUB_MODEL", &c.LLM.Model)
	setIfPresent("ANYHUB_OPENAI_KEY", &c.Providers.OpenAI.APIKey)
	setIfPresent("ANYHUB_ANTHROPIC_KEY", &c.Providers.Anthropic.APIKey)
	setIfPresent("ANYHUB_OLLAMA_URL", &c.Providers.Ollama.BaseURL)
	setIfPresent("ANYHUB_ENDPOINT", &c.Anytype.Endpoint)
	setIfPresent("ANYHUB_API_KEY", &c.Anytype.APIKey)
	setIfPresent("ANYHUB_SPACE", &c.Anytype.SpaceID)
	setIfPresent("ANYHUB_THEME", &c.UI.Theme)
}

// =============================================================================
// VALIDATION
// =============================================================================

// validProviders is the set of supported conversation backends.
var validProviders = map[string]bool{
	"openai":    true,
	"anthropic": true,
	"ollama":    true,
}

// Validate normalizes the config in place, clamping out-of-range values
// back to defaults. It never fails hard: a bad field reverts to its
// default so the application can always start.
func (c *Config) Validate() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if !validProviders[c.LLM.Provider] {
		c.LLM.Provider = "ollama"
	}

	if c.History.MaxSessions <= 0 {
		c.History.MaxSessions = DefaultMaxSessions
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		c.UI.Theme = "auto"
	}

	for _, u := range []*string{
		&c.Providers.OpenAI.BaseURL,
		&c.Providers.Anthropic.BaseURL,
		&c.Providers.Ollama.BaseURL,
		&c.Anytype.Endpoint,
	} {
		*u = strings.TrimSuffix(strings.TrimSpace(*u), "/")
		if *u != "" && !isValidURL(*u) {
			*u = ""
		}
	}
}

// isValidURL reports whether s parses as an absolute http(s) URL.
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ProviderAPIKey returns the API key for the active provider. Ollama has
// no key concept and always returns the sentinel "local".
func (c *Config) ProviderAPIKey() string {
	switch c.LLM.Provider {
	case "openai":
		return c.Providers.OpenAI.APIKey
	case "anthropic":
		return c.Providers.Anthropic.APIKey
	case "ollama":
		return "local"
	}
	return ""
}

// ChatConfigured reports whether the conversation pipeline has enough
// configuration to attempt a completion.
func (c *Config) ChatConfigured() bool {
	return c.LLM.Provider != "" && c.LLM.Model != "" && c.ProviderAPIKey() != ""
}

// MaskKey returns a display-safe form of an API key. The key itself never
// appears; only its length and a short fingerprint.
func MaskKey(key string) string {
	if key == "" {
		return "[not set]"
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("[set, length=%d, fingerprint=%s]", len(key), hex.EncodeToString(h[:4]))
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the config to the default location as TOML.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path atomically.
func (c *Config) SaveTo(path string) error {
	c.Version = CurrentVersion

	var sb strings.Builder
	sb.WriteString("# anyhub configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// KEY/VALUE ACCESS (for `anyhub config get|set`)
// =============================================================================

// ErrUnknownKey is returned by Get/Set for unrecognized keys.
var ErrUnknownKey = errors.New("unknown config key")

// keyAccessors maps dotted key names to getter/setter pairs.
func (c *Config) keyAccessors() map[string]*string {
	return map[string]*string{
		"llm.provider":       &c.LLM.Provider,
		"llm.model":          &c.LLM.Model,
		"openai.api_key":     &c.Providers.OpenAI.APIKey,
		"openai.base_url":    &c.Providers.OpenAI.BaseURL,
		"anthropic.api_key":  &c.Providers.Anthropic.APIKey,
		"anthropic.base_url": &c.Providers.Anthropic.BaseURL,
		"ollama.base_url":    &c.Providers.Ollama.BaseURL,
		"anytype.endpoint":   &c.Anytype.Endpoint,
		"anytype.api_key":    &c.Anytype.APIKey,
		"anytype.space_id":   &c.Anytype.SpaceID,
		"ui.theme":           &c.UI.Theme,
	}
}

// Keys returns the settable config keys in stable order.
func (c *Config) Keys() []string {
	return []string{
		"llm.provider", "llm.model",
		"openai.api_key", "openai.base_url",
		"anthropic.api_key", "anthropic.base_url",
		"ollama.base_url",
		"anytype.endpoint", "anytype.api_key", "anytype.space_id",
		"ui.theme",
	}
}

// Get returns the value of a dotted config key. Secret keys come back
// masked.
func (c *Config) Get(key string) (string, error) {
	p, ok := c.keyAccessors()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if strings.HasSuffix(key, "api_key") {
		return MaskKey(*p), nil
	}
	return *p, nil
}

// Set updates a dotted config key and re-validates.
func (c *Config) Set(key, value string) error {
	p, ok := c.keyAccessors()[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	*p = value
	c.Validate()
	return nil
}
