// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for anyhub.
//
// Configuration is read from ~/.anyhub/config.toml with built-in defaults
// and ANYHUB_* environment variable overrides. The loaded Config is an
// explicit value handed to the pieces that need it; there is no package
// global.
//
// # Precedence
//
//   1. Environment variables (ANYHUB_PROVIDER, ANYHUB_OPENAI_KEY, ...)
//   2. ~/.anyhub/config.toml
//   3. Built-in defaults
//
// A Watcher can be attached to reload the file on change.
package config
