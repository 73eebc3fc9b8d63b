// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the structured commands the AI assistant can
// produce and the single source of truth for what a well-formed command
// looks like.
//
// A raw LLM reply is parsed into an untrusted Candidate. Only after
// Validate accepts it does it become a Command that the executor will
// act on. Validation is pure and synchronous so it can run right after
// parsing and independently in tests with no network access.
package command
