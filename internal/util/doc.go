// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the anyhub client:
// atomic file writes and display-safe string truncation.
package util
