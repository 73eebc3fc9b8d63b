// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package translate turns natural-language requests into validated
// structured commands by prompting a chat model and parsing its reply.
//
// The model's output is untrusted: the first brace-balanced JSON object
// is extracted from the reply (models wrap JSON in prose and code
// fences), decoded into a candidate, and passed through command
// validation before anything downstream sees it. Failures are
// classified so the retry layer can tell transient faults (timeouts,
// provider errors) from deterministic ones (unparseable or invalid
// output), which would only burn tokens on an identical reply.
package translate
