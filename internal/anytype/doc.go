// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anytype provides the HTTP client for the object/space API.
//
// The client issues CRUD and search requests against an Anytype-style
// REST API and normalizes responses into the canonical Object shape:
// the wire format's typed property array is flattened into a plain map,
// and body content is scanned for object references to populate child
// and link ID sets.
//
// All requests carry the Anytype-Version header and, when a key is
// configured, a bearer-token Authorization header. The client holds no
// state beyond configuration; objects it returns are transient,
// non-authoritative copies.
package anytype
