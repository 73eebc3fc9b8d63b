// Copyright (c) 2025 Corvid Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package execute performs the side-effecting work a validated command
// implies against the object API and normalizes the outcome.
//
// Preconditions run in a fixed order before any API call: endpoint
// configured, then a reachability probe. Mutating calls are never
// retried here; retries happen pre-execution in the translation layer
// so a flaky network cannot double-apply a create or delete. There is
// no rollback: a partial failure leaves remote state exactly as the
// API left it.
//
// Execute never returns an error or panics to its caller; every
// failure, including a recovered panic, becomes an Outcome with
// Success false.
package execute
