// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package services provides suture.Service wrappers for the server's
long-running components.

  - HTTPServerService: ListenAndServe with graceful Shutdown
  - ImageJanitorService: periodic sweep of expired image cache entries
  - WarmupService: one-shot record cache warmup, never restarted

Every wrapper depends on a narrow interface rather than a concrete type, so
the portfolio service satisfies ImageCleaner and Warmer directly and tests
substitute small fakes.
*/
package services
