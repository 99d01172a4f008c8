// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides the chi-compatible HTTP middleware of the API.

Key Components:

  - RequestID: request and correlation ids for log tracing
  - PrometheusMetrics: request count, latency and in-flight gauge
  - Compression: brotli or gzip for bodies of at least 1 KiB

Order in the router:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression(cfg.Server.CompressionMinSize))

Compression buffers the full body before deciding, which suits the small JSON
documents this API returns. It must not wrap streaming handlers.
*/
package middleware
