// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api exposes the portfolio content over HTTP using the Chi router.

Routes:

	GET  /projects?lang=fr|en
	GET  /education?lang=fr|en
	GET  /jobs?lang=fr|en
	GET  /project-image/{name}?lang=
	POST /project-images-batch?lang=        {"projectNames": [...]}
	POST /cache/clear-data
	POST /cache/clear-data/{type}?lang=
	POST /cache/clear-images
	GET  /health/live
	GET  /health/ready
	GET  /metrics

Success bodies are the raw JSON documents the portfolio front end consumes.
Errors share one envelope:

	{"error": {"code": "UPSTREAM_ERROR", "message": "...", "request_id": "..."}}

Middleware order (outermost first): request id, real IP, panic recovery,
CORS, Prometheus metrics, compression. Content routes are rate limited per
client IP; the /cache routes get a tenth of that budget.

GET responses carry a weak validator in the form of an FNV-1a ETag so the
front end can revalidate with If-None-Match and receive 304 Not Modified.
*/
package api
