// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Command server runs the Folio portfolio content API.

Folio serves the projects, education and jobs of a personal portfolio from
three Notion databases, in French and English. Record sets are cached in a
persistent store; project images are cached in memory only, because Notion
file URLs are signed and expire.

# Startup

 1. Configuration: defaults, then config.yaml, then environment (koanf v2)
 2. Logging: zerolog, JSON by default
 3. Record store: badger (default), duckdb or redis
 4. Notion client: token bucket pacing behind a circuit breaker
 5. Portfolio service with its in-memory image cache
 6. Chi router and HTTP server
 7. Supervisor tree: HTTP server, image janitor, optional warmup

# Configuration

Required:

	NOTION_TOKEN          integration token
	NOTION_DB_PROJECTS    projects database id
	NOTION_DB_EDUCATION   education database id
	NOTION_DB_JOBS        jobs database id

Common:

	PORT                  listen port (default 21000)
	STORE_BACKEND         badger | duckdb | redis
	REDIS_ADDR            redis address when STORE_BACKEND=redis
	CORS_ORIGINS          comma-separated allowed origins
	WARMUP_ENABLED        pre-load every dataset at startup
	LOG_LEVEL             trace | debug | info | warn | error

A .env file in the working directory is loaded before the environment is read.

# Signals

SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains in-flight
requests for up to server.shutdown_timeout, then the record store is closed.

# Example

	export NOTION_TOKEN=secret_xxx
	export NOTION_DB_PROJECTS=... NOTION_DB_EDUCATION=... NOTION_DB_JOBS=...
	./folio
	curl 'http://localhost:21000/projects?lang=en'
*/
package main
