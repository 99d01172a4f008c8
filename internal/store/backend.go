// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package store is the persistent record cache. Mapped record sets are stored
// as JSON under "{dataset}_{lang}" keys and survive restarts. Entries never
// expire on their own; they are removed only through explicit invalidation.
//
// Three interchangeable backends implement Backend:
//   - badger: embedded LSM key-value store (default)
//   - duckdb: single-file table cache(key, value)
//   - redis: shared cache for several API instances
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/folio/internal/config"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Backend is a durable byte-oriented key-value store. Implementations must be
// safe for concurrent use. Writes replace any existing value.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key starting with prefix. The prefix is
	// literal: no wildcard characters are interpreted.
	DeletePrefix(ctx context.Context, prefix string) error

	// DeleteAll removes every key owned by the store.
	DeleteAll(ctx context.Context) error

	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error

	Close() error
}

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendDuckDB = "duckdb"
	BackendRedis  = "redis"
)

// Open creates the backend selected by cfg.Backend.
func Open(cfg *config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case BackendBadger, "":
		return OpenBadger(cfg.Path)
	case BackendDuckDB:
		return OpenDuckDB(cfg.DuckDBPath)
	case BackendRedis:
		return OpenRedis(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
