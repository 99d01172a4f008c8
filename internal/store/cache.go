// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/metrics"
)

// ClearAll is the cache type that clears every record set.
const ClearAll = "all"

// recordsCacheType labels record cache lookups in metrics.
const recordsCacheType = "records"

// Cache is the JSON layer over a Backend. Every Get decodes a fresh value, so
// callers own what they receive.
type Cache struct {
	backend Backend
}

// NewCache wraps backend.
func NewCache(backend Backend) *Cache {
	return &Cache{backend: backend}
}

// Get decodes the value stored under key into dst. It reports false when the
// key is absent.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	start := time.Now()
	raw, ok, err := c.backend.Get(ctx, key)
	metrics.RecordStoreOperation(c.backend.Name(), "get", time.Since(start), err)
	if err != nil {
		return false, err
	}
	metrics.RecordCacheLookup(recordsCacheType, ok)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached value %s: %w", key, err)
	}
	return true, nil
}

// Set encodes value and stores it under key, replacing any existing entry.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value %s: %w", key, err)
	}
	start := time.Now()
	err = c.backend.Set(ctx, key, raw)
	metrics.RecordStoreOperation(c.backend.Name(), "set", time.Since(start), err)
	return err
}

// Delete removes a single key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := c.backend.Delete(ctx, key)
	metrics.RecordStoreOperation(c.backend.Name(), "delete", time.Since(start), err)
	return err
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	start := time.Now()
	err := c.backend.DeleteAll(ctx)
	metrics.RecordStoreOperation(c.backend.Name(), "delete_all", time.Since(start), err)
	return err
}

// ClearByType removes entries for one record type. "all" clears everything;
// with a language only "{type}_{lang}" is removed, otherwise every key that
// starts with "{type}_".
func (c *Cache) ClearByType(ctx context.Context, dataType, lang string) error {
	if dataType == ClearAll {
		return c.Clear(ctx)
	}
	if lang != "" {
		return c.Delete(ctx, dataType+"_"+lang)
	}

	start := time.Now()
	err := c.backend.DeletePrefix(ctx, dataType+"_")
	metrics.RecordStoreOperation(c.backend.Name(), "delete_prefix", time.Since(start), err)
	return err
}

// Ping checks the backend.
func (c *Cache) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}

// Close closes the backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}
