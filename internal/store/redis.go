// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/folio/internal/config"
)

// scanBatch is the COUNT hint for SCAN during prefix deletes.
const scanBatch = 100

// RedisBackend stores records in Redis under a namespace prefix so the
// database can be shared with other applications.
type RedisBackend struct {
	client    *redis.Client
	namespace string
}

// OpenRedis connects to the Redis server described by cfg.
func OpenRedis(cfg *config.StoreConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return NewRedisBackend(client, cfg.RedisPrefix), nil
}

// NewRedisBackend wraps an existing client. Keys are stored as namespace+key.
func NewRedisBackend(client *redis.Client, namespace string) *RedisBackend {
	return &RedisBackend{client: client, namespace: namespace}
}

// Name implements Backend.
func (r *RedisBackend) Name() string { return BackendRedis }

func (r *RedisBackend) key(k string) string { return r.namespace + k }

// Get implements Backend.
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Backend. Records never expire.
func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// DeletePrefix implements Backend.
func (r *RedisBackend) DeletePrefix(ctx context.Context, prefix string) error {
	return r.deleteMatching(ctx, escapeGlob(r.key(prefix))+"*")
}

// DeleteAll implements Backend. Only keys inside the namespace are removed.
func (r *RedisBackend) DeleteAll(ctx context.Context) error {
	return r.deleteMatching(ctx, escapeGlob(r.namespace)+"*")
}

func (r *RedisBackend) deleteMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete batch: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping implements Backend.
func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Backend.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}

// globReplacer escapes the characters SCAN MATCH treats specially.
var globReplacer = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
