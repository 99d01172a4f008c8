// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package config loads Folio configuration with Koanf v2.
//
// Sources, lowest to highest precedence:
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, config.yaml, /etc/folio/config.yaml)
//  3. Environment variables, after an optional .env file is applied
//
// Only the environment variables listed in envMappings are read, so unrelated
// variables in the process environment never leak into the configuration.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Notion   NotionConfig   `koanf:"notion"`
	Store    StoreConfig    `koanf:"store"`
	Images   ImagesConfig   `koanf:"images"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Warmup   WarmupConfig   `koanf:"warmup"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// NotionConfig configures the upstream content API client.
type NotionConfig struct {
	Token       string `koanf:"token"`
	ProjectsDB  string `koanf:"projects_db"`
	EducationDB string `koanf:"education_db"`
	JobsDB      string `koanf:"jobs_db"`

	BaseURL string `koanf:"base_url"`
	Version string `koanf:"version"`

	// QueryTimeout bounds a whole paginated database query.
	QueryTimeout time.Duration `koanf:"query_timeout"`
	// PageTimeout bounds a single page (relation) fetch.
	PageTimeout time.Duration `koanf:"page_timeout"`

	// RateLimit is the sustained upstream request rate per second.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// RelationConcurrency caps parallel relation page fetches per dataset load.
	RelationConcurrency int `koanf:"relation_concurrency"`
}

// StoreConfig selects and configures the persistent record cache backend.
type StoreConfig struct {
	// Backend is badger, duckdb or redis.
	Backend string `koanf:"backend"`

	// Path is the badger data directory.
	Path string `koanf:"path"`

	// DuckDBPath is the duckdb database file.
	DuckDBPath string `koanf:"duckdb_path"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	RedisPrefix   string `koanf:"redis_prefix"`
}

// ImagesConfig configures the in-memory project image cache.
type ImagesConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	Capacity        int           `koanf:"capacity"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CompressionMinSize is the smallest response body, in bytes, that gets compressed.
	CompressionMinSize int `koanf:"compression_min_size"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// WarmupConfig controls the one-shot cache warmup run at startup.
type WarmupConfig struct {
	Enabled bool          `koanf:"enabled"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log events.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
