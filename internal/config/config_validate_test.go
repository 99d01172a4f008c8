// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Notion.Token = "secret_abc123"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with token", func(*Config) {}, ""},
		{"missing token", func(c *Config) { c.Notion.Token = "" }, "NOTION_TOKEN is required"},
		{"placeholder token", func(c *Config) { c.Notion.Token = "CHANGEME" }, "placeholder"},
		{"bad base url", func(c *Config) { c.Notion.BaseURL = "ftp://api.notion.com" }, "NOTION_BASE_URL"},
		{"zero rate", func(c *Config) { c.Notion.RateLimit = 0 }, "NOTION_RATE_LIMIT"},
		{"concurrency too high", func(c *Config) { c.Notion.RelationConcurrency = 64 }, "NOTION_RELATION_CONCURRENCY"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "STORE_BACKEND"},
		{"redis without addr", func(c *Config) { c.Store.Backend = "redis"; c.Store.RedisAddr = "" }, "REDIS_ADDR"},
		{"duckdb ok", func(c *Config) { c.Store.Backend = "duckdb" }, ""},
		{"zero capacity", func(c *Config) { c.Images.Capacity = 0 }, "IMAGE_CACHE_CAPACITY"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "PORT"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"rate window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasWildcardCORS(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS origins should be a wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://portfolio.example.org"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origin should not be reported as wildcard")
	}
}
