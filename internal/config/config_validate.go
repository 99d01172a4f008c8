// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateNotion(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateNotion() error {
	if c.Notion.Token == "" {
		return fmt.Errorf("NOTION_TOKEN is required")
	}
	if containsPlaceholder(c.Notion.Token) {
		return fmt.Errorf("NOTION_TOKEN contains a placeholder value, set a real integration token")
	}
	if err := validateHTTPURL(c.Notion.BaseURL, "NOTION_BASE_URL"); err != nil {
		return err
	}
	if c.Notion.Version == "" {
		return fmt.Errorf("NOTION_VERSION must not be empty")
	}
	if c.Notion.QueryTimeout <= 0 || c.Notion.PageTimeout <= 0 {
		return fmt.Errorf("NOTION_QUERY_TIMEOUT and NOTION_PAGE_TIMEOUT must be positive")
	}
	if c.Notion.RateLimit <= 0 {
		return fmt.Errorf("NOTION_RATE_LIMIT must be positive")
	}
	if c.Notion.RateBurst < 1 {
		return fmt.Errorf("NOTION_RATE_BURST must be at least 1")
	}
	if c.Notion.RelationConcurrency < 1 || c.Notion.RelationConcurrency > 32 {
		return fmt.Errorf("NOTION_RELATION_CONCURRENCY must be between 1 and 32")
	}
	return nil
}

// validStoreBackends lists the supported record cache backends.
var validStoreBackends = map[string]bool{
	"badger": true,
	"duckdb": true,
	"redis":  true,
}

func (c *Config) validateStore() error {
	if !validStoreBackends[c.Store.Backend] {
		return fmt.Errorf("STORE_BACKEND must be one of: badger, duckdb, redis")
	}
	switch c.Store.Backend {
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("STORE_PATH is required for the badger backend")
		}
	case "duckdb":
		if c.Store.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required for the duckdb backend")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
		if c.Store.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must not be negative")
		}
	}
	return nil
}

func (c *Config) validateImages() error {
	if c.Images.TTL <= 0 {
		return fmt.Errorf("IMAGE_CACHE_TTL must be positive")
	}
	if c.Images.Capacity < 1 {
		return fmt.Errorf("IMAGE_CACHE_CAPACITY must be at least 1")
	}
	if c.Images.CleanupInterval < time.Second {
		return fmt.Errorf("IMAGE_CACHE_CLEANUP_INTERVAL must be at least 1s")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.CompressionMinSize < 0 {
		return fmt.Errorf("COMPRESSION_MIN_SIZE must not be negative")
	}
	return nil
}

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * for any)")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks that rawURL is an absolute http(s) URL without a query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}

// placeholderPatterns catch tokens copied verbatim from example files.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_TOKEN",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
