// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/folio/config.yaml",
	"/etc/folio/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file path.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns the built-in defaults. File and environment values
// are layered on top.
func defaultConfig() *Config {
	return &Config{
		Notion: NotionConfig{
			BaseURL:             "https://api.notion.com/v1",
			Version:             "2022-06-28",
			QueryTimeout:        20 * time.Second,
			PageTimeout:         10 * time.Second,
			RateLimit:           3,
			RateBurst:           3,
			RelationConcurrency: 4,
		},
		Store: StoreConfig{
			Backend:     "badger",
			Path:        "data/cache",
			DuckDBPath:  "data/cache.duckdb",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "folio:cache:",
		},
		Images: ImagesConfig{
			TTL:             30 * time.Minute,
			Capacity:        256,
			CleanupInterval: 5 * time.Minute,
		},
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               21000,
			Timeout:            30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CompressionMinSize: 1024,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Warmup: WarmupConfig{
			Enabled: false,
			Timeout: 2 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with the precedence ENV > File > Defaults
// and validates the result.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv applies a .env file to the process environment. Variables that
// are already set win. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Notion
	"notion_token":                "notion.token",
	"notion_db_projects":          "notion.projects_db",
	"notion_db_education":         "notion.education_db",
	"notion_db_jobs":              "notion.jobs_db",
	"notion_base_url":             "notion.base_url",
	"notion_version":              "notion.version",
	"notion_query_timeout":        "notion.query_timeout",
	"notion_page_timeout":         "notion.page_timeout",
	"notion_rate_limit":           "notion.rate_limit",
	"notion_rate_burst":           "notion.rate_burst",
	"notion_relation_concurrency": "notion.relation_concurrency",

	// Store
	"store_backend":  "store.backend",
	"store_path":     "store.path",
	"duckdb_path":    "store.duckdb_path",
	"redis_addr":     "store.redis_addr",
	"redis_password": "store.redis_password",
	"redis_db":       "store.redis_db",
	"redis_prefix":   "store.redis_prefix",

	// Image cache
	"image_cache_ttl":              "images.ttl",
	"image_cache_capacity":         "images.capacity",
	"image_cache_cleanup_interval": "images.cleanup_interval",

	// Server
	"port":                 "server.port",
	"http_port":            "server.port",
	"http_host":            "server.host",
	"http_timeout":         "server.timeout",
	"shutdown_timeout":     "server.shutdown_timeout",
	"compression_min_size": "server.compression_min_size",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Warmup
	"warmup_enabled": "warmup.enabled",
	"warmup_timeout": "warmup.timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped.
//
//	NOTION_TOKEN       -> notion.token
//	NOTION_DB_PROJECTS -> notion.projects_db
//	PORT               -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
