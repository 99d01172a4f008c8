// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
)

const duckdbSchema = `CREATE TABLE IF NOT EXISTS cache (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// DuckDBBackend stores records in a single-file DuckDB table.
type DuckDBBackend struct {
	conn *sql.DB
}

// OpenDuckDB opens (or creates) the database file at path and ensures the
// cache table exists.
func OpenDuckDB(path string) (*DuckDBBackend, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create duckdb directory: %w", err)
		}
	}

	// Extensions are not needed and auto-install can hang without network access.
	connStr := path + "?access_mode=read_write&autoinstall_known_extensions=false&autoload_known_extensions=false"
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(duckdbSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}

	return &DuckDBBackend{conn: conn}, nil
}

// Name implements Backend.
func (d *DuckDBBackend) Name() string { return BackendDuckDB }

// Get implements Backend.
func (d *DuckDBBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := d.conn.QueryRowContext(ctx, `SELECT value FROM cache WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("duckdb get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set implements Backend.
func (d *DuckDBBackend) Set(ctx context.Context, key string, value []byte) error {
	if _, err := d.conn.ExecContext(ctx, `INSERT OR REPLACE INTO cache (key, value) VALUES (?, ?)`, key, string(value)); err != nil {
		return fmt.Errorf("duckdb set %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (d *DuckDBBackend) Delete(ctx context.Context, key string) error {
	if _, err := d.conn.ExecContext(ctx, `DELETE FROM cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("duckdb delete %s: %w", key, err)
	}
	return nil
}

// DeletePrefix implements Backend. starts_with keeps the prefix literal, unlike LIKE.
func (d *DuckDBBackend) DeletePrefix(ctx context.Context, prefix string) error {
	if _, err := d.conn.ExecContext(ctx, `DELETE FROM cache WHERE starts_with(key, ?)`, prefix); err != nil {
		return fmt.Errorf("duckdb delete prefix %s: %w", prefix, err)
	}
	return nil
}

// DeleteAll implements Backend.
func (d *DuckDBBackend) DeleteAll(ctx context.Context) error {
	if _, err := d.conn.ExecContext(ctx, `DELETE FROM cache`); err != nil {
		return fmt.Errorf("duckdb delete all: %w", err)
	}
	return nil
}

// Ping implements Backend.
func (d *DuckDBBackend) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

// Close implements Backend.
func (d *DuckDBBackend) Close() error {
	return d.conn.Close()
}
