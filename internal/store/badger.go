// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend stores records in an embedded BadgerDB.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a BadgerDB at path.
func OpenBadger(path string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logger is far too chatty at info

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", path, err)
	}
	return &BadgerBackend{db: db}, nil
}

// NewBadgerBackend wraps an already open database. The backend takes
// ownership and closes db on Close.
func NewBadgerBackend(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db}
}

// Name implements Backend.
func (b *BadgerBackend) Name() string { return BackendBadger }

// Get implements Backend.
func (b *BadgerBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Backend.
func (b *BadgerBackend) Set(_ context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (b *BadgerBackend) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

// DeletePrefix implements Backend.
func (b *BadgerBackend) DeletePrefix(_ context.Context, prefix string) error {
	if prefix == "" {
		return b.DeleteAll(context.Background())
	}
	if err := b.db.DropPrefix([]byte(prefix)); err != nil {
		return fmt.Errorf("badger drop prefix %s: %w", prefix, err)
	}
	return nil
}

// DeleteAll implements Backend.
func (b *BadgerBackend) DeleteAll(_ context.Context) error {
	if err := b.db.DropAll(); err != nil {
		return fmt.Errorf("badger drop all: %w", err)
	}
	return nil
}

// Ping implements Backend.
func (b *BadgerBackend) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

// Close implements Backend.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
