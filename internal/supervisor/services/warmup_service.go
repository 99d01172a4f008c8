// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// Warmer loads every dataset into the record cache.
type Warmer interface {
	Warm(ctx context.Context) error
}

// WarmupService pre-populates the record cache once at startup.
//
// It runs a single attempt and then asks suture not to restart it. A failed
// warmup is logged and the caches fill on demand instead.
type WarmupService struct {
	warmer  Warmer
	timeout time.Duration
	name    string
}

// NewWarmupService creates the warmup. A non-positive timeout means 2m.
func NewWarmupService(warmer Warmer, timeout time.Duration) *WarmupService {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &WarmupService{
		warmer:  warmer,
		timeout: timeout,
		name:    "cache-warmup",
	}
}

// Serve implements suture.Service. It always returns suture.ErrDoNotRestart
// unless ctx was canceled first.
func (w *WarmupService) Serve(ctx context.Context) error {
	warmCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	err := w.warmer.Warm(warmCtx)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		logging.Warn().Err(err).Dur("elapsed", time.Since(start)).
			Msg("Cache warmup failed, records will load on first request")
		return suture.ErrDoNotRestart
	}

	metrics.RecordWarmupSuccess()
	logging.Info().Dur("elapsed", time.Since(start)).Msg("Cache warmup complete")
	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer for suture's logs.
func (w *WarmupService) String() string {
	return w.name
}
