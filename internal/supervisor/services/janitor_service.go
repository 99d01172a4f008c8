// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"time"

	"github.com/tomtom215/folio/internal/logging"
)

// ImageCleaner drops expired image cache entries and reports how many went.
type ImageCleaner interface {
	CleanupImages() int
}

// ImageJanitorService sweeps expired entries out of the image cache.
// Reads already ignore expired entries; the sweep only releases memory.
type ImageJanitorService struct {
	cleaner  ImageCleaner
	interval time.Duration
	name     string
}

// NewImageJanitorService creates the janitor. A non-positive interval means 5m.
func NewImageJanitorService(cleaner ImageCleaner, interval time.Duration) *ImageJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ImageJanitorService{
		cleaner:  cleaner,
		interval: interval,
		name:     "image-janitor",
	}
}

// Serve implements suture.Service.
func (j *ImageJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.cleaner.CleanupImages(); n > 0 {
				logging.Debug().Int("removed", n).Msg("Expired image cache entries removed")
			}
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (j *ImageJanitorService) String() string {
	return j.name
}
