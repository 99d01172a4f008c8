// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"context"
	"fmt"

	"github.com/tomtom215/folio/internal/logging"
)

// ClearData drops every cached record set.
func (s *Service) ClearData(ctx context.Context) error {
	if err := s.records.Clear(ctx); err != nil {
		return fmt.Errorf("clear record cache: %w", err)
	}
	logging.Ctx(ctx).Info().Msg("Record cache cleared")
	return nil
}

// ClearDataByType drops the record sets of one dataset. dataType "all" clears
// everything; an empty lang clears every language of the dataset.
func (s *Service) ClearDataByType(ctx context.Context, dataType, lang string) error {
	if err := s.records.ClearByType(ctx, dataType, lang); err != nil {
		return fmt.Errorf("clear %s cache: %w", dataType, err)
	}
	logging.Ctx(ctx).Info().Str("type", dataType).Str("lang", lang).Msg("Record cache cleared by type")
	return nil
}

// ClearImages empties the image cache and returns how many entries it held.
func (s *Service) ClearImages(ctx context.Context) int {
	n := s.images.Len()
	s.images.Clear()
	logging.Ctx(ctx).Info().Int("entries", n).Msg("Image cache cleared")
	return n
}

// CleanupImages removes expired image entries.
func (s *Service) CleanupImages() int {
	return s.images.CleanupExpired()
}
