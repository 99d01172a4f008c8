// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import "errors"

var (
	// ErrUnknownStatus is returned when a project carries a status label
	// outside the known set. The whole mapping call fails.
	ErrUnknownStatus = errors.New("unknown project status")

	// ErrImagesUnavailable is returned by ProjectImagesBatch when the
	// upstream query for uncached names fails.
	ErrImagesUnavailable = errors.New("project images unavailable")
)
