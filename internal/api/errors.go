// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/folio/internal/notion"
	"github.com/tomtom215/folio/internal/portfolio"
)

// Error codes returned in the error envelope.
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeUpstream    = "UPSTREAM_ERROR"
	ErrCodeMapping     = "MAPPING_ERROR"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeNotReady    = "NOT_READY"
	ErrCodeMethod      = "METHOD_NOT_ALLOWED"
)

// classifyError maps a service error onto an HTTP status, code and client message.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, portfolio.ErrUnknownStatus):
		return http.StatusBadGateway, ErrCodeMapping, "Content source returned an unrecognized value"
	case errors.Is(err, portfolio.ErrImagesUnavailable), errors.Is(err, notion.ErrUpstream):
		return http.StatusBadGateway, ErrCodeUpstream, "Content source is unavailable"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "Internal server error"
	}
}

// respondServiceError writes the envelope for an error returned by the portfolio service.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)
	respondError(w, r, status, code, message, err)
}
