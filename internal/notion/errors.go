// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package notion

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrUpstream is matched by every failure to obtain a usable response from the
// Notion API: transport errors, timeouts, non-2xx statuses and undecodable
// bodies.
var ErrUpstream = errors.New("notion: upstream request failed")

// APIError is a non-2xx response.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Unwrap makes errors.Is(err, ErrUpstream) hold.
func (e *APIError) Unwrap() error { return ErrUpstream }

// ErrorType is a bounded label for metrics.
func (e *APIError) ErrorType() string { return "status_" + strconv.Itoa(e.StatusCode) }

// maxErrorBodySize limits how much of an error response is kept.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most maxErrorBodySize bytes of r for diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
