// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"net/http"
	"time"
)

// HealthLive handles the liveness probe. It never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "alive",
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles the readiness probe. The service is ready when its
// record store answers a ping; the content source is not probed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
	defer cancel()

	if err := h.portfolio.Ready(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, "Record store unavailable", err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"uptime": time.Since(h.startTime).Seconds(),
	})
}
