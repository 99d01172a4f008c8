// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/middleware"
)

// Router wires the handlers to their routes.
type Router struct {
	handler         *Handler
	chiMiddleware   *ChiMiddleware
	compressionSize int
}

// NewRouter creates the router for cfg. A nil cfg uses the middleware defaults.
func NewRouter(cfg *config.Config, handler *Handler) *Router {
	var (
		mc      *ChiMiddlewareConfig
		minSize int
	)
	if cfg != nil {
		mc = ChiMiddlewareConfigFromSecurity(&cfg.Security)
		minSize = cfg.Server.CompressionMinSize
	}

	return &Router{
		handler:         handler,
		chiMiddleware:   NewChiMiddleware(mc),
		compressionSize: minSize,
	}
}

// Setup builds the chi handler tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression(router.compressionSize))

	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.MethodNotAllowed)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Content
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/projects", router.handler.Projects)
		r.Get("/education", router.handler.Education)
		r.Get("/jobs", router.handler.Jobs)
		r.Get("/project-image/{name}", router.handler.ProjectImage)
		r.Post("/project-images-batch", router.handler.ProjectImagesBatch)
	})

	// Cache invalidation
	r.Route("/cache", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCache())

		r.Post("/clear-data", router.handler.ClearData)
		r.Post("/clear-data/{type}", router.handler.ClearDataByType)
		r.Post("/clear-images", router.handler.ClearImages)
	})

	return r
}
