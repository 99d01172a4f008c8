// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/validation"
)

// Portfolio is the content service behind the routes.
type Portfolio interface {
	Projects(ctx context.Context, lang models.Lang) ([]models.Project, error)
	Education(ctx context.Context, lang models.Lang) ([]models.EducationItem, error)
	Jobs(ctx context.Context, lang models.Lang) ([]models.JobItem, error)
	ProjectImages(ctx context.Context, name string, lang models.Lang) (*models.ProjectImages, bool)
	ProjectImagesBatch(ctx context.Context, names []string, lang models.Lang) ([]models.ProjectImages, error)
	ClearData(ctx context.Context) error
	ClearDataByType(ctx context.Context, dataType, lang string) error
	ClearImages(ctx context.Context) int
	Ready(ctx context.Context) error
}

// Handler serves the HTTP routes.
type Handler struct {
	portfolio    Portfolio
	startTime    time.Time
	readyTimeout time.Duration
}

// NewHandler creates a handler around the portfolio service.
func NewHandler(p Portfolio) *Handler {
	return &Handler{
		portfolio:    p,
		startTime:    time.Now(),
		readyTimeout: 2 * time.Second,
	}
}

func (h *Handler) validationFailed(w http.ResponseWriter, r *http.Request, apiErr *validation.APIError) {
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
}

// Projects handles GET /projects.
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	lang, apiErr := parseLang(r)
	if apiErr != nil {
		h.validationFailed(w, r, apiErr)
		return
	}

	projects, err := h.portfolio.Projects(r.Context(), lang)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, projects)
}

// Education handles GET /education.
func (h *Handler) Education(w http.ResponseWriter, r *http.Request) {
	lang, apiErr := parseLang(r)
	if apiErr != nil {
		h.validationFailed(w, r, apiErr)
		return
	}

	items, err := h.portfolio.Education(r.Context(), lang)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, items)
}

// Jobs handles GET /jobs.
func (h *Handler) Jobs(w http.ResponseWriter, r *http.Request) {
	lang, apiErr := parseLang(r)
	if apiErr != nil {
		h.validationFailed(w, r, apiErr)
		return
	}

	items, err := h.portfolio.Jobs(r.Context(), lang)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, items)
}

// ProjectImage handles GET /project-image/{name}.
func (h *Handler) ProjectImage(w http.ResponseWriter, r *http.Request) {
	req := ProjectImageRequest{
		Name: urlParam(r, "name"),
		Lang: r.URL.Query().Get("lang"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		h.validationFailed(w, r, apiErr)
		return
	}
	lang, _ := models.ParseLang(req.Lang)

	img, ok := h.portfolio.ProjectImages(r.Context(), req.Name, lang)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("No project named %q", req.Name), nil)
		return
	}
	respondJSON(w, r, http.StatusOK, img)
}

// ProjectImagesBatch handles POST /project-images-batch.
func (h *Handler) ProjectImagesBatch(w http.ResponseWriter, r *http.Request) {
	lang, apiErr := parseLang(r)
	if apiErr != nil {
		h.validationFailed(w, r, apiErr)
		return
	}

	req, err := decodeBatchRequest(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeValidation, "Request body too large", nil)
			return
		}
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, errNamesNotArray.Error(), nil)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		h.validationFailed(w, r, apiErr)
		return
	}

	images, err := h.portfolio.ProjectImagesBatch(r.Context(), req.ProjectNames, lang)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, images)
}

// ClearData handles POST /cache/clear-data.
func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolio.ClearData(r.Context()); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, &MessageResponse{Message: "Data cache cleared completely"})
}

// ClearDataByType handles POST /cache/clear-data/{type}.
func (h *Handler) ClearDataByType(w http.ResponseWriter, r *http.Request) {
	req := ClearDataRequest{
		Type: urlParam(r, "type"),
		Lang: r.URL.Query().Get("lang"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		h.validationFailed(w, r, apiErr)
		return
	}

	if err := h.portfolio.ClearDataByType(r.Context(), req.Type, req.Lang); err != nil {
		respondServiceError(w, r, err)
		return
	}

	scope := "all languages"
	if req.Lang != "" {
		scope = req.Lang
	}
	respondJSON(w, r, http.StatusOK, &MessageResponse{
		Message: fmt.Sprintf("Data cache cleared for %s (%s)", req.Type, scope),
	})
}

// ClearImages handles POST /cache/clear-images.
func (h *Handler) ClearImages(w http.ResponseWriter, r *http.Request) {
	n := h.portfolio.ClearImages(r.Context())
	respondJSON(w, r, http.StatusOK, &MessageResponse{
		Message: "Image cache cleared",
		Entries: &n,
	})
}

// NotFound answers unknown routes with the error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethod, "Method not allowed", nil)
}
