// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/validation"
)

// maxBatchBodyBytes bounds the project-images-batch request body.
const maxBatchBodyBytes = 64 << 10

// errNamesNotArray is reported when projectNames is missing or not a JSON array.
var errNamesNotArray = errors.New("projectNames must be an array")

// LangRequest carries the lang query parameter shared by the content routes.
type LangRequest struct {
	Lang string `json:"lang" validate:"lang"`
}

// ProjectImageRequest identifies one project by title.
type ProjectImageRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Lang string `json:"lang" validate:"lang"`
}

// ProjectImagesBatchRequest is the body of POST /project-images-batch.
type ProjectImagesBatchRequest struct {
	ProjectNames []string `json:"projectNames" validate:"max=100,dive,required,max=200"`
}

// ClearDataRequest selects the record sets to invalidate. An empty Lang
// clears every language.
type ClearDataRequest struct {
	Type string `json:"type" validate:"required,cachetype"`
	Lang string `json:"lang" validate:"lang"`
}

// validateRequest validates a request struct and converts a failure into the
// VALIDATION_ERROR envelope fields.
func validateRequest(v interface{}) *validation.APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	return verr.ToAPIError()
}

// parseLang validates the lang query parameter; absent means French.
func parseLang(r *http.Request) (models.Lang, *validation.APIError) {
	req := LangRequest{Lang: r.URL.Query().Get("lang")}
	if apiErr := validateRequest(&req); apiErr != nil {
		return "", apiErr
	}
	lang, _ := models.ParseLang(req.Lang)
	return lang, nil
}

// urlParam returns the decoded path parameter key. chi hands back the raw
// segment when the request path carried escapes.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// decodeBatchRequest reads the batch body. The names array is decoded in two
// steps so a non-array value gets its own message.
func decodeBatchRequest(w http.ResponseWriter, r *http.Request) (*ProjectImagesBatchRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBodyBytes))
	if err != nil {
		return nil, err
	}

	var raw struct {
		ProjectNames json.RawMessage `json:"projectNames"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errNamesNotArray
	}

	names := bytes.TrimSpace(raw.ProjectNames)
	if len(names) == 0 || names[0] != '[' {
		return nil, errNamesNotArray
	}

	req := &ProjectImagesBatchRequest{}
	if err := json.Unmarshal(names, &req.ProjectNames); err != nil {
		return nil, errNamesNotArray
	}
	return req, nil
}
