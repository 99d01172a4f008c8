// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/models"
)

// stubPortfolio records the arguments it receives and returns canned values.
type stubPortfolio struct {
	mu sync.Mutex

	projects  []models.Project
	education []models.EducationItem
	jobs      []models.JobItem
	images    map[string]models.ProjectImages
	err       error
	readyErr  error
	cleared   int

	lastLang      models.Lang
	lastNames     []string
	lastClearType string
	lastClearLang string
	clearAllCalls int
}

func newStubPortfolio() *stubPortfolio {
	return &stubPortfolio{
		projects: []models.Project{
			{ID: "Folio", Name: "Folio", Status: models.StatusInProgress, Technologies: []string{"Go"}, Partners: []models.PersonSummary{}},
		},
		education: []models.EducationItem{},
		jobs:      []models.JobItem{},
		images: map[string]models.ProjectImages{
			"Folio":      {ID: "Folio", Image: "https://img/folio.png", Screenshots: []string{"https://img/1.png"}},
			"My Project": {ID: "My Project", Image: "https://img/mine.png", Screenshots: []string{}},
		},
	}
}

func (s *stubPortfolio) Projects(_ context.Context, lang models.Lang) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLang = lang
	return s.projects, s.err
}

func (s *stubPortfolio) Education(_ context.Context, lang models.Lang) ([]models.EducationItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLang = lang
	return s.education, s.err
}

func (s *stubPortfolio) Jobs(_ context.Context, lang models.Lang) ([]models.JobItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLang = lang
	return s.jobs, s.err
}

func (s *stubPortfolio) ProjectImages(_ context.Context, name string, lang models.Lang) (*models.ProjectImages, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLang = lang
	img, ok := s.images[name]
	if !ok {
		return nil, false
	}
	return &img, true
}

func (s *stubPortfolio) ProjectImagesBatch(_ context.Context, names []string, lang models.Lang) ([]models.ProjectImages, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLang = lang
	s.lastNames = names
	if s.err != nil {
		return []models.ProjectImages{}, s.err
	}
	out := []models.ProjectImages{}
	for _, n := range names {
		if img, ok := s.images[n]; ok {
			out = append(out, img)
		}
	}
	return out, nil
}

func (s *stubPortfolio) ClearData(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearAllCalls++
	return s.err
}

func (s *stubPortfolio) ClearDataByType(_ context.Context, dataType, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastClearType = dataType
	s.lastClearLang = lang
	return s.err
}

func (s *stubPortfolio) ClearImages(context.Context) int {
	return s.cleared
}

func (s *stubPortfolio) Ready(context.Context) error {
	return s.readyErr
}

// testConfig disables rate limiting unless a test sets a budget.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{CompressionMinSize: 1024},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://portfolio.example"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

func newTestServer(t *testing.T, p Portfolio, cfg *config.Config) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	return NewRouter(cfg, NewHandler(p)).Setup()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) ErrorDetail {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var body ErrorBody
	decodeBody(t, rec, &body)
	if body.Error.Code != code {
		t.Errorf("code = %q, want %q", body.Error.Code, code)
	}
	return body.Error
}
