// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
)

func TestETagRevalidation(t *testing.T) {
	srv := newTestServer(t, newStubPortfolio(), nil)

	first := do(t, srv, http.MethodGet, "/projects", "")
	etag := first.Header().Get("ETag")
	if !strings.HasPrefix(etag, `"`) || !strings.HasSuffix(etag, `"`) {
		t.Fatalf("ETag = %q, want a quoted value", etag)
	}
	if cc := first.Header().Get("Cache-Control"); cc != "public, max-age=60" {
		t.Errorf("Cache-Control = %q", cc)
	}

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 carried a body of %d bytes", rec.Body.Len())
	}
}

func TestETagChangesWithContent(t *testing.T) {
	stub := newStubPortfolio()
	srv := newTestServer(t, stub, nil)

	before := do(t, srv, http.MethodGet, "/projects", "").Header().Get("ETag")
	stub.projects = append(stub.projects, models.Project{ID: "Other", Name: "Other"})
	after := do(t, srv, http.MethodGet, "/projects", "").Header().Get("ETag")

	if before == after {
		t.Error("ETag unchanged after the body changed")
	}
}

func TestEtagMatches(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`"x"`, false},
		{"*", true},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv := newTestServer(t, newStubPortfolio(), nil)

	assertError(t, do(t, srv, http.MethodGet, "/nope", ""), http.StatusNotFound, ErrCodeNotFound)
	assertError(t, do(t, srv, http.MethodDelete, "/projects", ""), http.StatusMethodNotAllowed, ErrCodeMethod)
	assertError(t, do(t, srv, http.MethodGet, "/cache/clear-data", ""), http.StatusMethodNotAllowed, ErrCodeMethod)
}

func TestHealth(t *testing.T) {
	stub := newStubPortfolio()
	srv := newTestServer(t, stub, nil)

	live := do(t, srv, http.MethodGet, "/health/live", "")
	if live.Code != http.StatusOK {
		t.Errorf("live status = %d", live.Code)
	}
	if cc := live.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("live Cache-Control = %q", cc)
	}

	if rec := do(t, srv, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("ready status = %d", rec.Code)
	}

	stub.readyErr = errors.New("badger closed")
	rec := do(t, srv, http.MethodGet, "/health/ready", "")
	detail := assertError(t, rec, http.StatusServiceUnavailable, ErrCodeNotReady)
	if strings.Contains(detail.Message, "badger") {
		t.Error("store error leaked to the client")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, newStubPortfolio(), nil)
	do(t, srv, http.MethodGet, "/jobs", "")

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "folio_api_requests_total") {
		t.Error("exposition lacks folio_api_requests_total")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t, newStubPortfolio(), nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "trace-123" {
		t.Errorf("header = %q", got)
	}
	detail := assertError(t, rec, http.StatusNotFound, ErrCodeNotFound)
	if detail.RequestID != "trace-123" {
		t.Errorf("request_id = %q", detail.RequestID)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, newStubPortfolio(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/project-images-batch", nil)
	req.Header.Set("Origin", "https://portfolio.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://portfolio.example" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestCompressionOnLargeBodies(t *testing.T) {
	stub := newStubPortfolio()
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("Project %02d", i)
		stub.projects = append(stub.projects, models.Project{
			ID: name, Name: name, Description: strings.Repeat("lorem ipsum ", 10),
			Technologies: []string{}, Partners: []models.PersonSummary{},
		})
	}
	srv := newTestServer(t, stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "br" {
		t.Errorf("Content-Encoding = %q, want br", got)
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitDisabled = false
	cfg.Security.RateLimitReqs = 10
	srv := newTestServer(t, newStubPortfolio(), cfg)

	hits := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/cache/*"))

	// The cache group allows a tenth of the content budget.
	if rec := do(t, srv, http.MethodPost, "/cache/clear-images", ""); rec.Code != http.StatusOK {
		t.Fatalf("first clear status = %d", rec.Code)
	}
	assertError(t, do(t, srv, http.MethodPost, "/cache/clear-images", ""), http.StatusTooManyRequests, ErrCodeRateLimited)

	if got := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/cache/*")) - hits; got != 1 {
		t.Errorf("rate limit hits delta = %v, want 1", got)
	}

	for i := 0; i < 10; i++ {
		if rec := do(t, srv, http.MethodGet, "/projects", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	assertError(t, do(t, srv, http.MethodGet, "/projects", ""), http.StatusTooManyRequests, ErrCodeRateLimited)
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	mc := ChiMiddlewareConfigFromSecurity(nil)
	if mc.RateLimitRequests != 100 || mc.CORSAllowedOrigins[0] != "*" {
		t.Errorf("defaults = %+v", mc)
	}

	cfg := testConfig()
	mc = ChiMiddlewareConfigFromSecurity(&cfg.Security)
	if !mc.RateLimitDisabled || mc.CORSAllowedOrigins[0] != "https://portfolio.example" {
		t.Errorf("from security = %+v", mc)
	}
}
