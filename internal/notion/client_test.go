// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package notion

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/config"
)

func testConfig(baseURL string) *config.NotionConfig {
	return &config.NotionConfig{
		Token:        "secret_test",
		BaseURL:      baseURL,
		Version:      "2022-06-28",
		QueryTimeout: 2 * time.Second,
		PageTimeout:  time.Second,
		RateLimit:    1000,
		RateBurst:    100,
	}
}

func titlePage(id, title string) string {
	return `{"id":"` + id + `","properties":{"Nom":{"type":"title","title":[{"plain_text":"` + title + `","text":{"content":"` + title + `"}}]}}}`
}

func TestQueryDatabase_PaginatesAndFilters(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost || r.URL.Path != "/databases/db-1/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret_test" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q", got)
		}

		var body queryRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if body.Filter == nil || body.Filter.Property != "Language" || body.Filter.Select.Equals != "English" {
			t.Errorf("filter = %+v", body.Filter)
		}
		if body.PageSize != queryPageSize {
			t.Errorf("page_size = %d", body.PageSize)
		}

		w.Header().Set("Content-Type", "application/json")
		switch body.StartCursor {
		case "":
			io.WriteString(w, `{"results":[`+titlePage("p1", "One")+`],"has_more":true,"next_cursor":"c2"}`)
		case "c2":
			io.WriteString(w, `{"results":[`+titlePage("p2", "Two")+`],"has_more":false,"next_cursor":null}`)
		default:
			t.Errorf("unexpected cursor %q", body.StartCursor)
		}
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	pages, err := c.QueryDatabase(context.Background(), "db-1", SelectEquals("Language", "English"))
	if err != nil {
		t.Fatalf("QueryDatabase() error = %v", err)
	}
	if len(pages) != 2 || pages[0].ID != "p1" || pages[1].ID != "p2" {
		t.Fatalf("pages = %+v", pages)
	}
	if title, _ := ExtractTitle(pages[1].Properties["Nom"]); title != "Two" {
		t.Errorf("second title = %q", title)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestGetPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/pages/tech-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, titlePage("tech-1", "Go"))
	}))
	defer srv.Close()

	page, err := NewClient(testConfig(srv.URL)).GetPage(context.Background(), "tech-1")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if title, ok := ExtractTitle(page.Properties["Nom"]); !ok || title != "Go" {
		t.Errorf("title = %q, %v", title, ok)
	}
}

func TestClient_Non2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"object":"error","code":"unauthorized"}`)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL)).QueryDatabase(context.Background(), "db", nil)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Operation != "query" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if !strings.Contains(apiErr.Body, "unauthorized") {
		t.Errorf("APIError.Body = %q", apiErr.Body)
	}
	if apiErr.ErrorType() != "status_401" {
		t.Errorf("ErrorType() = %q", apiErr.ErrorType())
	}
}

func TestClient_PageTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := testConfig(srv.URL)
	cfg.PageTimeout = 50 * time.Millisecond

	_, err := NewClient(cfg).GetPage(context.Background(), "slow")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"results": [`)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL)).QueryDatabase(context.Background(), "db", nil)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
}

func TestReadBodyForError(t *testing.T) {
	small := readBodyForError(strings.NewReader("oops"))
	if string(small) != "oops" {
		t.Errorf("readBodyForError = %q", small)
	}

	big := readBodyForError(strings.NewReader(strings.Repeat("x", maxErrorBodySize+100)))
	if !strings.HasSuffix(string(big), "(truncated)") {
		t.Error("expected truncation marker")
	}
	if len(big) > maxErrorBodySize+32 {
		t.Errorf("body length = %d, want about %d", len(big), maxErrorBodySize)
	}
}
