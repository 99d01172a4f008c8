// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/notion"
	"github.com/tomtom215/folio/internal/store"
)

const (
	testProjectsDB  = "projects-db"
	testEducationDB = "education-db"
	testJobsDB      = "jobs-db"
)

var errFakeUpstream = errors.New("fake upstream down")

// fakeSource is an in-memory Notion with call counters.
type fakeSource struct {
	mu        sync.Mutex
	databases map[string][]notion.Page
	pages     map[string]notion.Page

	queryErr error
	pageErr  error
	pageWait time.Duration

	queries     atomic.Int32
	pageFetches atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		databases: make(map[string][]notion.Page),
		pages:     make(map[string]notion.Page),
	}
}

func (f *fakeSource) addRow(db string, page notion.Page) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.databases[db] = append(f.databases[db], page)
}

func (f *fakeSource) addPage(page notion.Page) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[page.ID] = page
}

func (f *fakeSource) setRows(db string, pages ...notion.Page) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.databases[db] = pages
}

func (f *fakeSource) setQueryErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryErr = err
}

func (f *fakeSource) QueryDatabase(_ context.Context, databaseID string, filter *notion.Filter) ([]notion.Page, error) {
	f.queries.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var out []notion.Page
	for _, p := range f.databases[databaseID] {
		if filter != nil && filter.Select != nil {
			if name, _ := notion.ExtractOptionName(p.Properties[filter.Property]); name != filter.Select.Equals {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeSource) GetPage(ctx context.Context, pageID string) (*notion.Page, error) {
	f.pageFetches.Add(1)

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxInFlight.Load()
		if n <= prev || f.maxInFlight.CompareAndSwap(prev, n) {
			break
		}
	}
	if f.pageWait > 0 {
		select {
		case <-time.After(f.pageWait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	p, ok := f.pages[pageID]
	if !ok {
		return nil, &notion.APIError{Operation: "get_page", StatusCode: 404, Body: "not found"}
	}
	return &p, nil
}

// Property builders.

func title(s string) notion.Property {
	return &notion.Title{Spans: []notion.Span{{Content: s}}}
}

func richText(s string) notion.Property {
	return &notion.RichText{Spans: []notion.Span{{Content: s}}}
}

func link(s string) notion.Property { return &notion.URL{Value: s} }

func number(v float64) notion.Property { return &notion.Number{Value: &v} }

func checkbox(v bool) notion.Property { return &notion.Checkbox{Checked: v} }

func files(urls ...string) notion.Property {
	fs := make([]notion.File, len(urls))
	for i, u := range urls {
		fs[i] = notion.File{Name: "file", URL: u}
	}
	return &notion.Files{Files: fs}
}

func relation(ids ...string) notion.Property { return &notion.Relation{IDs: ids} }

func statusProp(name string) notion.Property { return &notion.Status{Name: name} }

func selectProp(name string) notion.Property { return &notion.Select{Name: name} }

func dateProp(start string) notion.Property { return &notion.Date{Start: start} }

func row(id string, lang models.Lang, props notion.Properties) notion.Page {
	props[propLanguage] = selectProp(lang.Label())
	return notion.Page{ID: id, Properties: props}
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	svc     *Service
	source  *fakeSource
	records *store.Cache
	clock   *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}
	records := store.NewCache(store.NewBadgerBackend(db))
	t.Cleanup(func() { records.Close() })

	clock := newFakeClock()
	images := cache.NewLRU[models.ProjectImages]("images", 64, 30*time.Minute,
		cache.WithClock[models.ProjectImages](clock.Now))

	source := newFakeSource()
	cfg := &config.NotionConfig{
		ProjectsDB:          testProjectsDB,
		EducationDB:         testEducationDB,
		JobsDB:              testJobsDB,
		RelationConcurrency: 2,
	}

	return &testEnv{
		svc:     NewService(source, records, images, cfg),
		source:  source,
		records: records,
		clock:   clock,
	}
}
