// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/notion"
)

func seedImageRows(src *fakeSource) {
	src.addRow(testProjectsDB, row("a", models.LangFR, notion.Properties{
		propName:         title("Alpha"),
		propIllustration: files("https://img/alpha.png", "https://img/alpha-2.png"),
		propScreenshots:  files("https://img/a1.png", "https://img/a2.png"),
	}))
	src.addRow(testProjectsDB, row("b", models.LangFR, notion.Properties{
		propName: title("Beta"),
	}))
	src.addRow(testProjectsDB, row("c", models.LangFR, notion.Properties{
		propName:        title("Gamma"),
		propScreenshots: files("https://img/g1.png"),
	}))
}

func TestProjectImages_ResolvesAndCaches(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	got, ok := env.svc.ProjectImages(ctx, "Alpha", models.LangFR)
	if !ok {
		t.Fatal("Alpha not found")
	}
	want := &models.ProjectImages{
		ID:          "Alpha",
		Image:       "https://img/alpha.png",
		Screenshots: []string{"https://img/a1.png", "https://img/a2.png"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("images mismatch (-want +got):\n%s", diff)
	}

	got.Screenshots[0] = "mutated"
	again, ok := env.svc.ProjectImages(ctx, "Alpha", models.LangFR)
	if !ok || again.Screenshots[0] != "https://img/a1.png" {
		t.Errorf("cached entry was mutated: %+v", again)
	}
	if n := env.source.queries.Load(); n != 1 {
		t.Errorf("queries = %d, want 1", n)
	}
}

func TestProjectImages_NoFiles(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)

	got, ok := env.svc.ProjectImages(context.Background(), "Beta", models.LangFR)
	if !ok {
		t.Fatal("Beta not found")
	}
	if got.Image != "" || got.Screenshots == nil || len(got.Screenshots) != 0 {
		t.Errorf("got %+v, want empty image and empty screenshots", got)
	}
}

func TestProjectImages_NotFound(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)

	if got, ok := env.svc.ProjectImages(context.Background(), "alpha", models.LangFR); ok {
		t.Errorf("title match must be exact, got %+v", got)
	}
	if _, ok := env.svc.ProjectImages(context.Background(), "Alpha", models.LangEN); ok {
		t.Error("Alpha has no English row")
	}
}

func TestProjectImages_UpstreamFailureIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.source.setQueryErr(errFakeUpstream)

	if got, ok := env.svc.ProjectImages(context.Background(), "Alpha", models.LangFR); ok || got != nil {
		t.Errorf("got %+v, %v; want nil, false", got, ok)
	}
}

func TestProjectImages_ExpiresAfterThirtyMinutes(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	if _, ok := env.svc.ProjectImages(ctx, "Alpha", models.LangFR); !ok {
		t.Fatal("Alpha not found")
	}

	env.clock.Advance(29 * time.Minute)
	env.svc.ProjectImages(ctx, "Alpha", models.LangFR)
	if n := env.source.queries.Load(); n != 1 {
		t.Errorf("at T+29min queries = %d, want 1 (cache hit)", n)
	}

	env.clock.Advance(2 * time.Minute)
	env.svc.ProjectImages(ctx, "Alpha", models.LangFR)
	if n := env.source.queries.Load(); n != 2 {
		t.Errorf("at T+31min queries = %d, want 2 (refetch)", n)
	}
}

func TestProjectImagesBatch(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	got, err := env.svc.ProjectImagesBatch(ctx, []string{"Gamma", "Missing", "Alpha"}, models.LangFR)
	if err != nil {
		t.Fatalf("ProjectImagesBatch: %v", err)
	}
	var ids []string
	for _, img := range got {
		ids = append(ids, img.ID)
	}
	if diff := cmp.Diff([]string{"Gamma", "Alpha"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if n := env.source.queries.Load(); n != 1 {
		t.Errorf("queries = %d, want exactly 1 for the miss set", n)
	}

	// Everything is cached now: no upstream call.
	if _, err := env.svc.ProjectImagesBatch(ctx, []string{"Alpha", "Gamma"}, models.LangFR); err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if n := env.source.queries.Load(); n != 1 {
		t.Errorf("queries = %d after all-hit batch, want 1", n)
	}

	// Mixed hit and miss: one more query.
	got, err = env.svc.ProjectImagesBatch(ctx, []string{"Alpha", "Beta"}, models.LangFR)
	if err != nil {
		t.Fatalf("third batch: %v", err)
	}
	if len(got) != 2 || got[0].ID != "Alpha" || got[1].ID != "Beta" {
		t.Errorf("got %+v", got)
	}
	if n := env.source.queries.Load(); n != 2 {
		t.Errorf("queries = %d, want 2", n)
	}
}

func TestProjectImagesBatch_NoFilesKeepsEmptyScreenshots(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	// Second call is served from the image cache.
	for i := 0; i < 2; i++ {
		got, err := env.svc.ProjectImagesBatch(ctx, []string{"Beta"}, models.LangFR)
		if err != nil {
			t.Fatalf("ProjectImagesBatch: %v", err)
		}
		if len(got) != 1 || got[0].Screenshots == nil || len(got[0].Screenshots) != 0 {
			t.Errorf("call %d: got %+v, want one entry with empty screenshots", i, got)
		}
	}
}

func TestProjectImagesBatch_SharesCacheWithSingleLookup(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	if _, err := env.svc.ProjectImagesBatch(ctx, []string{"Alpha"}, models.LangFR); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if _, ok := env.svc.ProjectImages(ctx, "Alpha", models.LangFR); !ok {
		t.Fatal("Alpha not found")
	}
	if n := env.source.queries.Load(); n != 1 {
		t.Errorf("queries = %d, want 1", n)
	}
}

func TestProjectImagesBatch_EmptyAndDuplicates(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	got, err := env.svc.ProjectImagesBatch(ctx, nil, models.LangFR)
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("empty batch = %#v, %v", got, err)
	}
	if n := env.source.queries.Load(); n != 0 {
		t.Errorf("queries = %d for an empty batch", n)
	}

	got, err = env.svc.ProjectImagesBatch(ctx, []string{"Alpha", "Alpha"}, models.LangFR)
	if err != nil || len(got) != 1 {
		t.Errorf("duplicate names = %d results, %v", len(got), err)
	}
}

func TestProjectImagesBatch_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.source.setQueryErr(errFakeUpstream)

	got, err := env.svc.ProjectImagesBatch(context.Background(), []string{"Alpha"}, models.LangFR)
	if !errors.Is(err, ErrImagesUnavailable) || !errors.Is(err, errFakeUpstream) {
		t.Errorf("err = %v, want ErrImagesUnavailable wrapping the upstream error", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty list", got)
	}
}

func TestClearImages(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	if _, err := env.svc.ProjectImagesBatch(ctx, []string{"Alpha", "Beta"}, models.LangFR); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if n := env.svc.ClearImages(ctx); n != 2 {
		t.Errorf("ClearImages() = %d, want 2", n)
	}
	env.svc.ProjectImages(ctx, "Alpha", models.LangFR)
	if n := env.source.queries.Load(); n != 2 {
		t.Errorf("queries = %d, cleared entry should refetch", n)
	}
}

func TestCleanupImages(t *testing.T) {
	env := newTestEnv(t)
	seedImageRows(env.source)
	ctx := context.Background()

	env.svc.ProjectImages(ctx, "Alpha", models.LangFR)
	env.clock.Advance(31 * time.Minute)
	if n := env.svc.CleanupImages(); n != 1 {
		t.Errorf("CleanupImages() = %d, want 1", n)
	}
}
