// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package portfolio maps Notion database rows into portfolio records and
// memoizes the result per dataset and language.
//
// Record sets (projects, education, jobs) are cached in the persistent store
// until explicitly invalidated. Project images follow a separate path through
// a bounded in-memory cache with a short TTL and are never persisted.
package portfolio

import (
	"context"
	"time"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/notion"
	"github.com/tomtom215/folio/internal/store"
)

const defaultRelationConcurrency = 4

// Source is the upstream document API.
type Source interface {
	QueryDatabase(ctx context.Context, databaseID string, filter *notion.Filter) ([]notion.Page, error)
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
}

// Service serves portfolio records.
type Service struct {
	source  Source
	records *store.Cache
	images  *cache.LRU[models.ProjectImages]

	projectsDB  string
	educationDB string
	jobsDB      string

	relationConcurrency int
}

// NewService wires a Service. records holds mapped record sets; images holds
// resolved project images.
func NewService(source Source, records *store.Cache, images *cache.LRU[models.ProjectImages], cfg *config.NotionConfig) *Service {
	concurrency := cfg.RelationConcurrency
	if concurrency <= 0 {
		concurrency = defaultRelationConcurrency
	}
	return &Service{
		source:              source,
		records:             records,
		images:              images,
		projectsDB:          cfg.ProjectsDB,
		educationDB:         cfg.EducationDB,
		jobsDB:              cfg.JobsDB,
		relationConcurrency: concurrency,
	}
}

// languageFilter selects the rows written in lang.
func languageFilter(lang models.Lang) *notion.Filter {
	return notion.SelectEquals(propLanguage, lang.Label())
}

// loadRecords returns the cached set for (dataset, lang), or runs fetch and
// caches its result. A store read error is treated as a miss and a store
// write error only logged: the upstream stays the source of truth. Nothing is
// cached when fetch fails.
func loadRecords[T any](ctx context.Context, s *Service, dataset models.Dataset, lang models.Lang,
	fetch func(context.Context, models.Lang) ([]T, error)) ([]T, error) {
	key := dataset.CacheKey(lang)

	var cached []T
	hit, err := s.records.Get(ctx, key, &cached)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Record cache read failed, refetching")
	}
	if hit {
		if cached == nil {
			cached = []T{}
		}
		return cached, nil
	}

	start := time.Now()
	items, err := fetch(ctx, lang)
	if err != nil {
		return nil, err
	}
	metrics.RecordDatasetLoad(string(dataset), string(lang), len(items), time.Since(start))

	if err := s.records.Set(ctx, key, items); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("key", key).Msg("Record cache write failed")
	}

	logging.Ctx(ctx).Debug().
		Str("dataset", string(dataset)).
		Str("lang", string(lang)).
		Int("records", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded from Notion")

	return items, nil
}

// Warm loads every dataset for every language, stopping at the first error.
func (s *Service) Warm(ctx context.Context) error {
	for _, lang := range models.Langs {
		if _, err := s.Projects(ctx, lang); err != nil {
			return err
		}
		if _, err := s.Education(ctx, lang); err != nil {
			return err
		}
		if _, err := s.Jobs(ctx, lang); err != nil {
			return err
		}
	}
	return nil
}

// Ready reports whether the record store is reachable.
func (s *Service) Ready(ctx context.Context) error {
	return s.records.Ping(ctx)
}
