// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"context"
	"fmt"

	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/notion"
)

// Jobs returns the job history written in lang, sorted by start date.
func (s *Service) Jobs(ctx context.Context, lang models.Lang) ([]models.JobItem, error) {
	items, err := loadRecords(ctx, s, models.DatasetJobs, lang, s.fetchJobs)
	if err != nil {
		return nil, err
	}
	sortJobs(items)
	return items, nil
}

func (s *Service) fetchJobs(ctx context.Context, lang models.Lang) ([]models.JobItem, error) {
	pages, err := s.source.QueryDatabase(ctx, s.jobsDB, languageFilter(lang))
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	items := make([]models.JobItem, 0, len(pages))
	for i := range pages {
		items = append(items, mapJob(pages[i].Properties))
	}
	return items, nil
}

func mapJob(props notion.Properties) models.JobItem {
	company, _ := notion.ExtractTitle(props[propCompany])
	return models.JobItem{
		Company:     company,
		Title:       notion.ExtractRichText(props[propJobTitle]),
		Description: notion.ExtractRichText(props[propDescription]),
		Start:       timestampProperty(props[propStart]),
		End:         timestampProperty(props[propEnd]),
		Order:       intProperty(props[propOrder]),
		CompanyURL:  notion.ExtractURL(props[propCompanyURL]),
	}
}

// timestampProperty converts a date property to optional epoch milliseconds.
// Unparseable dates are left unset.
func timestampProperty(p notion.Property) *int64 {
	raw, ok := notion.ExtractDateStart(p)
	if !ok {
		return nil
	}
	ms, ok := notion.ParseTimestamp(raw)
	if !ok {
		return nil
	}
	return &ms
}
