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

// Education returns the education history written in lang, sorted by order.
func (s *Service) Education(ctx context.Context, lang models.Lang) ([]models.EducationItem, error) {
	items, err := loadRecords(ctx, s, models.DatasetEducation, lang, s.fetchEducation)
	if err != nil {
		return nil, err
	}
	sortEducation(items)
	return items, nil
}

func (s *Service) fetchEducation(ctx context.Context, lang models.Lang) ([]models.EducationItem, error) {
	pages, err := s.source.QueryDatabase(ctx, s.educationDB, languageFilter(lang))
	if err != nil {
		return nil, fmt.Errorf("query education: %w", err)
	}

	items := make([]models.EducationItem, 0, len(pages))
	for i := range pages {
		items = append(items, mapEducation(pages[i].Properties))
	}
	return items, nil
}

func mapEducation(props notion.Properties) models.EducationItem {
	school, _ := notion.ExtractTitle(props[propSchool])
	return models.EducationItem{
		School:      school,
		Description: notion.ExtractRichText(props[propDescription]),
		Start:       intProperty(props[propStart]),
		End:         intProperty(props[propEnd]),
		Order:       intProperty(props[propOrder]),
	}
}
