// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"context"
	"fmt"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/notion"
)

// ProjectImages returns the illustration and screenshots of the project titled
// name. The second result is false when no project matches. An upstream
// failure is logged and reported as not found.
func (s *Service) ProjectImages(ctx context.Context, name string, lang models.Lang) (*models.ProjectImages, bool) {
	key := models.ImageCacheKey(name, lang)
	if img, ok := s.images.Get(key); ok {
		out := img.Clone()
		return &out, true
	}

	pages, err := s.source.QueryDatabase(ctx, s.projectsDB, languageFilter(lang))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("project", logging.SanitizeValue(name)).
			Msg("Project image lookup failed, reporting not found")
		return nil, false
	}

	for i := range pages {
		title, ok := notion.ExtractTitle(pages[i].Properties[propName])
		if !ok || title != name {
			continue
		}
		img := imagesFromProperties(name, pages[i].Properties)
		s.images.Set(key, img)
		out := img.Clone()
		return &out, true
	}
	return nil, false
}

// ProjectImagesBatch resolves several projects at once. Cached names are served
// from memory and the rest share a single upstream query. Results follow the
// request order; names without a matching project are omitted.
func (s *Service) ProjectImagesBatch(ctx context.Context, names []string, lang models.Lang) ([]models.ProjectImages, error) {
	names = dedupe(names)
	found := make(map[string]models.ProjectImages, len(names))
	missing := make(map[string]struct{})

	for _, name := range names {
		if img, ok := s.images.Get(models.ImageCacheKey(name, lang)); ok {
			found[name] = img
			continue
		}
		missing[name] = struct{}{}
	}

	if len(missing) > 0 {
		pages, err := s.source.QueryDatabase(ctx, s.projectsDB, languageFilter(lang))
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("missing", len(missing)).Msg("Batch project image lookup failed")
			return []models.ProjectImages{}, fmt.Errorf("%w: %w", ErrImagesUnavailable, err)
		}

		for i := range pages {
			title, ok := notion.ExtractTitle(pages[i].Properties[propName])
			if !ok {
				continue
			}
			if _, want := missing[title]; !want {
				continue
			}
			img := imagesFromProperties(title, pages[i].Properties)
			s.images.Set(models.ImageCacheKey(title, lang), img)
			found[title] = img
			delete(missing, title)
		}
	}

	out := make([]models.ProjectImages, 0, len(names))
	for _, name := range names {
		if img, ok := found[name]; ok {
			out = append(out, img.Clone())
		}
	}
	return out, nil
}

func imagesFromProperties(name string, props notion.Properties) models.ProjectImages {
	img := models.ProjectImages{
		ID:          name,
		Screenshots: notion.ExtractFileURLs(props[propScreenshots]),
	}
	if urls := notion.ExtractFileURLs(props[propIllustration]); len(urls) > 0 {
		img.Image = urls[0]
	}
	if img.Screenshots == nil {
		img.Screenshots = []string{}
	}
	return img
}
