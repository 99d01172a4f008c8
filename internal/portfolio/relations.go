// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/folio/internal/notion"
)

// fetchRelated fetches the distinct pages among ids with at most
// relationConcurrency requests in flight. The first failure cancels the rest.
func (s *Service) fetchRelated(ctx context.Context, ids []string) (map[string]notion.Properties, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return map[string]notion.Properties{}, nil
	}

	results := make([]notion.Properties, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.relationConcurrency)
	for i, id := range unique {
		g.Go(func() error {
			page, err := s.source.GetPage(gctx, id)
			if err != nil {
				return fmt.Errorf("fetch related page %s: %w", id, err)
			}
			results[i] = page.Properties
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]notion.Properties, len(unique))
	for i, id := range unique {
		out[id] = results[i]
	}
	return out, nil
}

// dedupe keeps the first occurrence of each id.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
