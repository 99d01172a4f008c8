// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"cmp"
	"slices"

	"github.com/tomtom215/folio/internal/models"
)

// Unset sort keys count as 0. Sorts are stable so ties keep fetch order.

func orderKey(order *int) int {
	if order == nil {
		return 0
	}
	return *order
}

func startKey(start *int64) int64 {
	if start == nil {
		return 0
	}
	return *start
}

func sortProjects(items []models.Project) {
	slices.SortStableFunc(items, func(a, b models.Project) int {
		return cmp.Compare(orderKey(a.Order), orderKey(b.Order))
	})
}

func sortEducation(items []models.EducationItem) {
	slices.SortStableFunc(items, func(a, b models.EducationItem) int {
		return cmp.Compare(orderKey(a.Order), orderKey(b.Order))
	})
}

func sortJobs(items []models.JobItem) {
	slices.SortStableFunc(items, func(a, b models.JobItem) int {
		return cmp.Compare(startKey(a.Start), startKey(b.Start))
	})
}
