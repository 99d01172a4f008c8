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

// Projects returns the projects written in lang, sorted by order.
func (s *Service) Projects(ctx context.Context, lang models.Lang) ([]models.Project, error) {
	items, err := loadRecords(ctx, s, models.DatasetProjects, lang, s.fetchProjects)
	if err != nil {
		return nil, err
	}
	sortProjects(items)
	return items, nil
}

func (s *Service) fetchProjects(ctx context.Context, lang models.Lang) ([]models.Project, error) {
	pages, err := s.source.QueryDatabase(ctx, s.projectsDB, languageFilter(lang))
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}

	projects := make([]models.Project, 0, len(pages))
	for i := range pages {
		p, err := mapProject(pages[i].Properties)
		if err != nil {
			return nil, fmt.Errorf("map project %s: %w", pages[i].ID, err)
		}
		projects = append(projects, p)
	}

	if err := s.resolveProjectRelations(ctx, pages, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// mapProject extracts every scalar field. Relations are resolved separately.
func mapProject(props notion.Properties) (models.Project, error) {
	name, _ := notion.ExtractTitle(props[propName])

	// Only a status-kind Statut is read; an unset option is an unknown label.
	status := models.StatusPaused
	if st, ok := props[propStatus].(*notion.Status); ok && st != nil {
		var err error
		if status, err = ParseStatus(st.Name); err != nil {
			return models.Project{}, err
		}
	}

	projectType := models.ProjectTypePersonal
	if label, ok := notion.ExtractOptionName(props[propProjectType]); ok {
		projectType = ParseProjectType(label)
	}

	return models.Project{
		ID:                   name,
		Name:                 name,
		Description:          notion.ExtractRichText(props[propDescription]),
		LongDescription:      notion.ExtractRichText(props[propLongDescription]),
		WhatILearned:         notion.ExtractRichText(props[propWhatILearned]),
		ProblemsAndSolutions: notion.ExtractRichText(props[propProblemsAndSolutions]),
		Github:               notion.ExtractURL(props[propGithub]),
		Demo:                 notion.ExtractURL(props[propDemo]),
		Displayed:            notion.ExtractCheckbox(props[propDisplayed]),
		Technologies:         []string{},
		Partners:             []models.PersonSummary{},
		Status:               status,
		ProjectType:          projectType,
		Order:                intProperty(props[propOrder]),
		HasImage:             len(notion.ExtractFileURLs(props[propIllustration])) > 0,
		HasScreenshots:       len(notion.ExtractFileURLs(props[propScreenshots])) > 0,
	}, nil
}

// resolveProjectRelations fills partners and technologies, fetching each
// distinct related page once.
func (s *Service) resolveProjectRelations(ctx context.Context, pages []notion.Page, projects []models.Project) error {
	var ids []string
	for i := range pages {
		ids = append(ids, notion.ExtractRelationIDs(pages[i].Properties[propPartners])...)
		ids = append(ids, notion.ExtractRelationIDs(pages[i].Properties[propTechnologies])...)
	}

	related, err := s.fetchRelated(ctx, ids)
	if err != nil {
		return err
	}

	for i := range pages {
		for _, id := range notion.ExtractRelationIDs(pages[i].Properties[propPartners]) {
			projects[i].Partners = append(projects[i].Partners, mapPerson(related[id]))
		}
		for _, id := range notion.ExtractRelationIDs(pages[i].Properties[propTechnologies]) {
			title, _ := notion.ExtractTitle(related[id][propName])
			projects[i].Technologies = append(projects[i].Technologies, title)
		}
	}
	return nil
}

func mapPerson(props notion.Properties) models.PersonSummary {
	name, _ := notion.ExtractTitle(props[propName])
	return models.PersonSummary{
		Username:  notion.ExtractRichText(props[propUsername]),
		Name:      name,
		GithubURL: notion.ExtractURL(props[propGithub]),
	}
}

// intProperty converts a number property to an optional int.
func intProperty(p notion.Property) *int {
	v, ok := notion.ExtractNumber(p)
	if !ok {
		return nil
	}
	n := int(v)
	return &n
}
