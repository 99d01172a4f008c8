// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package models defines the typed portfolio records served over HTTP and
// persisted in the record cache. JSON field names are the wire contract with
// the portfolio front end and must not change.
package models

import "slices"

// Status is the lifecycle state of a project.
type Status string

const (
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
	StatusPaused     Status = "paused"
	StatusCancelled  Status = "cancelled"
	StatusWaitingMaj Status = "waiting_maj"
)

// ProjectType distinguishes personal projects from school assignments.
type ProjectType string

const (
	ProjectTypePersonal ProjectType = "personal"
	ProjectTypeSchool   ProjectType = "school"
)

// PersonSummary is a collaborator resolved through a project relation.
type PersonSummary struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	GithubURL string `json:"githubUrl"`
}

// Project is one portfolio entry. ID equals Name so that it joins with
// ProjectImages.ID.
type Project struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	LongDescription      string          `json:"longDescription"`
	WhatILearned         string          `json:"whatILearned"`
	ProblemsAndSolutions string          `json:"problemsAndSolutions"`
	Github               string          `json:"github"`
	Demo                 string          `json:"demo"`
	Displayed            bool            `json:"displayed"`
	Technologies         []string        `json:"technologies"`
	Partners             []PersonSummary `json:"partners"`
	Status               Status          `json:"status"`
	ProjectType          ProjectType     `json:"projectType"`
	Order                *int            `json:"order,omitempty"`
	HasImage             bool            `json:"hasImage"`
	HasScreenshots       bool            `json:"hasScreenshots"`
}

// ProjectImages holds the media URLs of a project. Only ever cached in memory
// because upstream file URLs are signed and expire.
type ProjectImages struct {
	ID          string   `json:"id"`
	Image       string   `json:"image"`
	Screenshots []string `json:"screenshots"`
}

// Clone returns a deep copy.
func (p ProjectImages) Clone() ProjectImages {
	out := p
	out.Screenshots = slices.Clone(p.Screenshots)
	return out
}

// EducationItem is one schooling entry. Start and End are calendar years.
type EducationItem struct {
	School      string `json:"school"`
	Description string `json:"description"`
	Start       *int   `json:"start,omitempty"`
	End         *int   `json:"end,omitempty"`
	Order       *int   `json:"order,omitempty"`
}

// JobItem is one employment entry. Start and End are epoch milliseconds.
type JobItem struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       *int64 `json:"start,omitempty"`
	End         *int64 `json:"end,omitempty"`
	Order       *int   `json:"order,omitempty"`
	CompanyURL  string `json:"companyUrl,omitempty"`
}
