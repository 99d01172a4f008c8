// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import "fmt"

// Lang is a content language code.
type Lang string

const (
	LangFR Lang = "fr"
	LangEN Lang = "en"
)

// DefaultLang is used when a request does not name a language.
const DefaultLang = LangFR

// Langs lists every supported language.
var Langs = []Lang{LangFR, LangEN}

// ParseLang validates s. The empty string yields DefaultLang.
func ParseLang(s string) (Lang, error) {
	switch Lang(s) {
	case "":
		return DefaultLang, nil
	case LangFR, LangEN:
		return Lang(s), nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// Label returns the upstream Language select value for l.
func (l Lang) Label() string {
	if l == LangEN {
		return "English"
	}
	return "French"
}

// Dataset names a cached record set.
type Dataset string

const (
	DatasetProjects  Dataset = "projects"
	DatasetEducation Dataset = "education"
	DatasetJobs      Dataset = "jobs"
)

// Datasets lists every record set.
var Datasets = []Dataset{DatasetProjects, DatasetEducation, DatasetJobs}

// CacheKey returns the record cache key "{dataset}_{lang}".
func (d Dataset) CacheKey(lang Lang) string {
	return string(d) + "_" + string(lang)
}

// ImageCacheKey returns the image cache key "images_{name}_{lang}".
func ImageCacheKey(name string, lang Lang) string {
	return "images_" + name + "_" + string(lang)
}
