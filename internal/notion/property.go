// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package notion is a small client for the Notion REST API limited to what
// the portfolio needs: paginated database queries and single page fetches.
//
// Page properties decode into the closed sum type Property. Consumers read
// them with the Extract* helpers, which never panic and return zero values for
// absent or differently-typed properties.
package notion

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Property is one typed page property. The concrete type is one of
// *RichText, *Title, *URL, *Files, *Relation, *Checkbox, *Number, *Date,
// *Status, *Select or *Unknown.
type Property interface {
	isProperty()
}

// Span is one rich text or title fragment.
type Span struct {
	Content string
}

// File is one entry of a files property.
type File struct {
	Name string
	URL  string
}

// RichText is a rich_text property.
type RichText struct{ Spans []Span }

// Title is the title property of a page.
type Title struct{ Spans []Span }

// URL is a url property. Value is "" when unset.
type URL struct{ Value string }

// Files is a files property. Both uploaded and external files are included.
type Files struct{ Files []File }

// Relation is a relation property listing related page IDs.
type Relation struct{ IDs []string }

// Checkbox is a checkbox property.
type Checkbox struct{ Checked bool }

// Number is a number property. Value is nil when unset.
type Number struct{ Value *float64 }

// Date is a date property. Start is "" when unset.
type Date struct {
	Start string
	End   string
}

// Status is a status property. Name is "" when unset.
type Status struct{ Name string }

// Select is a select property. Name is "" when unset.
type Select struct{ Name string }

// Unknown carries any property kind the portfolio does not read.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (*RichText) isProperty() {}
func (*Title) isProperty()    {}
func (*URL) isProperty()      {}
func (*Files) isProperty()    {}
func (*Relation) isProperty() {}
func (*Checkbox) isProperty() {}
func (*Number) isProperty()   {}
func (*Date) isProperty()     {}
func (*Status) isProperty()   {}
func (*Select) isProperty()   {}
func (*Unknown) isProperty()  {}

// Properties maps localized property names to values.
type Properties map[string]Property

// Page is a Notion page (a database row).
type Page struct {
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
}

// Wire shapes.
type (
	wireSpan struct {
		PlainText string `json:"plain_text"`
		Text      *struct {
			Content string `json:"content"`
		} `json:"text"`
	}

	wireFile struct {
		Name string `json:"name"`
		File *struct {
			URL string `json:"url"`
		} `json:"file"`
		External *struct {
			URL string `json:"url"`
		} `json:"external"`
	}

	wireOption struct {
		Name string `json:"name"`
	}

	wireProperty struct {
		Type     string      `json:"type"`
		RichText []wireSpan  `json:"rich_text"`
		Title    []wireSpan  `json:"title"`
		URL      *string     `json:"url"`
		Files    []wireFile  `json:"files"`
		Checkbox bool        `json:"checkbox"`
		Number   *float64    `json:"number"`
		Status   *wireOption `json:"status"`
		Select   *wireOption `json:"select"`
		Relation []struct {
			ID string `json:"id"`
		} `json:"relation"`
		Date *struct {
			Start string  `json:"start"`
			End   *string `json:"end"`
		} `json:"date"`
	}
)

// UnmarshalJSON decodes each property by its "type" discriminator.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode properties: %w", err)
	}

	out := make(Properties, len(raw))
	for name, msg := range raw {
		prop, err := decodeProperty(msg)
		if err != nil {
			return fmt.Errorf("decode property %q: %w", name, err)
		}
		out[name] = prop
	}
	*p = out
	return nil
}

func decodeProperty(msg json.RawMessage) (Property, error) {
	var w wireProperty
	if err := json.Unmarshal(msg, &w); err != nil {
		return nil, err
	}

	switch w.Type {
	case "rich_text":
		return &RichText{Spans: spans(w.RichText)}, nil
	case "title":
		return &Title{Spans: spans(w.Title)}, nil
	case "url":
		p := &URL{}
		if w.URL != nil {
			p.Value = *w.URL
		}
		return p, nil
	case "files":
		files := make([]File, 0, len(w.Files))
		for _, f := range w.Files {
			var u string
			switch {
			case f.File != nil:
				u = f.File.URL
			case f.External != nil:
				u = f.External.URL
			}
			files = append(files, File{Name: f.Name, URL: u})
		}
		return &Files{Files: files}, nil
	case "relation":
		ids := make([]string, 0, len(w.Relation))
		for _, r := range w.Relation {
			ids = append(ids, r.ID)
		}
		return &Relation{IDs: ids}, nil
	case "checkbox":
		return &Checkbox{Checked: w.Checkbox}, nil
	case "number":
		return &Number{Value: w.Number}, nil
	case "date":
		p := &Date{}
		if w.Date != nil {
			p.Start = w.Date.Start
			if w.Date.End != nil {
				p.End = *w.Date.End
			}
		}
		return p, nil
	case "status":
		p := &Status{}
		if w.Status != nil {
			p.Name = w.Status.Name
		}
		return p, nil
	case "select":
		p := &Select{}
		if w.Select != nil {
			p.Name = w.Select.Name
		}
		return p, nil
	default:
		raw := make(json.RawMessage, len(msg))
		copy(raw, msg)
		return &Unknown{Type: w.Type, Raw: raw}, nil
	}
}

func spans(in []wireSpan) []Span {
	out := make([]Span, 0, len(in))
	for _, s := range in {
		content := s.PlainText
		if s.Text != nil {
			content = s.Text.Content
		}
		out = append(out, Span{Content: content})
	}
	return out
}
