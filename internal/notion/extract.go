// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package notion

import (
	"time"
)

// ExtractRichText returns the content of the first span of a rich_text
// property, or "" for a missing, empty or differently-typed property.
func ExtractRichText(p Property) string {
	rt, ok := p.(*RichText)
	if !ok || rt == nil || len(rt.Spans) == 0 {
		return ""
	}
	return rt.Spans[0].Content
}

// ExtractTitle returns the content of the first title span. ok is false when
// the property is missing or has no spans, which is distinct from a title
// whose first span is empty.
func ExtractTitle(p Property) (string, bool) {
	t, ok := p.(*Title)
	if !ok || t == nil || len(t.Spans) == 0 {
		return "", false
	}
	return t.Spans[0].Content, true
}

// ExtractURL returns the value of a url property or "".
func ExtractURL(p Property) string {
	if u, ok := p.(*URL); ok && u != nil {
		return u.Value
	}
	return ""
}

// ExtractFileURLs returns the non-empty file URLs of a files property in order.
func ExtractFileURLs(p Property) []string {
	f, ok := p.(*Files)
	if !ok || f == nil {
		return nil
	}
	out := make([]string, 0, len(f.Files))
	for _, file := range f.Files {
		if file.URL != "" {
			out = append(out, file.URL)
		}
	}
	return out
}

// ExtractRelationIDs returns the related page IDs in order.
func ExtractRelationIDs(p Property) []string {
	if r, ok := p.(*Relation); ok && r != nil {
		return r.IDs
	}
	return nil
}

// ExtractCheckbox returns the checkbox state, false when absent.
func ExtractCheckbox(p Property) bool {
	if c, ok := p.(*Checkbox); ok && c != nil {
		return c.Checked
	}
	return false
}

// ExtractNumber returns the value of a number property. ok is false when the
// property is absent, differently typed, or has no value.
func ExtractNumber(p Property) (float64, bool) {
	n, ok := p.(*Number)
	if !ok || n == nil || n.Value == nil {
		return 0, false
	}
	return *n.Value, true
}

// ExtractDateStart returns the start of a date property. ok is false when the
// property is absent or has no start.
func ExtractDateStart(p Property) (string, bool) {
	d, ok := p.(*Date)
	if !ok || d == nil || d.Start == "" {
		return "", false
	}
	return d.Start, true
}

// ExtractOptionName returns the option name of a status or select property.
// ok is false for any other kind or an unset option.
func ExtractOptionName(p Property) (string, bool) {
	switch v := p.(type) {
	case *Status:
		if v != nil && v.Name != "" {
			return v.Name, true
		}
	case *Select:
		if v != nil && v.Name != "" {
			return v.Name, true
		}
	}
	return "", false
}

// IsRelationProperty reports whether p is a relation.
func IsRelationProperty(p Property) bool { _, ok := p.(*Relation); return ok }

// IsRichTextProperty reports whether p is rich text.
func IsRichTextProperty(p Property) bool { _, ok := p.(*RichText); return ok }

// IsCheckboxProperty reports whether p is a checkbox.
func IsCheckboxProperty(p Property) bool { _, ok := p.(*Checkbox); return ok }

// IsNumberProperty reports whether p is a number.
func IsNumberProperty(p Property) bool { _, ok := p.(*Number); return ok }

// IsDateProperty reports whether p is a date.
func IsDateProperty(p Property) bool { _, ok := p.(*Date); return ok }

// IsTitleProperty reports whether p is a title.
func IsTitleProperty(p Property) bool { _, ok := p.(*Title); return ok }

// IsStatusProperty reports whether p is a status.
func IsStatusProperty(p Property) bool { _, ok := p.(*Status); return ok }

// IsSelectProperty reports whether p is a select.
func IsSelectProperty(p Property) bool { _, ok := p.(*Select); return ok }

// timestampLayouts are the date and date-time shapes Notion emits, most
// specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp converts a Notion date or date-time string to epoch
// milliseconds. Values without a zone are read as UTC. ok is false for
// malformed input.
func ParseTimestamp(s string) (int64, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
