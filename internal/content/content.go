// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content turns raw CMS entries into the site's view models.
//
// Transformers are pure functions of an entry and a link resolver: every
// optional field gets a default, linked authors, categories and images are
// resolved through the resolver, and only a structurally broken entry (no
// sys.id) produces an error. Service wires the transformers to a delivery
// client, fetching whatever secondary envelopes the resolver needs.
package content

import (
	"errors"
	"fmt"
	"html"
	"log/slog"

	"littlehands/internal/cms"
	"littlehands/internal/markdown"
	"littlehands/internal/richtext"
)

// Content type ids as provisioned in the CMS.
const (
	TypeArticle             = "article"
	TypeAuthor              = "author"
	TypeCategory            = "category"
	TypeTestimonial         = "testimonial"
	TypeTestimonialsSection = "testimonialsSection"
	TypeAbout               = "about"
	TypeTeamMember          = "teamMember"
	TypeHero                = "hero"
	TypeStat                = "siteStat"
	TypeFeaturedCollection  = "featuredCollection"
	TypeHeader              = "header"
	TypeHeaderSimple        = "headerSimple"
	TypeFooter              = "footer"
	TypeFooterSimple        = "footerSimple"
	TypeContactPage         = "contactPage"
)

// ErrMalformedEntry is returned for entries missing their sys.id.
var ErrMalformedEntry = errors.New("content: malformed entry")

func checkEntry(e *cms.Entry, contentType string) error {
	if e == nil || e.Sys.ID == "" {
		return fmt.Errorf("%w: %s entry without sys.id", ErrMalformedEntry, contentType)
	}
	return nil
}

// richHTML renders a long-text field. Rich Text documents go through the
// rich text renderer with embedded assets resolved by r; plain strings are
// treated as Markdown, which also lets pasted HTML through.
func richHTML(f cms.Fields, name string, r *cms.Resolver) string {
	raw := cms.Value[any](f, name, nil)
	switch v := raw.(type) {
	case map[string]any:
		if !richtext.IsDocument(v) {
			return ""
		}
		return richtext.ToHTML(v, func(id string) (string, string) {
			a := r.Asset(id)
			return cms.AssetURL(a), cms.AssetTitle(a)
		})
	case string:
		if v == "" {
			return ""
		}
		out, err := markdown.ToHTML(v)
		if err != nil {
			slog.Warn("markdown render failed", "field", name, "error", err)
			return "<p>" + html.EscapeString(v) + "</p>"
		}
		return out
	}
	return ""
}

// plainText returns the readable words of a long-text field for reading
// time estimates. Rich Text documents yield their text values; anything
// else falls back to the rendered HTML.
func plainText(f cms.Fields, name, rendered string) string {
	if doc, ok := cms.Value[any](f, name, nil).(map[string]any); ok && richtext.IsDocument(doc) {
		return richtext.PlainText(doc)
	}
	return rendered
}
