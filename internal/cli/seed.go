// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"

	"littlehands/internal/cms"
	"littlehands/internal/content"
	"littlehands/internal/fallback"
	"littlehands/internal/models"
)

// Entry ids of the singleton content types.
const (
	idTestimonialsSection = "testimonials-section"
	idAbout               = "about"
	idHero                = "hero"
	idHeader              = "site-header"
	idFooter              = "site-footer"
	idContactPage         = "contact-page"
)

type seedEntry struct {
	ContentType string
	ID          string
	Fields      map[string]any
}

// seed writes every corpus entry and returns how many were written.
func seed(ctx context.Context, w entryWriter, c fallback.Corpus) (int, error) {
	entries := seedEntries(c)
	for i, e := range entries {
		if err := w.UpsertEntry(ctx, e.ContentType, e.ID, e.Fields); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}

// seedEntries converts the corpus into CMS entries. Link targets precede
// the entries that reference them.
func seedEntries(c fallback.Corpus) []seedEntry {
	var out []seedEntry
	add := func(ct, id string, fields map[string]any) {
		out = append(out, seedEntry{ContentType: ct, ID: id, Fields: fields})
	}

	for _, cat := range c.Categories {
		add(content.TypeCategory, cat.ID, map[string]any{
			"name":        cat.Name,
			"slug":        cat.Slug,
			"description": cat.Description,
		})
	}

	authors := make(map[string]bool)
	for _, a := range c.Articles {
		if a.Author.ID == "" || authors[a.Author.ID] {
			continue
		}
		authors[a.Author.ID] = true
		add(content.TypeAuthor, a.Author.ID, map[string]any{"name": a.Author.Name})
	}

	for _, a := range c.Articles {
		fields := map[string]any{
			"title":         a.Title,
			"slug":          a.Slug,
			"excerpt":       a.Excerpt,
			"content":       a.Content,
			"publishedDate": a.PublishedDate,
			"readingTime":   a.ReadingTime,
			"tags":          a.Tags,
			"featured":      a.Featured,
		}
		if a.Author.ID != "" {
			fields["author"] = entryLink(a.Author.ID)
		}
		if a.Category.ID != "" && a.Category.ID != models.UncategorizedSlug {
			fields["category"] = entryLink(a.Category.ID)
		}
		add(content.TypeArticle, a.ID, fields)
	}

	links := make([]cms.Link, 0, len(c.Testimonials))
	for _, t := range c.Testimonials {
		add(content.TypeTestimonial, t.ID, map[string]any{
			"name":  t.Name,
			"role":  t.Role,
			"quote": t.Quote,
		})
		links = append(links, entryLink(t.ID))
	}
	add(content.TypeTestimonialsSection, idTestimonialsSection, map[string]any{
		"title":        c.TestimonialsSection.Title,
		"subtitle":     c.TestimonialsSection.Subtitle,
		"testimonials": links,
	})

	add(content.TypeAbout, idAbout, map[string]any{
		"title":       c.About.Title,
		"subtitle":    c.About.Subtitle,
		"description": c.About.Description,
		"mission":     c.About.Mission,
		"imageAlt":    c.About.ImageAlt,
	})

	for _, m := range c.Team {
		add(content.TypeTeamMember, m.ID, map[string]any{
			"name":  m.Name,
			"role":  m.Role,
			"bio":   m.Bio,
			"order": m.Order,
		})
	}

	h := c.Hero
	add(content.TypeHero, idHero, map[string]any{
		"title":                    h.Title,
		"subtitle":                 h.Subtitle,
		"imageAlt":                 h.ImageAlt,
		"primaryButtonText":        h.PrimaryButton.Text,
		"primaryButtonLink":        h.PrimaryButton.Link,
		"primaryButtonColor":       h.PrimaryButton.Color,
		"primaryButtonTextColor":   h.PrimaryButton.TextColor,
		"secondaryButtonText":      h.SecondaryButton.Text,
		"secondaryButtonLink":      h.SecondaryButton.Link,
		"secondaryButtonColor":     h.SecondaryButton.Color,
		"secondaryButtonTextColor": h.SecondaryButton.TextColor,
	})

	for _, s := range c.Stats {
		add(content.TypeStat, s.ID, map[string]any{
			"label":       s.Label,
			"value":       s.Value,
			"description": s.Description,
			"order":       s.Order,
		})
	}

	for _, fc := range c.FeaturedCollections {
		add(content.TypeFeaturedCollection, fc.ID, map[string]any{
			"title":        fc.Title,
			"description":  fc.Description,
			"displayOrder": fc.DisplayOrder,
			"filterType":   fc.FilterType,
			"filterValue":  fc.FilterValue,
			"maxItems":     fc.MaxItems,
			"active":       fc.Active,
		})
	}

	header := content.DefaultHeader()
	add(content.TypeHeader, idHeader, map[string]any{
		"title":             header.Title,
		"navigationItems":   header.NavigationItems,
		"searchPlaceholder": header.SearchPlaceholder,
	})

	footer := content.DefaultFooter()
	add(content.TypeFooter, idFooter, map[string]any{
		"title":         footer.Title,
		"description":   footer.Description,
		"socialLinks":   footer.SocialLinks,
		"quickLinks":    footer.QuickLinks,
		"contactInfo":   footer.ContactInfo,
		"copyrightText": footer.CopyrightText,
		"policies":      footer.Policies,
	})

	p := c.ContactPage
	add(content.TypeContactPage, idContactPage, map[string]any{
		"title":          p.Title,
		"subtitle":       p.Subtitle,
		"officeLocation": p.Office.Location,
		"officePhone":    p.Office.Phone,
		"officeEmail":    p.Office.Email,
		"officeHours":    p.Office.Hours,
		"socialLinks":    p.SocialLinks,
		"mapEmbedUrl":    p.MapEmbedURL,
	})

	return out
}

func entryLink(id string) cms.Link {
	return cms.Link{Sys: cms.Sys{Type: cms.TypeLink, LinkType: cms.TypeEntry, ID: id}}
}
