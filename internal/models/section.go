// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Brand palette used whenever a hero button color is not set in the CMS.
const (
	BrandPrimary   = "#2A9D8F"
	BrandSecondary = "#FFFFFF"
	BrandText      = "#FFFFFF"
	BrandTextDark  = "#264653"
)

// Testimonial is a parent quote shown on the home page.
type Testimonial struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Quote  string `json:"quote" yaml:"quote"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// TestimonialsSection is the heading block that wraps the testimonials.
type TestimonialsSection struct {
	Title        string        `json:"title" yaml:"title"`
	Subtitle     string        `json:"subtitle" yaml:"subtitle"`
	Testimonials []Testimonial `json:"testimonials" yaml:"testimonials"`
}

// AboutContent is the singleton about page. Description and Mission are HTML.
type AboutContent struct {
	Title       string `json:"title" yaml:"title"`
	Subtitle    string `json:"subtitle" yaml:"subtitle"`
	Description string `json:"description" yaml:"description"`
	Mission     string `json:"mission" yaml:"mission"`
	Image       string `json:"image" yaml:"image"`
	ImageAlt    string `json:"imageAlt" yaml:"imageAlt"`
}

// TeamMember is one therapist bio. Lists are ordered by Order ascending.
type TeamMember struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Bio    string `json:"bio" yaml:"bio"`
	Avatar string `json:"avatar" yaml:"avatar"`
	Order  int    `json:"order" yaml:"order"`
}

// HeroButton is a call-to-action button on the hero section.
type HeroButton struct {
	Text      string `json:"text" yaml:"text"`
	Link      string `json:"link" yaml:"link"`
	Color     string `json:"color" yaml:"color"`
	TextColor string `json:"textColor" yaml:"textColor"`
}

// HeroSection is the singleton home page hero.
type HeroSection struct {
	Title           string     `json:"title" yaml:"title"`
	Subtitle        string     `json:"subtitle" yaml:"subtitle"`
	Image           string     `json:"image" yaml:"image"`
	ImageAlt        string     `json:"imageAlt" yaml:"imageAlt"`
	PrimaryButton   HeroButton `json:"primaryButton" yaml:"primaryButton"`
	SecondaryButton HeroButton `json:"secondaryButton" yaml:"secondaryButton"`
}

// Stat is a single site statistic ("500+ families helped").
type Stat struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
	Order       int    `json:"order" yaml:"order"`
}

// Collection filter types.
const (
	FilterCategory = "category"
	FilterTag      = "tag"
	FilterFeatured = "featured"
)

// FeaturedCollection is a curated view over the article corpus.
type FeaturedCollection struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	DisplayOrder int    `json:"displayOrder" yaml:"displayOrder"`
	FilterType   string `json:"filterType" yaml:"filterType"`
	FilterValue  string `json:"filterValue" yaml:"filterValue"`
	MaxItems     int    `json:"maxItems" yaml:"maxItems"`
	Active       bool   `json:"active" yaml:"active"`
}

// Matches reports whether an article belongs to the collection.
func (c *FeaturedCollection) Matches(a *Article) bool {
	switch c.FilterType {
	case FilterCategory:
		return equalFold(a.Category.Slug, c.FilterValue) || a.Category.ID == c.FilterValue
	case FilterTag:
		return a.HasTag(c.FilterValue)
	case FilterFeatured:
		return a.Featured
	}
	return false
}

// Apply returns the articles selected by the collection, in input order,
// capped at MaxItems (zero means no cap).
func (c *FeaturedCollection) Apply(articles []Article) []Article {
	out := make([]Article, 0)
	for i := range articles {
		if c.MaxItems > 0 && len(out) >= c.MaxItems {
			break
		}
		if c.Matches(&articles[i]) {
			out = append(out, articles[i].Clone())
		}
	}
	return out
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
