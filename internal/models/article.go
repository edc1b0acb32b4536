// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the view models served by the JSON API. Every value
// is built fresh from a CMS response (or the fallback corpus) per request and
// is never mutated afterwards.
package models

const (
	// UnknownAuthorName is used when an article's author link cannot be resolved.
	UnknownAuthorName = "Unknown Author"

	// UncategorizedSlug is the routing key of the sentinel category.
	UncategorizedSlug = "uncategorized"
)

// Author is an inline copy of the article's author entry.
type Author struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// Category groups articles. Slug is the public routing key.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description" yaml:"description"`
}

// Article is a published blog article with its author and category inlined.
type Article struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Slug          string   `json:"slug" yaml:"slug"`
	Excerpt       string   `json:"excerpt" yaml:"excerpt"`
	Content       string   `json:"content" yaml:"content"`
	FeaturedImage string   `json:"featuredImage" yaml:"featuredImage"`
	PublishedDate string   `json:"publishedDate" yaml:"publishedDate"`
	ReadingTime   int      `json:"readingTime" yaml:"readingTime"`
	Tags          []string `json:"tags" yaml:"tags"`
	Featured      bool     `json:"featured" yaml:"featured"`
	Author        Author   `json:"author" yaml:"author"`
	Category      Category `json:"category" yaml:"category"`
}

// UnknownAuthor returns the author used when the linked entry is missing.
func UnknownAuthor() Author {
	return Author{Name: UnknownAuthorName}
}

// Uncategorized returns the sentinel category for articles without one.
func Uncategorized() Category {
	return Category{
		ID:   UncategorizedSlug,
		Name: "Uncategorized",
		Slug: UncategorizedSlug,
	}
}

// Clone returns a copy of the article that shares no slices with a.
func (a Article) Clone() Article {
	if a.Tags != nil {
		tags := make([]string, len(a.Tags))
		copy(tags, a.Tags)
		a.Tags = tags
	}
	return a
}

// HasTag reports whether the article carries tag, ignoring case.
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if equalFold(t, tag) {
			return true
		}
	}
	return false
}
