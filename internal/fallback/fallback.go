// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fallback serves statically bundled content for API paths when the
// CMS cannot be reached. The corpus is embedded at build time, parsed once
// and never mutated; every lookup returns copies.
package fallback

import (
	"bytes"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"littlehands/internal/content"
	"littlehands/internal/models"
)

//go:embed corpus.yaml
var corpusYAML []byte

// Corpus is the static content set.
type Corpus struct {
	Articles            []models.Article            `yaml:"articles"`
	Categories          []models.Category           `yaml:"categories"`
	Testimonials        []models.Testimonial        `yaml:"testimonials"`
	TestimonialsSection models.TestimonialsSection  `yaml:"testimonialsSection"`
	About               models.AboutContent         `yaml:"about"`
	Team                []models.TeamMember         `yaml:"team"`
	Hero                models.HeroSection          `yaml:"hero"`
	Stats               []models.Stat               `yaml:"stats"`
	FeaturedCollections []models.FeaturedCollection `yaml:"featuredCollections"`
	ContactPage         models.ContactPageInfo      `yaml:"contactPage"`
}

var (
	articleRelatedPath     = regexp.MustCompile(`^/api/articles/([^/]+)/related$`)
	articlePath            = regexp.MustCompile(`^/api/articles/([^/]+)$`)
	categoryArticlesPath   = regexp.MustCompile(`^/api/categories/([^/]+)/articles$`)
	categoryPath           = regexp.MustCompile(`^/api/categories/([^/]+)$`)
	collectionArticlesPath = regexp.MustCompile(`^/api/featured-collections/([^/]+)/articles$`)
)

// Resolver maps API paths to fallback content.
type Resolver struct {
	corpus Corpus
	exact  map[string]func() any
}

// New parses the embedded corpus.
func New() (*Resolver, error) {
	return Parse(corpusYAML)
}

// Parse builds a resolver over a YAML corpus.
func Parse(src []byte) (*Resolver, error) {
	var c Corpus
	dec := yaml.NewDecoder(bytes.NewReader(src))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse fallback corpus: %w", err)
	}
	for i, a := range c.Articles {
		if a.Slug == "" {
			return nil, fmt.Errorf("fallback corpus: article %d (%s) has no slug", i, a.ID)
		}
		if a.ReadingTime < 1 {
			c.Articles[i].ReadingTime = 1
		}
		if a.Tags == nil {
			c.Articles[i].Tags = []string{}
		}
	}
	c.TestimonialsSection.Testimonials = c.Testimonials

	r := &Resolver{corpus: c}
	r.exact = map[string]func() any{
		"/api/articles":             func() any { return cloneArticles(r.corpus.Articles) },
		"/api/articles/featured":    func() any { return r.featured() },
		"/api/categories":           func() any { return cloneSlice(r.corpus.Categories) },
		"/api/testimonials":         func() any { return cloneSlice(r.corpus.Testimonials) },
		"/api/testimonials-section": func() any { return r.testimonialsSection() },
		"/api/about":                func() any { return ptr(r.corpus.About) },
		"/api/team":                 func() any { return cloneSlice(r.corpus.Team) },
		"/api/hero":                 func() any { return ptr(r.corpus.Hero) },
		"/api/stats":                func() any { return cloneSlice(r.corpus.Stats) },
		"/api/featured-collections": func() any { return content.ActiveCollections(r.corpus.FeaturedCollections) },
		"/api/header":               func() any { return ptr(content.DefaultHeader()) },
		"/api/footer":               func() any { return ptr(content.DefaultFooter()) },
		"/api/contact-page":         func() any { return r.contactPage() },
	}
	return r, nil
}

// Resolve returns the fallback payload for path: a list for collection
// paths, a pointer for item paths, nil for item paths with no match and an
// empty object for paths it does not know. Query strings and trailing
// slashes are ignored.
func (r *Resolver) Resolve(path string) any {
	path = clean(path)

	if fn, ok := r.exact[path]; ok {
		return fn()
	}

	if m := articleRelatedPath.FindStringSubmatch(path); m != nil {
		return r.Related(m[1])
	}
	if m := articlePath.FindStringSubmatch(path); m != nil {
		if a := r.Article(m[1]); a != nil {
			return a
		}
		return nil
	}
	if m := categoryArticlesPath.FindStringSubmatch(path); m != nil {
		return r.CategoryArticles(m[1])
	}
	if m := categoryPath.FindStringSubmatch(path); m != nil {
		if c := r.Category(m[1]); c != nil {
			return c
		}
		return nil
	}
	if m := collectionArticlesPath.FindStringSubmatch(path); m != nil {
		if list := r.CollectionArticles(m[1]); list != nil {
			return list
		}
		return nil
	}
	return map[string]any{}
}

// Corpus returns a copy of the static content set, used to seed a fresh
// CMS space.
func (r *Resolver) Corpus() Corpus {
	c := r.corpus
	c.Articles = cloneArticles(r.corpus.Articles)
	c.Categories = cloneSlice(r.corpus.Categories)
	c.Testimonials = cloneSlice(r.corpus.Testimonials)
	c.Team = cloneSlice(r.corpus.Team)
	c.Stats = cloneSlice(r.corpus.Stats)
	c.FeaturedCollections = cloneSlice(r.corpus.FeaturedCollections)
	c.TestimonialsSection.Testimonials = c.Testimonials
	return c
}

// Article returns a copy of the article with slug, or nil.
func (r *Resolver) Article(slug string) *models.Article {
	for _, a := range r.corpus.Articles {
		if a.Slug == slug {
			c := a.Clone()
			return &c
		}
	}
	return nil
}

// Related returns up to content.MaxRelated articles sharing the category
// of the article with slug, excluding it. Unknown slugs yield an empty list.
func (r *Resolver) Related(slug string) []models.Article {
	a := r.Article(slug)
	if a == nil {
		return []models.Article{}
	}
	return content.Related(*a, r.corpus.Articles)
}

// Category returns a copy of the category with slug, or nil.
func (r *Resolver) Category(slug string) *models.Category {
	for _, c := range r.corpus.Categories {
		if c.Slug == slug {
			v := c
			return &v
		}
	}
	return nil
}

// CategoryArticles returns the articles whose category slug is slug.
func (r *Resolver) CategoryArticles(slug string) []models.Article {
	out := make([]models.Article, 0)
	for _, a := range r.corpus.Articles {
		if a.Category.Slug == slug {
			out = append(out, a.Clone())
		}
	}
	return out
}

// CollectionArticles applies the active collection with id to the corpus,
// or returns nil when there is no such collection.
func (r *Resolver) CollectionArticles(id string) []models.Article {
	for _, c := range content.ActiveCollections(r.corpus.FeaturedCollections) {
		if c.ID == id {
			return c.Apply(r.corpus.Articles)
		}
	}
	return nil
}

func (r *Resolver) featured() []models.Article {
	out := make([]models.Article, 0)
	for _, a := range r.corpus.Articles {
		if a.Featured {
			out = append(out, a.Clone())
		}
	}
	return out
}

func (r *Resolver) testimonialsSection() *models.TestimonialsSection {
	s := r.corpus.TestimonialsSection
	s.Testimonials = cloneSlice(r.corpus.Testimonials)
	return &s
}

func (r *Resolver) contactPage() *models.ContactPageInfo {
	p := r.corpus.ContactPage
	p.SocialLinks = cloneSlice(p.SocialLinks)
	return &p
}

func clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func cloneArticles(in []models.Article) []models.Article {
	out := make([]models.Article, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
