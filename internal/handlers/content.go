// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"littlehands/internal/models"
)

// Articles lists every article.
func (a *API) Articles() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.Article, error) {
		return a.content.Articles(r.Context())
	})
}

// FeaturedArticles lists the featured articles.
func (a *API) FeaturedArticles() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.Article, error) {
		return a.content.FeaturedArticles(r.Context())
	})
}

// Article returns the article for {slug}, or 404.
func (a *API) Article() http.HandlerFunc {
	return item(a, func(r *http.Request) (*models.Article, error) {
		return a.content.ArticleBySlug(r.Context(), chi.URLParam(r, "slug"))
	})
}

// RelatedArticles lists up to three articles from the same category as {slug}.
func (a *API) RelatedArticles() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.Article, error) {
		return a.content.RelatedArticles(r.Context(), chi.URLParam(r, "slug"))
	})
}

// Categories lists every category.
func (a *API) Categories() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.Category, error) {
		return a.content.Categories(r.Context())
	})
}

// Category returns the category for {slug}, or 404.
func (a *API) Category() http.HandlerFunc {
	return item(a, func(r *http.Request) (*models.Category, error) {
		return a.content.CategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	})
}

// CategoryArticles lists the articles in category {slug}.
func (a *API) CategoryArticles() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.Article, error) {
		return a.content.ArticlesByCategory(r.Context(), chi.URLParam(r, "slug"))
	})
}

func (a *API) Testimonials() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.Testimonial, error) {
		return a.content.Testimonials(r.Context())
	})
}

func (a *API) TestimonialsSection() http.HandlerFunc {
	return singleton(a, func(r *http.Request) (*models.TestimonialsSection, error) {
		return a.content.TestimonialsSection(r.Context())
	})
}

func (a *API) About() http.HandlerFunc {
	return singleton(a, func(r *http.Request) (*models.AboutContent, error) {
		return a.content.About(r.Context())
	})
}

func (a *API) Team() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.TeamMember, error) {
		return a.content.Team(r.Context())
	})
}

func (a *API) Hero() http.HandlerFunc {
	return singleton(a, func(r *http.Request) (*models.HeroSection, error) {
		return a.content.Hero(r.Context())
	})
}

func (a *API) Stats() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.Stat, error) {
		return a.content.Stats(r.Context())
	})
}

func (a *API) FeaturedCollections() http.HandlerFunc {
	return list(a, func(r *http.Request) ([]models.FeaturedCollection, error) {
		return a.content.FeaturedCollections(r.Context())
	})
}

// CollectionArticles lists the articles selected by collection {id}. An
// unknown or inactive collection is a 404.
func (a *API) CollectionArticles() http.HandlerFunc {
	return item(a, func(r *http.Request) (*[]models.Article, error) {
		articles, err := a.content.CollectionArticles(r.Context(), chi.URLParam(r, "id"))
		if err != nil || articles == nil {
			return nil, err
		}
		return &articles, nil
	})
}

func (a *API) Header() http.HandlerFunc {
	return item(a, func(r *http.Request) (*models.Header, error) {
		h, err := a.content.Header(r.Context())
		if err != nil {
			return nil, err
		}
		return &h, nil
	})
}

// footerResponse adds the rendered copyright line next to the template.
type footerResponse struct {
	models.Footer
	Copyright string `json:"copyright"`
}

func (a *API) Footer() http.HandlerFunc {
	return item(a, func(r *http.Request) (*footerResponse, error) {
		f, err := a.content.Footer(r.Context())
		if err != nil {
			return nil, err
		}
		return &footerResponse{Footer: f, Copyright: f.Copyright(time.Now())}, nil
	})
}

func (a *API) ContactPage() http.HandlerFunc {
	return singleton(a, func(r *http.Request) (*models.ContactPageInfo, error) {
		return a.content.ContactPage(r.Context())
	})
}
