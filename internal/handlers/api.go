// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes site content and form submissions as a JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"littlehands/internal/cms"
	"littlehands/internal/fallback"
	"littlehands/internal/models"
	"littlehands/internal/store"
)

// Values of the X-Content-Source response header.
const (
	HeaderContentSource = "X-Content-Source"
	SourceCMS           = "cms"
	SourceFallback      = "fallback"
)

// ContentService is the content read side used by the API.
type ContentService interface {
	Articles(ctx context.Context) ([]models.Article, error)
	FeaturedArticles(ctx context.Context) ([]models.Article, error)
	ArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	RelatedArticles(ctx context.Context, slug string) ([]models.Article, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ArticlesByCategory(ctx context.Context, slug string) ([]models.Article, error)
	Testimonials(ctx context.Context) ([]models.Testimonial, error)
	TestimonialsSection(ctx context.Context) (*models.TestimonialsSection, error)
	About(ctx context.Context) (*models.AboutContent, error)
	Team(ctx context.Context) ([]models.TeamMember, error)
	Hero(ctx context.Context) (*models.HeroSection, error)
	Stats(ctx context.Context) ([]models.Stat, error)
	FeaturedCollections(ctx context.Context) ([]models.FeaturedCollection, error)
	CollectionArticles(ctx context.Context, id string) ([]models.Article, error)
	Header(ctx context.Context) (models.Header, error)
	Footer(ctx context.Context) (models.Footer, error)
	ContactPage(ctx context.Context) (*models.ContactPageInfo, error)
}

// API groups the JSON endpoint handlers. Read endpoints try the CMS first
// and answer from the fallback corpus when it is unavailable.
type API struct {
	content     ContentService
	fallback    *fallback.Resolver
	subscribers *store.SubscriberStore
	contacts    *store.ContactStore
	validate    *validator.Validate
	strictAuth  bool
}

// NewAPI creates the API handler group. With strictAuth set, CMS
// authentication failures produce a 500 instead of fallback content.
func NewAPI(content ContentService, fb *fallback.Resolver, subscribers *store.SubscriberStore, contacts *store.ContactStore, strictAuth bool) *API {
	return &API{
		content:     content,
		fallback:    fb,
		subscribers: subscribers,
		contacts:    contacts,
		validate:    newValidator(),
		strictAuth:  strictAuth,
	}
}

// message is the body of every non-content response.
type message struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Message: msg})
}

func notFound(w http.ResponseWriter) {
	writeMessage(w, http.StatusNotFound, "Not Found")
}

func internalError(w http.ResponseWriter) {
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

// live writes content obtained from the CMS.
func live(w http.ResponseWriter, data any) {
	w.Header().Set(HeaderContentSource, SourceCMS)
	writeJSON(w, http.StatusOK, data)
}

// fail handles a content error. Upstream unavailability is answered from
// the fallback corpus for the same path; anything else is a logged 500.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	unauthorized := errors.Is(err, cms.ErrUnauthorized)

	switch {
	case unauthorized && a.strictAuth:
		slog.Error("cms rejected credentials", "path", r.URL.Path, "error", err)
		internalError(w)
		return
	case errors.Is(err, cms.ErrUnavailable):
		if unauthorized {
			slog.Error("cms rejected credentials, serving fallback", "path", r.URL.Path, "error", err)
		} else {
			slog.Warn("cms unavailable, serving fallback", "path", r.URL.Path, "error", err)
		}
		a.serveFallback(w, r)
		return
	case errors.Is(err, context.Canceled):
		slog.Debug("request canceled", "path", r.URL.Path)
		return
	}

	slog.Error("content request failed", "path", r.URL.Path, "error", err)
	internalError(w)
}

func (a *API) serveFallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(HeaderContentSource, SourceFallback)
	v := a.fallback.Resolve(r.URL.Path)
	switch f := v.(type) {
	case nil:
		notFound(w)
		return
	case *models.Footer:
		v = &footerResponse{Footer: *f, Copyright: f.Copyright(time.Now())}
	}
	writeJSON(w, http.StatusOK, v)
}

// list serves a collection endpoint. Nil results are sent as [].
func list[T any](a *API, fetch func(r *http.Request) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(r)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if v == nil {
			v = []T{}
		}
		live(w, v)
	}
}

// item serves a single-resource endpoint. A nil result is a 404.
func item[T any](a *API, fetch func(r *http.Request) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(r)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if v == nil {
			notFound(w)
			return
		}
		live(w, v)
	}
}

// singleton serves a content block that may not be authored yet. A nil
// result is sent as an empty object.
func singleton[T any](a *API, fetch func(r *http.Request) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(r)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if v == nil {
			live(w, struct{}{})
			return
		}
		live(w, v)
	}
}
