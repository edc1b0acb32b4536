// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// site: the JSON API under /api and the single-page application for
// everything else.
package router

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"littlehands/internal/handlers"
	"littlehands/internal/middleware"
)

// New creates the chi router. limiter guards the form endpoints and may be
// nil. static holds the built SPA with index.html at its root; when nil
// only the API is served.
func New(api *handlers.API, limiter *middleware.RateLimiter, static fs.FS) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", api.Articles())
			r.Get("/featured", api.FeaturedArticles())
			r.Get("/{slug}", api.Article())
			r.Get("/{slug}/related", api.RelatedArticles())
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.Categories())
			r.Get("/{slug}", api.Category())
			r.Get("/{slug}/articles", api.CategoryArticles())
		})

		r.Get("/testimonials", api.Testimonials())
		r.Get("/testimonials-section", api.TestimonialsSection())
		r.Get("/about", api.About())
		r.Get("/team", api.Team())
		r.Get("/hero", api.Hero())
		r.Get("/stats", api.Stats())
		r.Get("/featured-collections", api.FeaturedCollections())
		r.Get("/featured-collections/{id}/articles", api.CollectionArticles())
		r.Get("/header", api.Header())
		r.Get("/footer", api.Footer())
		r.Get("/contact-page", api.ContactPage())

		// Form submissions, rate-limited per client.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/newsletter/subscribe", api.Subscribe)
			r.Post("/newsletter/unsubscribe", api.Unsubscribe)
			r.Post("/contact", api.Contact)
		})

		r.NotFound(apiNotFound)
		r.MethodNotAllowed(apiMethodNotAllowed)
	})

	if static != nil {
		r.NotFound(spaHandler(static))
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message":"Not found"}` + "\n"))
}

func apiMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"message":"Method not allowed"}` + "\n"))
}

// spaHandler serves files from the SPA build. Paths that do not name an
// existing file are client-side routes and get index.html, except for
// paths with a file extension, which are genuine misses.
func spaHandler(static fs.FS) http.HandlerFunc {
	files := http.FileServer(http.FS(static))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name != "" {
			info, err := fs.Stat(static, name)
			if err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if path.Ext(name) != "" {
				http.NotFound(w, r)
				return
			}
		}

		index, err := fs.ReadFile(static, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(index)
	}
}
