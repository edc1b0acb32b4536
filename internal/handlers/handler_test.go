// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the API handler
// tests: a scripted CMS source, the real content service, the embedded
// fallback corpus and fresh in-memory stores.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"littlehands/internal/cms"
	"littlehands/internal/content"
	"littlehands/internal/fallback"
	"littlehands/internal/store"
)

// stubSource answers every entries query with the envelope registered for
// its content type, or with err when set.
type stubSource struct {
	types map[string]*cms.Envelope
	err   error
}

func (s *stubSource) Entries(_ context.Context, q cms.Query) (*cms.Envelope, error) {
	if s.err != nil {
		return nil, s.err
	}
	env, ok := s.types[q.ContentType]
	if !ok {
		return &cms.Envelope{}, nil
	}
	if slug, ok := q.Fields["slug"]; ok {
		out := &cms.Envelope{Includes: env.Includes}
		for _, e := range env.Items {
			if cms.Text(e.Fields, "slug", "") == slug {
				out.Items = append(out.Items, e)
			}
		}
		return out, nil
	}
	return env, nil
}

func (s *stubSource) Assets(_ context.Context, _ cms.Query) (*cms.Envelope, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &cms.Envelope{}, nil
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Source      *stubSource
	Fallback    *fallback.Resolver
	Subscribers *store.SubscriberStore
	Contacts    *store.ContactStore
	API         *API
}

// newTestEnv creates a test environment over src.
func newTestEnv(t *testing.T, src *stubSource, strictAuth bool) *testEnv {
	t.Helper()

	fb, err := fallback.New()
	if err != nil {
		t.Fatalf("load fallback corpus: %v", err)
	}
	env := &testEnv{
		Source:      src,
		Fallback:    fb,
		Subscribers: store.NewSubscriberStore(),
		Contacts:    store.NewContactStore(),
	}
	env.API = NewAPI(content.NewService(src), fb, env.Subscribers, env.Contacts, strictAuth)
	return env
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// get performs a GET against h. A non-empty param sets the named chi URL
// parameter.
func get(h http.HandlerFunc, path, param, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if param != "" {
		req = withChiURLParam(req, param, value)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// post sends body as JSON to h.
func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
}

func entry(contentType, id string, fields cms.Fields) cms.Entry {
	return cms.Entry{
		Sys:    cms.Sys{ID: id, Type: cms.TypeEntry, ContentType: &cms.Link{Sys: cms.Sys{ID: contentType}}},
		Fields: fields,
	}
}

// liveSource returns a source with two articles in one category, one
// author and a hero entry.
func liveSource() *stubSource {
	authorLink := map[string]any{"sys": map[string]any{"type": "Link", "linkType": "Entry", "id": "author-1"}}
	categoryLink := map[string]any{"sys": map[string]any{"type": "Link", "linkType": "Entry", "id": "cat-1"}}
	category := entry(content.TypeCategory, "cat-1", cms.Fields{"name": "Play", "slug": "play"})
	return &stubSource{types: map[string]*cms.Envelope{
		content.TypeArticle: {
			Items: []cms.Entry{
				entry(content.TypeArticle, "live-1", cms.Fields{"title": "Live One", "slug": "live-one", "author": authorLink, "category": categoryLink}),
				entry(content.TypeArticle, "live-2", cms.Fields{"title": "Live Two", "slug": "live-two", "category": categoryLink}),
			},
			Includes: cms.Includes{Entry: []cms.Entry{
				entry(content.TypeAuthor, "author-1", cms.Fields{"name": "Dana"}),
				category,
			}},
		},
		content.TypeCategory: {Items: []cms.Entry{category}},
		content.TypeHero:     {Items: []cms.Entry{entry(content.TypeHero, "hero", cms.Fields{"title": "Live hero"})}},
	}}
}
