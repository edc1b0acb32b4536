// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"littlehands/internal/cms"
	"littlehands/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestService_ArticlesFetchesMissingLinks(t *testing.T) {
	src := newCorpusSource()
	svc := NewService(src)

	articles, err := svc.Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 6)

	a2 := articles[1]
	assert.Equal(t, "Sam Okafor", a2.Author.Name)
	assert.Equal(t, "https://images.example.com/a2.jpg", a2.FeaturedImage)
	assert.Equal(t, models.UnknownAuthorName, articles[3].Author.Name)

	idQueries := src.idQueries()
	require.Len(t, idQueries, 2)
	for _, q := range idQueries {
		assert.Len(t, q.IDs, 1)
	}
}

func TestService_SecondaryFailureDegrades(t *testing.T) {
	src := newCorpusSource()
	src.byID = nil
	src.assets = nil
	svc := NewService(src)

	articles, err := svc.Articles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.UnknownAuthorName, articles[1].Author.Name)
	assert.Empty(t, articles[1].FeaturedImage)
}

func TestService_ArticleBySlug(t *testing.T) {
	svc := NewService(newCorpusSource())

	got, err := svc.ArticleBySlug(context.Background(), "calm-corners")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a3", got.ID)

	missing, err := svc.ArticleBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestService_ArticleBySlug_RegeneratedSlug(t *testing.T) {
	src := newCorpusSource()
	src.types[TypeArticle].Items[0].Fields["slug"] = loc("Sensory Diets")
	svc := NewService(src)
	ctx := context.Background()

	articles, err := svc.Articles(ctx)
	require.NoError(t, err)
	require.Equal(t, "sensory-diets", articles[0].Slug)

	got, err := svc.ArticleBySlug(ctx, "sensory-diets")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.ID)

	related, err := svc.RelatedArticles(ctx, "sensory-diets")
	require.NoError(t, err)
	require.Len(t, related, MaxRelated)
	for _, a := range related {
		assert.NotEqual(t, "a1", a.ID)
	}

	raw, err := svc.ArticleBySlug(ctx, "Sensory Diets")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestService_ArticlesPagesThroughCollection(t *testing.T) {
	src := newCorpusSource()
	svc := NewService(src)
	svc.pageSize = 4

	articles, err := svc.Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 6)
	assert.Equal(t, "a6", articles[5].ID)
	assert.Equal(t, "Sam Okafor", articles[1].Author.Name)

	var pages []cms.Query
	for _, q := range src.queries {
		if q.ContentType == TypeArticle {
			pages = append(pages, q)
		}
	}
	require.Len(t, pages, 2)
	assert.Equal(t, 0, pages[0].Skip)
	assert.Equal(t, 4, pages[1].Skip)
	for _, q := range pages {
		assert.Equal(t, 4, q.Limit)
	}
}

func TestService_ListsRequestFullPages(t *testing.T) {
	src := newCorpusSource()
	svc := NewService(src)

	_, err := svc.Articles(context.Background())
	require.NoError(t, err)
	_, err = svc.Categories(context.Background())
	require.NoError(t, err)

	for _, q := range src.queries {
		if q.ContentType != "" {
			assert.Equal(t, PageSize, q.Limit, q.ContentType)
		}
	}
}

func TestService_FeaturedArticles(t *testing.T) {
	svc := NewService(newCorpusSource())

	got, err := svc.FeaturedArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a6", got[0].ID)
	assert.True(t, got[0].Featured)
}

func TestService_RelatedArticles(t *testing.T) {
	svc := NewService(newCorpusSource())

	related, err := svc.RelatedArticles(context.Background(), "sensory-diets")
	require.NoError(t, err)
	require.Len(t, related, MaxRelated)
	for _, a := range related {
		assert.NotEqual(t, "a1", a.ID)
		assert.Equal(t, "cat-sensory", a.Category.ID)
	}

	none, err := svc.RelatedArticles(context.Background(), "pencil-grip")
	require.NoError(t, err)
	assert.Empty(t, none)

	unknown, err := svc.RelatedArticles(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestService_Categories(t *testing.T) {
	svc := NewService(newCorpusSource())

	cat, err := svc.CategoryBySlug(context.Background(), "fine-motor")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "cat-motor", cat.ID)

	missing, err := svc.CategoryBySlug(context.Background(), "Fine Motor!")
	require.NoError(t, err)
	assert.Nil(t, missing)

	inCategory, err := svc.ArticlesByCategory(context.Background(), "sensory")
	require.NoError(t, err)
	assert.Len(t, inCategory, 5)

	empty, err := svc.ArticlesByCategory(context.Background(), "unknown")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestService_UpstreamFailureIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"status", &cms.StatusError{StatusCode: http.StatusServiceUnavailable}},
		{"unauthorized", &cms.StatusError{StatusCode: http.StatusUnauthorized}},
		{"not configured", cms.ErrNotConfigured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newCorpusSource()
			src.err = tt.err
			svc := NewService(src)

			_, err := svc.Articles(context.Background())
			assert.ErrorIs(t, err, cms.ErrUnavailable)
			_, err = svc.RelatedArticles(context.Background(), "sensory-diets")
			assert.ErrorIs(t, err, cms.ErrUnavailable)
			_, err = svc.Header(context.Background())
			assert.ErrorIs(t, err, cms.ErrUnavailable)
		})
	}
}

func TestService_EmptyIsNotAFailure(t *testing.T) {
	svc := NewService(&fakeSource{})
	ctx := context.Background()

	articles, err := svc.Articles(ctx)
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)

	about, err := svc.About(ctx)
	require.NoError(t, err)
	assert.Nil(t, about)

	header, err := svc.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultHeader(), header)

	footer, err := svc.Footer(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultFooter(), footer)
}

func TestService_HeaderPrefersFullSchema(t *testing.T) {
	src := &fakeSource{types: map[string]*cms.Envelope{
		TypeHeader:       {Items: []cms.Entry{entry(TypeHeader, "h1", cms.Fields{"title": "Full"})}},
		TypeHeaderSimple: {Items: []cms.Entry{entry(TypeHeaderSimple, "h2", cms.Fields{"title": "Simple"})}},
	}}
	got, err := NewService(src).Header(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Full", got.Title)

	delete(src.types, TypeHeader)
	got, err = NewService(src).Header(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Simple", got.Title)
}

func TestService_SortedCollections(t *testing.T) {
	src := &fakeSource{types: map[string]*cms.Envelope{
		TypeTeamMember: {Items: []cms.Entry{
			entry(TypeTeamMember, "m2", cms.Fields{"name": "Second", "order": float64(2)}),
			entry(TypeTeamMember, "m1", cms.Fields{"name": "First", "order": float64(1)}),
		}},
		TypeStat: {Items: []cms.Entry{
			entry(TypeStat, "s2", cms.Fields{"label": "Years", "value": "12", "order": loc(float64(2))}),
			entry(TypeStat, "s1", cms.Fields{"label": "Families", "value": "500+", "order": loc(float64(1))}),
		}},
		TypeFeaturedCollection: {Items: []cms.Entry{
			entry(TypeFeaturedCollection, "fc-b", cms.Fields{"title": "B", "displayOrder": float64(2)}),
			entry(TypeFeaturedCollection, "fc-off", cms.Fields{"title": "Off", "active": false}),
			entry(TypeFeaturedCollection, "fc-a", cms.Fields{"title": "A", "displayOrder": float64(1)}),
		}},
	}}
	svc := NewService(src)
	ctx := context.Background()

	team, err := svc.Team(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, []string{team[0].Name, team[1].Name})

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Families", stats[0].Label)

	collections, err := svc.FeaturedCollections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Equal(t, "fc-a", collections[0].ID)
	assert.Equal(t, "fc-b", collections[1].ID)
}

func TestService_CollectionArticles(t *testing.T) {
	src := newCorpusSource()
	src.types[TypeFeaturedCollection] = &cms.Envelope{Items: []cms.Entry{
		entry(TypeFeaturedCollection, "sensory-picks", cms.Fields{
			"filterType": "category", "filterValue": "sensory", "maxItems": float64(2),
		}),
		entry(TypeFeaturedCollection, "hidden", cms.Fields{"active": false}),
	}}
	svc := NewService(src)
	ctx := context.Background()

	got, err := svc.CollectionArticles(ctx, "sensory-picks")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sensory", got[0].Category.Slug)

	hidden, err := svc.CollectionArticles(ctx, "hidden")
	require.NoError(t, err)
	assert.Nil(t, hidden)
}

func TestService_MalformedEntryIsNotUnavailable(t *testing.T) {
	src := &fakeSource{types: map[string]*cms.Envelope{
		TypeStat: {Items: []cms.Entry{{Fields: cms.Fields{"label": "broken"}}}},
	}}

	_, err := NewService(src).Stats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedEntry)
	assert.False(t, errors.Is(err, cms.ErrUnavailable))
}

func TestService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(newCorpusSource()).ArticlesByCategory(ctx, "sensory")
	assert.ErrorIs(t, err, context.Canceled)
}
