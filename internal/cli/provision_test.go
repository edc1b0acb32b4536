// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"littlehands/internal/cms"
	"littlehands/internal/content"
	"littlehands/internal/fallback"
)

// recordingWriter keeps every write in order and fails on the entry or
// content type named in failOn.
type recordingWriter struct {
	types   []string
	entries []seedEntry
	failOn  string
}

func (w *recordingWriter) UpsertContentType(_ context.Context, ct cms.ContentTypeDef) error {
	if ct.ID == w.failOn {
		return fmt.Errorf("put content type %s: %w", ct.ID, cms.ErrUnavailable)
	}
	w.types = append(w.types, ct.ID)
	return nil
}

func (w *recordingWriter) UpsertEntry(_ context.Context, contentType, id string, fields map[string]any) error {
	if id == w.failOn {
		return fmt.Errorf("put entry %s: %w", id, cms.ErrUnavailable)
	}
	w.entries = append(w.entries, seedEntry{ContentType: contentType, ID: id, Fields: fields})
	return nil
}

func TestLoadSchema(t *testing.T) {
	defs, err := loadSchema(schemaYAML)
	require.NoError(t, err)

	ids := make(map[string]cms.ContentTypeDef, len(defs))
	for _, d := range defs {
		ids[d.ID] = d
	}

	for _, ct := range []string{
		content.TypeArticle, content.TypeAuthor, content.TypeCategory,
		content.TypeTestimonial, content.TypeTestimonialsSection, content.TypeAbout,
		content.TypeTeamMember, content.TypeHero, content.TypeStat,
		content.TypeFeaturedCollection, content.TypeHeader, content.TypeHeaderSimple,
		content.TypeFooter, content.TypeFooterSimple, content.TypeContactPage,
	} {
		assert.Contains(t, ids, ct, "schema is missing content type %s", ct)
	}

	var links []string
	for _, f := range ids[content.TypeArticle].Fields {
		if f.Type == "Link" {
			links = append(links, f.ID+":"+f.LinkType)
		}
	}
	assert.ElementsMatch(t, []string{"author:Entry", "category:Entry", "featuredImage:Asset"}, links)
}

func TestLoadSchemaRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, src, wantErr string
	}{
		{"unknown key", "- id: a\n  nmae: A\n", "parse schema"},
		{"no fields", "- id: a\n  name: A\n  displayField: x\n", "needs an id and fields"},
		{
			"duplicate type",
			"- {id: a, name: A, displayField: x, fields: [{id: x, name: X, type: Symbol}]}\n" +
				"- {id: a, name: B, displayField: x, fields: [{id: x, name: X, type: Symbol}]}\n",
			"duplicate content type",
		},
		{
			"duplicate field",
			"- {id: a, name: A, displayField: x, fields: [{id: x, name: X, type: Symbol}, {id: x, name: Y, type: Text}]}\n",
			"duplicate field",
		},
		{
			"bad display field",
			"- {id: a, name: A, displayField: title, fields: [{id: x, name: X, type: Symbol}]}\n",
			"display field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSchema([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProvisionSchemaStopsOnError(t *testing.T) {
	defs, err := loadSchema(schemaYAML)
	require.NoError(t, err)

	w := &recordingWriter{failOn: content.TypeArticle}
	err = provisionSchema(context.Background(), w, defs)

	require.ErrorIs(t, err, cms.ErrUnavailable)
	assert.Equal(t, []string{content.TypeAuthor, content.TypeCategory}, w.types)
}

func TestSeedLinksPointBackwards(t *testing.T) {
	fb, err := fallback.New()
	require.NoError(t, err)

	w := &recordingWriter{}
	n, err := seed(context.Background(), w, fb.Corpus())
	require.NoError(t, err)
	assert.Len(t, w.entries, n)

	written := make(map[string]bool)
	for _, e := range w.entries {
		assert.False(t, written[e.ID], "entry %s written twice", e.ID)
		for name, v := range e.Fields {
			switch link := v.(type) {
			case cms.Link:
				assert.True(t, written[link.Sys.ID], "%s.%s links to %s before it exists", e.ID, name, link.Sys.ID)
			case []cms.Link:
				for _, l := range link {
					assert.True(t, written[l.Sys.ID], "%s.%s links to %s before it exists", e.ID, name, l.Sys.ID)
				}
			}
		}
		written[e.ID] = true
	}
}

func TestSeedReportsProgressOnFailure(t *testing.T) {
	fb, err := fallback.New()
	require.NoError(t, err)

	corpus := fb.Corpus()
	w := &recordingWriter{failOn: corpus.Articles[0].ID}
	n, err := seed(context.Background(), w, corpus)

	require.ErrorIs(t, err, cms.ErrUnavailable)
	assert.Equal(t, len(w.entries), n)
}

// seededSource serves seeded entries the way the delivery API would: JSON
// encoded fields and every entry available in the includes side-table.
type seededSource struct {
	entries []cms.Entry
}

func newSeededSource(t *testing.T, seeded []seedEntry) *seededSource {
	t.Helper()
	src := &seededSource{}
	for _, s := range seeded {
		raw, err := json.Marshal(s.Fields)
		require.NoError(t, err)
		var fields cms.Fields
		require.NoError(t, json.Unmarshal(raw, &fields))

		src.entries = append(src.entries, cms.Entry{
			Sys: cms.Sys{
				ID:          s.ID,
				Type:        cms.TypeEntry,
				ContentType: &cms.Link{Sys: cms.Sys{ID: s.ContentType, Type: cms.TypeLink, LinkType: "ContentType"}},
				CreatedAt:   "2026-01-01T00:00:00Z",
			},
			Fields: fields,
		})
	}
	return src
}

func (s *seededSource) Entries(_ context.Context, q cms.Query) (*cms.Envelope, error) {
	env := &cms.Envelope{Includes: cms.Includes{Entry: s.entries}}
	for _, e := range s.entries {
		if q.ContentType != "" && e.ContentTypeID() != q.ContentType {
			continue
		}
		if len(q.IDs) > 0 && !contains(q.IDs, e.Sys.ID) {
			continue
		}
		match := true
		for name, want := range q.Fields {
			if fmt.Sprint(e.Fields[name]) != want {
				match = false
			}
		}
		if match {
			env.Items = append(env.Items, e)
		}
	}
	env.Total = len(env.Items)
	return env, nil
}

func (s *seededSource) Assets(context.Context, cms.Query) (*cms.Envelope, error) {
	return &cms.Envelope{}, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// TestSeedRoundTrip checks that seeded entries read back through the
// content service reproduce the built-in content, minus images.
func TestSeedRoundTrip(t *testing.T) {
	fb, err := fallback.New()
	require.NoError(t, err)
	corpus := fb.Corpus()

	svc := content.NewService(newSeededSource(t, seedEntries(corpus)))
	ctx := context.Background()

	articles, err := svc.Articles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, len(corpus.Articles))

	for _, want := range corpus.Articles {
		got, err := svc.ArticleBySlug(ctx, want.Slug)
		require.NoError(t, err)
		require.NotNil(t, got, want.Slug)

		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Excerpt, got.Excerpt)
		assert.Equal(t, want.PublishedDate, got.PublishedDate)
		assert.Equal(t, want.ReadingTime, got.ReadingTime)
		assert.Equal(t, want.Tags, got.Tags)
		assert.Equal(t, want.Featured, got.Featured)
		assert.Equal(t, want.Author.ID, got.Author.ID)
		assert.Equal(t, want.Author.Name, got.Author.Name)
		assert.Equal(t, want.Category, got.Category)
		assert.Empty(t, got.FeaturedImage, "images are not seeded")
	}

	hero, err := svc.Hero(ctx)
	require.NoError(t, err)
	require.NotNil(t, hero)
	assert.Equal(t, corpus.Hero.Title, hero.Title)
	assert.Equal(t, corpus.Hero.PrimaryButton, hero.PrimaryButton)
	assert.Equal(t, corpus.Hero.SecondaryButton, hero.SecondaryButton)

	section, err := svc.TestimonialsSection(ctx)
	require.NoError(t, err)
	require.NotNil(t, section)
	assert.Len(t, section.Testimonials, len(corpus.Testimonials))

	header, err := svc.Header(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(content.DefaultHeader(), header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	footer, err := svc.Footer(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(content.DefaultFooter(), footer); diff != "" {
		t.Errorf("footer mismatch (-want +got):\n%s", diff)
	}

	page, err := svc.ContactPage(ctx)
	require.NoError(t, err)
	require.NotNil(t, page)
	if diff := cmp.Diff(corpus.ContactPage, *page); diff != "" {
		t.Errorf("contact page mismatch (-want +got):\n%s", diff)
	}

	collections, err := svc.FeaturedCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, len(content.ActiveCollections(corpus.FeaturedCollections)))
}

func TestPrintWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &printWriter{out: &buf}

	require.NoError(t, w.UpsertContentType(context.Background(), cms.ContentTypeDef{ID: "hero", Fields: make([]cms.FieldDef, 3)}))
	require.NoError(t, w.UpsertEntry(context.Background(), "hero", "hero", map[string]any{"title": "Hi"}))

	assert.Equal(t, "content type hero (3 fields)\nentry hero hero {\"title\":\"Hi\"}\n", buf.String())
}

func TestProvisionSeedDryRun(t *testing.T) {
	t.Setenv("CONTENTFUL_SPACE_ID", "")
	t.Setenv("CONTENTFUL_MANAGEMENT_TOKEN", "")
	t.Setenv("CMS_CACHE_TTL", "")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"provision", "seed", "--dry-run"})

	require.NoError(t, root.ExecuteContext(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, fmt.Sprintf("%d entries provisioned", len(lines)-1), lines[len(lines)-1])
	assert.True(t, strings.HasPrefix(lines[0], "entry category "))
}

func TestProvisionWithoutCredentials(t *testing.T) {
	t.Setenv("CONTENTFUL_SPACE_ID", "")
	t.Setenv("CONTENTFUL_MANAGEMENT_TOKEN", "")

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"provision", "schema"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, cms.ErrUnavailable))
	assert.Contains(t, err.Error(), "management token")
}
