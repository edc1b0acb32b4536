// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"sync"

	"littlehands/internal/cms"
)

func link(linkType, id string) map[string]any {
	return map[string]any{"sys": map[string]any{"type": cms.TypeLink, "linkType": linkType, "id": id}}
}

func loc(v any) map[string]any {
	return map[string]any{cms.Locale: v}
}

func entry(contentType, id string, fields cms.Fields) cms.Entry {
	return cms.Entry{
		Sys: cms.Sys{
			ID:          id,
			Type:        cms.TypeEntry,
			ContentType: &cms.Link{Sys: cms.Sys{ID: contentType, Type: cms.TypeLink}},
			CreatedAt:   "2026-01-02T09:00:00Z",
		},
		Fields: fields,
	}
}

func asset(id, url string) cms.Entry {
	return cms.Entry{
		Sys:    cms.Sys{ID: id, Type: cms.TypeAsset},
		Fields: cms.Fields{"title": "Image " + id, "file": map[string]any{"url": url}},
	}
}

func article(id, slug, categoryID, authorID string) cms.Entry {
	f := cms.Fields{
		"title":         loc("Article " + id),
		"slug":          loc(slug),
		"excerpt":       "Excerpt " + id,
		"content":       "Some **helpful** advice.",
		"publishedDate": "2026-03-01",
		"tags":          []any{"play", "sensory"},
		"featuredImage": link(cms.TypeAsset, "img-"+id),
	}
	if categoryID != "" {
		f["category"] = link(cms.TypeEntry, categoryID)
	}
	if authorID != "" {
		f["author"] = link(cms.TypeEntry, authorID)
	}
	return entry(TypeArticle, id, f)
}

// fakeSource serves fixed envelopes keyed by content type. Queries without
// a content type are answered from byID, mirroring sys.id[in] lookups.
type fakeSource struct {
	mu      sync.Mutex
	types   map[string]*cms.Envelope
	byID    []cms.Entry
	assets  []cms.Entry
	err     error
	queries []cms.Query
}

func (f *fakeSource) Entries(ctx context.Context, q cms.Query) (*cms.Envelope, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if q.ContentType == "" {
		return window(&cms.Envelope{}, pick(f.byID, q.IDs), q), nil
	}
	src, ok := f.types[q.ContentType]
	if !ok {
		return &cms.Envelope{}, nil
	}
	var matched []cms.Entry
	for _, e := range src.Items {
		if matches(e, q.Fields) {
			matched = append(matched, e)
		}
	}
	return window(&cms.Envelope{Includes: src.Includes}, matched, q), nil
}

// window applies skip and limit the way the delivery API does, reporting
// the full match count as the total. A zero limit means the API default.
func window(out *cms.Envelope, matched []cms.Entry, q cms.Query) *cms.Envelope {
	limit := q.Limit
	if limit == 0 {
		limit = 100
	}
	out.Total = len(matched)
	out.Skip = q.Skip
	out.Limit = limit
	if q.Skip < len(matched) {
		matched = matched[q.Skip:]
	} else {
		matched = nil
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	out.Items = matched
	return out
}

func (f *fakeSource) Assets(ctx context.Context, q cms.Query) (*cms.Envelope, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return window(&cms.Envelope{}, pick(f.assets, q.IDs), q), nil
}

func (f *fakeSource) idQueries() []cms.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []cms.Query
	for _, q := range f.queries {
		if len(q.IDs) > 0 {
			out = append(out, q)
		}
	}
	return out
}

func matches(e cms.Entry, filters map[string]string) bool {
	for name, want := range filters {
		if cms.Text(e.Fields, name, "") != want {
			return false
		}
	}
	return true
}

func pick(all []cms.Entry, ids []string) []cms.Entry {
	var out []cms.Entry
	for _, e := range all {
		for _, id := range ids {
			if e.Sys.ID == id {
				out = append(out, e)
			}
		}
	}
	return out
}

// newCorpusSource returns a source with five sensory articles, one fine
// motor article and a featured one. Article a2's author and image are
// missing from the includes and only reachable through secondary fetches.
func newCorpusSource() *fakeSource {
	articles := []cms.Entry{
		article("a1", "sensory-diets", "cat-sensory", "author-1"),
		article("a2", "messy-play", "cat-sensory", "author-2"),
		article("a3", "calm-corners", "cat-sensory", "author-1"),
		article("a4", "weighted-blankets", "cat-sensory", ""),
		article("a5", "noise-and-crowds", "cat-sensory", "author-1"),
		article("a6", "pencil-grip", "cat-motor", "author-1"),
	}
	articles[5].Fields["featured"] = loc(true)

	categories := []cms.Entry{
		entry(TypeCategory, "cat-sensory", cms.Fields{"name": "Sensory Processing", "slug": "sensory"}),
		entry(TypeCategory, "cat-motor", cms.Fields{"name": "Fine Motor", "slug": "Fine Motor!"}),
	}

	includes := cms.Includes{
		Entry: append([]cms.Entry{
			entry(TypeAuthor, "author-1", cms.Fields{"name": "Dana Reyes", "avatar": link(cms.TypeAsset, "avatar-1")}),
		}, categories...),
		Asset: []cms.Entry{
			asset("avatar-1", "//images.example.com/dana.jpg"),
			asset("img-a1", "//images.example.com/a1.jpg"),
			asset("img-a3", "//images.example.com/a3.jpg"),
			asset("img-a4", "//images.example.com/a4.jpg"),
			asset("img-a5", "//images.example.com/a5.jpg"),
			asset("img-a6", "//images.example.com/a6.jpg"),
		},
	}

	return &fakeSource{
		types: map[string]*cms.Envelope{
			TypeArticle:  {Items: articles, Includes: includes},
			TypeCategory: {Items: categories},
		},
		byID: []cms.Entry{
			entry(TypeAuthor, "author-2", cms.Fields{"name": "Sam Okafor"}),
		},
		assets: []cms.Entry{
			asset("img-a2", "//images.example.com/a2.jpg"),
		},
	}
}
