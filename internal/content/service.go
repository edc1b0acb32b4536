// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"littlehands/internal/cms"
	"littlehands/internal/models"
)

// MaxRelated caps the related articles list.
const MaxRelated = 3

// PageSize is the page limit used when listing a whole collection. It is
// the largest page the delivery API serves.
const PageSize = 1000

// Include depths requested from the delivery API.
const (
	includeArticle = 2
	includeDefault = 1
)

// Source is the subset of the delivery client the service needs.
type Source interface {
	Entries(ctx context.Context, q cms.Query) (*cms.Envelope, error)
	Assets(ctx context.Context, q cms.Query) (*cms.Envelope, error)
}

// Service fetches CMS envelopes and transforms them into view models.
// Errors from the source are returned wrapped so callers can match
// cms.ErrUnavailable and substitute fallback content.
type Service struct {
	src      Source
	pageSize int
}

// NewService creates a content service over src.
func NewService(src Source) *Service {
	return &Service{src: src, pageSize: PageSize}
}

type fetcher func(context.Context, cms.Query) (*cms.Envelope, error)

// collect runs q through get. A query without a limit is paged through
// until the reported total is reached and the pages are merged into one
// envelope.
func (s *Service) collect(ctx context.Context, get fetcher, q cms.Query) (*cms.Envelope, error) {
	if q.Limit > 0 {
		return get(ctx, q)
	}
	q.Limit = s.pageSize
	out := &cms.Envelope{}
	for {
		page, err := get(ctx, q)
		if err != nil {
			return nil, err
		}
		out.Total = page.Total
		out.Items = append(out.Items, page.Items...)
		out.Includes.Entry = append(out.Includes.Entry, page.Includes.Entry...)
		out.Includes.Asset = append(out.Includes.Asset, page.Includes.Asset...)
		q.Skip += len(page.Items)
		if len(page.Items) == 0 || q.Skip >= page.Total {
			out.Limit = len(out.Items)
			return out, nil
		}
	}
}

// linkFields names the entry and asset link fields of a content type whose
// targets may be missing from the includes side-table.
type linkFields struct {
	entries []string
	assets  []string
}

var (
	articleLinks = linkFields{entries: []string{"author", "category"}, assets: []string{"featuredImage"}}
	avatarLinks  = linkFields{assets: []string{"avatar"}}
	imageLinks   = linkFields{assets: []string{"image"}}
	sectionLinks = linkFields{entries: []string{"testimonials"}}
)

// fetch loads entries of one content type and builds a resolver over the
// response plus secondary envelopes for any links the response did not
// include.
func (s *Service) fetch(ctx context.Context, q cms.Query, links linkFields) (*cms.Envelope, *cms.Resolver, error) {
	env, err := s.collect(ctx, s.src.Entries, q)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s entries: %w", q.ContentType, err)
	}
	return env, cms.NewResolver(env, s.secondary(ctx, env, links)...), nil
}

// secondary fetches, concurrently, the entries and assets referenced by
// env's items that its includes do not contain. Failures are logged and
// tolerated; the transformers apply defaults for whatever stays missing.
func (s *Service) secondary(ctx context.Context, env *cms.Envelope, links linkFields) []*cms.Envelope {
	r := cms.NewResolver(env)
	var entryIDs, assetIDs []string
	for i := range env.Items {
		f := env.Items[i].Fields
		for _, name := range links.entries {
			ids := cms.LinkIDs(f, name)
			if id := cms.LinkID(f, name); id != "" {
				ids = append(ids, id)
			}
			for _, id := range ids {
				if r.Entry(id) == nil {
					entryIDs = append(entryIDs, id)
				}
			}
		}
		for _, name := range links.assets {
			if id := cms.LinkID(f, name); id != "" && r.Asset(id) == nil {
				assetIDs = append(assetIDs, id)
			}
		}
	}
	entryIDs = dedupe(entryIDs)
	assetIDs = dedupe(assetIDs)
	if len(entryIDs) == 0 && len(assetIDs) == 0 {
		return nil
	}

	var entries, assets *cms.Envelope
	var g errgroup.Group
	if len(entryIDs) > 0 {
		g.Go(func() error {
			out, err := s.collect(ctx, s.src.Entries, cms.Query{IDs: entryIDs, Include: includeDefault})
			if err != nil {
				slog.Warn("secondary entry fetch failed", "ids", len(entryIDs), "error", err)
				return nil
			}
			entries = out
			return nil
		})
	}
	if len(assetIDs) > 0 {
		g.Go(func() error {
			out, err := s.collect(ctx, s.src.Assets, cms.Query{IDs: assetIDs})
			if err != nil {
				slog.Warn("secondary asset fetch failed", "ids", len(assetIDs), "error", err)
				return nil
			}
			assets = out
			return nil
		})
	}
	_ = g.Wait()
	return []*cms.Envelope{entries, assets}
}

func dedupe(ids []string) []string {
	slices.Sort(ids)
	return slices.Compact(ids)
}

func transformAll[T any](env *cms.Envelope, fn func(*cms.Entry) (T, error)) ([]T, error) {
	out := make([]T, 0, len(env.Items))
	for i := range env.Items {
		v, err := fn(&env.Items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Service) articles(ctx context.Context, q cms.Query) ([]models.Article, error) {
	q.ContentType = TypeArticle
	q.Include = includeArticle
	if q.Order == "" {
		q.Order = "-fields.publishedDate"
	}
	env, r, err := s.fetch(ctx, q, articleLinks)
	if err != nil {
		return nil, err
	}
	return transformAll(env, func(e *cms.Entry) (models.Article, error) {
		return TransformArticle(e, r)
	})
}

// Articles returns every article, newest first.
func (s *Service) Articles(ctx context.Context) ([]models.Article, error) {
	return s.articles(ctx, cms.Query{})
}

// FeaturedArticles returns the articles flagged as featured.
func (s *Service) FeaturedArticles(ctx context.Context) ([]models.Article, error) {
	return s.articles(ctx, cms.Query{Fields: map[string]string{"featured": "true"}})
}

func slugQuery(slug string) cms.Query {
	return cms.Query{Fields: map[string]string{"slug": slug}, Limit: 1}
}

func findArticle(list []models.Article, slug string) *models.Article {
	for i := range list {
		if list[i].Slug == slug {
			return &list[i]
		}
	}
	return nil
}

// ArticleBySlug returns the article whose routing slug is slug, or nil
// when none exists. The stored slug field is queried first; articles whose
// slug was regenerated from a title or a malformed value are found by
// matching the transformed corpus, the same way listings present them.
func (s *Service) ArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	list, err := s.articles(ctx, slugQuery(slug))
	if err != nil {
		return nil, err
	}
	if a := findArticle(list, slug); a != nil {
		return a, nil
	}
	corpus, err := s.Articles(ctx)
	if err != nil {
		return nil, err
	}
	return findArticle(corpus, slug), nil
}

// RelatedArticles returns up to MaxRelated articles sharing the category of
// the article with slug, excluding that article. The article and the corpus
// are fetched concurrently. An unknown slug yields an empty list.
func (s *Service) RelatedArticles(ctx context.Context, slug string) ([]models.Article, error) {
	var queried, corpus []models.Article
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		queried, err = s.articles(gctx, slugQuery(slug))
		return err
	})
	g.Go(func() error {
		var err error
		corpus, err = s.Articles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	article := findArticle(queried, slug)
	if article == nil {
		article = findArticle(corpus, slug)
	}
	if article == nil {
		return make([]models.Article, 0, MaxRelated), nil
	}
	return Related(*article, corpus), nil
}

// Related selects up to MaxRelated articles from corpus in the same
// category as a, excluding a itself.
func Related(a models.Article, corpus []models.Article) []models.Article {
	out := make([]models.Article, 0, MaxRelated)
	for _, c := range corpus {
		if len(out) == MaxRelated {
			break
		}
		if c.ID == a.ID || c.Category.ID != a.Category.ID {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}

// Categories returns every category ordered by name.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	env, err := s.collect(ctx, s.src.Entries, cms.Query{ContentType: TypeCategory, Order: "fields.name"})
	if err != nil {
		return nil, fmt.Errorf("fetch %s entries: %w", TypeCategory, err)
	}
	return transformAll(env, TransformCategory)
}

// CategoryBySlug returns the category whose routing slug is slug, or nil.
// Matching happens after transformation so regenerated slugs resolve too.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return findCategory(cats, slug), nil
}

func findCategory(cats []models.Category, slug string) *models.Category {
	for i := range cats {
		if cats[i].Slug == slug {
			return &cats[i]
		}
	}
	return nil
}

// ArticlesByCategory returns the articles in the category with slug. An
// unknown category yields an empty list.
func (s *Service) ArticlesByCategory(ctx context.Context, slug string) ([]models.Article, error) {
	var (
		cats   []models.Category
		corpus []models.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = s.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		corpus, err = s.Articles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Article, 0)
	cat := findCategory(cats, slug)
	if cat == nil {
		return out, nil
	}
	for _, a := range corpus {
		if a.Category.ID == cat.ID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Testimonials returns every testimonial.
func (s *Service) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	env, r, err := s.fetch(ctx, cms.Query{ContentType: TypeTestimonial, Include: includeDefault}, avatarLinks)
	if err != nil {
		return nil, err
	}
	return transformAll(env, func(e *cms.Entry) (models.Testimonial, error) {
		return TransformTestimonial(e, r)
	})
}

// TestimonialsSection returns the testimonials section, or nil when the
// section entry does not exist.
func (s *Service) TestimonialsSection(ctx context.Context) (*models.TestimonialsSection, error) {
	env, r, err := s.fetch(ctx, cms.Query{ContentType: TypeTestimonialsSection, Include: includeArticle, Limit: 1}, sectionLinks)
	if err != nil {
		return nil, err
	}
	return single(env, func(e *cms.Entry) (models.TestimonialsSection, error) {
		return TransformTestimonialsSection(e, r)
	})
}

// About returns the about page, or nil when it does not exist.
func (s *Service) About(ctx context.Context) (*models.AboutContent, error) {
	env, r, err := s.fetch(ctx, cms.Query{ContentType: TypeAbout, Include: includeDefault, Limit: 1}, imageLinks)
	if err != nil {
		return nil, err
	}
	return single(env, func(e *cms.Entry) (models.AboutContent, error) {
		return TransformAbout(e, r)
	})
}

// Team returns the team members sorted by their order field.
func (s *Service) Team(ctx context.Context) ([]models.TeamMember, error) {
	env, r, err := s.fetch(ctx, cms.Query{ContentType: TypeTeamMember, Include: includeDefault, Order: "fields.order"}, avatarLinks)
	if err != nil {
		return nil, err
	}
	team, err := transformAll(env, func(e *cms.Entry) (models.TeamMember, error) {
		return TransformTeamMember(e, r)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(team, func(i, j int) bool { return team[i].Order < team[j].Order })
	return team, nil
}

// Hero returns the hero section, or nil when it does not exist.
func (s *Service) Hero(ctx context.Context) (*models.HeroSection, error) {
	env, r, err := s.fetch(ctx, cms.Query{ContentType: TypeHero, Include: includeDefault, Limit: 1}, imageLinks)
	if err != nil {
		return nil, err
	}
	return single(env, func(e *cms.Entry) (models.HeroSection, error) {
		return TransformHero(e, r)
	})
}

// Stats returns the site statistics sorted by their order field.
func (s *Service) Stats(ctx context.Context) ([]models.Stat, error) {
	env, err := s.collect(ctx, s.src.Entries, cms.Query{ContentType: TypeStat, Order: "fields.order"})
	if err != nil {
		return nil, fmt.Errorf("fetch %s entries: %w", TypeStat, err)
	}
	stats, err := transformAll(env, TransformStat)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Order < stats[j].Order })
	return stats, nil
}

// FeaturedCollections returns the active collections sorted by display order.
func (s *Service) FeaturedCollections(ctx context.Context) ([]models.FeaturedCollection, error) {
	env, err := s.collect(ctx, s.src.Entries, cms.Query{ContentType: TypeFeaturedCollection, Order: "fields.displayOrder"})
	if err != nil {
		return nil, fmt.Errorf("fetch %s entries: %w", TypeFeaturedCollection, err)
	}
	all, err := transformAll(env, TransformFeaturedCollection)
	if err != nil {
		return nil, err
	}
	return ActiveCollections(all), nil
}

// ActiveCollections drops inactive collections and sorts the rest by
// display order.
func ActiveCollections(all []models.FeaturedCollection) []models.FeaturedCollection {
	out := make([]models.FeaturedCollection, 0, len(all))
	for _, c := range all {
		if c.Active {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

// CollectionArticles applies the active collection with id to the article
// corpus. It returns nil when no such active collection exists.
func (s *Service) CollectionArticles(ctx context.Context, id string) ([]models.Article, error) {
	var (
		collections []models.FeaturedCollection
		corpus      []models.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collections, err = s.FeaturedCollections(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		corpus, err = s.Articles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i := range collections {
		if collections[i].ID == id {
			return collections[i].Apply(corpus), nil
		}
	}
	return nil, nil
}

// Header returns the site header. The full schema is preferred over the
// simplified one; when neither exists the default header is returned.
func (s *Service) Header(ctx context.Context) (models.Header, error) {
	e, err := s.firstOf(ctx, TypeHeader, TypeHeaderSimple)
	if err != nil || e == nil {
		return DefaultHeader(), err
	}
	return TransformHeader(e)
}

// Footer returns the site footer, with the same schema preference as Header.
func (s *Service) Footer(ctx context.Context) (models.Footer, error) {
	e, err := s.firstOf(ctx, TypeFooter, TypeFooterSimple)
	if err != nil || e == nil {
		return DefaultFooter(), err
	}
	return TransformFooter(e)
}

// ContactPage returns the contact page, or nil when it does not exist.
func (s *Service) ContactPage(ctx context.Context) (*models.ContactPageInfo, error) {
	env, err := s.src.Entries(ctx, cms.Query{ContentType: TypeContactPage, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("fetch %s entries: %w", TypeContactPage, err)
	}
	return single(env, TransformContactPage)
}

// firstOf returns the first entry of the first content type that has one.
func (s *Service) firstOf(ctx context.Context, types ...string) (*cms.Entry, error) {
	for _, ct := range types {
		env, err := s.src.Entries(ctx, cms.Query{ContentType: ct, Limit: 1})
		if err != nil {
			return nil, fmt.Errorf("fetch %s entries: %w", ct, err)
		}
		if e := env.First(); e != nil {
			return e, nil
		}
	}
	return nil, nil
}

func single[T any](env *cms.Envelope, fn func(*cms.Entry) (T, error)) (*T, error) {
	e := env.First()
	if e == nil {
		return nil, nil
	}
	v, err := fn(e)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
