// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"log/slog"

	"littlehands/internal/cms"
	"littlehands/internal/markdown"
	"littlehands/internal/models"
	"littlehands/internal/slug"
)

// TransformAuthor maps an author entry. A nil entry yields the unknown author.
func TransformAuthor(e *cms.Entry, r *cms.Resolver) (models.Author, error) {
	if e == nil {
		return models.UnknownAuthor(), nil
	}
	if err := checkEntry(e, TypeAuthor); err != nil {
		return models.Author{}, err
	}
	return models.Author{
		ID:     e.Sys.ID,
		Name:   cms.Text(e.Fields, "name", models.UnknownAuthorName),
		Avatar: r.ImageURL(e.Fields, "avatar"),
	}, nil
}

// TransformCategory maps a category entry. A nil entry yields the
// uncategorized sentinel. The slug is regenerated from the name when the
// stored one is empty or not URL-safe.
func TransformCategory(e *cms.Entry) (models.Category, error) {
	if e == nil {
		return models.Uncategorized(), nil
	}
	if err := checkEntry(e, TypeCategory); err != nil {
		return models.Category{}, err
	}
	name := cms.Text(e.Fields, "name", "Uncategorized")
	s := slug.Normalize(cms.Text(e.Fields, "slug", ""), name)
	if s == "" {
		s = e.Sys.ID
	}
	return models.Category{
		ID:          e.Sys.ID,
		Name:        name,
		Slug:        s,
		Description: cms.Text(e.Fields, "description", ""),
	}, nil
}

// TransformArticle maps an article entry, resolving its author, category
// and featured image through r. Unresolvable links degrade to defaults.
func TransformArticle(e *cms.Entry, r *cms.Resolver) (models.Article, error) {
	if err := checkEntry(e, TypeArticle); err != nil {
		return models.Article{}, err
	}
	f := e.Fields

	author, err := TransformAuthor(r.LinkedEntry(f, "author"), r)
	if err != nil {
		slog.Warn("article author unusable", "article", e.Sys.ID, "error", err)
		author = models.UnknownAuthor()
	}
	category, err := TransformCategory(r.LinkedEntry(f, "category"))
	if err != nil {
		slog.Warn("article category unusable", "article", e.Sys.ID, "error", err)
		category = models.Uncategorized()
	}

	title := cms.Text(f, "title", "Untitled")
	body := richHTML(f, "content", r)

	s := slug.Normalize(cms.Text(f, "slug", ""), title)
	if s == "" {
		s = e.Sys.ID
	}

	readingTime := cms.Value(f, "readingTime", 0)
	if readingTime < 1 {
		readingTime = markdown.ReadingTime(plainText(f, "content", body))
	}

	tags := cms.Value[[]string](f, "tags", nil)
	if tags == nil {
		tags = []string{}
	}

	return models.Article{
		ID:            e.Sys.ID,
		Title:         title,
		Slug:          s,
		Excerpt:       cms.Text(f, "excerpt", ""),
		Content:       body,
		FeaturedImage: r.ImageURL(f, "featuredImage"),
		PublishedDate: cms.Text(f, "publishedDate", e.Sys.CreatedAt),
		ReadingTime:   readingTime,
		Tags:          tags,
		Featured:      cms.Value(f, "featured", false),
		Author:        author,
		Category:      category,
	}, nil
}
