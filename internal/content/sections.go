// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"log/slog"
	"strings"

	"littlehands/internal/cms"
	"littlehands/internal/models"
)

// TransformTestimonial maps a testimonial entry.
func TransformTestimonial(e *cms.Entry, r *cms.Resolver) (models.Testimonial, error) {
	if err := checkEntry(e, TypeTestimonial); err != nil {
		return models.Testimonial{}, err
	}
	return models.Testimonial{
		ID:     e.Sys.ID,
		Name:   cms.Text(e.Fields, "name", "Anonymous"),
		Role:   cms.Text(e.Fields, "role", "Parent"),
		Quote:  cms.Text(e.Fields, "quote", ""),
		Avatar: r.ImageURL(e.Fields, "avatar"),
	}, nil
}

// TransformTestimonialsSection maps the section entry and its linked
// testimonials. Testimonials that fail to transform are skipped.
func TransformTestimonialsSection(e *cms.Entry, r *cms.Resolver) (models.TestimonialsSection, error) {
	if err := checkEntry(e, TypeTestimonialsSection); err != nil {
		return models.TestimonialsSection{}, err
	}
	section := models.TestimonialsSection{
		Title:        cms.Text(e.Fields, "title", "What Parents Say"),
		Subtitle:     cms.Text(e.Fields, "subtitle", ""),
		Testimonials: []models.Testimonial{},
	}
	for _, linked := range r.LinkedEntries(e.Fields, "testimonials") {
		t, err := TransformTestimonial(linked, r)
		if err != nil {
			slog.Warn("skipping testimonial", "section", e.Sys.ID, "error", err)
			continue
		}
		section.Testimonials = append(section.Testimonials, t)
	}
	return section, nil
}

// TransformAbout maps the about page singleton.
func TransformAbout(e *cms.Entry, r *cms.Resolver) (models.AboutContent, error) {
	if err := checkEntry(e, TypeAbout); err != nil {
		return models.AboutContent{}, err
	}
	title := cms.Text(e.Fields, "title", "About Us")
	image := r.LinkedAsset(e.Fields, "image")
	return models.AboutContent{
		Title:       title,
		Subtitle:    cms.Text(e.Fields, "subtitle", ""),
		Description: richHTML(e.Fields, "description", r),
		Mission:     richHTML(e.Fields, "mission", r),
		Image:       r.ImageURL(e.Fields, "image"),
		ImageAlt:    cms.Text(e.Fields, "imageAlt", orDefault(cms.AssetTitle(image), title)),
	}, nil
}

// TransformTeamMember maps a team member bio.
func TransformTeamMember(e *cms.Entry, r *cms.Resolver) (models.TeamMember, error) {
	if err := checkEntry(e, TypeTeamMember); err != nil {
		return models.TeamMember{}, err
	}
	return models.TeamMember{
		ID:     e.Sys.ID,
		Name:   cms.Text(e.Fields, "name", ""),
		Role:   cms.Text(e.Fields, "role", "Occupational Therapist"),
		Bio:    cms.Text(e.Fields, "bio", ""),
		Avatar: r.ImageURL(e.Fields, "avatar"),
		Order:  cms.Value(e.Fields, "order", 0),
	}, nil
}

// TransformHero maps the hero singleton. Button colors default to the
// brand palette.
func TransformHero(e *cms.Entry, r *cms.Resolver) (models.HeroSection, error) {
	if err := checkEntry(e, TypeHero); err != nil {
		return models.HeroSection{}, err
	}
	f := e.Fields
	title := cms.Text(f, "title", "Helping Little Hands Grow")
	image := r.LinkedAsset(f, "image")
	return models.HeroSection{
		Title:    title,
		Subtitle: cms.Text(f, "subtitle", ""),
		Image:    r.ImageURL(f, "image"),
		ImageAlt: cms.Text(f, "imageAlt", orDefault(cms.AssetTitle(image), title)),
		PrimaryButton: models.HeroButton{
			Text:      cms.Text(f, "primaryButtonText", "Book a Consultation"),
			Link:      cms.Text(f, "primaryButtonLink", "/contact"),
			Color:     cms.Text(f, "primaryButtonColor", models.BrandPrimary),
			TextColor: cms.Text(f, "primaryButtonTextColor", models.BrandText),
		},
		SecondaryButton: models.HeroButton{
			Text:      cms.Text(f, "secondaryButtonText", "Read Our Articles"),
			Link:      cms.Text(f, "secondaryButtonLink", "/articles"),
			Color:     cms.Text(f, "secondaryButtonColor", models.BrandSecondary),
			TextColor: cms.Text(f, "secondaryButtonTextColor", models.BrandTextDark),
		},
	}, nil
}

// TransformStat maps a site statistic.
func TransformStat(e *cms.Entry) (models.Stat, error) {
	if err := checkEntry(e, TypeStat); err != nil {
		return models.Stat{}, err
	}
	return models.Stat{
		ID:          e.Sys.ID,
		Label:       cms.Text(e.Fields, "label", ""),
		Value:       cms.Text(e.Fields, "value", "0"),
		Description: cms.Text(e.Fields, "description", ""),
		Order:       cms.Value(e.Fields, "order", 0),
	}, nil
}

// TransformFeaturedCollection maps a collection definition. Unknown filter
// types become "featured" and negative limits become zero (no cap).
func TransformFeaturedCollection(e *cms.Entry) (models.FeaturedCollection, error) {
	if err := checkEntry(e, TypeFeaturedCollection); err != nil {
		return models.FeaturedCollection{}, err
	}
	filterType := strings.ToLower(cms.Text(e.Fields, "filterType", models.FilterFeatured))
	switch filterType {
	case models.FilterCategory, models.FilterTag, models.FilterFeatured:
	default:
		filterType = models.FilterFeatured
	}
	maxItems := cms.Value(e.Fields, "maxItems", 0)
	if maxItems < 0 {
		maxItems = 0
	}
	return models.FeaturedCollection{
		ID:           e.Sys.ID,
		Title:        cms.Text(e.Fields, "title", ""),
		Description:  cms.Text(e.Fields, "description", ""),
		DisplayOrder: cms.Value(e.Fields, "displayOrder", 0),
		FilterType:   filterType,
		FilterValue:  cms.Text(e.Fields, "filterValue", ""),
		MaxItems:     maxItems,
		Active:       cms.Value(e.Fields, "active", true),
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
