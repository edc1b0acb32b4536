// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"encoding/json"
	"log/slog"
	"sort"

	"littlehands/internal/cms"
	"littlehands/internal/models"
)

// SiteName is the practice name used by the header and footer defaults.
const SiteName = "Little Hands Therapy"

// DefaultNavigation returns the header menu used when the CMS has none.
func DefaultNavigation() []models.NavigationItem {
	return []models.NavigationItem{
		{Label: "Home", URL: "/", Order: 1},
		{Label: "Articles", URL: "/articles", Order: 2},
		{Label: "About", URL: "/about", Order: 3},
		{Label: "Contact", URL: "/contact", Order: 4},
	}
}

// DefaultHeader returns the header served when no header entry exists.
func DefaultHeader() models.Header {
	return models.Header{
		Title:             SiteName,
		NavigationItems:   DefaultNavigation(),
		SearchPlaceholder: "Search articles...",
	}
}

func defaultSocialLinks() []models.SocialLink {
	return []models.SocialLink{
		{Platform: "facebook", URL: "https://facebook.com/littlehandstherapy"},
		{Platform: "instagram", URL: "https://instagram.com/littlehandstherapy"},
	}
}

func defaultQuickLinks() models.LinkGroup {
	return models.LinkGroup{
		Title: "Quick Links",
		Links: []models.Link{
			{Label: "Home", URL: "/"},
			{Label: "Articles", URL: "/articles"},
			{Label: "About Us", URL: "/about"},
			{Label: "Contact", URL: "/contact"},
		},
	}
}

func defaultContactInfo() models.ContactInfo {
	return models.ContactInfo{
		Address: "123 Playful Lane, Suite 4",
		Phone:   "(555) 123-4567",
		Email:   "hello@littlehandstherapy.com",
		Hours:   "Mon-Fri 8am-6pm",
	}
}

func defaultPolicies() []models.Link {
	return []models.Link{
		{Label: "Privacy Policy", URL: "/privacy"},
		{Label: "Terms of Service", URL: "/terms"},
	}
}

// DefaultFooter returns the footer served when no footer entry exists.
func DefaultFooter() models.Footer {
	return models.Footer{
		Title:         SiteName,
		Description:   "Pediatric occupational therapy helping children build the skills for everyday life.",
		SocialLinks:   defaultSocialLinks(),
		QuickLinks:    defaultQuickLinks(),
		ContactInfo:   defaultContactInfo(),
		CopyrightText: "© " + models.YearPlaceholder + " " + SiteName + ". All rights reserved.",
		Policies:      defaultPolicies(),
	}
}

// TransformHeader maps a header entry. The "headerSimple" content type keeps
// its navigation as a JSON string in navigationItemsJson; "header" keeps it
// as a structured field. Missing or unparsable navigation uses the default.
func TransformHeader(e *cms.Entry) (models.Header, error) {
	if err := checkEntry(e, TypeHeader); err != nil {
		return models.Header{}, err
	}
	def := DefaultHeader()
	simple := e.ContentTypeID() == TypeHeaderSimple

	nav := structured(e, simple, "navigationItems", def.NavigationItems)
	if len(nav) == 0 {
		nav = def.NavigationItems
	}
	sort.SliceStable(nav, func(i, j int) bool { return nav[i].Order < nav[j].Order })

	return models.Header{
		Title:             cms.Text(e.Fields, "title", def.Title),
		NavigationItems:   nav,
		SearchPlaceholder: cms.Text(e.Fields, "searchPlaceholder", def.SearchPlaceholder),
	}, nil
}

// TransformFooter maps a footer entry, detecting the simplified schema from
// the "footerSimple" content type the same way TransformHeader does.
func TransformFooter(e *cms.Entry) (models.Footer, error) {
	if err := checkEntry(e, TypeFooter); err != nil {
		return models.Footer{}, err
	}
	def := DefaultFooter()
	simple := e.ContentTypeID() == TypeFooterSimple

	social := structured(e, simple, "socialLinks", def.SocialLinks)
	if len(social) == 0 {
		social = def.SocialLinks
	}
	quick := structured(e, simple, "quickLinks", def.QuickLinks)
	if len(quick.Links) == 0 {
		quick = def.QuickLinks
	}
	if quick.Title == "" {
		quick.Title = def.QuickLinks.Title
	}
	policies := structured(e, simple, "policies", def.Policies)
	if len(policies) == 0 {
		policies = def.Policies
	}

	return models.Footer{
		Title:         cms.Text(e.Fields, "title", def.Title),
		Description:   cms.Text(e.Fields, "description", def.Description),
		SocialLinks:   social,
		QuickLinks:    quick,
		ContactInfo:   structured(e, simple, "contactInfo", def.ContactInfo),
		CopyrightText: cms.Text(e.Fields, "copyrightText", def.CopyrightText),
		Policies:      policies,
	}, nil
}

// TransformContactPage maps the contact page singleton.
func TransformContactPage(e *cms.Entry) (models.ContactPageInfo, error) {
	if err := checkEntry(e, TypeContactPage); err != nil {
		return models.ContactPageInfo{}, err
	}
	f := e.Fields
	info := defaultContactInfo()
	social := structured(e, false, "socialLinks", defaultSocialLinks())
	if len(social) == 0 {
		social = defaultSocialLinks()
	}
	return models.ContactPageInfo{
		Title:    cms.Text(f, "title", "Contact Us"),
		Subtitle: cms.Text(f, "subtitle", ""),
		Office: models.Office{
			Location: cms.Text(f, "officeLocation", info.Address),
			Phone:    cms.Text(f, "officePhone", info.Phone),
			Email:    cms.Text(f, "officeEmail", info.Email),
			Hours:    cms.Text(f, "officeHours", info.Hours),
		},
		SocialLinks: social,
		MapEmbedURL: cms.NormalizeURL(cms.Text(f, "mapEmbedUrl", "")),
	}, nil
}

// structured decodes a JSON-shaped field into T. With simple set the value
// is read from the "<name>Json" text field and parsed; otherwise the
// structured field is decoded directly. Any failure returns def.
func structured[T any](e *cms.Entry, simple bool, name string, def T) T {
	var out T
	if simple {
		src := cms.Text(e.Fields, name+"Json", "")
		if src == "" {
			return def
		}
		if err := json.Unmarshal([]byte(src), &out); err != nil {
			slog.Warn("invalid JSON in simplified field, using default",
				"entry", e.Sys.ID, "field", name+"Json", "error", err)
			return def
		}
		return out
	}
	raw := cms.Value[any](e.Fields, name, nil)
	if raw == nil {
		return def
	}
	if err := cms.Decode(raw, &out); err != nil {
		slog.Warn("malformed structured field, using default",
			"entry", e.Sys.ID, "field", name, "error", err)
		return def
	}
	return out
}
