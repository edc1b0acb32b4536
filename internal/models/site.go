// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strconv"
	"strings"
	"time"
)

// YearPlaceholder is replaced with the current year when the footer renders.
const YearPlaceholder = "{year}"

// NavigationItem is one header menu entry.
type NavigationItem struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
	Order int    `json:"order" yaml:"order"`
}

// Header is the site header. NavigationItems are sorted by Order.
type Header struct {
	Title             string           `json:"title" yaml:"title"`
	NavigationItems   []NavigationItem `json:"navigationItems" yaml:"navigationItems"`
	SearchPlaceholder string           `json:"searchPlaceholder" yaml:"searchPlaceholder"`
}

// Link is a plain label/url pair.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// SocialLink points at one of the practice's social profiles.
type SocialLink struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url" yaml:"url"`
}

// LinkGroup is a titled list of links.
type LinkGroup struct {
	Title string `json:"title" yaml:"title"`
	Links []Link `json:"links" yaml:"links"`
}

// ContactInfo is the practice's contact block.
type ContactInfo struct {
	Address string `json:"address" yaml:"address"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
	Hours   string `json:"hours" yaml:"hours"`
}

// Footer is the site footer. CopyrightText keeps its {year} placeholder;
// call Copyright to render it.
type Footer struct {
	Title         string       `json:"title" yaml:"title"`
	Description   string       `json:"description" yaml:"description"`
	SocialLinks   []SocialLink `json:"socialLinks" yaml:"socialLinks"`
	QuickLinks    LinkGroup    `json:"quickLinks" yaml:"quickLinks"`
	ContactInfo   ContactInfo  `json:"contactInfo" yaml:"contactInfo"`
	CopyrightText string       `json:"copyrightText" yaml:"copyrightText"`
	Policies      []Link       `json:"policies" yaml:"policies"`
}

// Copyright returns CopyrightText with the year placeholder substituted.
func (f *Footer) Copyright(now time.Time) string {
	return strings.ReplaceAll(f.CopyrightText, YearPlaceholder, strconv.Itoa(now.Year()))
}

// Office describes the clinic location on the contact page.
type Office struct {
	Location string `json:"location" yaml:"location"`
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email" yaml:"email"`
	Hours    string `json:"hours" yaml:"hours"`
}

// ContactPageInfo is the singleton contact page.
type ContactPageInfo struct {
	Title       string       `json:"title" yaml:"title"`
	Subtitle    string       `json:"subtitle" yaml:"subtitle"`
	Office      Office       `json:"office" yaml:"office"`
	SocialLinks []SocialLink `json:"socialLinks" yaml:"socialLinks"`
	MapEmbedURL string       `json:"mapEmbedUrl" yaml:"mapEmbedUrl"`
}
