// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cms talks to the headless CMS (Contentful). It provides the raw
// response envelope types, a locale-aware field accessor, a pure link
// resolver over envelopes, a read-only Content Delivery client and the
// Content Management client used by the provisioning commands.
package cms

// Locale is the only locale the site is authored in. Fields may arrive
// wrapped under this key (locale=* responses, management API) or bare.
const Locale = "en-US"

// Sys types used in envelopes.
const (
	TypeEntry = "Entry"
	TypeAsset = "Asset"
	TypeLink  = "Link"
)

// Sys is the system metadata block present on entries, assets and links.
type Sys struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	LinkType    string `json:"linkType,omitempty"`
	ContentType *Link  `json:"contentType,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	Version     int    `json:"version,omitempty"`
}

// Link is a reference to another entry, asset or content type.
type Link struct {
	Sys Sys `json:"sys"`
}

// Fields holds an entry's raw field values keyed by field id.
type Fields map[string]any

// Entry is a raw CMS entry or asset.
type Entry struct {
	Sys    Sys    `json:"sys"`
	Fields Fields `json:"fields"`
}

// ContentTypeID returns the id of the entry's content type, or "".
func (e *Entry) ContentTypeID() string {
	if e == nil || e.Sys.ContentType == nil {
		return ""
	}
	return e.Sys.ContentType.Sys.ID
}

// IsAsset reports whether the entry is an asset.
func (e *Entry) IsAsset() bool {
	return e != nil && e.Sys.Type == TypeAsset
}

// Includes is the side-table of linked entries and assets embedded in a
// response up to the requested include depth.
type Includes struct {
	Entry []Entry `json:"Entry,omitempty"`
	Asset []Entry `json:"Asset,omitempty"`
}

// Envelope is a Content Delivery API collection response.
type Envelope struct {
	Total    int      `json:"total"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
	Items    []Entry  `json:"items"`
	Includes Includes `json:"includes"`
}

// First returns the first item in the envelope, or nil when it is empty.
func (e *Envelope) First() *Entry {
	if e == nil || len(e.Items) == 0 {
		return nil
	}
	return &e.Items[0]
}
