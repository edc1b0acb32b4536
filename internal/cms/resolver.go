// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

import "log/slog"

// Resolver finds the targets of link fields inside a response envelope.
// The include mechanism does not guarantee that every link is embedded, so
// callers may hand in secondary envelopes fetched separately (all authors,
// all assets, ...) that are searched after the primary one.
//
// A Resolver never performs I/O and never mutates its envelopes.
type Resolver struct {
	primary   *Envelope
	secondary []*Envelope
}

// NewResolver creates a resolver over primary and any secondary envelopes.
// Nil envelopes are ignored.
func NewResolver(primary *Envelope, secondary ...*Envelope) *Resolver {
	r := &Resolver{primary: primary}
	for _, env := range secondary {
		if env != nil {
			r.secondary = append(r.secondary, env)
		}
	}
	return r
}

// Entry resolves an entry id. Search order: the primary envelope's
// includes, the primary items, then every secondary envelope's items and
// includes. Returns nil if id is empty or nothing matches.
func (r *Resolver) Entry(id string) *Entry {
	if id == "" {
		return nil
	}
	if r.primary != nil {
		if e := findByID(r.primary.Includes.Entry, id, anyKind); e != nil {
			return e
		}
		if e := findByID(r.primary.Items, id, entryKind); e != nil {
			return e
		}
	}
	for _, env := range r.secondary {
		if e := findByID(env.Items, id, entryKind); e != nil {
			return e
		}
		if e := findByID(env.Includes.Entry, id, anyKind); e != nil {
			return e
		}
	}
	slog.Debug("cms link unresolved", "type", TypeEntry, "id", id)
	return nil
}

// Asset resolves an asset id with the same search order as Entry.
func (r *Resolver) Asset(id string) *Entry {
	if id == "" {
		return nil
	}
	if r.primary != nil {
		if a := findByID(r.primary.Includes.Asset, id, anyKind); a != nil {
			return a
		}
	}
	for _, env := range r.secondary {
		if a := findByID(env.Items, id, assetKind); a != nil {
			return a
		}
		if a := findByID(env.Includes.Asset, id, anyKind); a != nil {
			return a
		}
	}
	slog.Debug("cms link unresolved", "type", TypeAsset, "id", id)
	return nil
}

// LinkedEntry resolves the entry referenced by field name of f. A field
// that already carries an embedded entry (sys plus fields) is returned as is.
func (r *Resolver) LinkedEntry(f Fields, name string) *Entry {
	if e := embedded(f, name); e != nil {
		return e
	}
	return r.Entry(LinkID(f, name))
}

// LinkedEntries resolves an array-of-links field, dropping unresolved links
// and keeping the authored order.
func (r *Resolver) LinkedEntries(f Fields, name string) []*Entry {
	var out []*Entry
	for _, id := range LinkIDs(f, name) {
		if e := r.Entry(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// LinkedAsset resolves the asset referenced by field name of f.
func (r *Resolver) LinkedAsset(f Fields, name string) *Entry {
	if e := embedded(f, name); e != nil {
		return e
	}
	return r.Asset(LinkID(f, name))
}

// ImageURL returns the https URL of the image in field name. Besides asset
// links, a plain string URL is accepted. Returns "" when unresolved.
func (r *Resolver) ImageURL(f Fields, name string) string {
	if s := Value(f, name, ""); s != "" {
		return NormalizeURL(s)
	}
	return AssetURL(r.LinkedAsset(f, name))
}

// kind restricts findByID when searching item lists that may mix entries
// and assets. Side-tables are already split by kind.
type kind int

const (
	anyKind kind = iota
	entryKind
	assetKind
)

func findByID(entries []Entry, id string, k kind) *Entry {
	for i := range entries {
		e := &entries[i]
		if e.Sys.ID != id {
			continue
		}
		switch {
		case k == entryKind && e.IsAsset():
			continue
		case k == assetKind && !e.IsAsset():
			continue
		}
		return e
	}
	return nil
}

// embedded returns an entry whose link was already resolved inline by the
// producer of the envelope, or nil for plain links.
func embedded(f Fields, name string) *Entry {
	m := Value[map[string]any](f, name, nil)
	if m == nil {
		return nil
	}
	if _, ok := m["fields"]; !ok {
		return nil
	}
	var e Entry
	if err := Decode(m, &e); err != nil || e.Sys.ID == "" {
		return nil
	}
	return &e
}
