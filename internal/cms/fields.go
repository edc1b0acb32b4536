// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value reads field name from f. The locale-wrapped form ({"en-US": v}) is
// tried first, then the bare value, then def is returned. JSON numbers are
// converted for int targets and []any is converted for []string targets.
func Value[T any](f Fields, name string, def T) T {
	raw, ok := f[name]
	if !ok || raw == nil {
		return def
	}
	if wrapped, ok := raw.(map[string]any); ok {
		if v, ok := wrapped[Locale]; ok {
			if out, ok := convert[T](v); ok {
				return out
			}
		}
	}
	if out, ok := convert[T](raw); ok {
		return out
	}
	return def
}

// Text reads a string field, returning def when it is missing or blank.
func Text(f Fields, name, def string) string {
	v := strings.TrimSpace(Value(f, name, ""))
	if v == "" {
		return def
	}
	return v
}

// LinkID returns the sys.id of a link field, or "" when the field is absent
// or is not a link.
func LinkID(f Fields, name string) string {
	return linkIDOf(Value[map[string]any](f, name, nil))
}

// LinkIDs returns the ids of an array-of-links field, skipping malformed
// elements.
func LinkIDs(f Fields, name string) []string {
	var ids []string
	for _, el := range Value[[]any](f, name, nil) {
		m, _ := el.(map[string]any)
		if id := linkIDOf(m); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func linkIDOf(m map[string]any) string {
	sys, _ := m["sys"].(map[string]any)
	id, _ := sys["id"].(string)
	return id
}

// NormalizeURL turns protocol-relative CMS asset URLs ("//images...") into
// explicit https URLs. Other values are returned trimmed.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// AssetURL returns the normalized file URL of an asset, or "".
func AssetURL(a *Entry) string {
	if a == nil {
		return ""
	}
	file := Value[map[string]any](a.Fields, "file", nil)
	u, _ := file["url"].(string)
	return NormalizeURL(u)
}

// AssetTitle returns the asset's description, falling back to its title.
func AssetTitle(a *Entry) string {
	if a == nil {
		return ""
	}
	return Text(a.Fields, "description", Text(a.Fields, "title", ""))
}

// Decode converts a decoded JSON value (typically a map[string]any object
// field) into out by re-encoding it.
func Decode(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func convert[T any](v any) (T, bool) {
	var out T
	if v == nil {
		return out, false
	}
	if t, ok := v.(T); ok {
		return t, true
	}
	switch p := any(&out).(type) {
	case *int:
		switch n := v.(type) {
		case float64:
			*p = int(n)
			return out, true
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return out, false
			}
			*p = int(i)
			return out, true
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return out, false
			}
			*p = i
			return out, true
		}
	case *float64:
		if n, ok := v.(int); ok {
			*p = float64(n)
			return out, true
		}
	case *string:
		switch n := v.(type) {
		case float64:
			*p = strconv.FormatFloat(n, 'f', -1, 64)
			return out, true
		case bool:
			*p = strconv.FormatBool(n)
			return out, true
		}
	case *bool:
		if s, ok := v.(string); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return out, false
			}
			*p = b
			return out, true
		}
	case *[]string:
		arr, ok := v.([]any)
		if !ok {
			return out, false
		}
		strs := make([]string, 0, len(arr))
		for _, el := range arr {
			if s, ok := el.(string); ok {
				strs = append(strs, s)
			}
		}
		*p = strs
		return out, true
	}
	return out, false
}
