// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package richtext renders CMS Rich Text documents (a JSON tree of nodes
// with a nodeType, content children, marks and data) into HTML.
package richtext

import (
	"html"
	"net/url"
	"strings"
)

// AssetLookup resolves an embedded asset id to its URL and alt text.
// It returns an empty url when the asset cannot be found.
type AssetLookup func(id string) (url, alt string)

var blockTags = map[string]string{
	"paragraph":         "p",
	"heading-1":         "h1",
	"heading-2":         "h2",
	"heading-3":         "h3",
	"heading-4":         "h4",
	"heading-5":         "h5",
	"heading-6":         "h6",
	"unordered-list":    "ul",
	"ordered-list":      "ol",
	"list-item":         "li",
	"blockquote":        "blockquote",
	"table":             "table",
	"table-row":         "tr",
	"table-cell":        "td",
	"table-header-cell": "th",
}

var markTags = map[string]string{
	"bold":        "strong",
	"italic":      "em",
	"underline":   "u",
	"code":        "code",
	"superscript": "sup",
	"subscript":   "sub",
}

// IsDocument reports whether v looks like a rich text document.
func IsDocument(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	nt, _ := m["nodeType"].(string)
	return nt == "document"
}

// ToHTML renders a rich text document. Unknown node types render their
// children only. assets may be nil, in which case embedded assets are
// skipped.
func ToHTML(doc map[string]any, assets AssetLookup) string {
	var b strings.Builder
	renderNode(&b, doc, assets)
	return b.String()
}

// PlainText returns the concatenated text values of a document.
func PlainText(doc map[string]any) string {
	var b strings.Builder
	collectText(&b, doc)
	return strings.TrimSpace(b.String())
}

func renderNode(b *strings.Builder, node map[string]any, assets AssetLookup) {
	nodeType, _ := node["nodeType"].(string)

	switch nodeType {
	case "text":
		renderText(b, node)
		return
	case "hr":
		b.WriteString("<hr/>")
		return
	case "hyperlink":
		uri, _ := dataField(node, "uri").(string)
		if !safeURI(uri) {
			renderChildren(b, node, assets)
			return
		}
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(uri))
		b.WriteString(`">`)
		renderChildren(b, node, assets)
		b.WriteString("</a>")
		return
	case "embedded-asset-block":
		if assets == nil {
			return
		}
		url, alt := assets(targetID(node))
		if url == "" {
			return
		}
		b.WriteString(`<img src="`)
		b.WriteString(html.EscapeString(url))
		b.WriteString(`" alt="`)
		b.WriteString(html.EscapeString(alt))
		b.WriteString(`"/>`)
		return
	case "embedded-entry-block", "embedded-entry-inline":
		return
	}

	tag, ok := blockTags[nodeType]
	if !ok {
		renderChildren(b, node, assets)
		return
	}
	b.WriteString("<" + tag + ">")
	renderChildren(b, node, assets)
	b.WriteString("</" + tag + ">")
}

// linkSchemes are the URI schemes a hyperlink may carry. Relative
// references without a scheme are also allowed.
var linkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

func safeURI(uri string) bool {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return !strings.Contains(u.Path, ":")
	}
	return linkSchemes[strings.ToLower(u.Scheme)]
}

func renderChildren(b *strings.Builder, node map[string]any, assets AssetLookup) {
	children, _ := node["content"].([]any)
	for _, c := range children {
		if child, ok := c.(map[string]any); ok {
			renderNode(b, child, assets)
		}
	}
}

func renderText(b *strings.Builder, node map[string]any) {
	value, _ := node["value"].(string)
	var open, close []string
	marks, _ := node["marks"].([]any)
	for _, m := range marks {
		mark, _ := m.(map[string]any)
		t, _ := mark["type"].(string)
		if tag, ok := markTags[t]; ok {
			open = append(open, "<"+tag+">")
			close = append([]string{"</" + tag + ">"}, close...)
		}
	}
	b.WriteString(strings.Join(open, ""))
	b.WriteString(strings.ReplaceAll(html.EscapeString(value), "\n", "<br/>"))
	b.WriteString(strings.Join(close, ""))
}

func collectText(b *strings.Builder, node map[string]any) {
	if v, ok := node["value"].(string); ok {
		b.WriteString(v)
		b.WriteString(" ")
	}
	children, _ := node["content"].([]any)
	for _, c := range children {
		if child, ok := c.(map[string]any); ok {
			collectText(b, child)
		}
	}
}

func dataField(node map[string]any, key string) any {
	data, _ := node["data"].(map[string]any)
	return data[key]
}

func targetID(node map[string]any) string {
	target, _ := dataField(node, "target").(map[string]any)
	sys, _ := target["sys"].(map[string]any)
	id, _ := sys["id"].(string)
	return id
}
