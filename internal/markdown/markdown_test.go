// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
	}{
		{"paragraph", "Hello world", []string{"<p>Hello world</p>"}},
		{"heading with id", "## Fine motor skills", []string{`<h2 id="fine-motor-skills">`}},
		{"emphasis", "**strong** and _em_", []string{"<strong>strong</strong>", "<em>em</em>"}},
		{"raw html passes through", "<div class=\"tip\">Tip</div>", []string{`<div class="tip">Tip</div>`}},
		{"gfm table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.source, got, want)
				}
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty", 0, 1},
		{"short", 50, 1},
		{"exactly one minute", 200, 1},
		{"just over", 201, 2},
		{"long", 1000, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "<p>" + strings.Repeat("word ", tt.words) + "</p>"
			if got := ReadingTime(text); got != tt.want {
				t.Errorf("ReadingTime(%d words) = %d, want %d", tt.words, got, tt.want)
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	got := strings.Join(strings.Fields(StripTags("<p>Hello <strong>there</strong></p>")), " ")
	if got != "Hello there" {
		t.Errorf("StripTags = %q, want %q", got, "Hello there")
	}
}
