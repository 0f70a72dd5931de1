package replace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/imgrc/pkg/mapping"
)

func testMapping() *mapping.Mapping {
	return mapping.FromPairs([]mapping.Pair{
		{Old: "http://a.example.com/1.jpg", New: "http://b.example.com/1.jpg"},
	})
}

func TestHTMLStrategy_Replace(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantContains []string
		wantAbsent   []string
		wantCount    int
	}{
		{
			name:         "img_src",
			content:      `<html><body><img src="http://a.example.com/1.jpg"></body></html>`,
			wantContains: []string{`src="http://b.example.com/1.jpg"`},
			wantAbsent:   []string{"http://a.example.com/1.jpg"},
			wantCount:    1,
		},
		{
			name:         "img_data_src",
			content:      `<img src="placeholder.png" data-src="http://a.example.com/1.jpg">`,
			wantContains: []string{`data-src="http://b.example.com/1.jpg"`, `src="placeholder.png"`},
			wantCount:    1,
		},
		{
			name:         "img_src_and_data_src",
			content:      `<img src="http://a.example.com/1.jpg" data-src="http://a.example.com/1.jpg">`,
			wantContains: []string{`src="http://b.example.com/1.jpg"`, `data-src="http://b.example.com/1.jpg"`},
			wantCount:    2,
		},
		{
			// Attribute rewriting is exact match only
			name:         "img_src_substring_not_replaced",
			content:      `<img src="http://a.example.com/1.jpg?w=100">`,
			wantContains: []string{`src="http://a.example.com/1.jpg?w=100"`},
			wantCount:    0,
		},
		{
			name:         "style_element",
			content:      `<style>body { background: url(http://a.example.com/1.jpg); }</style>`,
			wantContains: []string{"url(http://b.example.com/1.jpg)"},
			wantCount:    1,
		},
		{
			// CSS replacement counts once per pair, not per occurrence
			name: "style_element_two_occurrences",
			content: `<style>.a { background: url(http://a.example.com/1.jpg); }` +
				`.b { background: url(http://a.example.com/1.jpg); }</style>`,
			wantContains: []string{".a { background: url(http://b.example.com/1.jpg); }"},
			wantAbsent:   []string{"http://a.example.com/1.jpg"},
			wantCount:    1,
		},
		{
			name:         "inline_style",
			content:      `<div style="background-image: url(http://a.example.com/1.jpg)">x</div>`,
			wantContains: []string{"url(http://b.example.com/1.jpg)"},
			wantCount:    1,
		},
		{
			// x/net/html parses malformed markup without erroring; the img
			// attribute still gets rewritten
			name:         "malformed_html",
			content:      `<div><img src="http://a.example.com/1.jpg"><span>unclosed`,
			wantContains: []string{`src="http://b.example.com/1.jpg"`},
			wantCount:    1,
		},
		{
			name:         "no_match",
			content:      `<img src="http://c.example.com/other.png">`,
			wantContains: []string{`src="http://c.example.com/other.png"`},
			wantCount:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewHTMLStrategy()
			got, count := s.Replace(context.Background(), tt.content, testMapping())

			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
			for _, absent := range tt.wantAbsent {
				assert.NotContains(t, got, absent)
			}
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"doc.html", "html"},
		{"doc.HTM", "html"},
		{"notes.md", "markdown"},
		{"readme.txt", "text"},
		{"unknown.xyz", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ForPath(tt.path).Name())
		})
	}
}
