package replace

import (
	"bytes"
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/walteh/imgrc/pkg/mapping"
)

// HTMLStrategy implements Strategy for HTML documents. The document is parsed
// into a DOM tree; img src and data-src attributes are rewritten on exact
// match, and CSS inside style elements and inline style attributes gets
// substring replacement. Attribute rewrites count 1 each; CSS replacements
// count 1 per pair found, not per occurrence. On parse or render failure the
// raw content goes through the text strategy instead.
type HTMLStrategy struct {
	fallback *TextStrategy
}

// NewHTMLStrategy creates a new HTMLStrategy
func NewHTMLStrategy() *HTMLStrategy {
	return &HTMLStrategy{fallback: NewTextStrategy()}
}

// Name implements Strategy.Name
func (s *HTMLStrategy) Name() string {
	return "html"
}

// Replace implements Strategy.Replace
func (s *HTMLStrategy) Replace(ctx context.Context, content string, m *mapping.Mapping) (string, int) {
	logger := zerolog.Ctx(ctx)

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		logger.Warn().Err(err).Msg("html parse failed, falling back to text replacement")
		return s.fallback.Replace(ctx, content, m)
	}

	replacements := rewriteNode(doc, m)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		logger.Warn().Err(err).Msg("html render failed, falling back to text replacement")
		return s.fallback.Replace(ctx, content, m)
	}

	return buf.String(), replacements
}

// rewriteNode walks the tree and applies the mapping to one node and its
// children, returning the replacement count.
func rewriteNode(n *html.Node, m *mapping.Mapping) int {
	replacements := 0

	if n.Type == html.ElementNode {
		switch {
		case n.DataAtom == atom.Img:
			replacements += rewriteImgAttrs(n, m)
		case n.DataAtom == atom.Style:
			replacements += rewriteStyleText(n, m)
		}
		replacements += rewriteInlineStyle(n, m)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		replacements += rewriteNode(c, m)
	}
	return replacements
}

// rewriteImgAttrs rewrites src and data-src attributes that exactly match a
// mapped URL. Substring matches are left alone.
func rewriteImgAttrs(n *html.Node, m *mapping.Mapping) int {
	replacements := 0
	for i, a := range n.Attr {
		if a.Key != "src" && a.Key != "data-src" {
			continue
		}
		if newURL, ok := m.Get(a.Val); ok {
			n.Attr[i].Val = newURL
			replacements++
		}
	}
	return replacements
}

// rewriteStyleText applies substring replacement to the text of a style
// element, counting 1 per pair found.
func rewriteStyleText(n *html.Node, m *mapping.Mapping) int {
	replacements := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		for _, p := range m.Pairs() {
			if p.Old != "" && strings.Contains(c.Data, p.Old) {
				c.Data = strings.ReplaceAll(c.Data, p.Old, p.New)
				replacements++
			}
		}
	}
	return replacements
}

// rewriteInlineStyle applies substring replacement to an inline style
// attribute, counting 1 per pair found.
func rewriteInlineStyle(n *html.Node, m *mapping.Mapping) int {
	replacements := 0
	for i, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		val := a.Val
		for _, p := range m.Pairs() {
			if p.Old != "" && strings.Contains(val, p.Old) {
				val = strings.ReplaceAll(val, p.Old, p.New)
				replacements++
			}
		}
		if val != a.Val {
			n.Attr[i].Val = val
		}
	}
	return replacements
}
