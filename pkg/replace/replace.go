// Package replace implements format-specific URL replacement strategies for
// plain text, Markdown and HTML content.
package replace

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/walteh/imgrc/pkg/mapping"
)

// Strategy locates and substitutes mapped URLs in one document format
type Strategy interface {
	// Name identifies the strategy in logs and results
	Name() string

	// Replace substitutes every mapped URL in content, returning the new
	// content and the number of replacements applied
	Replace(ctx context.Context, content string, m *mapping.Mapping) (string, int)
}

// ForPath selects the strategy for a file based on its extension. Unknown
// extensions fall back to plain text replacement.
func ForPath(path string) Strategy {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return NewHTMLStrategy()
	case ".md":
		return NewMarkdownStrategy()
	default:
		return NewTextStrategy()
	}
}
