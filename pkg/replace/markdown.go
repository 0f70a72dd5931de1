package replace

import (
	"context"
	"regexp"
	"strings"

	"github.com/walteh/imgrc/pkg/mapping"
)

// MarkdownStrategy implements Strategy for Markdown documents. Each pair is
// applied in three passes: Markdown image syntax, embedded HTML img tags, and
// a plain substring pass that mops up anything the structural passes missed.
// A URL matched by more than one pass is counted once per pass; that double
// count is accepted behavior.
type MarkdownStrategy struct{}

// NewMarkdownStrategy creates a new MarkdownStrategy
func NewMarkdownStrategy() *MarkdownStrategy {
	return &MarkdownStrategy{}
}

// Name implements Strategy.Name
func (s *MarkdownStrategy) Name() string {
	return "markdown"
}

// Replace implements Strategy.Replace
func (s *MarkdownStrategy) Replace(ctx context.Context, content string, m *mapping.Mapping) (string, int) {
	current := content
	replacements := 0

	for _, p := range m.Pairs() {
		if p.Old == "" {
			continue
		}

		// Markdown image syntax: ![alt](URL)
		mdPattern := regexp.MustCompile(`(!\[.*?\]\()` + regexp.QuoteMeta(p.Old) + `(\))`)
		if n := len(mdPattern.FindAllStringIndex(current, -1)); n > 0 {
			current = mdPattern.ReplaceAllString(current, "${1}"+literal(p.New)+"${2}")
			replacements += n
		}

		// Embedded HTML img tags
		imgPattern := regexp.MustCompile(`(?i)(<img[^>]+src=["']?)` + regexp.QuoteMeta(p.Old) + `(["']?[^>]*>)`)
		if n := len(imgPattern.FindAllStringIndex(current, -1)); n > 0 {
			current = imgPattern.ReplaceAllString(current, "${1}"+literal(p.New)+"${2}")
			replacements += n
		}

		// Bare URLs
		if n := strings.Count(current, p.Old); n > 0 {
			current = strings.ReplaceAll(current, p.Old, p.New)
			replacements += n
		}
	}

	return current, replacements
}

// literal escapes $ so a replacement URL is expanded verbatim
func literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
