package replace

import (
	"context"
	"strings"

	"github.com/walteh/imgrc/pkg/mapping"
)

// TextStrategy implements Strategy using exact substring replacement
type TextStrategy struct{}

// NewTextStrategy creates a new TextStrategy
func NewTextStrategy() *TextStrategy {
	return &TextStrategy{}
}

// Name implements Strategy.Name
func (s *TextStrategy) Name() string {
	return "text"
}

// Replace implements Strategy.Replace. Each pair is applied in mapping order.
// The count for a pair is the number of occurrences in the original content,
// not the mutating content, so a replacement value that contains its own key
// is not counted twice. When one key is a substring of another pair's
// replacement value the result depends on pair order; callers own that order.
func (s *TextStrategy) Replace(ctx context.Context, content string, m *mapping.Mapping) (string, int) {
	current := content
	replacements := 0

	for _, p := range m.Pairs() {
		if p.Old == "" {
			continue
		}
		if strings.Contains(current, p.Old) {
			current = strings.ReplaceAll(current, p.Old, p.New)
			replacements += strings.Count(content, p.Old)
		}
	}

	return current, replacements
}
