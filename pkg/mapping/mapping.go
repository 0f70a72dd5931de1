// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mapping holds the ordered URL mapping that the replacement engine
// consumes, along with loading, saving and validation of persisted mappings.
package mapping

import (
	"context"

	"github.com/rs/zerolog"
)

// 🔄 Pair associates an original URL with its replacement
type Pair struct {
	Old string // Original URL to replace
	New string // Replacement URL
}

// 🗺️ Mapping is an ordered association from original URLs to replacement URLs.
// Keys are unique. Insertion order is preserved because replacement counts are
// order-sensitive when one URL is a substring of another's replacement.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

// 🏭 New creates an empty mapping
func New() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// 🏭 FromPairs creates a mapping from a pair slice, preserving order.
// Later duplicates overwrite the replacement of earlier ones in place.
func FromPairs(pairs []Pair) *Mapping {
	m := New()
	for _, p := range pairs {
		m.Set(p.Old, p.New)
	}
	return m
}

// 🤝 Zip pairs original URLs with replacement URLs positionally. Originals
// without a matching replacement are skipped with a warning.
func Zip(ctx context.Context, originals, replacements []string) *Mapping {
	logger := zerolog.Ctx(ctx)
	if len(originals) != len(replacements) {
		logger.Warn().
			Int("originals", len(originals)).
			Int("replacements", len(replacements)).
			Msg("url count mismatch")
	}

	m := New()
	for i, original := range originals {
		if i >= len(replacements) {
			logger.Warn().Str("url", original).Msg("no replacement url for original")
			continue
		}
		m.Set(original, replacements[i])
	}
	return m
}

// 📝 Set adds or updates a pair. A new key is appended at the end.
func (m *Mapping) Set(oldURL, newURL string) {
	if i, ok := m.index[oldURL]; ok {
		m.pairs[i].New = newURL
		return
	}
	m.index[oldURL] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Old: oldURL, New: newURL})
}

// 🔍 Get returns the replacement for a URL
func (m *Mapping) Get(oldURL string) (string, bool) {
	i, ok := m.index[oldURL]
	if !ok {
		return "", false
	}
	return m.pairs[i].New, true
}

// 🔍 Has reports whether a URL is mapped
func (m *Mapping) Has(oldURL string) bool {
	_, ok := m.index[oldURL]
	return ok
}

// 🗑️ Delete removes a pair, keeping the order of the remaining pairs
func (m *Mapping) Delete(oldURL string) {
	i, ok := m.index[oldURL]
	if !ok {
		return
	}
	m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
	delete(m.index, oldURL)
	for j := i; j < len(m.pairs); j++ {
		m.index[m.pairs[j].Old] = j
	}
}

// 🔢 Len returns the number of pairs
func (m *Mapping) Len() int {
	return len(m.pairs)
}

// 📋 Pairs returns the pairs in insertion order. The returned slice is a copy.
func (m *Mapping) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}
