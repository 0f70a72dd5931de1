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

package mapping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for mapping file parsers
type Parser interface {
	// 📝 Parse parses the mapping from bytes
	Parse(ctx context.Context, data []byte) (*Mapping, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load loads a URL mapping from a file
func Load(ctx context.Context, path string) (*Mapping, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading url mapping")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading mapping file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	m, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing mapping: %w", err)
	}

	return m, nil
}

// 💾 Save writes the mapping to a file as a JSON object, one pair per line,
// preserving pair order.
func (m *Mapping) Save(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Int("pairs", m.Len()).Msg("saving url mapping")

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, p := range m.pairs {
		k, err := json.Marshal(p.Old)
		if err != nil {
			return errors.Errorf("encoding key: %w", err)
		}
		v, err := json.Marshal(p.New)
		if err != nil {
			return errors.Errorf("encoding value: %w", err)
		}
		fmt.Fprintf(&buf, "  %s: %s", k, v)
		if i < len(m.pairs)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Errorf("writing mapping file: %w", err)
	}
	return nil
}

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".json")
}

// Parse decodes a JSON object of string to string. The decoder walks tokens
// instead of unmarshaling into a map so that file order survives.
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.Errorf("mapping file must contain a JSON object, got %v", tok)
	}

	m := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("parsing JSON key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("mapping key must be a string, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("parsing JSON value: %w", err)
		}
		val, ok := valTok.(string)
		if !ok {
			return nil, errors.Errorf("mapping value for %q must be a string, got %v", key, valTok)
		}

		m.Set(key, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	return m, nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// Parse decodes a YAML mapping of string to string. Decoding goes through
// yaml.Node rather than a map so that document order survives.
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	m := New()
	if len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("mapping file must contain a YAML mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		val := root.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("mapping entries must be scalar strings (line %d)", key.Line)
		}
		m.Set(key.Value, val.Value)
	}

	return m, nil
}
