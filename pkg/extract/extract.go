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

// Package extract pulls image URL references out of text, Markdown and HTML
// documents. It is the discovery half of the pipeline: the URLs it finds are
// what the upload collaborators map to new locations before the replacement
// engine rewrites the documents.
package extract

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsupportedFormat is reported when a file's extension is not a known
// document format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// Extraction is the outcome of scanning one file for image URLs
type Extraction struct {
	SourcePath string   // File that was scanned
	FileType   string   // File extension, lowercased
	Success    bool     // Whether the scan completed
	URLs       []string // Image URLs found, deduplicated in first-seen order
	Err        string   // Failure description, empty on success
}

// imageURLPattern matches absolute http(s) URLs ending in an image extension,
// with an optional query string.
var imageURLPattern = regexp.MustCompile(
	`(?i)https?://[^\s<>"'{},|\\^` + "`" + `\[\]]+\.(?:jpg|jpeg|png|gif|bmp|webp)(?:\?[^\s<>"'{},|\\^` + "`" + `\[\]]*)?`)

// mdImagePattern matches the URL inside Markdown image syntax
var mdImagePattern = regexp.MustCompile(`(?i)!\[.*?\]\((https?://[^\s)]+)\)`)

// FromFile scans one document for image URLs, dispatching on its extension.
// Failures are recorded in the extraction, never returned.
func FromFile(ctx context.Context, path string) Extraction {
	logger := zerolog.Ctx(ctx)

	ext := strings.ToLower(filepath.Ext(path))
	result := Extraction{SourcePath: path, FileType: ext}

	urls, err := extractFile(ctx, path, ext)
	if err != nil {
		result.Err = err.Error()
		logger.Error().Str("file", path).Err(err).Msg("image extraction failed")
		return result
	}

	result.Success = true
	result.URLs = dedupe(filterImageURLs(urls))
	logger.Info().Str("file", path).Int("urls", len(result.URLs)).Msg("image extraction complete")
	return result
}

func extractFile(ctx context.Context, path, ext string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Errorf("file does not exist: %s", path)
	}
	if !supportedExtensions[ext] {
		return nil, errors.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	// Image URLs are plain ASCII, so no decoding pass is needed here
	content := string(data)

	switch ext {
	case ".html", ".htm":
		return FromHTML(ctx, content), nil
	case ".md":
		return FromMarkdown(ctx, content), nil
	default:
		return FromText(content), nil
	}
}

// FromText returns the image URLs found in plain text
func FromText(content string) []string {
	return imageURLPattern.FindAllString(content, -1)
}

// FromMarkdown returns the image URLs found in a Markdown document: image
// syntax destinations, embedded img tags, then bare URLs.
func FromMarkdown(ctx context.Context, content string) []string {
	var urls []string

	for _, match := range mdImagePattern.FindAllStringSubmatch(content, -1) {
		u := match[1]
		if hasImageExtensionHint(u) || strings.Contains(u, "?") {
			urls = append(urls, u)
		}
	}

	urls = append(urls, FromHTML(ctx, content)...)
	urls = append(urls, FromText(content)...)
	return urls
}

// FromDirectory scans every supported file under dir. Per-file failures are
// recorded in their extraction; only a missing or non-directory dir errors.
func FromDirectory(ctx context.Context, dir string, recursive bool) ([]Extraction, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("path is not a directory: %s", dir)
	}

	var files []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn().Str("path", path).Err(err).Msg("skipping unreadable entry")
				return nil
			}
			if !d.IsDir() && supportedExtensions[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walking directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Errorf("reading directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	var results []Extraction
	for _, path := range files {
		results = append(results, FromFile(ctx, path))
	}

	found := 0
	for _, r := range results {
		found += len(r.URLs)
	}
	logger.Info().Str("dir", dir).Int("files", len(results)).Int("urls", found).Msg("directory extraction complete")

	return results, nil
}

// UniqueURLs collects every URL across successful extractions, deduplicated
// in first-seen order.
func UniqueURLs(results []Extraction) []string {
	var all []string
	for _, r := range results {
		if r.Success {
			all = append(all, r.URLs...)
		}
	}
	return dedupe(all)
}

func filterImageURLs(urls []string) []string {
	var valid []string
	for _, u := range urls {
		if IsImageURL(u) {
			valid = append(valid, u)
		}
	}
	return valid
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
