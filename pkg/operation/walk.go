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

package operation

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imgrc/pkg/log"
	"github.com/walteh/imgrc/pkg/mapping"
)

// 📑 supportedExtensions are the document formats the walker picks up
var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// 🔧 WalkOptions configures a directory replacement run
type WalkOptions struct {
	// OutputDir mirrors the source layout under another root. Empty means
	// files are rewritten in place.
	OutputDir string
	// Recursive includes subdirectories
	Recursive bool
	// Backup copies each file to <path>.backup before an in-place write
	Backup bool
	// IgnorePatterns are doublestar globs matched against the path relative
	// to the source directory; matches are skipped
	IgnorePatterns []string
}

// 📂 ReplaceInDirectory applies the mapping to every supported file under dir,
// strictly sequentially, and returns one result per file in enumeration
// order. A failed file is recorded and the walk continues; only a missing or
// non-directory dir is returned as an error.
func (r *Replacer) ReplaceInDirectory(ctx context.Context, dir string, m *mapping.Mapping, opts WalkOptions) ([]Result, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("%s: %w", dir, ErrFileNotFound)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	logger.Info().Str("dir", dir).Bool("recursive", opts.Recursive).Msg("replacing urls in directory")
	if r.console != nil {
		r.console.StartDirectoryOperation(ctx, log.DirectoryOperation{
			Dir:       dir,
			OutputDir: opts.OutputDir,
			Recursive: opts.Recursive,
		})
		defer r.console.EndDirectoryOperation(ctx)
	}

	files, err := r.enumerate(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, path := range files {
		outputPath := ""
		if opts.OutputDir != "" {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			outputPath = filepath.Join(opts.OutputDir, rel)
		}
		results = append(results, r.ReplaceInFile(ctx, path, m, outputPath, opts.Backup))
	}

	succeeded := 0
	replacements := 0
	for _, res := range results {
		if res.Success {
			succeeded++
			replacements += res.Replacements
		}
	}
	logger.Info().
		Str("dir", dir).
		Int("files", len(results)).
		Int("succeeded", succeeded).
		Int("replacements", replacements).
		Msg("directory replacement complete")

	return results, nil
}

// 📂 enumerate lists the supported files under dir in deterministic order
func (r *Replacer) enumerate(ctx context.Context, dir string, opts WalkOptions) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	var files []string

	if opts.Recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn().Str("path", path).Err(err).Msg("skipping unreadable entry")
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if r.includeFile(ctx, dir, path, opts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walking directory: %w", err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if r.includeFile(ctx, dir, path, opts) {
			files = append(files, path)
		}
	}
	return files, nil
}

// 🔍 includeFile checks extension and ignore patterns for one candidate
func (r *Replacer) includeFile(ctx context.Context, dir, path string, opts WalkOptions) bool {
	logger := zerolog.Ctx(ctx)

	if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}

	if len(opts.IgnorePatterns) == 0 {
		return true
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range opts.IgnorePatterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return false
		}
	}
	return true
}
