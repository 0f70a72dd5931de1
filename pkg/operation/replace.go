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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imgrc/pkg/mapping"
	"github.com/walteh/imgrc/pkg/replace"
)

// 🔄 ReplaceInFile rewrites every mapped URL in one file. When outputPath is
// empty the file is rewritten in place. With backup enabled and an in-place
// write, the original is first copied byte-for-byte to <path>.backup.
//
// Failures never propagate: any error during read, transform or write lands
// in the result's Err field with Success false.
func (r *Replacer) ReplaceInFile(ctx context.Context, path string, m *mapping.Mapping, outputPath string, backup bool) Result {
	logger := zerolog.Ctx(ctx)

	result := Result{SourcePath: path, OutputPath: path}
	if outputPath != "" {
		result.OutputPath = outputPath
	}

	format, err := r.replaceInFile(ctx, path, m, &result, backup)
	if err != nil {
		result.Err = err.Error()
		logger.Error().Str("file", path).Err(err).Msg("url replacement failed")
	} else {
		result.Success = true
		logger.Info().
			Str("file", path).
			Str("output", result.OutputPath).
			Int("replacements", result.Replacements).
			Msg("url replacement complete")
	}

	r.logFileOperation(ctx, format, result)
	return result
}

// 📄 replaceInFile does the work for ReplaceInFile, filling result as it goes
func (r *Replacer) replaceInFile(ctx context.Context, path string, m *mapping.Mapping, result *Result, backup bool) (string, error) {
	logger := zerolog.Ctx(ctx)

	// Preconditions
	if _, err := os.Stat(path); err != nil {
		return "", errors.Errorf("%s: %w", path, ErrFileNotFound)
	}
	if m == nil || m.Len() == 0 {
		return "", errors.Errorf("validating mapping: %w", ErrEmptyMapping)
	}

	// Back up before any write when rewriting in place
	if backup && result.OutputPath == path {
		backupPath := path + BackupSuffix
		if err := copyFile(path, backupPath); err != nil {
			return "", errors.Errorf("creating backup: %w", err)
		}
		result.BackupPath = backupPath
		logger.Info().Str("backup", backupPath).Msg("backup created")
	}

	// Read and decode
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading file: %w", err)
	}
	content, err := decodeContent(ctx, data)
	if err != nil {
		return "", err
	}

	// Dispatch on the source file's extension
	strategy := replace.ForPath(path)
	newContent, replacements := strategy.Replace(ctx, content, m)
	result.Replacements = replacements

	// Write, creating parent directories as needed
	outputAbs, err := filepath.Abs(result.OutputPath)
	if err != nil {
		return strategy.Name(), errors.Errorf("resolving output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputAbs), 0755); err != nil {
		return strategy.Name(), errors.Errorf("creating parent directories: %w", err)
	}
	if err := os.WriteFile(result.OutputPath, []byte(newContent), 0644); err != nil {
		return strategy.Name(), errors.Errorf("writing file: %w", err)
	}

	return strategy.Name(), nil
}

// 📋 copyFile copies a file byte-for-byte
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Errorf("reading %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return errors.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
