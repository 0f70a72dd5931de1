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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ♻️ RestoreFromBackup copies <path>.backup back over path. It reports false
// and logs, rather than erroring, when no backup exists or the copy fails.
// Restoring twice is a no-op the second time around.
func (r *Replacer) RestoreFromBackup(ctx context.Context, path string) bool {
	logger := zerolog.Ctx(ctx)
	backupPath := path + BackupSuffix

	if _, err := os.Stat(backupPath); err != nil {
		logger.Error().Str("backup", backupPath).Msg("backup file does not exist")
		return false
	}

	if err := copyFile(backupPath, path); err != nil {
		logger.Error().Str("file", path).Err(err).Msg("restoring from backup failed")
		return false
	}

	logger.Info().Str("file", path).Msg("restored from backup")
	return true
}

// 🗑️ CleanupBackups deletes every <name>.backup file under dir and returns how
// many were removed. Files that cannot be deleted are logged and skipped.
func (r *Replacer) CleanupBackups(ctx context.Context, dir string, recursive bool) (int, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(dir)
	if err != nil {
		return 0, errors.Errorf("%s: %w", dir, ErrFileNotFound)
	}
	if !info.IsDir() {
		return 0, errors.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	var backups []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn().Str("path", path).Err(err).Msg("skipping unreadable entry")
				return nil
			}
			if !d.IsDir() && strings.HasSuffix(path, BackupSuffix) {
				backups = append(backups, path)
			}
			return nil
		})
		if err != nil {
			return 0, errors.Errorf("walking directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return 0, errors.Errorf("reading directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), BackupSuffix) {
				backups = append(backups, filepath.Join(dir, entry.Name()))
			}
		}
	}

	cleaned := 0
	for _, path := range backups {
		if err := os.Remove(path); err != nil {
			logger.Warn().Str("backup", path).Err(err).Msg("deleting backup failed")
			continue
		}
		cleaned++
		logger.Debug().Str("backup", path).Msg("backup deleted")
	}

	logger.Info().Str("dir", dir).Int("cleaned", cleaned).Msg("backup cleanup complete")
	return cleaned, nil
}
