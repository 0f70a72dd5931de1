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

// Package operation orchestrates URL replacement over files and directory
// trees: backup, decode, strategy dispatch, write, restore and cleanup.
package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imgrc/pkg/log"
)

// 💾 BackupSuffix is appended to a file path to name its backup sibling
const BackupSuffix = ".backup"

var (
	// ❌ ErrFileNotFound is returned when the source file or directory is missing
	ErrFileNotFound = errors.New("file does not exist")
	// ❌ ErrEmptyMapping is returned when the URL mapping has no pairs
	ErrEmptyMapping = errors.New("url mapping must not be empty")
	// ❌ ErrEncoding is returned when file content cannot be decoded
	ErrEncoding = errors.New("unable to decode file content")
	// ❌ ErrNotDirectory is returned when a directory operation gets a file path
	ErrNotDirectory = errors.New("path is not a directory")
)

// 📄 Result is the outcome of one file replacement. It is never mutated after
// creation; a true Success means the output file was written with every mapped
// URL replaced, a false Success means nothing was written beyond the backup.
type Result struct {
	SourcePath   string // File the URLs were read from
	OutputPath   string // File the rewritten content was written to
	Success      bool   // Whether the replacement completed
	Replacements int    // Number of replacements applied
	BackupPath   string // Backup file path, empty when no backup was taken
	Err          string // Failure description, empty on success
}

// 🔧 Options contains configuration for the replacer
type Options struct {
	// Console receives human-readable per-file output. Optional.
	Console *log.Logger
}

// 🎮 Replacer applies URL mappings to files on disk
type Replacer struct {
	console *log.Logger
}

// 🏭 New creates a new replacer with the given options
func New(opts Options) *Replacer {
	return &Replacer{
		console: opts.Console,
	}
}

// 📝 logFileOperation mirrors a result onto the console logger, if any
func (r *Replacer) logFileOperation(ctx context.Context, format string, result Result) {
	if r.console == nil {
		return
	}

	status := "replaced"
	switch {
	case !result.Success:
		status = "failed"
	case result.Replacements == 0:
		status = "unchanged"
	}

	r.console.LogFileOperation(ctx, log.FileOperation{
		Path:         result.SourcePath,
		Format:       format,
		Status:       status,
		Failed:       !result.Success,
		Replacements: result.Replacements,
		HasBackup:    result.BackupPath != "",
	})
}
