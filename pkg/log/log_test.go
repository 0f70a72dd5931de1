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

package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "docs/a.txt",
					Format:       "text",
					Status:       "replaced",
					Replacements: 2,
					HasBackup:    true,
				})
			},
			wantLogs: []string{
				fmt.Sprintf("⟳ %-35s %-10s %s", "docs/a.txt", "text", "replaced"),
			},
		},
		{
			name: "log_failed_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:   "docs/b.md",
					Format: "markdown",
					Status: "failed",
					Failed: true,
				})
			},
			wantLogs: []string{
				fmt.Sprintf("✗ %-35s %-10s %s", "docs/b.md", "markdown", "failed"),
			},
		},
		{
			name: "log_directory_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartDirectoryOperation(context.Background(), DirectoryOperation{
					Dir:       "/tmp/docs",
					OutputDir: "/tmp/out",
					Recursive: true,
				})
			},
			wantLogs: []string{
				"[rewriting /tmp/docs]",
				"◆ /tmp/docs • /tmp/out",
			},
		},
		{
			name: "log_directory_operation_in_place",
			op: func(t *testing.T, logger *Logger) {
				logger.StartDirectoryOperation(context.Background(), DirectoryOperation{
					Dir: "/tmp/docs",
				})
			},
			wantLogs: []string{
				"[rewriting /tmp/docs]",
				"◆ /tmp/docs • in place",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("replaced %d urls", 3)
				logger.Errorf("failed %s", "doc.txt")
			},
			wantLogs: []string{
				"ℹ️  replaced 3 urls",
				"❌ failed doc.txt",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("rewriting document urls")
			},
			wantLogs: []string{
				"imgrc • rewriting document urls",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, strings.TrimSpace(want), strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(&bytes.Buffer{}, zerolog.InfoLevel)
	ctx := NewContext(context.Background(), logger)
	assert.Equal(t, logger, FromContext(ctx))
}

func TestLoggerContext_Missing(t *testing.T) {
	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}
