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

package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/walteh/imgrc/pkg/mapping"
	"github.com/walteh/imgrc/pkg/operation"
)

// 🧪 createTestEnv creates a context with a test logger and a temp dir
func createTestEnv(t *testing.T) (context.Context, string) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	return ctx, t.TempDir()
}

func testMapping() *mapping.Mapping {
	return mapping.FromPairs([]mapping.Pair{
		{Old: "http://a.example.com/1.jpg", New: "http://b.example.com/1.jpg"},
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReplaceInFile_InPlaceWithBackup(t *testing.T) {
	ctx, dir := createTestEnv(t)
	path := filepath.Join(dir, "doc.txt")
	original := "see http://a.example.com/1.jpg here"
	writeFile(t, path, original)

	r := operation.New(operation.Options{})
	result := r.ReplaceInFile(ctx, path, testMapping(), "", true)

	require.True(t, result.Success)
	assert.Empty(t, result.Err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, path, result.OutputPath)
	assert.Equal(t, 1, result.Replacements)
	assert.Equal(t, path+operation.BackupSuffix, result.BackupPath)

	assert.Equal(t, "see http://b.example.com/1.jpg here", readFile(t, path))
	assert.Equal(t, original, readFile(t, result.BackupPath))
}

func TestReplaceInFile_SeparateOutputSkipsBackup(t *testing.T) {
	ctx, dir := createTestEnv(t)
	src := filepath.Join(dir, "doc.md")
	out := filepath.Join(dir, "out", "nested", "doc.md")
	writeFile(t, src, "![x](http://a.example.com/1.jpg)")

	r := operation.New(operation.Options{})
	result := r.ReplaceInFile(ctx, src, testMapping(), out, true)

	require.True(t, result.Success)
	assert.Empty(t, result.BackupPath)
	assert.Equal(t, out, result.OutputPath)

	// Parent directories are created, source is untouched
	assert.Equal(t, "![x](http://b.example.com/1.jpg)", readFile(t, out))
	assert.Equal(t, "![x](http://a.example.com/1.jpg)", readFile(t, src))
	assert.NoFileExists(t, src+operation.BackupSuffix)
}

func TestReplaceInFile_DispatchesByExtension(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantPart  string
		wantCount int
	}{
		{
			name:      "text",
			file:      "doc.txt",
			content:   "http://a.example.com/1.jpg http://a.example.com/1.jpg",
			wantPart:  "http://b.example.com/1.jpg http://b.example.com/1.jpg",
			wantCount: 2,
		},
		{
			name:      "markdown",
			file:      "doc.md",
			content:   "![pic](http://a.example.com/1.jpg)",
			wantPart:  "![pic](http://b.example.com/1.jpg)",
			wantCount: 1,
		},
		{
			name:      "html",
			file:      "doc.html",
			content:   `<html><body><img src="http://a.example.com/1.jpg"></body></html>`,
			wantPart:  `src="http://b.example.com/1.jpg"`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dir := createTestEnv(t)
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)

			r := operation.New(operation.Options{})
			result := r.ReplaceInFile(ctx, path, testMapping(), "", false)

			require.True(t, result.Success)
			assert.Equal(t, tt.wantCount, result.Replacements)
			assert.Contains(t, readFile(t, path), tt.wantPart)
			assert.Empty(t, result.BackupPath)
		})
	}
}

func TestReplaceInFile_MissingFile(t *testing.T) {
	ctx, dir := createTestEnv(t)
	path := filepath.Join(dir, "missing.txt")

	r := operation.New(operation.Options{})
	result := r.ReplaceInFile(ctx, path, testMapping(), "", true)

	require.False(t, result.Success)
	assert.Contains(t, result.Err, "file does not exist")
	assert.Equal(t, 0, result.Replacements)
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+operation.BackupSuffix)
}

func TestReplaceInFile_EmptyMapping(t *testing.T) {
	ctx, dir := createTestEnv(t)
	path := filepath.Join(dir, "doc.txt")
	writeFile(t, path, "content")

	r := operation.New(operation.Options{})
	result := r.ReplaceInFile(ctx, path, mapping.New(), "", true)

	require.False(t, result.Success)
	assert.Contains(t, result.Err, "url mapping must not be empty")
	// Nothing was written or backed up
	assert.Equal(t, "content", readFile(t, path))
	assert.NoFileExists(t, path+operation.BackupSuffix)
}

func TestReplaceInFile_GBKFallback(t *testing.T) {
	ctx, dir := createTestEnv(t)
	path := filepath.Join(dir, "doc.txt")

	encoded, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("测试 http://a.example.com/1.jpg 测试"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, encoded, 0644))

	r := operation.New(operation.Options{})
	result := r.ReplaceInFile(ctx, path, testMapping(), "", false)

	require.True(t, result.Success)
	assert.Equal(t, 1, result.Replacements)

	// Output is written back as UTF-8
	content := readFile(t, path)
	assert.Contains(t, content, "http://b.example.com/1.jpg")
	assert.Contains(t, content, "测试")
}

func TestRestoreFromBackup(t *testing.T) {
	ctx, dir := createTestEnv(t)
	path := filepath.Join(dir, "doc.txt")
	original := "see http://a.example.com/1.jpg here"
	writeFile(t, path, original)

	r := operation.New(operation.Options{})
	result := r.ReplaceInFile(ctx, path, testMapping(), "", true)
	require.True(t, result.Success)
	require.NotEqual(t, original, readFile(t, path))

	// Round-trip restores the file byte-identical
	require.True(t, r.RestoreFromBackup(ctx, path))
	assert.Equal(t, original, readFile(t, path))

	// Restoring again is a no-op that still succeeds
	require.True(t, r.RestoreFromBackup(ctx, path))
	assert.Equal(t, original, readFile(t, path))
}

func TestRestoreFromBackup_NoBackup(t *testing.T) {
	ctx, dir := createTestEnv(t)
	path := filepath.Join(dir, "doc.txt")
	writeFile(t, path, "content")

	r := operation.New(operation.Options{})
	assert.False(t, r.RestoreFromBackup(ctx, path))
	assert.Equal(t, "content", readFile(t, path))
}
