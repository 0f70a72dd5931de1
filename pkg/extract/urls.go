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

package extract

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// imageExtensions are the file extensions treated as images
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// IsImageURL reports whether s looks like an absolute image URL: http(s)
// scheme with a host, and either an image extension in the path or an image
// hint somewhere in the URL (dynamic image services rarely expose an
// extension).
func IsImageURL(s string) bool {
	if s == "" {
		return false
	}

	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return false
	}

	lowerPath := strings.ToLower(parsed.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowerPath, ext) {
			return true
		}
	}

	if hasImageExtensionHint(s) {
		return true
	}

	// Image services without extensions in their URLs
	if strings.Contains(parsed.Host, "picsum.photos") || strings.Contains(strings.ToLower(s), "image") {
		return true
	}

	return false
}

// hasImageExtensionHint reports whether an image format name appears anywhere
// in the URL, which catches dynamic URLs like ...?format=png.
func hasImageExtensionHint(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, strings.TrimPrefix(ext, ".")) {
			return true
		}
	}
	return false
}

// FilenameFromURL derives a file name from a URL's path. URLs without a named
// file get a stable hash-derived name.
func FilenameFromURL(s string) string {
	parsed, err := url.Parse(s)
	var name string
	if err == nil {
		name = path.Base(parsed.Path)
	}

	if name == "" || name == "." || name == "/" || !strings.Contains(name, ".") {
		sum := md5.Sum([]byte(s))
		name = fmt.Sprintf("image_%s.jpg", hex.EncodeToString(sum[:])[:8])
	}

	return name
}

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces characters that are illegal in file names and
// caps the length at 100 characters, preserving the extension.
func SanitizeFilename(name string) string {
	name = illegalFilenameChars.ReplaceAllString(name, "_")
	if len(name) > 100 {
		ext := path.Ext(name)
		base := strings.TrimSuffix(name, ext)
		if len(base) > 95 {
			base = base[:95]
		}
		name = base + ext
	}
	return name
}

// FormatFileSize renders a byte count for display
func FormatFileSize(size int64) string {
	if size == 0 {
		return "0B"
	}

	units := []string{"B", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	value := float64(size) / math.Pow(1024, float64(i))

	return fmt.Sprintf("%.2f %s", value, units[i])
}
