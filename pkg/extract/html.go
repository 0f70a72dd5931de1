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
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cssBackgroundPattern matches background-image: url(...) declarations
var cssBackgroundPattern = regexp.MustCompile(`(?i)background-image:\s*url\(["']?(https?://[^"')\s]+)["']?\)`)

// imgTagPattern is the regex fallback when the DOM parse fails
var imgTagPattern = regexp.MustCompile(`(?i)<img[^>]+src=["']?(https?://[^"'>\s]+)["']?[^>]*>`)

// FromHTML returns the image URLs referenced by an HTML document: img src and
// data-src attributes plus CSS background images. A parse failure falls back
// to tag-matching over the raw content.
func FromHTML(ctx context.Context, content string) []string {
	logger := zerolog.Ctx(ctx)
	var urls []string

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		logger.Warn().Err(err).Msg("html parse failed, extracting with regex")
		for _, match := range imgTagPattern.FindAllStringSubmatch(content, -1) {
			urls = append(urls, match[1])
		}
	} else {
		collectImgURLs(doc, &urls)
	}

	// CSS background images, matched over the raw content so both style
	// blocks and inline styles are covered
	for _, match := range cssBackgroundPattern.FindAllStringSubmatch(content, -1) {
		urls = append(urls, match[1])
	}

	return urls
}

// collectImgURLs walks the DOM tree collecting absolute src and data-src
// attributes of img elements.
func collectImgURLs(n *html.Node, urls *[]string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for _, a := range n.Attr {
			if a.Key != "src" && a.Key != "data-src" {
				continue
			}
			if strings.HasPrefix(a.Val, "http://") || strings.HasPrefix(a.Val, "https://") {
				*urls = append(*urls, a.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectImgURLs(c, urls)
	}
}
