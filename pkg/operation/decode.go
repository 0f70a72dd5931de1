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
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// 🔤 fallbackDecoders are tried in order when content is not valid UTF-8
var fallbackDecoders = []struct {
	name string
	enc  encoding.Encoding
}{
	{"gbk", simplifiedchinese.GBK},
	{"gb18030", simplifiedchinese.GB18030},
	{"latin-1", charmap.ISO8859_1},
}

// 🔤 decodeContent decodes file bytes as UTF-8, retrying with legacy encodings
// before giving up. A decoder that emits replacement runes is treated as a
// decode failure so the next one gets a chance.
func decodeContent(ctx context.Context, data []byte) (string, error) {
	logger := zerolog.Ctx(ctx)

	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, d := range fallbackDecoders {
		decoded, err := d.enc.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		logger.Debug().Str("encoding", d.name).Msg("decoded with fallback encoding")
		return string(decoded), nil
	}

	return "", errors.Errorf("decoding content: %w", ErrEncoding)
}
