// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"strings"

	"golang.org/x/net/html"
)

// An EntityDecoder resolves [character references]
// like "&amp;" or "&#8212;" to the bytes they stand for.
//
// [character references]: https://html.spec.whatwg.org/multipage/syntax.html#character-references
type EntityDecoder interface {
	// AppendEntity appends the UTF-8 encoding of the given mnemonic
	// (including the leading '&' and trailing ';') to dst
	// and returns the resulting slice.
	// If the mnemonic is not recognized,
	// AppendEntity returns dst unmodified and false.
	AppendEntity(dst, mnemonic []byte) ([]byte, bool)
}

// EntityDecoderFunc is a function that implements [EntityDecoder].
type EntityDecoderFunc func(dst, mnemonic []byte) ([]byte, bool)

// AppendEntity calls f(dst, mnemonic).
func (f EntityDecoderFunc) AppendEntity(dst, mnemonic []byte) ([]byte, bool) {
	return f(dst, mnemonic)
}

// HTMLEntities decodes the named and numeric character references
// defined by HTML5.
// It is the decoder used when [Parser.Entities] is nil.
var HTMLEntities EntityDecoder = htmlEntities{}

type htmlEntities struct{}

func (htmlEntities) AppendEntity(dst, mnemonic []byte) ([]byte, bool) {
	s := string(mnemonic)
	decoded := html.UnescapeString(s)
	// The unescaper falls back to decoding the longest known prefix
	// (e.g. "&notit;" becomes "¬it;"), which leaves the terminator behind.
	if decoded == s || decoded != ";" && strings.HasSuffix(decoded, ";") {
		return dst, false
	}
	return append(dst, decoded...), true
}
