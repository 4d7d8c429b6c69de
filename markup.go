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
	"bytes"

	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

var (
	textEscaper = bytereplacer.New(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	// Quotes are percent-encoded rather than escaped
	// because character references are decoded before the link target is read.
	attrEscaper = bytereplacer.New(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "%22",
	)
)

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// AppendMarkup appends markup that reproduces the given display text and styles
// to dst and returns the resulting byte slice.
// Tokenizing and linearizing the result yields the same text and ranges,
// except that list items are written as plain text
// and newlines are subject to the tokenizer's newline filtering.
func AppendMarkup(dst []byte, text []byte, ranges []StyleRange) []byte {
	idx := NewIndex(text)
	w := &markupWriter{dst: dst}
	for _, r := range ranges {
		w.open(r.Style)
		w.dst = append(w.dst, textEscaper.Replace(bytes.Clone(idx.Slice(text, r.Start, r.End)))...)
		w.close(r.Style)
	}
	return w.dst
}

type markupWriter struct {
	dst []byte
}

func (w *markupWriter) openTag(name atom.Atom) {
	w.dst = append(w.dst, '<')
	w.dst = append(w.dst, name.String()...)
	w.dst = append(w.dst, '>')
}

func (w *markupWriter) closeTag(name atom.Atom) {
	w.dst = append(w.dst, "</"...)
	w.dst = append(w.dst, name.String()...)
	w.dst = append(w.dst, '>')
}

// open writes the opening tags for a style from the outermost inward.
func (w *markupWriter) open(s Style) {
	for i := 0; i < s.ListNestLevel; i++ {
		w.openTag(atom.Ul)
	}
	for i := 0; i < s.QuoteLevel; i++ {
		w.openTag(atom.Blockquote)
	}
	if 1 <= s.HeadingLevel && s.HeadingLevel <= len(headingAtoms) {
		w.openTag(headingAtoms[s.HeadingLevel-1])
	}
	if s.HasLink {
		w.dst = append(w.dst, `<a href="`...)
		w.dst = append(w.dst, attrEscaper.Replace([]byte(s.LinkURL))...)
		w.dst = append(w.dst, `">`...)
	}
	for i := 0; i < s.ExponentLevel; i++ {
		w.openTag(atom.Sup)
	}
	if s.Bold {
		w.openTag(atom.Strong)
	}
	if s.Italic {
		w.openTag(atom.Em)
	}
	if s.Struck {
		w.openTag(atom.Del)
	}
	if s.Code {
		w.openTag(atom.Code)
	}
}

// close writes the closing tags for a style in the reverse order of open.
func (w *markupWriter) close(s Style) {
	if s.Code {
		w.closeTag(atom.Code)
	}
	if s.Struck {
		w.closeTag(atom.Del)
	}
	if s.Italic {
		w.closeTag(atom.Em)
	}
	if s.Bold {
		w.closeTag(atom.Strong)
	}
	for i := 0; i < s.ExponentLevel; i++ {
		w.closeTag(atom.Sup)
	}
	if s.HasLink {
		w.closeTag(atom.A)
	}
	if 1 <= s.HeadingLevel && s.HeadingLevel <= len(headingAtoms) {
		w.closeTag(headingAtoms[s.HeadingLevel-1])
	}
	for i := 0; i < s.QuoteLevel; i++ {
		w.closeTag(atom.Blockquote)
	}
	for i := 0; i < s.ListNestLevel; i++ {
		w.closeTag(atom.Ul)
	}
}
