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

// Package render draws the output of a [richtext.Parser] on terminals,
// either as a stream of ANSI escape sequences or on a [tcell.Screen].
package render

import (
	"io"

	"github.com/gdamore/tcell/v2"
	"zombiezen.com/go/richtext"
)

// Theme is the set of colors used to render styled text.
// The zero value uses the terminal's default colors
// and distinguishes styles with attributes alone.
type Theme struct {
	// Default is the color of unformatted text.
	Default tcell.Color
	// Link is the color of link text.
	// If Link is tcell.ColorDefault, links use the Default color.
	Link tcell.Color
	// Code is the color of code text.
	// If Code is tcell.ColorDefault, code is shown in reverse video.
	Code tcell.Color
	// Quote is the color of quoted text.
	// If Quote is tcell.ColorDefault, quotes are dimmed.
	Quote tcell.Color
}

// segment is the text of a single style range.
type segment struct {
	text  []byte
	style richtext.Style
}

func segments(text []byte, ranges []richtext.StyleRange) []segment {
	idx := richtext.NewIndex(text)
	segs := make([]segment, 0, len(ranges))
	for _, r := range ranges {
		segs = append(segs, segment{
			text:  idx.Slice(text, r.Start, r.End),
			style: r.Style,
		})
	}
	return segs
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
