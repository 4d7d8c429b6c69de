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

package render

import (
	"io"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/reflow/wordwrap"
	"zombiezen.com/go/richtext"
)

const (
	csi        = "\x1b["
	sgrReset   = csi + "0m"
	osc8Prefix = "\x1b]8;;"
	osc8Suffix = "\x1b\\"
)

// ANSIOptions is the set of parameters to [WriteANSI].
type ANSIOptions struct {
	Theme Theme
	// If Width is positive, lines are word-wrapped to fit in Width cells.
	Width int
	// If Hyperlinks is true, links are written as OSC 8 hyperlinks.
	// Hyperlinks are not written when wrapping.
	Hyperlinks bool
}

// WriteANSI writes the display text to w,
// formatted with ANSI Select Graphic Rendition sequences.
// It will return the first error encountered, if any.
func WriteANSI(w io.Writer, text []byte, ranges []richtext.StyleRange, opts *ANSIOptions) error {
	if opts == nil {
		opts = new(ANSIOptions)
	}
	ew := &errWriter{w: w}
	if opts.Width <= 0 {
		writeANSI(ew, text, ranges, opts)
		return ew.err
	}

	ww := wordwrap.NewWriter(opts.Width)
	writeANSI(ww, text, ranges, opts)
	if err := ww.Close(); err != nil {
		return err
	}
	ew.Write(ww.Bytes())
	return ew.err
}

func writeANSI(w io.Writer, text []byte, ranges []richtext.StyleRange, opts *ANSIOptions) {
	hyperlinks := opts.Hyperlinks && opts.Width <= 0
	var params []byte
	for _, seg := range segments(text, ranges) {
		params = appendSGR(params[:0], seg.style, &opts.Theme)
		if len(params) == 0 {
			w.Write(seg.text)
			continue
		}
		if hyperlinks && seg.style.HasLink {
			io.WriteString(w, osc8Prefix+seg.style.LinkURL+osc8Suffix)
		}
		io.WriteString(w, csi)
		w.Write(params)
		io.WriteString(w, "m")
		w.Write(seg.text)
		io.WriteString(w, sgrReset)
		if hyperlinks && seg.style.HasLink {
			io.WriteString(w, osc8Prefix+osc8Suffix)
		}
	}
}

// appendSGR appends the semicolon-separated SGR parameters for a style to dst.
// It appends nothing for unformatted text in the default color.
func appendSGR(dst []byte, s richtext.Style, theme *Theme) []byte {
	add := func(p string) {
		if len(dst) > 0 {
			dst = append(dst, ';')
		}
		dst = append(dst, p...)
	}

	fg := theme.Default
	switch {
	case s.HasLink && theme.Link != tcell.ColorDefault:
		fg = theme.Link
	case s.Code && theme.Code != tcell.ColorDefault:
		fg = theme.Code
	case s.QuoteLevel > 0 && theme.Quote != tcell.ColorDefault:
		fg = theme.Quote
	}
	if fg != tcell.ColorDefault && fg.Valid() {
		r, g, b := fg.RGB()
		add("38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)))
	}
	if s.Bold || s.HeadingLevel > 0 {
		add("1")
	}
	if s.QuoteLevel > 0 && theme.Quote == tcell.ColorDefault {
		add("2")
	}
	if s.Italic {
		add("3")
	}
	if s.HasLink || s.HeadingLevel > 0 {
		add("4")
	}
	if s.Code && theme.Code == tcell.ColorDefault {
		add("7")
	}
	if s.Struck {
		add("9")
	}
	return dst
}
