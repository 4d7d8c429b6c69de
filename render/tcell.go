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
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"zombiezen.com/go/richtext"
)

// Run is a piece of display text with its terminal style.
type Run struct {
	Text  string
	Style tcell.Style
	// Link is the target of the run's link or the empty string.
	Link string
	// Indent is the list nesting depth of the run.
	// Lines that start inside the run are indented
	// by two cells per level.
	Indent int
}

const indentWidth = 2

// Runs converts display text and its style ranges into styled runs.
// If theme is nil, the zero Theme is used.
func Runs(text []byte, ranges []richtext.StyleRange, theme *Theme) []Run {
	if theme == nil {
		theme = new(Theme)
	}
	segs := segments(text, ranges)
	runs := make([]Run, 0, len(segs))
	for _, seg := range segs {
		run := Run{
			Text:  string(seg.text),
			Style: Style(seg.style, theme),
		}
		if seg.style.HasLink {
			run.Link = seg.style.LinkURL
		}
		run.Indent = seg.style.ListNestLevel
		runs = append(runs, run)
	}
	return runs
}

// Style returns the terminal style for a text style.
// If theme is nil, the zero Theme is used.
func Style(s richtext.Style, theme *Theme) tcell.Style {
	if theme == nil {
		theme = new(Theme)
	}
	style := tcell.StyleDefault.Foreground(theme.Default)
	if s.Bold || s.HeadingLevel > 0 {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Struck {
		style = style.StrikeThrough(true)
	}
	if s.HeadingLevel > 0 {
		style = style.Underline(true)
	}
	if s.QuoteLevel > 0 {
		if theme.Quote != tcell.ColorDefault {
			style = style.Foreground(theme.Quote)
		} else {
			style = style.Dim(true)
		}
	}
	if s.Code {
		if theme.Code != tcell.ColorDefault {
			style = style.Foreground(theme.Code)
		} else {
			style = style.Reverse(true)
		}
	}
	if s.HasLink {
		style = style.Underline(true).Url(s.LinkURL)
		if theme.Link != tcell.ColorDefault {
			style = style.Foreground(theme.Link)
		}
	}
	return style
}

// Draw paints runs on a screen starting at (x, y),
// wrapping at newlines and whenever a line would exceed width cells.
// It returns the number of lines used.
func Draw(s tcell.Screen, x, y, width int, runs []Run) int {
	return layout(x, y, width, runs, func(cx, cy, w int, r rune, run *Run) {
		s.SetContent(cx, cy, r, nil, run.Style)
	})
}

// LinkAt returns the link target of the character at cell (px, py)
// when runs are drawn with Draw at (x, y) in the given width.
// It reports false if no linked character covers the cell.
func LinkAt(runs []Run, x, y, width, px, py int) (string, bool) {
	var hit *Run
	layout(x, y, width, runs, func(cx, cy, w int, r rune, run *Run) {
		if hit == nil && cy == py && cx <= px && px < cx+w {
			hit = run
		}
	})
	if hit == nil || hit.Link == "" {
		return "", false
	}
	return hit.Link, true
}

// layout computes the cell of every rune in runs the way Draw places them,
// calling place for each rune that occupies at least one cell.
// It returns the number of lines used.
func layout(x, y, width int, runs []Run, place func(cx, cy, w int, r rune, run *Run)) int {
	if width <= 0 {
		return 0
	}
	cx, cy := x, y
	drawn := false
	for i := range runs {
		run := &runs[i]
		indent := max(min(run.Indent*indentWidth, width-1), 0)
		for _, r := range run.Text {
			if r == '\n' {
				cx, cy = x, cy+1
				continue
			}
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if cx == x {
				cx += indent
			}
			if cx+w > x+width && cx > x+indent {
				cx, cy = x+indent, cy+1
			}
			place(cx, cy, w, r, run)
			cx += w
			drawn = true
		}
	}
	if !drawn && cy == y {
		return 0
	}
	return cy - y + 1
}
