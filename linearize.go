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

	"golang.org/x/net/html/atom"
)

// Style is the formatting of a run of characters.
// The zero value is unformatted text.
type Style struct {
	Bold   bool
	Italic bool
	Struck bool
	Code   bool

	// QuoteLevel is the number of enclosing <blockquote> elements.
	QuoteLevel int
	// ExponentLevel is the number of enclosing <sup> elements.
	ExponentLevel int
	// ListNestLevel is the number of enclosing <ol> or <ul> elements.
	ListNestLevel int
	// HeadingLevel is the level of the heading (1-6)
	// or zero if the text is not in a heading.
	// If headings overlap, the one closed last wins.
	HeadingLevel int

	// LinkURL is the target of the enclosing link.
	// It is only meaningful if HasLink is true.
	LinkURL string
	HasLink bool
}

// Equal reports whether two styles format text identically.
// Link targets are compared by value.
func (s Style) Equal(other Style) bool {
	if s.HasLink != other.HasLink || s.HasLink && s.LinkURL != other.LinkURL {
		return false
	}
	return s.Bold == other.Bold &&
		s.Italic == other.Italic &&
		s.Struck == other.Struck &&
		s.Code == other.Code &&
		s.QuoteLevel == other.QuoteLevel &&
		s.ExponentLevel == other.ExponentLevel &&
		s.ListNestLevel == other.ListNestLevel &&
		s.HeadingLevel == other.HeadingLevel
}

// IsZero reports whether s is unformatted.
func (s Style) IsZero() bool {
	return s.Equal(Style{})
}

// StyleRange is a run of the display text that shares a single style.
// Start and End are visible positions (see [VisibleWidth]).
type StyleRange struct {
	Style Style
	Start int
	End   int
}

// Len returns the number of visible units in the range.
func (r StyleRange) Len() int {
	return r.End - r.Start
}

// Linearize flattens possibly overlapping tag spans
// into the minimal sequence of style ranges
// that covers the display text of the given visible length.
// The returned ranges are ordered, do not overlap,
// are contiguous, and cover exactly [0, length).
// Adjacent ranges always differ in style.
// The spans slice is not modified.
func (p *Parser) Linearize(spans []TagSpan, length int) ([]StyleRange, []Diagnostic) {
	if length < 0 {
		length = 0
	}
	cells := make([]Style, length)
	var diags []Diagnostic
	for _, span := range spans {
		start, end := max(span.Start, 0), min(span.End, length)
		switch kind := p.classifyTag(span.Name); kind {
		case boldTag:
			for i := start; i < end; i++ {
				cells[i].Bold = true
			}
		case italicTag:
			for i := start; i < end; i++ {
				cells[i].Italic = true
			}
		case struckTag:
			for i := start; i < end; i++ {
				cells[i].Struck = true
			}
		case codeTag:
			for i := start; i < end; i++ {
				cells[i].Code = true
			}
		case quoteTag:
			for i := start; i < end; i++ {
				cells[i].QuoteLevel++
			}
		case exponentTag:
			for i := start; i < end; i++ {
				cells[i].ExponentLevel++
			}
		case listTag:
			for i := start; i < end; i++ {
				cells[i].ListNestLevel++
			}
		case headingTag:
			level := int(span.Name[1] - '0')
			for i := start; i < end; i++ {
				cells[i].HeadingLevel = level
			}
		case linkTag:
			url, ok := linkTarget(span.Name)
			if !ok {
				diags = append(diags, Diagnostic{
					Kind:   MalformedAttribute,
					Offset: -1,
					Pos:    span.Start,
					Tag:    span.Name,
				})
			}
			for i := start; i < end; i++ {
				cells[i].LinkURL = url
				cells[i].HasLink = true
			}
		case unknownTag:
			diags = append(diags, Diagnostic{
				Kind:   UnknownTag,
				Offset: -1,
				Pos:    span.Start,
				Tag:    span.Name,
			})
		}
	}

	if length == 0 {
		return nil, diags
	}
	var ranges []StyleRange
	runStart := 0
	for i := 1; i < length; i++ {
		if !cells[i].Equal(cells[runStart]) {
			ranges = append(ranges, StyleRange{
				Style: cells[runStart],
				Start: runStart,
				End:   i,
			})
			runStart = i
		}
	}
	ranges = append(ranges, StyleRange{
		Style: cells[runStart],
		Start: runStart,
		End:   length,
	})
	return ranges, diags
}

type tagKind int8

const (
	ignoredTag tagKind = iota
	unknownTag
	boldTag
	italicTag
	struckTag
	codeTag
	quoteTag
	exponentTag
	listTag
	headingTag
	linkTag
)

// classifyTag determines the formatting a tag applies from its raw text.
// By default, tags are matched by prefix:
// "strong" and "strong class=x" are both bold.
func (p *Parser) classifyTag(name string) tagKind {
	element := elementName(name)
	is := func(tag atom.Atom) bool {
		if p.StrictTagNames {
			return element == tag.String()
		}
		return strings.HasPrefix(name, tag.String())
	}
	switch {
	case name == "":
		return ignoredTag
	case is(atom.Strong):
		return boldTag
	case is(atom.Em):
		return italicTag
	case is(atom.Del):
		return struckTag
	case is(atom.Code):
		return codeTag
	case is(atom.Blockquote):
		return quoteTag
	case is(atom.Sup):
		return exponentTag
	case isHeading(name) && (!p.StrictTagNames || len(element) == 2):
		return headingTag
	case strings.HasPrefix(name, `a href=`) || p.StrictTagNames && element == atom.A.String() && strings.Contains(name, " href="):
		return linkTag
	case is(atom.Ol) || is(atom.Ul):
		return listTag
	case atom.Lookup([]byte(element)) != 0:
		// A real element without formatting, like <p> or <li>.
		return ignoredTag
	default:
		return unknownTag
	}
}

func isHeading(name string) bool {
	return len(name) >= 2 && name[0] == 'h' && '1' <= name[1] && name[1] <= '6'
}

// linkTarget extracts the href attribute value from a link tag's text.
// If the value is missing its closing quote,
// linkTarget returns the rest of the tag and false.
func linkTarget(name string) (url string, ok bool) {
	const attr = "href="
	i := strings.Index(name, attr)
	if i < 0 {
		return "", false
	}
	value := name[i+len(attr):]
	if value == "" {
		return "", false
	}
	quote := value[0]
	if quote != '"' && quote != '\'' {
		// Unquoted attribute value.
		if end := strings.IndexAny(value, " \t\r\n"); end >= 0 {
			return value[:end], true
		}
		return value, true
	}
	value = value[1:]
	end := strings.IndexByte(value, quote)
	if end < 0 {
		return value, false
	}
	return value[:end], true
}
