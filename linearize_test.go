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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLinearize(t *testing.T) {
	tests := []struct {
		name      string
		parser    Parser
		spans     []TagSpan
		length    int
		want      []StyleRange
		wantDiags []Diagnostic
	}{
		{
			name:   "Empty",
			length: 0,
			want:   nil,
		},
		{
			name:   "NoSpans",
			length: 3,
			want:   []StyleRange{{Start: 0, End: 3}},
		},
		{
			name:   "Bold",
			spans:  []TagSpan{{Name: "strong", Start: 0, End: 2}},
			length: 2,
			want:   []StyleRange{{Style: Style{Bold: true}, Start: 0, End: 2}},
		},
		{
			name: "Overlap",
			spans: []TagSpan{
				{Name: "strong", Start: 0, End: 3},
				{Name: "em", Start: 2, End: 5},
			},
			length: 6,
			want: []StyleRange{
				{Style: Style{Bold: true}, Start: 0, End: 2},
				{Style: Style{Bold: true, Italic: true}, Start: 2, End: 3},
				{Style: Style{Italic: true}, Start: 3, End: 5},
				{Start: 5, End: 6},
			},
		},
		{
			name: "AdjacentSameStyle",
			spans: []TagSpan{
				{Name: "strong", Start: 0, End: 2},
				{Name: "strong", Start: 2, End: 4},
			},
			length: 4,
			want:   []StyleRange{{Style: Style{Bold: true}, Start: 0, End: 4}},
		},
		{
			name: "NestedQuotes",
			spans: []TagSpan{
				{Name: "blockquote", Start: 1, End: 3},
				{Name: "blockquote", Start: 0, End: 4},
			},
			length: 4,
			want: []StyleRange{
				{Style: Style{QuoteLevel: 1}, Start: 0, End: 1},
				{Style: Style{QuoteLevel: 2}, Start: 1, End: 3},
				{Style: Style{QuoteLevel: 1}, Start: 3, End: 4},
			},
		},
		{
			name: "Counters",
			spans: []TagSpan{
				{Name: "sup", Start: 0, End: 1},
				{Name: "del", Start: 0, End: 1},
				{Name: "code", Start: 0, End: 1},
				{Name: `ol start="2"`, Start: 0, End: 1},
				{Name: "ul", Start: 0, End: 1},
			},
			length: 1,
			want: []StyleRange{{
				Style: Style{Struck: true, Code: true, ExponentLevel: 1, ListNestLevel: 2},
				Start: 0,
				End:   1,
			}},
		},
		{
			name: "HeadingClosedLastWins",
			spans: []TagSpan{
				{Name: "h1", Start: 0, End: 4},
				{Name: "h3", Start: 1, End: 2},
			},
			length: 4,
			want: []StyleRange{
				{Style: Style{HeadingLevel: 1}, Start: 0, End: 1},
				{Style: Style{HeadingLevel: 3}, Start: 1, End: 2},
				{Style: Style{HeadingLevel: 1}, Start: 2, End: 4},
			},
		},
		{
			name: "SameLinkMerges",
			spans: []TagSpan{
				{Name: `a href="http://x"`, Start: 0, End: 2},
				{Name: `a href="http://x"`, Start: 2, End: 4},
			},
			length: 4,
			want: []StyleRange{
				{Style: Style{LinkURL: "http://x", HasLink: true}, Start: 0, End: 4},
			},
		},
		{
			name: "DifferentLinksSplit",
			spans: []TagSpan{
				{Name: `a href="http://x"`, Start: 0, End: 2},
				{Name: `a href="http://y"`, Start: 2, End: 4},
			},
			length: 4,
			want: []StyleRange{
				{Style: Style{LinkURL: "http://x", HasLink: true}, Start: 0, End: 2},
				{Style: Style{LinkURL: "http://y", HasLink: true}, Start: 2, End: 4},
			},
		},
		{
			name:   "EmptyLinkTarget",
			spans:  []TagSpan{{Name: `a href=""`, Start: 0, End: 1}},
			length: 2,
			want: []StyleRange{
				{Style: Style{HasLink: true}, Start: 0, End: 1},
				{Start: 1, End: 2},
			},
		},
		{
			name:   "SingleQuotedLink",
			spans:  []TagSpan{{Name: `a href='http://x' rel="nofollow"`, Start: 0, End: 1}},
			length: 1,
			want: []StyleRange{
				{Style: Style{LinkURL: "http://x", HasLink: true}, Start: 0, End: 1},
			},
		},
		{
			name:   "UnquotedLink",
			spans:  []TagSpan{{Name: `a href=http://x target=_blank`, Start: 0, End: 1}},
			length: 1,
			want: []StyleRange{
				{Style: Style{LinkURL: "http://x", HasLink: true}, Start: 0, End: 1},
			},
		},
		{
			name:   "MalformedLink",
			spans:  []TagSpan{{Name: `a href="http://x`, Start: 0, End: 1}},
			length: 1,
			want: []StyleRange{
				{Style: Style{LinkURL: "http://x", HasLink: true}, Start: 0, End: 1},
			},
			wantDiags: []Diagnostic{
				{Kind: MalformedAttribute, Offset: -1, Pos: 0, Tag: `a href="http://x`},
			},
		},
		{
			name:   "ZeroWidthLink",
			spans:  []TagSpan{{Name: `a href="http://x"`, Start: 1, End: 1}},
			length: 2,
			want:   []StyleRange{{Start: 0, End: 2}},
		},
		{
			name:   "OutOfBounds",
			spans:  []TagSpan{{Name: "strong", Start: -1, End: 10}},
			length: 3,
			want:   []StyleRange{{Style: Style{Bold: true}, Start: 0, End: 3}},
		},
		{
			name: "IgnoredElements",
			spans: []TagSpan{
				{Name: "p", Start: 0, End: 1},
				{Name: "li", Start: 0, End: 1},
				{Name: "", Start: 0, End: 1},
			},
			length: 1,
			want:   []StyleRange{{Start: 0, End: 1}},
		},
		{
			name:   "UnknownTag",
			spans:  []TagSpan{{Name: "spoiler", Start: 1, End: 2}},
			length: 2,
			want:   []StyleRange{{Start: 0, End: 2}},
			wantDiags: []Diagnostic{
				{Kind: UnknownTag, Offset: -1, Pos: 1, Tag: "spoiler"},
			},
		},
		{
			name:   "PrefixMatch",
			spans:  []TagSpan{{Name: "embed", Start: 0, End: 1}},
			length: 1,
			want:   []StyleRange{{Style: Style{Italic: true}, Start: 0, End: 1}},
		},
		{
			name:   "StrictTagNames",
			parser: Parser{StrictTagNames: true},
			spans: []TagSpan{
				{Name: "embed", Start: 0, End: 1},
				{Name: "strong class=x", Start: 1, End: 2},
			},
			length: 2,
			want: []StyleRange{
				{Start: 0, End: 1},
				{Style: Style{Bold: true}, Start: 1, End: 2},
			},
		},
		{
			name:   "StrictLink",
			parser: Parser{StrictTagNames: true},
			spans:  []TagSpan{{Name: `a class="ext" href="http://x"`, Start: 0, End: 1}},
			length: 1,
			want: []StyleRange{
				{Style: Style{LinkURL: "http://x", HasLink: true}, Start: 0, End: 1},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			spans := append([]TagSpan(nil), test.spans...)
			got, gotDiags := test.parser.Linearize(spans, test.length)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ranges (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantDiags, gotDiags, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("diagnostics (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.spans, spans, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("spans modified (-want +got):\n%s", diff)
			}
			checkRanges(t, got, test.length)
		})
	}
}

func TestStyleEqual(t *testing.T) {
	tests := []struct {
		a, b Style
		want bool
	}{
		{Style{}, Style{}, true},
		{Style{Bold: true}, Style{}, false},
		{Style{QuoteLevel: 1}, Style{QuoteLevel: 2}, false},
		{Style{HasLink: true, LinkURL: "x"}, Style{HasLink: true, LinkURL: "x"}, true},
		{Style{HasLink: true, LinkURL: "x"}, Style{HasLink: true, LinkURL: "y"}, false},
		{Style{HasLink: true}, Style{}, false},
		{Style{LinkURL: "x"}, Style{}, true},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.want {
			t.Errorf("%+v.Equal(%+v) = %t; want %t", test.a, test.b, got, test.want)
		}
		if got := test.b.Equal(test.a); got != test.want {
			t.Errorf("%+v.Equal(%+v) = %t; want %t", test.b, test.a, got, test.want)
		}
	}
}

// checkRanges verifies that ranges tile [0, length)
// and that no two adjacent ranges share a style.
func checkRanges(tb testing.TB, ranges []StyleRange, length int) {
	tb.Helper()
	if length == 0 {
		if len(ranges) > 0 {
			tb.Errorf("ranges = %+v for empty text; want none", ranges)
		}
		return
	}
	pos := 0
	for i, r := range ranges {
		if r.Start != pos {
			tb.Errorf("ranges[%d].Start = %d; want %d", i, r.Start, pos)
		}
		if r.Len() <= 0 {
			tb.Errorf("ranges[%d] = [%d, %d) is empty", i, r.Start, r.End)
		}
		if i > 0 && r.Style.Equal(ranges[i-1].Style) {
			tb.Errorf("ranges[%d] and ranges[%d] have the same style %+v", i-1, i, r.Style)
		}
		pos = r.End
	}
	if pos != length {
		tb.Errorf("ranges end at %d; want %d", pos, length)
	}
}
