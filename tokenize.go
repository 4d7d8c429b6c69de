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
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// maxMnemonicLen is the longest character reference the tokenizer will buffer.
// The longest named reference in HTML5 ("&CounterClockwiseContourIntegral;")
// is 33 bytes.
const maxMnemonicLen = 40

// TagSpan is a closed tag occurrence in the display text.
// Start and End are visible positions (see [VisibleWidth]), not byte offsets.
type TagSpan struct {
	// Name is the raw text between the angle brackets,
	// including any attributes (e.g. `a href="https://example.com/"`).
	// Entities inside the tag have already been decoded.
	// Name is empty if the tag had no name.
	Name  string
	Start int
	End   int
}

// Tokens is the result of [Parser.Tokenize].
type Tokens struct {
	// Text is the display text with all markup removed
	// and character references decoded.
	Text []byte
	// Spans is the list of closed tags in the order they were closed.
	// Spans may overlap.
	Spans []TagSpan
	// VisibleLen is the length of Text in visible units.
	VisibleLen int
	// Diagnostics lists the malformed constructs
	// that were tolerated while tokenizing.
	Diagnostics []Diagnostic
}

// VisibleWidth returns the number of visible units
// that the given byte of a UTF-8 sequence contributes to a position.
// Lead bytes of one- to three-byte sequences count as one unit
// and lead bytes of four-byte sequences count as two,
// so a position counts UTF-16 code units,
// which is how text layout engines usually index characters.
// Continuation bytes count as zero.
func VisibleWidth(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c&0xc0 == 0x80:
		return 0
	case c&0xf8 == 0xf0:
		return 2
	default:
		return 1
	}
}

// VisibleLen returns the length of text in visible units.
func VisibleLen(text []byte) int {
	n := 0
	for _, c := range text {
		n += VisibleWidth(c)
	}
	return n
}

// Tokenize strips the markup from input,
// returning the display text and the spans of every closed tag.
// The only error Tokenize returns is one wrapping [ErrBufferCapacityExceeded]:
// malformed markup is reported in [Tokens.Diagnostics] instead.
func (p *Parser) Tokenize(input []byte) (*Tokens, error) {
	limit := p.MaxInputSize
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(input) > limit {
		return nil, fmt.Errorf("tokenize %d bytes (limit %d): %w", len(input), limit, ErrBufferCapacityExceeded)
	}
	if p.NormalizeNFC {
		input = norm.NFC.Bytes(input)
	}
	depth := p.MaxTagDepth
	if depth <= 0 {
		depth = len(input)
	}
	entities := p.Entities
	if entities == nil {
		entities = HTMLEntities
	}

	state := &tokenState{
		Parser:   p,
		entities: entities,
		input:    input,
		text:     make([]byte, 0, len(input)),
		stack:    newTagStack(depth),
	}
	for i := 0; i < len(input); i++ {
		c := input[i]
		if state.inEntity {
			switch {
			case c == ';':
				state.entity = append(state.entity, c)
				state.finishEntity()
				continue
			case isMnemonicByte(c) && len(state.entity) < maxMnemonicLen:
				state.entity = append(state.entity, c)
				continue
			default:
				// Not a character reference after all.
				state.abandonEntity()
			}
		}
		switch {
		case c == '<':
			state.startTag(i)
		case c == '>' && state.inTag:
			state.endTag()
		case c == '&':
			state.inEntity = true
			state.entityStart = i
			state.entity = append(state.entity[:0], '&')
		case state.inTag:
			state.name = append(state.name, c)
		default:
			state.writeByte(c)
		}
	}
	state.finish()

	return &Tokens{
		Text:        state.text,
		Spans:       state.spans,
		VisibleLen:  state.pos,
		Diagnostics: state.diags,
	}, nil
}

type tokenState struct {
	*Parser
	entities EntityDecoder
	input    []byte

	text  []byte
	pos   int // visible position at the end of text
	stack *tagStack
	spans []TagSpan
	diags []Diagnostic
	lists []listCounter

	inTag    bool
	tagStart int
	marker   bool // current tag pushed a marker
	dropped  bool // current tag's marker did not fit on the stack
	name     []byte
	// ignored is the number of open tags dropped for depth
	// whose closing tags have not been seen yet.
	ignored int

	inEntity    bool
	entityStart int
	entity      []byte
}

// listCounter is the numbering state of an open list.
type listCounter struct {
	ordered bool
	next    int
}

func (state *tokenState) report(kind DiagnosticKind, offset int, tag string) {
	state.diags = append(state.diags, Diagnostic{
		Kind:   kind,
		Offset: offset,
		Pos:    state.pos,
		Tag:    tag,
	})
}

func (state *tokenState) startTag(offset int) {
	if state.inTag {
		// A '<' inside a tag starts over.
		if state.marker {
			state.stack.pop()
		}
		state.report(UnterminatedTag, state.tagStart, string(state.name))
	}
	state.inTag = true
	state.tagStart = offset
	state.name = state.name[:0]
	state.marker = false
	state.dropped = false
	if offset+1 >= len(state.input) || state.input[offset+1] == '/' {
		return
	}
	if state.stack.push(openMarker{start: state.pos, offset: offset}) {
		state.marker = true
	} else {
		state.dropped = true
	}
}

func (state *tokenState) endTag() {
	state.inTag = false
	name := string(state.name)
	switch {
	case strings.HasPrefix(name, "/"):
		if state.ignored > 0 {
			// Closes a tag that was dropped for depth.
			state.ignored--
			break
		}
		m, ok := state.stack.pop()
		if !ok {
			state.report(UnmatchedCloseTag, state.tagStart, name[1:])
			break
		}
		state.spans = append(state.spans, m.span(state.pos))
		state.leaveList(m.name)
	case strings.HasSuffix(name, "/") || isVoidElement(elementName(name)):
		if state.marker {
			state.stack.pop()
		}
		state.selfClosingTag(name)
	case state.dropped:
		state.ignored++
		state.report(TagDepthExceeded, state.tagStart, name)
	default:
		if state.marker {
			state.stack.rename(name)
		}
		state.enterList(name)
	}
	state.name = state.name[:0]
	state.marker = false
	state.dropped = false
}

func (state *tokenState) selfClosingTag(name string) {
	if elementName(name) == atom.Br.String() {
		if !state.CompactLineBreaks {
			state.text = append(state.text, '\n')
			state.pos++
		}
		return
	}
	state.spans = append(state.spans, TagSpan{
		Name:  name,
		Start: state.pos,
		End:   state.pos,
	})
}

func (state *tokenState) enterList(name string) {
	switch elementName(name) {
	case atom.Ol.String():
		state.lists = append(state.lists, listCounter{
			ordered: true,
			next:    listStart(name),
		})
	case atom.Ul.String():
		state.lists = append(state.lists, listCounter{})
	case atom.Li.String():
		state.writeListMarker()
	}
}

func (state *tokenState) leaveList(name string) {
	switch elementName(name) {
	case atom.Ol.String(), atom.Ul.String():
		if n := len(state.lists); n > 0 {
			state.lists = state.lists[:n-1]
		}
	}
}

// writeListMarker writes the bullet or number of a list item
// directly into the display text.
func (state *tokenState) writeListMarker() {
	n := len(state.lists)
	if n == 0 || !state.lists[n-1].ordered {
		state.text = append(state.text, "• "...)
		state.pos += 2
		return
	}
	counter := &state.lists[n-1]
	start := len(state.text)
	state.text = strconv.AppendInt(state.text, int64(counter.next), 10)
	state.text = append(state.text, ". "...)
	state.pos += len(state.text) - start
	counter.next++
}

// writeByte writes a byte of plain text.
func (state *tokenState) writeByte(c byte) {
	if c == '\n' && !state.KeepBlankLines &&
		(len(state.text) == 0 || state.text[len(state.text)-1] == '\n') {
		return
	}
	state.text = append(state.text, c)
	state.pos += VisibleWidth(c)
}

func (state *tokenState) finishEntity() {
	state.inEntity = false
	var ok bool
	if state.inTag {
		state.name, ok = state.entities.AppendEntity(state.name, state.entity)
		if !ok {
			state.report(UnknownEntity, state.entityStart, string(state.entity))
			state.name = append(state.name, state.entity...)
		}
		return
	}
	start := len(state.text)
	state.text, ok = state.entities.AppendEntity(state.text, state.entity)
	if !ok {
		state.report(UnknownEntity, state.entityStart, string(state.entity))
		state.text = append(state.text, state.entity...)
	}
	for _, c := range state.text[start:] {
		state.pos += VisibleWidth(c)
	}
}

// abandonEntity passes a partial character reference through verbatim.
func (state *tokenState) abandonEntity() {
	state.inEntity = false
	if state.inTag {
		state.name = append(state.name, state.entity...)
		return
	}
	state.text = append(state.text, state.entity...)
	state.pos += VisibleLen(state.entity)
}

func (state *tokenState) finish() {
	if state.inEntity {
		state.abandonEntity()
	}
	if state.inTag {
		if state.marker {
			state.stack.pop()
		}
		state.report(UnterminatedTag, state.tagStart, string(state.name))
		state.inTag = false
	}
	for !state.stack.empty() {
		m, _ := state.stack.pop()
		state.diags = append(state.diags, Diagnostic{
			Kind:   UnclosedTag,
			Offset: m.offset,
			Pos:    m.start,
			Tag:    m.name,
		})
	}
}

// elementName returns the element name at the beginning of a tag's text.
func elementName(name string) string {
	if i := strings.IndexAny(name, " \t\r\n/"); i >= 0 {
		return name[:i]
	}
	return name
}

// isVoidElement reports whether the element never has a closing tag.
func isVoidElement(name string) bool {
	switch atom.Lookup([]byte(name)) {
	case atom.Br, atom.Hr, atom.Img, atom.Wbr:
		return true
	default:
		return false
	}
}

// listStart returns the value of an ordered list's start attribute
// or 1 if it has none.
func listStart(name string) int {
	const attr = "start="
	i := strings.Index(name, attr)
	if i < 0 {
		return 1
	}
	v := strings.TrimLeft(name[i+len(attr):], `"'`)
	end := 0
	for end < len(v) && isASCIIDigit(v[end]) {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 1
	}
	return n
}

func isMnemonicByte(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '#'
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
