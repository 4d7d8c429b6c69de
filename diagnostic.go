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
	"errors"
	"fmt"
)

// ErrBufferCapacityExceeded is returned when an input is larger
// than the configured [Parser.MaxInputSize].
var ErrBufferCapacityExceeded = errors.New("buffer capacity exceeded")

// DefaultMaxInputSize is the input ceiling used
// when [Parser.MaxInputSize] is zero.
const DefaultMaxInputSize = 1 << 20

// A Diagnostic describes a malformed construct
// that was tolerated while parsing.
// Parsing always completes in spite of diagnostics;
// they only explain why the output may not match the author's intent.
type Diagnostic struct {
	Kind DiagnosticKind
	// Offset is the byte offset in the input where the problem was detected
	// or -1 if the problem was found after tokenizing.
	Offset int
	// Pos is the visible position in the display text
	// where the problem was detected.
	Pos int
	// Tag is the tag name or entity mnemonic involved, if any.
	Tag string
}

// Error formats the diagnostic as a message.
func (d Diagnostic) Error() string {
	var msg string
	switch d.Kind {
	case TagDepthExceeded:
		msg = "too many nested tags; tag ignored"
	case MalformedAttribute:
		msg = "unterminated attribute value"
	case UnmatchedCloseTag:
		msg = "closing tag without matching open tag"
	case UnclosedTag:
		msg = "tag never closed"
	case UnterminatedTag:
		msg = "tag not terminated before end of input"
	case UnknownEntity:
		msg = "unknown character reference"
	case UnknownTag:
		msg = "unsupported tag"
	default:
		msg = d.Kind.String()
	}
	if d.Tag != "" {
		msg = fmt.Sprintf("%s: %q", msg, d.Tag)
	}
	if d.Offset >= 0 {
		return fmt.Sprintf("byte %d: %s", d.Offset, msg)
	}
	return fmt.Sprintf("position %d: %s", d.Pos, msg)
}

// DiagnosticKind is an enumeration of the conditions a [Diagnostic] reports.
type DiagnosticKind int8

const (
	// TagDepthExceeded indicates that an open tag did not fit on the tag stack.
	// The tag and its closing tag are ignored.
	TagDepthExceeded DiagnosticKind = 1 + iota
	// MalformedAttribute indicates that a link target was missing its closing quote.
	// The link target is truncated at the end of the tag.
	MalformedAttribute
	// UnmatchedCloseTag indicates a closing tag with no open tag to match.
	UnmatchedCloseTag
	// UnclosedTag indicates an open tag that was never closed.
	// Its formatting is discarded.
	UnclosedTag
	// UnterminatedTag indicates that the input ended inside a tag.
	UnterminatedTag
	// UnknownEntity indicates a character reference the decoder did not recognize.
	// The reference text is kept verbatim.
	UnknownEntity
	// UnknownTag indicates a span whose tag has no formatting meaning.
	UnknownTag
)

func (k DiagnosticKind) String() string {
	switch k {
	case TagDepthExceeded:
		return "TagDepthExceeded"
	case MalformedAttribute:
		return "MalformedAttribute"
	case UnmatchedCloseTag:
		return "UnmatchedCloseTag"
	case UnclosedTag:
		return "UnclosedTag"
	case UnterminatedTag:
		return "UnterminatedTag"
	case UnknownEntity:
		return "UnknownEntity"
	case UnknownTag:
		return "UnknownTag"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int8(k))
	}
}
