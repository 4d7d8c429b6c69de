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

// Package richtext converts the inline HTML used in forum comments
// into plain display text and a list of style ranges
// suitable for driving a rich text renderer.
//
// The dialect is deliberately small:
// <strong>, <em>, <del>, <code>, <blockquote>, <sup>, <h1> through <h6>,
// <a href="...">, <ol>, <ul>, <li>, and <br/>.
// Other tags are removed from the display text without affecting its style.
// The package does not validate or sanitize markup,
// and malformed input never causes a failure:
// broken formatting is reported as a [Diagnostic] instead.
//
// Positions in this package are counted in visible units (see [VisibleWidth]),
// not bytes.
package richtext

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// A Parser converts markup into display text and style ranges.
// The zero value is ready to use.
//
// The void elements <br>, <hr>, <img>, and <wbr> are treated as self-closing
// even when written without a trailing slash,
// rather than as open tags that wait for a closing tag.
// Thus "a<br>b" produces "a\nb".
// A Parser's fields must not be modified while it is in use,
// but a Parser may otherwise be used from multiple goroutines simultaneously.
type Parser struct {
	// If CompactLineBreaks is true, <br/> tags do not insert a newline.
	// This is appropriate for sources that already follow every <br/> with a newline.
	CompactLineBreaks bool
	// By default, a newline in the text is dropped
	// if it would start the display text or follow another newline.
	// Sources that surround block elements with newlines
	// would otherwise produce stray blank lines.
	// If KeepBlankLines is true, every newline is kept.
	KeepBlankLines bool
	// If NormalizeNFC is true, the input is converted to
	// Unicode Normalization Form C before tokenizing.
	NormalizeNFC bool
	// If StrictTagNames is true, tags are matched on their whole element name.
	// Otherwise, tags are matched by prefix, so <embed> is treated like <em>.
	StrictTagNames bool

	// MaxInputSize is the largest input in bytes that will be accepted.
	// If MaxInputSize is zero, DefaultMaxInputSize is used.
	MaxInputSize int
	// MaxTagDepth is the largest number of tags that may be open at once.
	// Tags beyond this depth are ignored.
	// If MaxTagDepth is zero, the depth is only limited by the input size.
	MaxTagDepth int
	// Concurrency is the number of documents [Parser.ParseAll] parses at once.
	// If Concurrency is zero, GOMAXPROCS is used.
	Concurrency int

	// Entities decodes character references.
	// If Entities is nil, HTMLEntities is used.
	Entities EntityDecoder
}

// Document is the fully processed form of a piece of markup.
type Document struct {
	Text        string
	Ranges      []StyleRange
	VisibleLen  int
	Diagnostics []Diagnostic
}

// Tokenize strips the markup from input using the default [Parser] options.
func Tokenize(input []byte) (*Tokens, error) {
	return new(Parser).Tokenize(input)
}

// Linearize flattens tag spans using the default [Parser] options.
func Linearize(spans []TagSpan, length int) ([]StyleRange, []Diagnostic) {
	return new(Parser).Linearize(spans, length)
}

// Parse converts markup to a [Document] using the default [Parser] options.
func Parse(input []byte) (*Document, error) {
	return new(Parser).Parse(input)
}

// Parse tokenizes input and linearizes the resulting spans.
func (p *Parser) Parse(input []byte) (*Document, error) {
	tokens, err := p.Tokenize(input)
	if err != nil {
		return nil, err
	}
	ranges, diags := p.Linearize(tokens.Spans, tokens.VisibleLen)
	return &Document{
		Text:        string(tokens.Text),
		Ranges:      ranges,
		VisibleLen:  tokens.VisibleLen,
		Diagnostics: append(tokens.Diagnostics, diags...),
	}, nil
}

// ParseAll parses each of the inputs concurrently.
// The returned documents are in the same order as the inputs.
// ParseAll stops at the first error, including the cancellation of ctx.
func (p *Parser) ParseAll(ctx context.Context, inputs [][]byte) ([]*Document, error) {
	docs := make([]*Document, len(inputs))
	grp, grpCtx := errgroup.WithContext(ctx)
	limit := p.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	grp.SetLimit(limit)
	for i, input := range inputs {
		if grpCtx.Err() != nil {
			break
		}
		i, input := i, input
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			doc, err := p.Parse(input)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
