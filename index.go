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

// An Index maps visible positions in a display text back to byte offsets.
type Index struct {
	// offsets[pos] is the byte offset of the character
	// that contains visible unit pos.
	offsets []int
}

// NewIndex builds an index for the given display text.
func NewIndex(text []byte) *Index {
	idx := &Index{offsets: make([]int, 0, len(text)+1)}
	for i, c := range text {
		for w := VisibleWidth(c); w > 0; w-- {
			idx.offsets = append(idx.offsets, i)
		}
	}
	idx.offsets = append(idx.offsets, len(text))
	return idx
}

// Len returns the length of the indexed text in visible units.
func (idx *Index) Len() int {
	return len(idx.offsets) - 1
}

// ByteOffset returns the byte offset of the given visible position.
// Positions past the end of the text return the length of the text.
// Positions that fall in the middle of a four-byte character
// return the offset of that character.
func (idx *Index) ByteOffset(pos int) int {
	switch {
	case pos <= 0:
		return 0
	case pos >= len(idx.offsets):
		return idx.offsets[len(idx.offsets)-1]
	default:
		return idx.offsets[pos]
	}
}

// Slice returns the bytes of text between the visible positions start and end.
// text must be the text the index was built from.
func (idx *Index) Slice(text []byte, start, end int) []byte {
	i, j := idx.ByteOffset(start), idx.ByteOffset(end)
	if j < i {
		return text[i:i]
	}
	return text[i:j]
}
