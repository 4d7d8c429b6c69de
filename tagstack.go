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

// openMarker is a tag that has been started with '<'
// but not yet matched with its closing tag.
// The start position is known as soon as the '<' is seen;
// the name is only known once the '>' is reached.
type openMarker struct {
	start  int
	offset int // byte offset of the '<' in the input
	name   string
}

// span promotes the marker to a completed span ending at end.
func (m openMarker) span(end int) TagSpan {
	return TagSpan{
		Name:  m.name,
		Start: m.start,
		End:   end,
	}
}

// tagStack is a bounded LIFO of open markers.
type tagStack struct {
	markers  []openMarker
	capacity int
}

func newTagStack(capacity int) *tagStack {
	return &tagStack{capacity: capacity}
}

// push adds m to the top of the stack.
// It reports false without modifying the stack if the stack is full.
func (s *tagStack) push(m openMarker) bool {
	if len(s.markers) >= s.capacity {
		return false
	}
	s.markers = append(s.markers, m)
	return true
}

// pop removes the top marker from the stack.
// ok is false if the stack is empty.
func (s *tagStack) pop() (m openMarker, ok bool) {
	if len(s.markers) == 0 {
		return openMarker{}, false
	}
	m = s.markers[len(s.markers)-1]
	s.markers[len(s.markers)-1] = openMarker{}
	s.markers = s.markers[:len(s.markers)-1]
	return m, true
}

// rename sets the name of the top marker.
// It reports false if the stack is empty.
func (s *tagStack) rename(name string) bool {
	m, ok := s.pop()
	if !ok {
		return false
	}
	m.name = name
	return s.push(m)
}

func (s *tagStack) empty() bool {
	return len(s.markers) == 0
}
