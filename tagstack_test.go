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

import "testing"

func TestTagStack(t *testing.T) {
	s := newTagStack(2)
	if !s.empty() {
		t.Fatal("new stack is not empty")
	}
	if _, ok := s.pop(); ok {
		t.Error("pop() on empty stack = _, true; want false")
	}
	if !s.push(openMarker{start: 1}) {
		t.Fatal("push #1 = false; want true")
	}
	if !s.push(openMarker{start: 2}) {
		t.Fatal("push #2 = false; want true")
	}
	if s.push(openMarker{start: 3}) {
		t.Error("push on full stack = true; want false")
	}
	if !s.rename("em") {
		t.Error("rename = false; want true")
	}
	m, ok := s.pop()
	if !ok || m.start != 2 || m.name != "em" {
		t.Errorf("pop() = %+v, %t; want {start:2 name:em}, true", m, ok)
	}
	m, ok = s.pop()
	if !ok || m.start != 1 || m.name != "" {
		t.Errorf("pop() = %+v, %t; want {start:1}, true", m, ok)
	}
	if !s.empty() {
		t.Error("stack not empty after popping everything")
	}
	if s.rename("x") {
		t.Error("rename on empty stack = true; want false")
	}
}
