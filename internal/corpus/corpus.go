// Copyright 2024 Ross Light
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

// Package corpus provides a collection of sample comments
// along with the display text they are expected to produce.
package corpus

import (
	_ "embed"
	"encoding/json"
)

// Example is a single sample comment.
type Example struct {
	Example int
	Section string
	// Markup is the comment as received from the server.
	Markup string
	// Text is the display text produced with the default options.
	Text string
}

//go:embed comments.json
var commentData []byte

// Load returns the sample comments.
func Load() ([]Example, error) {
	var examples []Example
	if err := json.Unmarshal(commentData, &examples); err != nil {
		return nil, err
	}
	return examples, nil
}
