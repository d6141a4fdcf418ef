// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"
	"strings"
)

// Priority ranks diagnostics by confidence. Lower values are more important.
type Priority uint8

const (
	// PriorityHigh marks findings that are almost certainly worth fixing.
	PriorityHigh Priority = iota + 1

	// PriorityNormal is the priority of all findings reported by the built-in detectors.
	PriorityNormal

	// PriorityLow marks findings that are likely noise.
	PriorityLow
)

// Includes reports whether a diagnostic of priority other passes the threshold p.
// The zero threshold includes everything.
func (p Priority) Includes(other Priority) bool {
	return p == 0 || other <= p
}

// String returns the textual form of the priority.
func (p Priority) String() string {
	text, err := p.MarshalText()
	if err != nil {
		return fmt.Sprintf("Priority(%d)", p)
	}

	return string(text)
}

// MarshalText implements [encoding.TextMarshaler].
func (p Priority) MarshalText() ([]byte, error) {
	switch p {
	case PriorityHigh:
		return []byte("high"), nil

	case PriorityNormal:
		return []byte("normal"), nil

	case PriorityLow:
		return []byte("low"), nil

	default:
		return nil, fmt.Errorf("unknown priority %d", p)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Priority) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "high", "1":
		*p = PriorityHigh

	case "normal", "medium", "2":
		*p = PriorityNormal

	case "", "low", "all", "3":
		*p = PriorityLow

	default:
		return fmt.Errorf("unknown priority %q", string(text))
	}

	return nil
}
