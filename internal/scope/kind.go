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

package scope

// Kind classifies the construct a block was inferred from.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// Loop marks a loop body, or a region entered at its bottom condition.
	Loop Kind = 1 << iota // loop
	// Goto marks a region that starts with an unconditional forward jump, like an else arm.
	Goto // goto
	// Sync marks a synchronized region.
	Sync // sync
	// Try marks a protected range of the exception table.
	Try // try
	// Case marks a switch arm.
	Case // case
)
