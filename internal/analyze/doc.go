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

// Package analyze implements the bloated assignment scope detector.
//
// # Overview
//
// The detector finds local variable stores that happen earlier than necessary: the
// stored value is only read inside one nested block, so the assignment could move
// into that block.
//
// # Example
//
// Before:
//
//	int x = compute();
//	if (flag) {
//	    System.out.println(x);
//	}
//
// After moving the assignment:
//
//	if (flag) {
//	    int x = compute();
//	    System.out.println(x);
//	}
//
// # Architecture
//
// Each method is analyzed in a single left-to-right pass over its instructions:
//
//  1. Classify: infer a tree of nested blocks from branches, switches, exception ranges
//     and monitors
//  2. Track: record loads and stores per block, ignoring slots that are unsafe to move
//  3. Detect: walk the tree and report stores used by exactly one child block
//
// An operand stack simulator runs alongside the pass to find the objects methods are
// called on and to carry call result risk to the following store.
package analyze
