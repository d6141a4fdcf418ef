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

// Package scope maintains the tree of nested blocks inferred from the control flow of a
// method body, together with the local variable loads and stores seen in each block.
//
// Blocks live in an arena owned by a [Tree] and are addressed by [Handle]. The root block
// spans the whole method. Every child lies within its parent's range and children are kept
// in start order.
package scope
