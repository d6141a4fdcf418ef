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

// Package analyzer implements the bloatedscope bytecode analysis.
//
// # Overview
//
// Bloatedscope reads decoded JVM methods and finds stores to local variables whose
// value is only ever read inside one nested block, so the assignment could be moved
// into that block.
//
// # Example
//
// Before:
//
//	void log(boolean verbose) {
//	    String msg = format(data);  // computed on every call
//	    if (verbose) {
//	        System.out.println(msg);
//	    }
//	}
//
// After moving the assignment:
//
//	void log(boolean verbose) {
//	    if (verbose) {
//	        String msg = format(data);
//	        System.out.println(msg);
//	    }
//	}
//
// # Suppressed Moves
//
// Stores are not reported when the block using them is a loop, a synchronized region
// or an exception handler range, when the stored value comes from a call whose result
// depends on the time of the call (see [WithRiskyMethods]), or when the receiver of the
// call is modified in between.
//
// A second detector reports calls of Hashtable and Vector methods that predate the
// collections framework.
package analyzer
