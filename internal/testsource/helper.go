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

// Package testsource provides utilities for building methods from javap fragments in tests.
//
// It is designed to simplify testing of the detectors by handling the boilerplate of a
// complete javap listing around a method body.
package testsource

import (
	"strings"
	"testing"

	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/javap"
)

const testclass = "Test"

// Method parses a single method from a javap code fragment.
// The declaration decl, like "static void f(boolean);", and the code body are
// automatically wrapped in a class "Test" compiled from "Test.java". Body lines
// are re-indented, so fragments can be written flush left:
//
//	0: iconst_5
//	1: istore_1
//	2: return
//	Exception table:
//	   from    to  target type
//	       0     2     2   any
//
// Returns:
//   - *bytecode.Class: The wrapping class.
//   - *bytecode.Method: The parsed method.
func Method(tb testing.TB, decl, body string) (*bytecode.Class, *bytecode.Method) {
	tb.Helper()

	classes, err := javap.Parse(wrapSource(decl, body))
	if err != nil {
		tb.Fatalf("Failed to parse method %q: %v", decl, err)
	}

	if len(classes) != 1 || len(classes[0].Methods) != 1 {
		tb.Fatalf("Expected one method in %q", decl)
	}

	return classes[0], classes[0].Methods[0]
}

func wrapSource(decl, body string) *strings.Reader {
	const (
		header = "Compiled from \"" + testclass + ".java\"\nclass " + testclass + " {\n"
		suffix = "}\n"
	)

	var src strings.Builder
	src.Grow(len(header) + len(decl) + 2*len(body) + len(suffix))

	src.WriteString(header)            // ignore error
	src.WriteString("  " + decl + "\n") // ignore error
	src.WriteString("    Code:\n")      // ignore error

	for line := range strings.Lines(body) {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}

		src.WriteString("      ") // ignore error
		src.WriteString(line)     // ignore error
		src.WriteByte('\n')       // ignore error
	}

	src.WriteString(suffix) // ignore error

	return strings.NewReader(src.String())
}
