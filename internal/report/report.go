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

// Package report defines the diagnostics produced by the detectors and their text form.
package report

import (
	"cmp"
	"strconv"
	"strings"

	"fillmore-labs.com/bloatedscope/analyzer/level"
)

// Diagnostic is a finding in one method.
type Diagnostic struct {
	Pattern  Pattern
	Priority level.Priority

	Class      string // Internal name of the class
	Source     string // Source file, if known
	Method     string
	Descriptor string

	PC   int // Location of the offending instruction
	Line int // Source line, -1 if unknown

	Slot     int    // Local variable slot, -1 when not applicable
	Variable string // Declared name of the slot, if known

	Message string
}

// Position returns "file:line", falling back to the class name and the instruction location.
func (d Diagnostic) Position() string {
	file := d.Source
	if file == "" {
		file = d.Class + ".class"
	}

	if d.Line < 0 {
		return file + "[pc " + strconv.Itoa(d.PC) + "]"
	}

	return file + ":" + strconv.Itoa(d.Line)
}

// String formats the diagnostic as "file:line: message (PATTERN)".
func (d Diagnostic) String() string {
	var b strings.Builder

	b.WriteString(d.Position())       // ignore error
	b.WriteString(": ")               // ignore error
	b.WriteString(d.Message)          // ignore error
	b.WriteString(" (")               // ignore error
	b.WriteString(d.Pattern.String()) // ignore error
	b.WriteByte(')')                  // ignore error

	return b.String()
}

// Compare orders diagnostics by class, method, location and pattern.
func Compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Class, b.Class),
		cmp.Compare(a.Method, b.Method),
		cmp.Compare(a.Descriptor, b.Descriptor),
		cmp.Compare(a.PC, b.PC),
		cmp.Compare(a.Pattern, b.Pattern),
	)
}

// VariableName returns the quoted declared name, or a slot description for code
// compiled without a local variable table.
func VariableName(name string, slot int) string {
	if name != "" {
		return "'" + name + "'"
	}

	return "local " + strconv.Itoa(slot)
}
