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

package analyze

import (
	"context"
	"fmt"
	"maps"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/bloatedscope/analyzer/level"
	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/report"
	"fillmore-labs.com/bloatedscope/internal/scope"
)

// finding is a store that could move into the only child block using it.
type finding struct {
	reg, pc int
}

// detect walks the block tree and returns the reportable stores in tree order.
func (s *session) detect(ctx context.Context) []finding {
	defer trace.StartRegion(ctx, "Detect").End()

	if s.dontReport {
		return nil
	}

	var findings []finding

	s.findBugs(s.tree.Root(), regSet{}, &findings)

	return findings
}

func (s *session) findBugs(h scope.Handle, parentUsed regSet, findings *[]finding) {
	t := s.tree

	b := t.Block(h)
	if b.Is(scope.Loop) {
		return
	}

	used := maps.Clone(parentUsed)
	for reg := range b.Stores() {
		used.add(reg)
	}

	for reg := range b.Loads() {
		used.add(reg)
	}

	children := t.Children(h)

	for reg, pc := range b.Stores() {
		if b.Loaded(reg) || parentUsed.has(reg) || s.ignore.has(reg) {
			continue
		}

		if s.singleChildUse(children, reg) {
			*findings = append(*findings, finding{reg: reg, pc: pc})
		}
	}

	for _, c := range children {
		s.findBugs(c, used, findings)
	}
}

// singleChildUse reports whether exactly one child uses reg. Any use inside a
// loop or a guarded region disqualifies the slot.
func (s *session) singleChildUse(children []scope.Handle, reg int) bool {
	t, uses := s.tree, 0

	for _, c := range children {
		if !t.UsesReg(c, reg) {
			continue
		}

		if b := t.Block(c); b.Is(scope.Loop) || b.Is(scope.Sync) || b.Is(scope.Try) {
			return false
		}

		uses++
	}

	return uses == 1
}

// diagnostic describes a finding in m.
func diagnostic(class *bytecode.Class, m *bytecode.Method, f finding) report.Diagnostic {
	var name string
	if lv, ok := m.Locals.Lookup(f.reg, nextPC(m, f.pc)); ok {
		name = lv.Name
	}

	return report.Diagnostic{
		Pattern:    report.BloatedAssignmentScope,
		Priority:   level.PriorityNormal,
		Class:      class.Name,
		Source:     class.Source,
		Method:     m.Name,
		Descriptor: m.Descriptor,
		PC:         f.pc,
		Line:       m.Lines.Line(f.pc),
		Slot:       f.reg,
		Variable:   name,
		Message:    fmt.Sprintf("Assignment to %s can be moved into the only block using it", report.VariableName(name, f.reg)),
	}
}

// nextPC returns the location following the instruction at pc.
func nextPC(m *bytecode.Method, pc int) int {
	i, ok := slices.BinarySearchFunc(m.Code, pc, func(ins bytecode.Instruction, pc int) int { return ins.PC - pc })
	if !ok {
		return pc
	}

	return m.Code[i].Next()
}
