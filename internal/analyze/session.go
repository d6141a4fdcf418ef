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
	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/opstack"
	"fillmore-labs.com/bloatedscope/internal/risk"
	"fillmore-labs.com/bloatedscope/internal/scope"
)

// callTag is attached to the stack entry holding a call result.
type callTag struct {
	risky  bool
	caller *scope.Key // object the method was called on, if known
}

// regSet is a set of local variable slots.
type regSet map[int]struct{}

func (s regSet) add(reg int) { s[reg] = struct{}{} }

func (s regSet) has(reg int) bool {
	_, ok := s[reg]

	return ok
}

// session holds the state of one method analysis.
type session struct {
	method *bytecode.Method
	risk   *risk.Classifier

	tree  *scope.Tree
	stack *opstack.Stack[*callTag]

	ignore        regSet           // slots never reported
	tryStarts     map[int]int      // start of a protected range -> its first handler
	handlers      map[int]struct{} // exception handler entries
	switchTargets map[int]struct{}
	monitors      []int // locations of open monitorenter instructions

	dontReport bool // the method calls wasNull()
	sawDup     bool
	sawNull    bool
}

func newSession(m *bytecode.Method, params []int, rc *risk.Classifier) *session {
	s := &session{
		method:        m,
		risk:          rc,
		tree:          scope.New(m.Length),
		stack:         opstack.New[*callTag](m.Exceptions),
		ignore:        make(regSet, len(params)+1),
		tryStarts:     make(map[int]int, len(m.Exceptions)),
		handlers:      make(map[int]struct{}, len(m.Exceptions)),
		switchTargets: make(map[int]struct{}),
	}

	if !m.Static {
		s.ignore.add(0)
	}

	for _, reg := range params {
		s.ignore.add(reg)
	}

	for _, ex := range m.Exceptions {
		if _, ok := s.tryStarts[ex.Start]; !ok {
			s.tryStarts[ex.Start] = ex.Handler
		}

		s.handlers[ex.Handler] = struct{}{}
	}

	return s
}

// scan runs the instruction pass.
func (s *session) scan() {
	for i := range s.method.Code {
		ins := &s.method.Code[i]

		s.stack.Enter(ins.PC)

		tag := s.visit(ins)

		s.stack.Apply(ins)

		if tag != nil {
			s.stack.SetTag(0, tag)
		}
	}
}

func (s *session) visit(ins *bytecode.Instruction) *callTag {
	var tag *callTag

	if handler, ok := s.tryStarts[ins.PC]; ok {
		s.tree.AddChild(s.tree.Root(), s.tree.NewBlock(ins.PC, handler, scope.Try))
	}

	switch op := ins.Op; {
	case op.IsStore():
		s.sawStore(ins)

	case op == bytecode.Iinc:
		s.sawIinc(ins)

	case op.IsLoad():
		s.sawLoad(ins)

	case op.IsBranch():
		s.sawBranch(ins)

	case op.IsSwitch():
		s.sawSwitch(ins)

	case op == bytecode.Invokevirtual, op == bytecode.Invokeinterface:
		tag = s.sawInstanceCall(ins)

	case op == bytecode.Invokestatic, op == bytecode.Invokespecial:
		tag = s.sawStaticCall(ins)

	case op == bytecode.Monitorenter:
		s.sawMonitorEnter(ins.PC)

	case op == bytecode.Monitorexit:
		s.sawMonitorExit(ins.PC)
	}

	s.sawDup = ins.Op == bytecode.Dup
	s.sawNull = ins.Op == bytecode.AconstNull

	return tag
}
