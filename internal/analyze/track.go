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
	"fillmore-labs.com/bloatedscope/internal/scope"
)

func (s *session) sawStore(ins *bytecode.Instruction) {
	pc, reg := ins.PC, ins.Register

	if _, ok := s.handlers[pc]; ok {
		s.ignore.add(reg)
		s.splitAtHandler(pc)
	} else if s.unsafeStore() || s.riskyStoreType(reg, ins.Next()) {
		s.ignore.add(reg)
	}

	if s.ignore.has(reg) {
		return
	}

	h := s.tree.Find(s.tree.Root(), pc)
	if h == scope.NoBlock {
		s.ignore.add(reg)

		return
	}

	tag := s.stack.Tag(0)
	if tag != nil && tag.risky {
		s.ignore.add(reg)

		return
	}

	var assoc *scope.Key
	if tag != nil {
		assoc = tag.caller
	}

	s.tree.AddStore(h, reg, pc, assoc)

	if s.sawDup {
		s.tree.AddLoad(h, reg, pc)
	}
}

// splitAtHandler ends the block running into a catch handler just before it and
// starts a new one at the handler.
func (s *session) splitAtHandler(pc int) {
	t, root := s.tree, s.tree.Root()

	h := t.Find(root, pc+1)
	if h == scope.NoBlock || t.Block(h).Start >= pc {
		return
	}

	split := t.NewBlock(pc, t.Block(h).Finish)
	t.Truncate(h, pc-1)
	t.AddChild(root, split)
}

// unsafeStore reports stores inside a synchronized region or of a null constant.
func (s *session) unsafeStore() bool {
	return len(s.monitors) > 0 || s.sawNull
}

func (s *session) riskyStoreType(reg, next int) bool {
	lv, ok := s.method.Locals.Lookup(reg, next)

	return ok && s.risk.RiskyStoreType(lv.Signature)
}

func (s *session) sawIinc(ins *bytecode.Instruction) {
	pc, reg := ins.PC, ins.Register
	t, root := s.tree, s.tree.Root()

	if !s.ignore.has(reg) {
		if h := t.Find(root, pc); h != scope.NoBlock {
			t.AddLoad(h, reg, pc)
		} else {
			s.ignore.add(reg)
		}
	}

	if _, ok := s.handlers[pc]; ok || s.unsafeStore() {
		s.ignore.add(reg)
	}

	if s.ignore.has(reg) {
		return
	}

	h := t.Find(root, pc)
	if h == scope.NoBlock {
		s.ignore.add(reg)

		return
	}

	t.AddStore(h, reg, pc, nil)

	if s.sawDup {
		t.AddLoad(h, reg, pc)
	}
}

func (s *session) sawLoad(ins *bytecode.Instruction) {
	pc, reg := ins.PC, ins.Register

	if s.ignore.has(reg) {
		return
	}

	if h := s.tree.Find(s.tree.Root(), pc); h != scope.NoBlock {
		s.tree.AddLoad(h, reg, pc)
	} else {
		s.ignore.add(reg)
	}
}
