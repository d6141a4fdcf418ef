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
	"slices"

	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/scope"
)

func (s *session) sawBranch(ins *bytecode.Instruction) {
	pc, target := ins.PC, ins.Target

	switch {
	case target <= pc:
		s.backwardBranch(pc, target)

	case ins.Op.IsGoto():
		s.forwardGoto(pc, ins.Next(), target)

	default:
		s.forwardConditional(pc, target)
	}
}

// forwardGoto handles jumps over an else arm, or into the bottom condition of a loop.
func (s *session) forwardGoto(pc, next, target int) {
	if _, ok := s.switchTargets[next]; ok {
		return // break out of a switch arm
	}

	t, root := s.tree, s.tree.Root()

	var h scope.Handle
	if t.FindWithTarget(root, pc, next) == scope.NoBlock {
		h = t.NewBlock(pc, target, scope.Loop, scope.Goto)
	} else {
		h = t.NewBlock(next, target, scope.Goto)
	}

	t.AddChild(root, h)
}

func (s *session) forwardConditional(pc, target int) {
	t, root := s.tree, s.tree.Root()

	if h := t.FindWithTarget(root, pc, target); h != scope.NoBlock {
		b := t.Block(h)
		if !b.Is(scope.Loop) && !b.Is(scope.Case) && !b.HasChildren() {
			if b.Is(scope.Goto) {
				parent := t.Parent(h)
				t.PushUpLoadStores(h)

				if parent != scope.NoBlock {
					t.RemoveChild(parent, h)
				}

				t.AddChild(root, t.NewBlock(pc, target))
			} else {
				t.PushUpLoadStores(h)
				b.Start = pc
			}

			return
		}
	}

	t.AddChild(root, t.NewBlock(pc, target))
}

func (s *session) backwardBranch(pc, target int) {
	t := s.tree

	h := t.Find(t.Root(), pc)
	if h == scope.NoBlock {
		return
	}

	for p := t.Parent(h); p != scope.NoBlock && t.Block(p).Start >= target; p = t.Parent(p) {
		h = p
	}

	if t.Block(h).Start > target {
		if prev := t.PreviousSibling(h); prev != scope.NoBlock && t.Block(prev).Start >= target {
			h = prev
		}
	}

	t.Block(h).Set(scope.Loop)
}

func (s *session) sawSwitch(ins *bytecode.Instruction) {
	targets := ins.Targets()
	if len(targets) == 0 {
		return
	}

	slices.Sort(targets)
	targets = slices.Compact(targets)

	t, root := s.tree, s.tree.Root()
	for i := 1; i < len(targets); i++ {
		t.AddChild(root, t.NewBlock(targets[i-1], targets[i], scope.Case))
	}

	for _, target := range targets {
		s.switchTargets[target] = struct{}{}
	}
}

func (s *session) sawMonitorEnter(pc int) {
	s.monitors = append(s.monitors, pc)

	t := s.tree
	t.AddChild(t.Root(), t.NewBlock(pc, scope.Unbounded, scope.Sync))
}

func (s *session) sawMonitorExit(pc int) {
	n := len(s.monitors)
	if n == 0 {
		return
	}

	t, root := s.tree, s.tree.Root()
	if h := t.FindSynchronized(root); h != root {
		t.Block(h).Finish = pc
	}

	s.monitors = s.monitors[:n-1]
}
