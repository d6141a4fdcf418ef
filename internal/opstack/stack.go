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

package opstack

import (
	"slices"

	"fillmore-labs.com/bloatedscope/bytecode"
)

// Item is a simulated operand stack entry.
type Item struct {
	Type     bytecode.Type
	Register int    // Slot the value was loaded from, -1 if none
	Field    string // Name of the field the value was read from
	Null     bool   // Pushed by aconst_null
}

// Wide reports whether the item is a category 2 value.
func (it Item) Wide() bool { return it.Type.Wide() }

func value(t bytecode.Type) Item { return Item{Type: t, Register: -1} }

// frame is a stack state with its tags.
type frame[T any] struct {
	items []Item
	tags  []T
}

func (f frame[T]) clone() frame[T] {
	return frame[T]{items: slices.Clone(f.items), tags: slices.Clone(f.tags)}
}

// Stack is an operand stack simulator carrying a tag of type T per entry.
//
// Call [Stack.Enter] before inspecting the state at an instruction and
// [Stack.Apply] afterwards.
type Stack[T any] struct {
	frame[T]

	targets  map[int]frame[T] // state recorded at jump targets
	handlers map[int]struct{}
	dead     bool // the previous instruction does not fall through
}

// New creates a simulator for a method with the given exception table.
func New[T any](exceptions []bytecode.ExceptionRange) *Stack[T] {
	s := &Stack[T]{
		targets:  make(map[int]frame[T]),
		handlers: make(map[int]struct{}, len(exceptions)),
	}

	for _, ex := range exceptions {
		s.handlers[ex.Handler] = struct{}{}
	}

	return s
}

// Depth returns the number of entries on the stack.
func (s *Stack[T]) Depth() int { return len(s.items) }

// Item returns the entry at depth, where 0 is the top of the stack.
func (s *Stack[T]) Item(depth int) (Item, bool) {
	i := len(s.items) - 1 - depth
	if depth < 0 || i < 0 {
		return Item{}, false
	}

	return s.items[i], true
}

// Tag returns the tag of the entry at depth, or the zero value.
func (s *Stack[T]) Tag(depth int) T {
	i := len(s.tags) - 1 - depth
	if depth < 0 || i < 0 {
		var zero T

		return zero
	}

	return s.tags[i]
}

// SetTag attaches tag to the entry at depth. It reports false when there is no such entry.
func (s *Stack[T]) SetTag(depth int, tag T) bool {
	i := len(s.tags) - 1 - depth
	if depth < 0 || i < 0 {
		return false
	}

	s.tags[i] = tag

	return true
}

// Enter establishes the stack state at the start of the instruction at pc.
//
// Exception handlers start with the caught exception as the only entry. After an
// instruction that does not fall through, the state recorded by an earlier jump to
// pc is restored, or the stack is cleared when there is none.
func (s *Stack[T]) Enter(pc int) {
	defer func() { s.dead = false }()

	if _, ok := s.handlers[pc]; ok {
		var zero T

		s.items = append(s.items[:0], value(bytecode.TypeRef))
		s.tags = append(s.tags[:0], zero)

		return
	}

	if !s.dead {
		return
	}

	if saved, ok := s.targets[pc]; ok {
		s.frame = saved.clone()

		return
	}

	s.items, s.tags = s.items[:0], s.tags[:0]
}

// Apply simulates the effect of ins on the stack.
func (s *Stack[T]) Apply(ins *bytecode.Instruction) {
	switch op := ins.Op; {
	case op >= bytecode.Pop && op <= bytecode.Swap:
		s.shuffle(op)

	case op == bytecode.AconstNull:
		s.push(Item{Type: bytecode.TypeRef, Register: -1, Null: true})

	case op.IsLoad():
		s.push(Item{Type: op.Pushes(), Register: ins.Register})

	case op == bytecode.Ldc, op == bytecode.LdcW, op == bytecode.Ldc2W:
		s.push(value(ins.Constant))

	case op == bytecode.Getstatic, op == bytecode.Getfield:
		s.pop(op.Pops())

		it := value(bytecode.TypeRef)
		if ins.Ref != nil {
			it = Item{Type: bytecode.TypeOf(ins.Ref.Descriptor), Register: -1, Field: ins.Ref.Name}
		}

		s.push(it)

	case op.IsInvoke():
		s.invoke(ins)

	case op == bytecode.Checkcast:
		// the reference stays with its provenance and tag

	case op == bytecode.Multianewarray:
		s.pop(ins.Dimensions)
		s.push(value(bytecode.TypeRef))

	default:
		s.pop(op.Pops())

		if t := op.Pushes(); t != bytecode.TypeNone {
			s.push(value(t))
		}
	}

	s.recordTargets(ins)
	s.dead = ins.Op.EndsFlow()
}

func (s *Stack[T]) invoke(ins *bytecode.Instruction) {
	if ins.Ref == nil {
		s.items, s.tags = s.items[:0], s.tags[:0]

		return
	}

	desc, err := bytecode.ParseMethodDescriptor(ins.Ref.Descriptor)
	if err != nil {
		s.items, s.tags = s.items[:0], s.tags[:0]

		return
	}

	n := len(desc.Params)
	if ins.Op != bytecode.Invokestatic && ins.Op != bytecode.Invokedynamic {
		n++ // receiver
	}

	s.pop(n)

	if !desc.Void() {
		s.push(value(bytecode.TypeOf(desc.Return)))
	}
}

func (s *Stack[T]) recordTargets(ins *bytecode.Instruction) {
	var targets []int

	switch {
	case ins.Op.HasTarget():
		targets = []int{ins.Target}

	case ins.Op.IsSwitch():
		targets = ins.Targets()
	}

	for _, target := range targets {
		if _, ok := s.targets[target]; ok {
			continue
		}

		s.targets[target] = s.frame.clone()
	}
}

func (s *Stack[T]) push(it Item) {
	var zero T

	s.items = append(s.items, it)
	s.tags = append(s.tags, zero)
}

// pop removes n entries, stopping at an empty stack.
func (s *Stack[T]) pop(n int) {
	n = max(0, len(s.items)-n)
	s.items, s.tags = s.items[:n], s.tags[:n]
}

// span returns the number of entries that make up slots stack words, starting at depth.
func (s *Stack[T]) span(depth, slots int) int {
	n := 0
	for slots > 0 {
		it, ok := s.Item(depth + n)
		if !ok {
			break
		}

		if it.Wide() {
			slots -= 2
		} else {
			slots--
		}

		n++
	}

	return n
}

func (s *Stack[T]) shuffle(op bytecode.Opcode) {
	switch op {
	case bytecode.Pop:
		s.pop(1)

	case bytecode.Pop2:
		s.pop(s.span(0, 2))

	case bytecode.Dup:
		s.dupUnder(1, 0)

	case bytecode.DupX1:
		s.dupUnder(1, 1)

	case bytecode.DupX2:
		s.dupUnder(1, s.span(1, 2))

	case bytecode.Dup2:
		s.dupUnder(s.span(0, 2), 0)

	case bytecode.Dup2X1:
		s.dupUnder(s.span(0, 2), 1)

	case bytecode.Dup2X2:
		n := s.span(0, 2)
		s.dupUnder(n, s.span(n, 2))

	case bytecode.Swap:
		if n := len(s.items); n >= 2 {
			s.items[n-1], s.items[n-2] = s.items[n-2], s.items[n-1]
			s.tags[n-1], s.tags[n-2] = s.tags[n-2], s.tags[n-1]
		}
	}
}

// dupUnder copies the top n entries and inserts the copies below the top n+skip entries.
func (s *Stack[T]) dupUnder(n, skip int) {
	l := len(s.items)
	if n == 0 || n+skip > l {
		for range max(n, 1) {
			s.push(value(bytecode.TypeNone))
		}

		return
	}

	at := l - n - skip
	s.items = slices.Insert(s.items, at, slices.Clone(s.items[l-n:])...)
	s.tags = slices.Insert(s.tags, at, slices.Clone(s.tags[l-n:])...)
}
