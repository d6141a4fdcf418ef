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

package scope

import (
	"iter"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"fillmore-labs.com/bloatedscope/internal/config"
)

// Handle addresses a block in a [Tree].
type Handle int32

// NoBlock is the handle returned when no block matches.
const NoBlock Handle = -1

// Unbounded is the provisional finish of a synchronized region whose monitorexit has not been seen.
const Unbounded = math.MaxInt

// Key identifies the object a method was called on: a local variable slot or a field.
type Key struct {
	Register int    // -1 for fields
	Field    string // Field name, ignoring the declaring class
}

// RegisterKey returns the key of an object held in a local variable.
func RegisterKey(reg int) Key { return Key{Register: reg} }

// FieldKey returns the key of an object read from a field.
func FieldKey(name string) Key { return Key{Register: -1, Field: name} }

// Block is an inferred range of instruction locations.
type Block struct {
	Start, Finish int

	kind     config.BitMask[Kind]
	parent   Handle
	children []Handle

	stores map[int]int // slot -> most recent store location
	loads  map[int]int // slot -> most recent load location
	assocs map[Key]int // calling object -> slot stored from its call result
}

// Is reports whether the block was tagged with kind.
func (b *Block) Is(kind Kind) bool { return b.kind.Enabled(kind) }

// Set tags the block with kind.
func (b *Block) Set(kind Kind) { b.kind.Enable(kind) }

// HasChildren reports whether any block is nested in b.
func (b *Block) HasChildren() bool { return len(b.children) > 0 }

// Stores yields the stored slots in ascending order with their most recent store location.
func (b *Block) Stores() iter.Seq2[int, int] { return sortedEntries(b.stores) }

func sortedEntries(m map[int]int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for _, reg := range slices.Sorted(maps.Keys(m)) {
			if !yield(reg, m[reg]) {
				return
			}
		}
	}
}

// Loads yields the loaded slots in ascending order with their most recent load location.
func (b *Block) Loads() iter.Seq2[int, int] { return sortedEntries(b.loads) }

// Stored reports whether reg was stored in this block.
func (b *Block) Stored(reg int) bool {
	_, ok := b.stores[reg]

	return ok
}

// Loaded reports whether reg was loaded in this block.
func (b *Block) Loaded(reg int) bool {
	_, ok := b.loads[reg]

	return ok
}

// Tree is an arena of blocks rooted at the block spanning the whole method.
type Tree struct {
	blocks []Block
}

// New creates a tree whose root spans [0, length).
func New(length int) *Tree {
	t := &Tree{blocks: make([]Block, 0, 16)}
	t.NewBlock(0, length)

	return t
}

// Root returns the handle of the root block.
func (t *Tree) Root() Handle { return 0 }

// Block returns the block addressed by h.
func (t *Tree) Block(h Handle) *Block { return &t.blocks[h] }

// Parent returns the parent of h, or [NoBlock] for the root and detached blocks.
func (t *Tree) Parent(h Handle) Handle { return t.blocks[h].parent }

// Children returns the blocks nested directly in h, in start order.
func (t *Tree) Children(h Handle) []Handle { return t.blocks[h].children }

// NewBlock allocates a detached block covering [start, finish).
func (t *Tree) NewBlock(start, finish int, kinds ...Kind) Handle {
	h := Handle(len(t.blocks))
	t.blocks = append(t.blocks, Block{
		Start:  start,
		Finish: finish,
		kind:   config.NewBitMask(kinds...),
		parent: NoBlock,
	})

	return h
}

// AddChild nests child in parent.
//
// A child starting strictly inside an existing child's range descends into that
// child, with its finish clipped to the child's finish. Otherwise it is inserted
// among the children in start order.
func (t *Tree) AddChild(parent, child Handle) {
	nb := &t.blocks[child]

	for _, c := range t.blocks[parent].children {
		cb := &t.blocks[c]
		if nb.Start > cb.Start && nb.Start < cb.Finish {
			nb.Finish = min(nb.Finish, cb.Finish)
			t.AddChild(c, child)

			return
		}
	}

	nb.parent = parent

	p := &t.blocks[parent]
	i := slices.IndexFunc(p.children, func(c Handle) bool { return nb.Start < t.blocks[c].Start })
	if i < 0 {
		i = len(p.children)
	}

	p.children = slices.Insert(p.children, i, child)
}

// Truncate ends h at finish, clipping all descendants reaching past it.
func (t *Tree) Truncate(h Handle, finish int) {
	b := &t.blocks[h]
	if b.Finish <= finish {
		return
	}

	b.Finish = finish

	for _, c := range b.children {
		t.Truncate(c, finish)
	}
}

// RemoveChild detaches child from parent.
func (t *Tree) RemoveChild(parent, child Handle) {
	p := &t.blocks[parent]
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
		t.blocks[child].parent = NoBlock
	}
}

// Find returns the innermost block below h whose range strictly contains pc.
func (t *Tree) Find(h Handle, pc int) Handle {
	b := &t.blocks[h]
	if pc <= b.Start || pc >= b.Finish {
		return NoBlock
	}

	for _, c := range b.children {
		if found := t.Find(c, pc); found != NoBlock {
			return found
		}
	}

	return h
}

// FindWithTarget returns the deepest block below h that starts before start, reaches at
// least start, and either ends no later than target or is a non-loop goto block.
func (t *Tree) FindWithTarget(h Handle, start, target int) Handle {
	candidate := NoBlock

	b := &t.blocks[h]
	if b.Start < start && b.Finish >= start && (b.Finish <= target || (b.Is(Goto) && !b.Is(Loop))) {
		candidate = h
	}

	for _, c := range b.children {
		if found := t.FindWithTarget(c, start, target); found != NoBlock {
			return found
		}
	}

	return candidate
}

// PreviousSibling returns the sibling preceding h, or [NoBlock].
func (t *Tree) PreviousSibling(h Handle) Handle {
	parent := t.blocks[h].parent
	if parent == NoBlock {
		return NoBlock
	}

	siblings := t.blocks[parent].children
	if i := slices.Index(siblings, h); i > 0 {
		return siblings[i-1]
	}

	return NoBlock
}

// FindSynchronized returns the synchronized block with the latest start, descending from
// h through synchronized children. It returns h itself when there is none.
func (t *Tree) FindSynchronized(h Handle) Handle {
	found := h

	for _, c := range t.blocks[h].children {
		if t.blocks[c].Is(Sync) && t.blocks[c].Start > t.blocks[found].Start {
			found = t.FindSynchronized(c)
		}
	}

	return found
}

// PushUpLoadStores moves the loads and stores of h into its parent.
func (t *Tree) PushUpLoadStores(h Handle) {
	b := &t.blocks[h]
	if b.parent == NoBlock {
		return
	}

	p := &t.blocks[b.parent]

	if p.loads == nil {
		p.loads = b.loads
	} else {
		maps.Copy(p.loads, b.loads)
	}

	if p.stores == nil {
		p.stores = b.stores
	} else {
		maps.Copy(p.stores, b.stores)
	}

	b.loads, b.stores = nil, nil
}

// AddStore records a store of reg at pc. A non-nil assoc remembers the object whose
// call produced the stored value.
func (t *Tree) AddStore(h Handle, reg, pc int, assoc *Key) {
	b := &t.blocks[h]

	if b.stores == nil {
		b.stores = make(map[int]int)
	}

	b.stores[reg] = pc

	if assoc == nil {
		return
	}

	if b.assocs == nil {
		b.assocs = make(map[Key]int)
	}

	b.assocs[*assoc] = reg
}

// AddLoad records a load of reg at pc.
func (t *Tree) AddLoad(h Handle, reg, pc int) {
	b := &t.blocks[h]

	if b.loads == nil {
		b.loads = make(map[int]int)
	}

	b.loads[reg] = pc
}

// RemoveByAssoc forgets the loads and stores of the slots associated with key
// anywhere in the subtree of h.
func (t *Tree) RemoveByAssoc(h Handle, key Key) {
	b := &t.blocks[h]

	if reg, ok := b.assocs[key]; ok {
		delete(b.assocs, key)
		delete(b.loads, reg)
		delete(b.stores, reg)
	}

	for _, c := range b.children {
		t.RemoveByAssoc(c, key)
	}
}

// UsesReg reports whether reg is loaded or stored anywhere in the subtree of h.
func (t *Tree) UsesReg(h Handle, reg int) bool {
	b := &t.blocks[h]
	if b.Loaded(reg) || b.Stored(reg) {
		return true
	}

	return slices.ContainsFunc(b.children, func(c Handle) bool { return t.UsesReg(c, reg) })
}

// String renders the tree as nested ranges, like "0-20{3-13(goto) 13-20(loop)}".
func (t *Tree) String() string {
	var sb strings.Builder

	t.format(&sb, t.Root())

	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, h Handle) {
	b := &t.blocks[h]

	sb.WriteString(strconv.Itoa(b.Start))
	sb.WriteByte('-')

	if b.Finish == Unbounded {
		sb.WriteString("max")
	} else {
		sb.WriteString(strconv.Itoa(b.Finish))
	}

	var names []string

	for k := range b.kind.All() {
		names = append(names, k.String())
	}

	if len(names) > 0 {
		sb.WriteByte('(')
		sb.WriteString(strings.Join(names, "|"))
		sb.WriteByte(')')
	}

	if len(b.children) == 0 {
		return
	}

	sb.WriteByte('{')

	for i, c := range b.children {
		if i > 0 {
			sb.WriteByte(' ')
		}

		t.format(sb, c)
	}

	sb.WriteByte('}')
}
