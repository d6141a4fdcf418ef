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

package bytecode_test

import (
	"slices"
	"testing"

	. "fillmore-labs.com/bloatedscope/bytecode"
)

func TestLocalVariableLookup(t *testing.T) {
	t.Parallel()

	lvt := LocalVariableTable{
		{Start: 0, Length: 10, Slot: 0, Name: "this", Signature: "LFoo;"},
		{Start: 4, Length: 6, Slot: 1, Name: "f", Signature: "Ljava/util/concurrent/Future;"},
		{Start: 12, Length: 3, Slot: 1, Name: "s", Signature: "Ljava/lang/String;"},
	}

	tests := []struct {
		slot, pc int
		want     string
		found    bool
	}{
		{0, 0, "this", true},
		{1, 3, "", false},
		{1, 4, "f", true},
		{1, 10, "f", true},
		{1, 11, "", false},
		{1, 13, "s", true},
		{2, 5, "", false},
	}

	for _, tt := range tests {
		lv, ok := lvt.Lookup(tt.slot, tt.pc)
		if ok != tt.found || lv.Name != tt.want {
			t.Errorf("Lookup(%d, %d) = %q, %t, want %q, %t", tt.slot, tt.pc, lv.Name, ok, tt.want, tt.found)
		}
	}
}

func TestLineNumberTable(t *testing.T) {
	t.Parallel()

	lines := LineNumberTable{{PC: 0, Line: 10}, {PC: 8, Line: 12}, {PC: 4, Line: 11}}

	for pc, want := range map[int]int{0: 10, 3: 10, 4: 11, 7: 11, 8: 12, 100: 12} {
		if got := lines.Line(pc); got != want {
			t.Errorf("Line(%d) = %d, want %d", pc, got, want)
		}
	}

	if got := LineNumberTable(nil).Line(5); got != -1 {
		t.Errorf("Line on empty table = %d, want -1", got)
	}
}

func TestSwitchTargets(t *testing.T) {
	t.Parallel()

	ins := Instruction{PC: 4, Op: Tableswitch, SwitchOffsets: []int{32, 42}, DefaultOffset: 52}

	if got, want := ins.Targets(), []int{36, 46, 56}; !slices.Equal(got, want) {
		t.Errorf("Targets() = %v, want %v", got, want)
	}

	goTo := Instruction{PC: 4, Op: Goto, Target: 20, Length: 3}
	if goTo.Targets() != nil {
		t.Error("goto has no switch targets")
	}

	if got := goTo.Next(); got != 7 {
		t.Errorf("Next() = %d, want 7", got)
	}
}

func TestMemberRefKey(t *testing.T) {
	t.Parallel()

	ref := MemberRef{Class: "java/lang/System", Name: "nanoTime", Descriptor: "()J"}
	if got, want := ref.Key(), "java/lang/System.nanoTime()J"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}
