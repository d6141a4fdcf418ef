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

package bytecode

// MemberRef is a symbolic reference to a field or method in the constant pool.
type MemberRef struct {
	Class      string // Internal name of the owner, e.g. "java/lang/System"
	Name       string // Member name
	Descriptor string // Field or method descriptor
}

// Key returns the fully qualified "class.name(descriptor)" form.
func (r MemberRef) Key() string {
	return r.Class + "." + r.Name + r.Descriptor
}

// Instruction is one decoded instruction of a method body.
type Instruction struct {
	PC     int    // Byte offset in the method body
	Op     Opcode // Opcode, with wide forms already folded in
	Length int    // Encoded length in bytes

	// Register is the local variable index of loads, stores, iinc and ret.
	Register int

	// Increment is the constant added by iinc.
	Increment int

	// Target is the absolute target of branches and jsr.
	Target int

	// SwitchOffsets are the jump offsets of tableswitch and lookupswitch, relative to PC.
	SwitchOffsets []int

	// DefaultOffset is the default jump offset of a switch, relative to PC.
	DefaultOffset int

	// Ref is the referenced field or method of field access and invoke instructions.
	Ref *MemberRef

	// Constant is the type of the constant loaded by ldc, ldc_w and ldc2_w.
	Constant Type

	// Dimensions is the dimension count of multianewarray.
	Dimensions int
}

// Next returns the location of the following instruction.
func (ins *Instruction) Next() int {
	return ins.PC + ins.Length
}

// Targets returns the absolute switch targets, including the default, in table order.
func (ins *Instruction) Targets() []int {
	if !ins.Op.IsSwitch() {
		return nil
	}

	targets := make([]int, 0, len(ins.SwitchOffsets)+1)
	for _, off := range ins.SwitchOffsets {
		targets = append(targets, ins.PC+off)
	}

	return append(targets, ins.PC+ins.DefaultOffset)
}
