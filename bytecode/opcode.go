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

import "strconv"

// Opcode is a JVM instruction opcode.
type Opcode uint8

// JVM opcodes in numeric order, 0x00 (nop) to 0xc9 (jsr_w).
const (
	Nop Opcode = iota
	AconstNull
	IconstM1
	Iconst0
	Iconst1
	Iconst2
	Iconst3
	Iconst4
	Iconst5
	Lconst0
	Lconst1
	Fconst0
	Fconst1
	Fconst2
	Dconst0
	Dconst1
	Bipush
	Sipush
	Ldc
	LdcW
	Ldc2W
	Iload
	Lload
	Fload
	Dload
	Aload
	Iload0
	Iload1
	Iload2
	Iload3
	Lload0
	Lload1
	Lload2
	Lload3
	Fload0
	Fload1
	Fload2
	Fload3
	Dload0
	Dload1
	Dload2
	Dload3
	Aload0
	Aload1
	Aload2
	Aload3
	Iaload
	Laload
	Faload
	Daload
	Aaload
	Baload
	Caload
	Saload
	Istore
	Lstore
	Fstore
	Dstore
	Astore
	Istore0
	Istore1
	Istore2
	Istore3
	Lstore0
	Lstore1
	Lstore2
	Lstore3
	Fstore0
	Fstore1
	Fstore2
	Fstore3
	Dstore0
	Dstore1
	Dstore2
	Dstore3
	Astore0
	Astore1
	Astore2
	Astore3
	Iastore
	Lastore
	Fastore
	Dastore
	Aastore
	Bastore
	Castore
	Sastore
	Pop
	Pop2
	Dup
	DupX1
	DupX2
	Dup2
	Dup2X1
	Dup2X2
	Swap
	Iadd
	Ladd
	Fadd
	Dadd
	Isub
	Lsub
	Fsub
	Dsub
	Imul
	Lmul
	Fmul
	Dmul
	Idiv
	Ldiv
	Fdiv
	Ddiv
	Irem
	Lrem
	Frem
	Drem
	Ineg
	Lneg
	Fneg
	Dneg
	Ishl
	Lshl
	Ishr
	Lshr
	Iushr
	Lushr
	Iand
	Land
	Ior
	Lor
	Ixor
	Lxor
	Iinc
	I2l
	I2f
	I2d
	L2i
	L2f
	L2d
	F2i
	F2l
	F2d
	D2i
	D2l
	D2f
	I2b
	I2c
	I2s
	Lcmp
	Fcmpl
	Fcmpg
	Dcmpl
	Dcmpg
	Ifeq
	Ifne
	Iflt
	Ifge
	Ifgt
	Ifle
	IfIcmpeq
	IfIcmpne
	IfIcmplt
	IfIcmpge
	IfIcmpgt
	IfIcmple
	IfAcmpeq
	IfAcmpne
	Goto
	Jsr
	Ret
	Tableswitch
	Lookupswitch
	Ireturn
	Lreturn
	Freturn
	Dreturn
	Areturn
	Return
	Getstatic
	Putstatic
	Getfield
	Putfield
	Invokevirtual
	Invokespecial
	Invokestatic
	Invokeinterface
	Invokedynamic
	New
	Newarray
	Anewarray
	Arraylength
	Athrow
	Checkcast
	Instanceof
	Monitorenter
	Monitorexit
	Wide
	Multianewarray
	Ifnull
	Ifnonnull
	GotoW
	JsrW
)

var opcodes = [...]opcodeInfo{
	Nop:             {"nop", 1, 0, TypeNone},
	AconstNull:      {"aconst_null", 1, 0, TypeRef},
	IconstM1:        {"iconst_m1", 1, 0, TypeInt},
	Iconst0:         {"iconst_0", 1, 0, TypeInt},
	Iconst1:         {"iconst_1", 1, 0, TypeInt},
	Iconst2:         {"iconst_2", 1, 0, TypeInt},
	Iconst3:         {"iconst_3", 1, 0, TypeInt},
	Iconst4:         {"iconst_4", 1, 0, TypeInt},
	Iconst5:         {"iconst_5", 1, 0, TypeInt},
	Lconst0:         {"lconst_0", 1, 0, TypeLong},
	Lconst1:         {"lconst_1", 1, 0, TypeLong},
	Fconst0:         {"fconst_0", 1, 0, TypeFloat},
	Fconst1:         {"fconst_1", 1, 0, TypeFloat},
	Fconst2:         {"fconst_2", 1, 0, TypeFloat},
	Dconst0:         {"dconst_0", 1, 0, TypeDouble},
	Dconst1:         {"dconst_1", 1, 0, TypeDouble},
	Bipush:          {"bipush", 2, 0, TypeInt},
	Sipush:          {"sipush", 3, 0, TypeInt},
	Ldc:             {"ldc", 2, 0, TypeDynamic},
	LdcW:            {"ldc_w", 3, 0, TypeDynamic},
	Ldc2W:           {"ldc2_w", 3, 0, TypeDynamic},
	Iload:           {"iload", 2, 0, TypeInt},
	Lload:           {"lload", 2, 0, TypeLong},
	Fload:           {"fload", 2, 0, TypeFloat},
	Dload:           {"dload", 2, 0, TypeDouble},
	Aload:           {"aload", 2, 0, TypeRef},
	Iload0:          {"iload_0", 1, 0, TypeInt},
	Iload1:          {"iload_1", 1, 0, TypeInt},
	Iload2:          {"iload_2", 1, 0, TypeInt},
	Iload3:          {"iload_3", 1, 0, TypeInt},
	Lload0:          {"lload_0", 1, 0, TypeLong},
	Lload1:          {"lload_1", 1, 0, TypeLong},
	Lload2:          {"lload_2", 1, 0, TypeLong},
	Lload3:          {"lload_3", 1, 0, TypeLong},
	Fload0:          {"fload_0", 1, 0, TypeFloat},
	Fload1:          {"fload_1", 1, 0, TypeFloat},
	Fload2:          {"fload_2", 1, 0, TypeFloat},
	Fload3:          {"fload_3", 1, 0, TypeFloat},
	Dload0:          {"dload_0", 1, 0, TypeDouble},
	Dload1:          {"dload_1", 1, 0, TypeDouble},
	Dload2:          {"dload_2", 1, 0, TypeDouble},
	Dload3:          {"dload_3", 1, 0, TypeDouble},
	Aload0:          {"aload_0", 1, 0, TypeRef},
	Aload1:          {"aload_1", 1, 0, TypeRef},
	Aload2:          {"aload_2", 1, 0, TypeRef},
	Aload3:          {"aload_3", 1, 0, TypeRef},
	Iaload:          {"iaload", 1, 2, TypeInt},
	Laload:          {"laload", 1, 2, TypeLong},
	Faload:          {"faload", 1, 2, TypeFloat},
	Daload:          {"daload", 1, 2, TypeDouble},
	Aaload:          {"aaload", 1, 2, TypeRef},
	Baload:          {"baload", 1, 2, TypeInt},
	Caload:          {"caload", 1, 2, TypeInt},
	Saload:          {"saload", 1, 2, TypeInt},
	Istore:          {"istore", 2, 1, TypeNone},
	Lstore:          {"lstore", 2, 1, TypeNone},
	Fstore:          {"fstore", 2, 1, TypeNone},
	Dstore:          {"dstore", 2, 1, TypeNone},
	Astore:          {"astore", 2, 1, TypeNone},
	Istore0:         {"istore_0", 1, 1, TypeNone},
	Istore1:         {"istore_1", 1, 1, TypeNone},
	Istore2:         {"istore_2", 1, 1, TypeNone},
	Istore3:         {"istore_3", 1, 1, TypeNone},
	Lstore0:         {"lstore_0", 1, 1, TypeNone},
	Lstore1:         {"lstore_1", 1, 1, TypeNone},
	Lstore2:         {"lstore_2", 1, 1, TypeNone},
	Lstore3:         {"lstore_3", 1, 1, TypeNone},
	Fstore0:         {"fstore_0", 1, 1, TypeNone},
	Fstore1:         {"fstore_1", 1, 1, TypeNone},
	Fstore2:         {"fstore_2", 1, 1, TypeNone},
	Fstore3:         {"fstore_3", 1, 1, TypeNone},
	Dstore0:         {"dstore_0", 1, 1, TypeNone},
	Dstore1:         {"dstore_1", 1, 1, TypeNone},
	Dstore2:         {"dstore_2", 1, 1, TypeNone},
	Dstore3:         {"dstore_3", 1, 1, TypeNone},
	Astore0:         {"astore_0", 1, 1, TypeNone},
	Astore1:         {"astore_1", 1, 1, TypeNone},
	Astore2:         {"astore_2", 1, 1, TypeNone},
	Astore3:         {"astore_3", 1, 1, TypeNone},
	Iastore:         {"iastore", 1, 3, TypeNone},
	Lastore:         {"lastore", 1, 3, TypeNone},
	Fastore:         {"fastore", 1, 3, TypeNone},
	Dastore:         {"dastore", 1, 3, TypeNone},
	Aastore:         {"aastore", 1, 3, TypeNone},
	Bastore:         {"bastore", 1, 3, TypeNone},
	Castore:         {"castore", 1, 3, TypeNone},
	Sastore:         {"sastore", 1, 3, TypeNone},
	Pop:             {"pop", 1, -1, TypeNone},
	Pop2:            {"pop2", 1, -1, TypeNone},
	Dup:             {"dup", 1, -1, TypeNone},
	DupX1:           {"dup_x1", 1, -1, TypeNone},
	DupX2:           {"dup_x2", 1, -1, TypeNone},
	Dup2:            {"dup2", 1, -1, TypeNone},
	Dup2X1:          {"dup2_x1", 1, -1, TypeNone},
	Dup2X2:          {"dup2_x2", 1, -1, TypeNone},
	Swap:            {"swap", 1, -1, TypeNone},
	Iadd:            {"iadd", 1, 2, TypeInt},
	Ladd:            {"ladd", 1, 2, TypeLong},
	Fadd:            {"fadd", 1, 2, TypeFloat},
	Dadd:            {"dadd", 1, 2, TypeDouble},
	Isub:            {"isub", 1, 2, TypeInt},
	Lsub:            {"lsub", 1, 2, TypeLong},
	Fsub:            {"fsub", 1, 2, TypeFloat},
	Dsub:            {"dsub", 1, 2, TypeDouble},
	Imul:            {"imul", 1, 2, TypeInt},
	Lmul:            {"lmul", 1, 2, TypeLong},
	Fmul:            {"fmul", 1, 2, TypeFloat},
	Dmul:            {"dmul", 1, 2, TypeDouble},
	Idiv:            {"idiv", 1, 2, TypeInt},
	Ldiv:            {"ldiv", 1, 2, TypeLong},
	Fdiv:            {"fdiv", 1, 2, TypeFloat},
	Ddiv:            {"ddiv", 1, 2, TypeDouble},
	Irem:            {"irem", 1, 2, TypeInt},
	Lrem:            {"lrem", 1, 2, TypeLong},
	Frem:            {"frem", 1, 2, TypeFloat},
	Drem:            {"drem", 1, 2, TypeDouble},
	Ineg:            {"ineg", 1, 1, TypeInt},
	Lneg:            {"lneg", 1, 1, TypeLong},
	Fneg:            {"fneg", 1, 1, TypeFloat},
	Dneg:            {"dneg", 1, 1, TypeDouble},
	Ishl:            {"ishl", 1, 2, TypeInt},
	Lshl:            {"lshl", 1, 2, TypeLong},
	Ishr:            {"ishr", 1, 2, TypeInt},
	Lshr:            {"lshr", 1, 2, TypeLong},
	Iushr:           {"iushr", 1, 2, TypeInt},
	Lushr:           {"lushr", 1, 2, TypeLong},
	Iand:            {"iand", 1, 2, TypeInt},
	Land:            {"land", 1, 2, TypeLong},
	Ior:             {"ior", 1, 2, TypeInt},
	Lor:             {"lor", 1, 2, TypeLong},
	Ixor:            {"ixor", 1, 2, TypeInt},
	Lxor:            {"lxor", 1, 2, TypeLong},
	Iinc:            {"iinc", 3, 0, TypeNone},
	I2l:             {"i2l", 1, 1, TypeLong},
	I2f:             {"i2f", 1, 1, TypeFloat},
	I2d:             {"i2d", 1, 1, TypeDouble},
	L2i:             {"l2i", 1, 1, TypeInt},
	L2f:             {"l2f", 1, 1, TypeFloat},
	L2d:             {"l2d", 1, 1, TypeDouble},
	F2i:             {"f2i", 1, 1, TypeInt},
	F2l:             {"f2l", 1, 1, TypeLong},
	F2d:             {"f2d", 1, 1, TypeDouble},
	D2i:             {"d2i", 1, 1, TypeInt},
	D2l:             {"d2l", 1, 1, TypeLong},
	D2f:             {"d2f", 1, 1, TypeFloat},
	I2b:             {"i2b", 1, 1, TypeInt},
	I2c:             {"i2c", 1, 1, TypeInt},
	I2s:             {"i2s", 1, 1, TypeInt},
	Lcmp:            {"lcmp", 1, 2, TypeInt},
	Fcmpl:           {"fcmpl", 1, 2, TypeInt},
	Fcmpg:           {"fcmpg", 1, 2, TypeInt},
	Dcmpl:           {"dcmpl", 1, 2, TypeInt},
	Dcmpg:           {"dcmpg", 1, 2, TypeInt},
	Ifeq:            {"ifeq", 3, 1, TypeNone},
	Ifne:            {"ifne", 3, 1, TypeNone},
	Iflt:            {"iflt", 3, 1, TypeNone},
	Ifge:            {"ifge", 3, 1, TypeNone},
	Ifgt:            {"ifgt", 3, 1, TypeNone},
	Ifle:            {"ifle", 3, 1, TypeNone},
	IfIcmpeq:        {"if_icmpeq", 3, 2, TypeNone},
	IfIcmpne:        {"if_icmpne", 3, 2, TypeNone},
	IfIcmplt:        {"if_icmplt", 3, 2, TypeNone},
	IfIcmpge:        {"if_icmpge", 3, 2, TypeNone},
	IfIcmpgt:        {"if_icmpgt", 3, 2, TypeNone},
	IfIcmple:        {"if_icmple", 3, 2, TypeNone},
	IfAcmpeq:        {"if_acmpeq", 3, 2, TypeNone},
	IfAcmpne:        {"if_acmpne", 3, 2, TypeNone},
	Goto:            {"goto", 3, 0, TypeNone},
	Jsr:             {"jsr", 3, 0, TypeReturnAddress},
	Ret:             {"ret", 2, 0, TypeNone},
	Tableswitch:     {"tableswitch", 0, 1, TypeNone},
	Lookupswitch:    {"lookupswitch", 0, 1, TypeNone},
	Ireturn:         {"ireturn", 1, 1, TypeNone},
	Lreturn:         {"lreturn", 1, 1, TypeNone},
	Freturn:         {"freturn", 1, 1, TypeNone},
	Dreturn:         {"dreturn", 1, 1, TypeNone},
	Areturn:         {"areturn", 1, 1, TypeNone},
	Return:          {"return", 1, 0, TypeNone},
	Getstatic:       {"getstatic", 3, 0, TypeDynamic},
	Putstatic:       {"putstatic", 3, 1, TypeNone},
	Getfield:        {"getfield", 3, 1, TypeDynamic},
	Putfield:        {"putfield", 3, 2, TypeNone},
	Invokevirtual:   {"invokevirtual", 3, -1, TypeDynamic},
	Invokespecial:   {"invokespecial", 3, -1, TypeDynamic},
	Invokestatic:    {"invokestatic", 3, -1, TypeDynamic},
	Invokeinterface: {"invokeinterface", 5, -1, TypeDynamic},
	Invokedynamic:   {"invokedynamic", 5, -1, TypeDynamic},
	New:             {"new", 3, 0, TypeRef},
	Newarray:        {"newarray", 2, 1, TypeRef},
	Anewarray:       {"anewarray", 3, 1, TypeRef},
	Arraylength:     {"arraylength", 1, 1, TypeInt},
	Athrow:          {"athrow", 1, 1, TypeNone},
	Checkcast:       {"checkcast", 3, -1, TypeNone},
	Instanceof:      {"instanceof", 3, 1, TypeInt},
	Monitorenter:    {"monitorenter", 1, 1, TypeNone},
	Monitorexit:     {"monitorexit", 1, 1, TypeNone},
	Wide:            {"wide", 0, 0, TypeNone},
	Multianewarray:  {"multianewarray", 4, -1, TypeRef},
	Ifnull:          {"ifnull", 3, 1, TypeNone},
	Ifnonnull:       {"ifnonnull", 3, 1, TypeNone},
	GotoW:           {"goto_w", 5, 0, TypeNone},
	JsrW:            {"jsr_w", 5, 0, TypeReturnAddress},
}

// opcodeInfo describes the static properties of an opcode.
type opcodeInfo struct {
	name   string
	length int8 // 0 for variable length instructions
	pop    int8 // -1 when the operand count depends on the operands
	push   Type
}

// Valid reports whether op is a defined JVM opcode.
func (op Opcode) Valid() bool { return int(op) < len(opcodes) }

// String returns the mnemonic as printed by javap.
func (op Opcode) String() string {
	if !op.Valid() {
		return "opcode(" + strconv.Itoa(int(op)) + ")"
	}

	return opcodes[op].name
}

// Length returns the fixed encoded length of the instruction, or 0 for
// tableswitch, lookupswitch and wide.
func (op Opcode) Length() int {
	if !op.Valid() {
		return 0
	}

	return int(opcodes[op].length)
}

// Pops returns the number of stack items consumed, or -1 when it depends on operands.
func (op Opcode) Pops() int {
	if !op.Valid() {
		return 0
	}

	return int(opcodes[op].pop)
}

// Pushes returns the type of the value pushed, if any.
func (op Opcode) Pushes() Type {
	if !op.Valid() {
		return TypeNone
	}

	return opcodes[op].push
}

// IsLoad reports whether op loads a local variable onto the stack.
func (op Opcode) IsLoad() bool {
	return op >= Iload && op <= Aload3
}

// IsStore reports whether op stores the top of the stack into a local variable.
func (op Opcode) IsStore() bool {
	return op >= Istore && op <= Astore3
}

// ImplicitRegister returns the register encoded in the short forms
// (iload_0, astore_3, ...).
func (op Opcode) ImplicitRegister() (int, bool) {
	switch {
	case op >= Iload0 && op <= Aload3:
		return int(op-Iload0) % 4, true

	case op >= Istore0 && op <= Astore3:
		return int(op-Istore0) % 4, true

	default:
		return 0, false
	}
}

// IsBranch reports whether op is a conditional branch, goto or goto_w.
func (op Opcode) IsBranch() bool {
	switch {
	case op >= Ifeq && op <= Goto:
		return true

	case op == Ifnull, op == Ifnonnull, op == GotoW:
		return true

	default:
		return false
	}
}

// IsGoto reports whether op is an unconditional jump.
func (op Opcode) IsGoto() bool {
	return op == Goto || op == GotoW
}

// IsSwitch reports whether op is a tableswitch or lookupswitch.
func (op Opcode) IsSwitch() bool {
	return op == Tableswitch || op == Lookupswitch
}

// IsInvoke reports whether op is a method invocation.
func (op Opcode) IsInvoke() bool {
	return op >= Invokevirtual && op <= Invokedynamic
}

// HasTarget reports whether op carries a single absolute branch target.
func (op Opcode) HasTarget() bool {
	return op.IsBranch() || op == Jsr || op == JsrW
}

// EndsFlow reports whether execution never falls through to the next instruction.
func (op Opcode) EndsFlow() bool {
	switch op {
	case Goto, GotoW, Tableswitch, Lookupswitch, Athrow, Ret,
		Ireturn, Lreturn, Freturn, Dreturn, Areturn, Return:
		return true

	default:
		return false
	}
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodes))
	for i, info := range opcodes {
		m[info.name] = Opcode(i)
	}

	return m
}()

// Lookup returns the opcode for a javap mnemonic.
func Lookup(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]

	return op, ok
}
