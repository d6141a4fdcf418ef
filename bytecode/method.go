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

// ExceptionRange is one entry of a method's exception table.
type ExceptionRange struct {
	Start, End int    // Protected range [Start, End)
	Handler    int    // Location of the handler
	CatchType  string // Internal name of the caught class, "" for any
}

// LocalVariable is one entry of the local variable table.
type LocalVariable struct {
	Start, Length int
	Slot          int
	Name          string
	Signature     string
}

// LocalVariableTable maps slots to declared variables.
type LocalVariableTable []LocalVariable

// Lookup returns the variable declared in slot at location pc.
// The range is inclusive at both ends, so a store right before the
// variable's scope starts still finds its declaration.
func (t LocalVariableTable) Lookup(slot, pc int) (LocalVariable, bool) {
	for _, lv := range t {
		if lv.Slot == slot && pc >= lv.Start && pc <= lv.Start+lv.Length {
			return lv, true
		}
	}

	return LocalVariable{}, false
}

// LineNumber maps the instructions starting at PC to a source line.
type LineNumber struct {
	PC, Line int
}

// LineNumberTable is the line number table of a method.
type LineNumberTable []LineNumber

// Line returns the source line of the instruction at pc, or -1 if unknown.
func (t LineNumberTable) Line(pc int) int {
	line, best := -1, -1
	for _, ln := range t {
		if ln.PC <= pc && ln.PC > best {
			line, best = ln.Line, ln.PC
		}
	}

	return line
}

// Method is a decoded method with its code attribute.
type Method struct {
	Class      string // Internal name of the declaring class
	Name       string
	Descriptor string
	Static     bool

	Code   []Instruction
	Length int // Code length in bytes

	Exceptions []ExceptionRange
	Locals     LocalVariableTable
	Lines      LineNumberTable
}

// String returns "class.name(descriptor)".
func (m *Method) String() string {
	return m.Class + "." + m.Name + m.Descriptor
}

// ParameterSlots returns the slots of the declared parameters.
func (m *Method) ParameterSlots() ([]int, error) {
	return ParameterSlots(m.Descriptor, m.Static)
}

// Class is a decoded class with the methods that carry code.
type Class struct {
	Name    string // Internal name, e.g. "com/example/Foo"
	Source  string // Source file name, if known
	Methods []*Method
}
