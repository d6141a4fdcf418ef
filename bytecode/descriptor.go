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

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the computational type of an operand stack value.
type Type uint8

const (
	// TypeNone marks instructions that push nothing.
	TypeNone Type = iota
	// TypeInt covers boolean, byte, char, short and int.
	TypeInt
	// TypeLong is a category 2 long.
	TypeLong
	// TypeFloat is a float.
	TypeFloat
	// TypeDouble is a category 2 double.
	TypeDouble
	// TypeRef is an object or array reference.
	TypeRef
	// TypeReturnAddress is pushed by jsr.
	TypeReturnAddress
	// TypeDynamic means the type depends on the instruction operands.
	TypeDynamic
)

// Wide reports whether values of this type occupy two stack words.
func (t Type) Wide() bool {
	return t == TypeLong || t == TypeDouble
}

// ErrDescriptor is returned for malformed type or method descriptors.
var ErrDescriptor = errors.New("invalid descriptor")

// TypeOf returns the computational type of a field descriptor like "I" or "Ljava/lang/String;".
func TypeOf(desc string) Type {
	if desc == "" {
		return TypeNone
	}

	switch desc[0] {
	case 'B', 'C', 'I', 'S', 'Z':
		return TypeInt

	case 'J':
		return TypeLong

	case 'F':
		return TypeFloat

	case 'D':
		return TypeDouble

	case 'L', '[':
		return TypeRef

	default:
		return TypeNone
	}
}

// MethodDescriptor is a parsed method descriptor.
type MethodDescriptor struct {
	Params []string // Field descriptors of the parameters
	Return string   // Field descriptor of the result, "V" for void
}

// Void reports whether the method returns nothing.
func (d MethodDescriptor) Void() bool { return d.Return == "V" }

// ParseMethodDescriptor splits a descriptor like "(IJLjava/lang/String;)V".
func ParseMethodDescriptor(desc string) (MethodDescriptor, error) {
	rest, ok := strings.CutPrefix(desc, "(")
	if !ok {
		return MethodDescriptor{}, fmt.Errorf("%w: %q", ErrDescriptor, desc)
	}

	var d MethodDescriptor

	for !strings.HasPrefix(rest, ")") {
		n := fieldLength(rest)
		if n == 0 {
			return MethodDescriptor{}, fmt.Errorf("%w: %q", ErrDescriptor, desc)
		}

		d.Params = append(d.Params, rest[:n])
		rest = rest[n:]
	}

	d.Return = rest[1:]
	if d.Return != "V" && (d.Return == "" || fieldLength(d.Return) != len(d.Return)) {
		return MethodDescriptor{}, fmt.Errorf("%w: %q", ErrDescriptor, desc)
	}

	return d, nil
}

// fieldLength returns the length of the field descriptor at the start of s, or 0.
func fieldLength(s string) int {
	i := 0
	for i < len(s) && s[i] == '[' {
		i++
	}

	if i == len(s) {
		return 0
	}

	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i + 1

	case 'L':
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return 0
		}

		return i + end + 1

	default:
		return 0
	}
}

// ParameterSlots returns the local variable slots holding the declared parameters.
// The receiver of instance methods occupies slot 0 and is not included.
func ParameterSlots(desc string, static bool) ([]int, error) {
	d, err := ParseMethodDescriptor(desc)
	if err != nil {
		return nil, err
	}

	slot := 0
	if !static {
		slot = 1
	}

	slots := make([]int, 0, len(d.Params))
	for _, p := range d.Params {
		slots = append(slots, slot)

		if TypeOf(p).Wide() {
			slot += 2
		} else {
			slot++
		}
	}

	return slots, nil
}
