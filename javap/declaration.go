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

package javap

import (
	"fmt"
	"slices"
	"strings"
)

var primitives = map[string]string{
	"boolean": "Z",
	"byte":    "B",
	"char":    "C",
	"short":   "S",
	"int":     "I",
	"long":    "J",
	"float":   "F",
	"double":  "D",
	"void":    "V",
}

// declaredName extracts the method name from a javap member declaration
// like "public static void main(java.lang.String[]);".
func declaredName(decl, className string) (name string, static bool) {
	if decl == "static {};" {
		return "<clinit>", true
	}

	head := eraseGenerics(decl[:strings.IndexByte(decl, '(')])

	fields := strings.Fields(head)
	if len(fields) == 0 {
		return "", false
	}

	name = fields[len(fields)-1]
	static = slices.Contains(fields[:len(fields)-1], "static")

	dotted := strings.ReplaceAll(className, "/", ".")
	simple := dotted[strings.LastIndexByte(dotted, '.')+1:]

	if name == dotted || name == simple {
		return "<init>", false
	}

	return name, static
}

// descriptorOf derives the erased method descriptor from a Java declaration.
func descriptorOf(decl, name string) (string, error) {
	if name == "<clinit>" {
		return "()V", nil
	}

	open, closing := strings.IndexByte(decl, '('), strings.LastIndexByte(decl, ')')
	if open < 0 || closing < open {
		return "", fmt.Errorf("%w: bad declaration %q", ErrSyntax, decl)
	}

	var desc strings.Builder

	desc.WriteByte('(') // ignore error

	if params := strings.TrimSpace(eraseGenerics(decl[open+1 : closing])); params != "" {
		for param := range strings.SplitSeq(params, ",") {
			desc.WriteString(typeDescriptor(param)) // ignore error
		}
	}

	desc.WriteByte(')') // ignore error

	if name == "<init>" {
		desc.WriteByte('V') // ignore error

		return desc.String(), nil
	}

	fields := strings.Fields(eraseGenerics(decl[:open]))
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: missing return type in %q", ErrSyntax, decl)
	}

	desc.WriteString(typeDescriptor(fields[len(fields)-2])) // ignore error

	return desc.String(), nil
}

// typeDescriptor converts a Java source type like "java.lang.String[]" into "[Ljava/lang/String;".
func typeDescriptor(javaType string) string {
	t := strings.TrimSpace(javaType)

	var dims int
	if base, ok := strings.CutSuffix(t, "..."); ok {
		t, dims = base, 1
	}

	for {
		base, ok := strings.CutSuffix(t, "[]")
		if !ok {
			break
		}

		t = base
		dims++
	}

	elem, ok := primitives[t]
	if !ok {
		if typeVariable(t) {
			t = "java.lang.Object"
		}

		elem = "L" + strings.ReplaceAll(t, ".", "/") + ";"
	}

	return strings.Repeat("[", dims) + elem
}

// typeVariable guesses whether an unqualified name is a type variable like T or K2.
func typeVariable(t string) bool {
	if strings.Contains(t, ".") || len(t) > 2 {
		return false
	}

	return t != "" && t[0] >= 'A' && t[0] <= 'Z'
}

// eraseGenerics removes type arguments and parameters: "java.util.List<T>" becomes "java.util.List".
func eraseGenerics(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var b strings.Builder

	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++

		case r == '>':
			depth--

		case depth == 0:
			b.WriteRune(r) // ignore error
		}
	}

	return b.String()
}
