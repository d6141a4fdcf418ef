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

// Package collections reports calls of Hashtable and Vector methods that predate the
// collections framework and have a Collection or Map equivalent.
package collections

import (
	"context"
	"fmt"
	"runtime/trace"

	"fillmore-labs.com/bloatedscope/analyzer/level"
	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/report"
)

// legacy maps pre-collections methods to their replacements.
var legacy = map[bytecode.MemberRef]string{
	{Class: "java/util/Hashtable", Name: "contains", Descriptor: "(Ljava/lang/Object;)Z"}:            "containsValue",
	{Class: "java/util/Hashtable", Name: "elements", Descriptor: "()Ljava/util/Enumeration;"}:         "values",
	{Class: "java/util/Hashtable", Name: "keys", Descriptor: "()Ljava/util/Enumeration;"}:             "keySet",
	{Class: "java/util/Vector", Name: "addElement", Descriptor: "(Ljava/lang/Object;)V"}:              "add",
	{Class: "java/util/Vector", Name: "elementAt", Descriptor: "(I)Ljava/lang/Object;"}:               "get",
	{Class: "java/util/Vector", Name: "insertElementAt", Descriptor: "(Ljava/lang/Object;I)V"}:        "add",
	{Class: "java/util/Vector", Name: "removeAllElements", Descriptor: "()V"}:                         "clear",
	{Class: "java/util/Vector", Name: "removeElement", Descriptor: "(Ljava/lang/Object;)Z"}:           "remove",
	{Class: "java/util/Vector", Name: "removeElementAt", Descriptor: "(I)V"}:                          "remove",
	{Class: "java/util/Vector", Name: "setElementAt", Descriptor: "(Ljava/lang/Object;I)V"}:           "set",
}

// Method reports the invokevirtual calls of legacy methods in m.
func Method(ctx context.Context, class *bytecode.Class, m *bytecode.Method) []report.Diagnostic {
	defer trace.StartRegion(ctx, "NonCollection").End()

	var diagnostics []report.Diagnostic

	for i := range m.Code {
		ins := &m.Code[i]
		if ins.Op != bytecode.Invokevirtual || ins.Ref == nil {
			continue
		}

		replacement, ok := legacy[*ins.Ref]
		if !ok {
			continue
		}

		diagnostics = append(diagnostics, report.Diagnostic{
			Pattern:    report.NonCollectionMethodUse,
			Priority:   level.PriorityNormal,
			Class:      class.Name,
			Source:     class.Source,
			Method:     m.Name,
			Descriptor: m.Descriptor,
			PC:         ins.PC,
			Line:       m.Lines.Line(ins.PC),
			Slot:       -1,
			Message:    fmt.Sprintf("Call of legacy method %s.%s, use %s instead", ins.Ref.Class, ins.Ref.Name, replacement),
		})
	}

	return diagnostics
}
