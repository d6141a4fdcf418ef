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

// Package javap reads the disassembly printed by the JDK's javap tool.
//
// The expected input is produced by
//
//	javap -c -l -p -s Foo.class
//
// optionally with -v. Each method with a Code attribute becomes a
// [bytecode.Method]: instructions with their offsets and resolved member
// references, the exception table, the line number table and the local
// variable table. Sections javap prints that the analyzers do not need
// (StackMapTable, constant pool, annotations) are skipped.
//
// Without -s the method descriptor is derived from the Java declaration,
// erasing type variables to java/lang/Object.
package javap
