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

package analyze

import (
	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/scope"
)

// wasNull is the JDBC ResultSet method whose result depends on the preceding getter call.
var wasNull = bytecode.MemberRef{Name: "wasNull", Descriptor: "()Z"}

func (s *session) sawInstanceCall(ins *bytecode.Instruction) *callTag {
	ref := ins.Ref
	if ref == nil {
		return nil
	}

	if ref.Name == wasNull.Name && ref.Descriptor == wasNull.Descriptor {
		s.dontReport = true
	}

	desc, err := bytecode.ParseMethodDescriptor(ref.Descriptor)
	if err != nil || desc.Void() {
		return nil
	}

	tag := &callTag{
		risky:  s.risk.RiskyCall(*ref),
		caller: s.callingObject(len(desc.Params)),
	}

	if tag.caller != nil {
		s.tree.RemoveByAssoc(s.tree.Root(), *tag.caller)
	}

	return tag
}

func (s *session) sawStaticCall(ins *bytecode.Instruction) *callTag {
	ref := ins.Ref
	if ref == nil {
		return nil
	}

	desc, err := bytecode.ParseMethodDescriptor(ref.Descriptor)
	if err != nil || desc.Void() {
		return nil
	}

	return &callTag{risky: s.risk.RiskyCall(*ref)}
}

// callingObject identifies the receiver below the n arguments on the stack.
func (s *session) callingObject(n int) *scope.Key {
	it, ok := s.stack.Item(n)
	if !ok {
		return nil
	}

	var key scope.Key

	switch {
	case it.Register >= 0:
		key = scope.RegisterKey(it.Register)

	case it.Field != "":
		key = scope.FieldKey(it.Field)

	default:
		return nil
	}

	return &key
}
