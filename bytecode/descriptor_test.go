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
	"errors"
	"slices"
	"testing"

	. "fillmore-labs.com/bloatedscope/bytecode"
)

func TestParameterSlots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		desc   string
		static bool
		want   []int
	}{
		{"NoArgsStatic", "()V", true, []int{}},
		{"NoArgsInstance", "()V", false, []int{}},
		{"IntStatic", "(I)V", true, []int{0}},
		{"IntInstance", "(I)V", false, []int{1}},
		{"WideArgs", "(JID)V", true, []int{0, 2, 3}},
		{"References", "(Ljava/lang/String;[[IZ)Ljava/lang/Object;", false, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParameterSlots(tt.desc, tt.static)
			if err != nil {
				t.Fatalf("ParameterSlots(%q) failed: %v", tt.desc, err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("ParameterSlots(%q) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestParseMethodDescriptorInvalid(t *testing.T) {
	t.Parallel()

	for _, desc := range []string{"", "I", "(I", "(Ljava/lang/String)V", "(Q)V", "()", "()Ljava/lang/String"} {
		if _, err := ParseMethodDescriptor(desc); !errors.Is(err, ErrDescriptor) {
			t.Errorf("ParseMethodDescriptor(%q) error = %v, want %v", desc, err, ErrDescriptor)
		}
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	t.Parallel()

	d, err := ParseMethodDescriptor("(I[JLjava/util/List;)Ljava/lang/String;")
	if err != nil {
		t.Fatalf("ParseMethodDescriptor failed: %v", err)
	}

	if want := []string{"I", "[J", "Ljava/util/List;"}; !slices.Equal(d.Params, want) {
		t.Errorf("Got params %v, want %v", d.Params, want)
	}

	if d.Void() || d.Return != "Ljava/lang/String;" {
		t.Errorf("Got return %q", d.Return)
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		want Type
	}{
		{"Z", TypeInt},
		{"C", TypeInt},
		{"J", TypeLong},
		{"F", TypeFloat},
		{"D", TypeDouble},
		{"[D", TypeRef},
		{"Ljava/lang/Object;", TypeRef},
		{"V", TypeNone},
		{"", TypeNone},
	}

	for _, tt := range tests {
		if got := TypeOf(tt.desc); got != tt.want {
			t.Errorf("TypeOf(%q) = %d, want %d", tt.desc, got, tt.want)
		}
	}
}
