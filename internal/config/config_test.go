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

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/bloatedscope/internal/config"
)

func TestBitMask(t *testing.T) {
	t.Parallel()

	b := NewBitMask(BloatedScopeDetector)

	if !b.Enabled(BloatedScopeDetector) || b.Enabled(NonCollectionDetector) {
		t.Fatalf("NewBitMask(BloatedScopeDetector) = %v", b)
	}

	b.Set(NonCollectionDetector, true)
	b.Set(BloatedScopeDetector, false)

	if b.Enabled(BloatedScopeDetector) || !b.Enabled(NonCollectionDetector) {
		t.Errorf("after Set got %v", b)
	}
}

func TestBitMaskAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mask BitMask[uint8]
		want []uint8
	}{
		{"Empty", NewBitMask[uint8](), nil},
		{"Single", NewBitMask[uint8](4), []uint8{4}},
		{"Several", NewBitMask[uint8](0x80, 1, 8), []uint8{1, 8, 0x80}},
		{"Combined", NewBitMask[uint8](6), []uint8{2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := slices.Collect(tt.mask.All()); !slices.Equal(got, tt.want) {
				t.Errorf("All() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRisk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		class   string
		method  string
		pattern string
		nodef   bool
	}{
		{
			name: "Empty",
			doc:  "",
		},
		{
			name:   "Extend",
			doc:    "risky-classes: [java/util/Scanner]\nrisky-methods:\n  - java/util/Random.nextInt()I\n",
			class:  "java/util/Scanner",
			method: "java/util/Random.nextInt()I",
		},
		{
			name:    "Replace",
			doc:     "replace-defaults: true\nrisky-method-patterns: ['.*\\.poll.*']\n",
			pattern: `.*\.poll.*`,
			nodef:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			risk, err := ParseRisk(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("ParseRisk() failed: %v", err)
			}

			if tt.class != "" && !slices.Contains(risk.Classes, tt.class) {
				t.Errorf("Classes = %v, want %q", risk.Classes, tt.class)
			}

			if tt.method != "" && !slices.Contains(risk.Methods, tt.method) {
				t.Errorf("Methods = %v, want %q", risk.Methods, tt.method)
			}

			if tt.pattern != "" && !slices.Contains(risk.Patterns, tt.pattern) {
				t.Errorf("Patterns = %v, want %q", risk.Patterns, tt.pattern)
			}

			if got := slices.Contains(risk.Classes, "java/io/InputStream"); got == tt.nodef {
				t.Errorf("defaults present = %t, want %t", got, !tt.nodef)
			}
		})
	}
}

func TestParseRiskErrors(t *testing.T) {
	t.Parallel()

	if _, err := ParseRisk(strings.NewReader("risky-method-patterns: ['(']\n")); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}

	if _, err := ParseRisk(strings.NewReader("risky-stuff: [a]\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadRisk(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "risk.yaml")
	if err := os.WriteFile(name, []byte("risky-store-types: [Ljava/util/Optional;]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	risk, err := LoadRisk(name)
	if err != nil {
		t.Fatalf("LoadRisk() failed: %v", err)
	}

	want := []string{"Ljava/util/Optional;", "Ljava/util/concurrent/Future;"}
	if !slices.Equal(risk.StoreTypes, want) {
		t.Errorf("StoreTypes = %v, want %v", risk.StoreTypes, want)
	}

	if _, err := LoadRisk(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
