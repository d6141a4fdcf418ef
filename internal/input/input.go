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

// Package input loads classes from javap listings and txtar bundles of listings.
package input

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"

	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/javap"
)

const (
	archiveExt = ".txtar"
	listingExt = ".javap"
)

// ReadFile loads the classes from a javap listing or, when the name ends in ".txtar",
// from all ".javap" members of a txtar archive.
func ReadFile(name string) ([]*bytecode.Class, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}

	return Read(name, bytes.NewReader(data))
}

// Read loads the classes from r, choosing the format by name like [ReadFile].
func Read(name string, r io.Reader) ([]*bytecode.Class, error) {
	if filepath.Ext(name) != archiveExt {
		classes, err := javap.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return classes, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read archive %s: %w", name, err)
	}

	classes, err := Archive(txtar.Parse(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return classes, nil
}

// Archive parses the ".javap" members of a, in archive order. Other members are ignored.
func Archive(a *txtar.Archive) ([]*bytecode.Class, error) {
	var classes []*bytecode.Class

	for _, f := range a.Files {
		if filepath.Ext(f.Name) != listingExt {
			continue
		}

		c, err := javap.Parse(bytes.NewReader(f.Data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}

		classes = append(classes, c...)
	}

	return classes, nil
}
