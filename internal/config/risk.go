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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPattern is returned when a risky method pattern is not a valid regular expression.
var ErrInvalidPattern = errors.New("invalid risky method pattern")

// Risk lists the calls and declared types whose results should not be moved.
//
// Classes are internal names like "java/io/InputStream", methods are keys of the form
// "owner.name(descriptor)" and patterns are matched case-insensitively against the full key.
type Risk struct {
	Classes    []string `yaml:"risky-classes"`
	Methods    []string `yaml:"risky-methods"`
	Patterns   []string `yaml:"risky-method-patterns"`
	StoreTypes []string `yaml:"risky-store-types"`

	// ReplaceDefaults discards the built-in tables instead of extending them.
	ReplaceDefaults bool `yaml:"replace-defaults"`
}

// DefaultRisk returns the built-in risk tables.
func DefaultRisk() Risk {
	return Risk{
		Classes: []string{
			"java/io/BufferedInputStream",
			"java/io/DataInput",
			"java/io/DataInputStream",
			"java/io/InputStream",
			"java/io/ObjectInputStream",
			"java/io/BufferedReader",
			"java/io/FileReader",
			"java/io/Reader",
			"javax/nio/channels/Channel",
			"io/netty/channel/Channel",
		},
		Methods: []string{
			"java/lang/System.currentTimeMillis()J",
			"java/lang/System.nanoTime()J",
			"java/util/Calendar.get(I)I",
			"java/util/GregorianCalendar.get(I)I",
			"java/util/Iterator.next()Ljava/lang/Object;",
			"java/util/regex/Matcher.start()I",
			"java/util/concurrent/TimeUnit.toMillis(J)J",
		},
		Patterns: []string{
			`.*serial.*`,
			`.*\.read[^.]*`,
			`.*\.create[^.]*`,
		},
		StoreTypes: []string{
			"Ljava/util/concurrent/Future;",
		},
	}
}

// Merge returns the union of r and o. When o replaces the defaults, r is ignored.
func (r Risk) Merge(o Risk) Risk {
	if o.ReplaceDefaults {
		o.ReplaceDefaults = false

		return o
	}

	return Risk{
		Classes:    union(r.Classes, o.Classes),
		Methods:    union(r.Methods, o.Methods),
		Patterns:   union(r.Patterns, o.Patterns),
		StoreTypes: union(r.StoreTypes, o.StoreTypes),
	}
}

// Validate checks that all patterns compile.
func (r Risk) Validate() error {
	for _, p := range r.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidPattern, p, err)
		}
	}

	return nil
}

// LoadRisk reads a YAML risk file and merges it with the defaults.
func LoadRisk(filename string) (Risk, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Risk{}, fmt.Errorf("could not read risk config: %w", err)
	}

	risk, err := ParseRisk(bytes.NewReader(b))
	if err != nil {
		return Risk{}, fmt.Errorf("risk config %s: %w", filename, err)
	}

	return risk, nil
}

// ParseRisk decodes a YAML risk document and merges it with the defaults.
// Unknown keys are rejected.
func ParseRisk(r io.Reader) (Risk, error) {
	var cfg Risk

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Risk{}, fmt.Errorf("could not unmarshal risk config: %w", err)
	}

	risk := DefaultRisk().Merge(cfg)
	if err := risk.Validate(); err != nil {
		return Risk{}, err
	}

	return risk, nil
}

func union(a, b []string) []string {
	u := slices.Concat(a, b)
	slices.Sort(u)

	return slices.Compact(u)
}
