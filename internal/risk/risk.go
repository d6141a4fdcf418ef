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

// Package risk decides which call results and declared types make a store unsafe to move.
package risk

import (
	"fmt"
	"regexp"

	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/config"
)

// Classifier answers risk queries against compiled risk tables.
type Classifier struct {
	classes    set
	methods    set
	patterns   []*regexp.Regexp
	storeTypes set
}

type set map[string]struct{}

func newSet(elems []string) set {
	s := make(set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}

	return s
}

func (s set) contains(e string) bool {
	_, ok := s[e]

	return ok
}

// New compiles the risk tables. Patterns must match the whole "owner.name(descriptor)" key
// and are case-insensitive.
func New(r config.Risk) (*Classifier, error) {
	c := &Classifier{
		classes:    newSet(r.Classes),
		methods:    newSet(r.Methods),
		patterns:   make([]*regexp.Regexp, 0, len(r.Patterns)),
		storeTypes: newSet(r.StoreTypes),
	}

	for _, p := range r.Patterns {
		re, err := regexp.Compile(`(?i)^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", config.ErrInvalidPattern, p, err)
		}

		c.patterns = append(c.patterns, re)
	}

	return c, nil
}

// Default returns a classifier for the built-in tables.
func Default() *Classifier {
	c, err := New(config.DefaultRisk())
	if err != nil {
		panic(err)
	}

	return c
}

// RiskyCall reports whether the result of calling ref depends on when the call happens.
func (c *Classifier) RiskyCall(ref bytecode.MemberRef) bool {
	if c.classes.contains(ref.Class) {
		return true
	}

	key := ref.Key()
	if c.methods.contains(key) {
		return true
	}

	for _, re := range c.patterns {
		if re.MatchString(key) {
			return true
		}
	}

	return false
}

// RiskyStoreType reports whether variables declared with signature must not be moved.
func (c *Classifier) RiskyStoreType(signature string) bool {
	return c.storeTypes.contains(signature)
}
