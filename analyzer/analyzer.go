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

package analyzer

import (
	"context"
	"flag"

	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/report"
	"fillmore-labs.com/bloatedscope/internal/run"
)

// Public API constants for the bloatedscope analyzer.
const (
	name = "bloatedscope"
	doc  = `bloatedscope detects local variable stores that can be moved into the only block using them`
	url  = "https://pkg.go.dev/fillmore-labs.com/bloatedscope"
)

// Diagnostic is a finding reported by [Analyzer.Run].
type Diagnostic = report.Diagnostic

// Pattern identifies the kind of a [Diagnostic].
type Pattern = report.Pattern

// Reported patterns.
const (
	BloatedAssignmentScope = report.BloatedAssignmentScope
	NonCollectionMethodUse = report.NonCollectionMethodUse
)

// Analyzer checks decoded classes. Its Flags mirror the [Option] values and may be
// bound to a command line.
type Analyzer struct {
	Name  string
	Doc   string
	URL   string
	Flags flag.FlagSet

	r *run.Options
}

// New creates a new instance of the bloatedscope analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools. For command-line use, the
// pre-configured [Default] variable is typically sufficient.
func New(opts ...Option) *Analyzer {
	r := run.DefaultOptions()
	Options(opts).apply(r)

	a := &Analyzer{
		Name: name,
		Doc:  doc,
		URL:  url,
		r:    r,
	}

	a.Flags.Init(name, flag.ContinueOnError)
	registerFlags(&a.Flags, r)

	return a
}

// Run analyzes all methods of classes and returns the diagnostics sorted by class,
// method and location.
func (a *Analyzer) Run(ctx context.Context, classes ...*bytecode.Class) ([]Diagnostic, error) {
	return a.r.Run(ctx, classes)
}

// Default is a pre-configured *[Analyzer] running all detectors with the built-in risk tables.
var Default = New()
