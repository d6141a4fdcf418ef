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

package run

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/trace"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/analyze"
	"fillmore-labs.com/bloatedscope/internal/collections"
	"fillmore-labs.com/bloatedscope/internal/config"
	"fillmore-labs.com/bloatedscope/internal/report"
	"fillmore-labs.com/bloatedscope/internal/risk"
)

// Run executes the enabled detectors on all methods of classes.
// Diagnostics are filtered by priority and returned in class, method and location order.
func (r *Options) Run(ctx context.Context, classes []*bytecode.Class) ([]report.Diagnostic, error) {
	ctx, task := trace.NewTask(ctx, "BloatedScope")
	defer task.End()

	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rc, err := r.classifier()
	if err != nil {
		return nil, err
	}

	basic := analyze.New(rc, logger)

	var (
		mu          sync.Mutex
		diagnostics []report.Diagnostic
	)

	g, ctx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}

	for _, class := range classes {
		trace.Log(ctx, "class", class.Name)

		for _, m := range class.Methods {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				var found []report.Diagnostic

				if r.Detectors.Enabled(config.BloatedScopeDetector) {
					found = append(found, basic.Method(ctx, class, m)...)
				}

				if r.Detectors.Enabled(config.NonCollectionDetector) {
					found = append(found, collections.Method(ctx, class, m)...)
				}

				found = slices.DeleteFunc(found, func(d report.Diagnostic) bool {
					return !r.MinPriority.Includes(d.Priority)
				})

				logger.LogAttrs(ctx, slog.LevelDebug, "Analyzed method",
					slog.String("class", class.Name), slog.String("method", m.Name+m.Descriptor), slog.Int("diagnostics", len(found)))

				if len(found) == 0 {
					return nil
				}

				mu.Lock()
				diagnostics = append(diagnostics, found...)
				mu.Unlock()

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(diagnostics, report.Compare)

	logger.DebugContext(ctx, "Analysis finished", slog.Int("classes", len(classes)), slog.Int("diagnostics", len(diagnostics)))

	return diagnostics, nil
}

// classifier compiles the built-in, file and option risk tables.
func (r *Options) classifier() (*risk.Classifier, error) {
	tables := config.DefaultRisk()

	if r.RiskFile != "" {
		var err error
		if tables, err = config.LoadRisk(r.RiskFile); err != nil {
			return nil, err
		}
	}

	rc, err := risk.New(tables.Merge(r.Risk))
	if err != nil {
		return nil, fmt.Errorf("risk tables: %w", err)
	}

	return rc, nil
}
