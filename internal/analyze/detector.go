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
	"context"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/report"
	"fillmore-labs.com/bloatedscope/internal/risk"
)

// Detector finds bloated assignment scopes. It is safe for concurrent use;
// every method is analyzed in its own session.
type Detector struct {
	risk   *risk.Classifier
	logger *slog.Logger
}

// New creates a detector using the given risk classifier. A nil logger discards output.
func New(rc *risk.Classifier, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Detector{risk: rc, logger: logger}
}

// Method analyzes a single method of class.
func (d *Detector) Method(ctx context.Context, class *bytecode.Class, m *bytecode.Method) []report.Diagnostic {
	defer trace.StartRegion(ctx, "BloatedScope").End()

	params, err := m.ParameterSlots()
	if err != nil {
		d.logger.WarnContext(ctx, "Skipping method with invalid descriptor", slog.String("method", m.String()), slog.Any("error", err))

		return nil
	}

	s := newSession(m, params, d.risk)

	s.classify(ctx)

	findings := s.detect(ctx)

	if d.logger.Enabled(ctx, slog.LevelDebug) {
		d.logger.LogAttrs(ctx, slog.LevelDebug, "Block tree", slog.String("method", m.String()), slog.String("blocks", s.tree.String()))
	}

	if s.dontReport {
		d.logger.DebugContext(ctx, "Reporting suppressed by wasNull()", slog.String("method", m.String()))
	}

	if len(findings) == 0 {
		return nil
	}

	diagnostics := make([]report.Diagnostic, 0, len(findings))
	for _, f := range findings {
		diagnostics = append(diagnostics, diagnostic(class, m, f))
	}

	return diagnostics
}

// classify runs the instruction pass building the block tree.
func (s *session) classify(ctx context.Context) {
	defer trace.StartRegion(ctx, "Classify").End()

	s.scan()
}
