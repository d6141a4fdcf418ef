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

package run_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/bloatedscope/analyzer/level"
	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/config"
	"fillmore-labs.com/bloatedscope/internal/report"
	. "fillmore-labs.com/bloatedscope/internal/run"
	"fillmore-labs.com/bloatedscope/javap"
)

const sample = `Compiled from "Sample.java"
class Sample {
  static void tick(boolean);
    Code:
       0: invokestatic  #2                  // Method com/example/Clock.ticks:()J
       3: lstore_1
       4: iload_0
       5: ifeq          15
       8: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
      11: lload_1
      12: invokevirtual #16                 // Method java/io/PrintStream.println:(J)V
      15: return
    LineNumberTable:
      line 5: 0
      line 6: 4
      line 7: 8
      line 8: 15

  static java.lang.Object first(java.util.Vector);
    Code:
       0: aload_0
       1: iconst_0
       2: invokevirtual #3                  // Method java/util/Vector.elementAt:(I)Ljava/lang/Object;
       5: areturn
    LineNumberTable:
      line 11: 0
}
`

func parseSample(t *testing.T) []*bytecode.Class {
	t.Helper()

	classes, err := javap.ParseString(sample)
	require.NoError(t, err)

	return classes
}

func patterns(diagnostics []report.Diagnostic) []report.Pattern {
	p := make([]report.Pattern, 0, len(diagnostics))
	for _, d := range diagnostics {
		p = append(p, d.Pattern)
	}

	return p
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(o *Options)
		want   []report.Pattern
	}{
		{
			name:   "Default",
			modify: func(*Options) {},
			want:   []report.Pattern{report.NonCollectionMethodUse, report.BloatedAssignmentScope},
		},
		{
			name:   "BloatedScopeOnly",
			modify: func(o *Options) { o.Detectors.Set(config.NonCollectionDetector, false) },
			want:   []report.Pattern{report.BloatedAssignmentScope},
		},
		{
			name:   "NonCollectionOnly",
			modify: func(o *Options) { o.Detectors.Set(config.BloatedScopeDetector, false) },
			want:   []report.Pattern{report.NonCollectionMethodUse},
		},
		{
			name:   "HighPriority",
			modify: func(o *Options) { o.MinPriority = level.PriorityHigh },
			want:   []report.Pattern{},
		},
		{
			name:   "RiskyMethod",
			modify: func(o *Options) { o.Risk.Methods = []string{"com/example/Clock.ticks()J"} },
			want:   []report.Pattern{report.NonCollectionMethodUse},
		},
		{
			name:   "Sequential",
			modify: func(o *Options) { o.Concurrency = 1 },
			want:   []report.Pattern{report.NonCollectionMethodUse, report.BloatedAssignmentScope},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := DefaultOptions()
			tt.modify(o)

			diagnostics, err := o.Run(t.Context(), parseSample(t))
			require.NoError(t, err)

			assert.Equal(t, tt.want, patterns(diagnostics))
		})
	}
}

func TestRunPositions(t *testing.T) {
	t.Parallel()

	diagnostics, err := DefaultOptions().Run(t.Context(), parseSample(t))
	require.NoError(t, err)
	require.Len(t, diagnostics, 2)

	assert.Equal(t, "Sample.java:11", diagnostics[0].Position())
	assert.Equal(t, "first", diagnostics[0].Method)
	assert.Equal(t, "Sample.java:5", diagnostics[1].Position())
	assert.Equal(t, 3, diagnostics[1].PC)
	assert.Equal(t, 1, diagnostics[1].Slot)
}

func TestRunZeroOptions(t *testing.T) {
	t.Parallel()

	o := Options{Detectors: config.NewBitMask(config.NonCollectionDetector)}

	diagnostics, err := o.Run(t.Context(), parseSample(t))
	require.NoError(t, err)

	assert.Equal(t, []report.Pattern{report.NonCollectionMethodUse}, patterns(diagnostics))
}

func TestRunRiskFile(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "risk.yaml")
	err := os.WriteFile(name, []byte("risky-method-patterns:\n  - 'com/example/clock\\..*'\n"), 0o600)
	require.NoError(t, err)

	o := DefaultOptions()
	o.RiskFile = name

	diagnostics, err := o.Run(t.Context(), parseSample(t))
	require.NoError(t, err)

	assert.Equal(t, []report.Pattern{report.NonCollectionMethodUse}, patterns(diagnostics))
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	t.Run("InvalidPattern", func(t *testing.T) {
		t.Parallel()

		o := DefaultOptions()
		o.Risk.Patterns = []string{"("}

		_, err := o.Run(t.Context(), parseSample(t))
		require.ErrorIs(t, err, config.ErrInvalidPattern)
	})

	t.Run("MissingRiskFile", func(t *testing.T) {
		t.Parallel()

		o := DefaultOptions()
		o.RiskFile = filepath.Join(t.TempDir(), "missing.yaml")

		_, err := o.Run(t.Context(), parseSample(t))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := DefaultOptions().Run(ctx, parseSample(t))
		require.ErrorIs(t, err, context.Canceled)
	})
}
