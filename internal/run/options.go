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
	"log/slog"
	"runtime"

	"fillmore-labs.com/bloatedscope/analyzer/level"
	"fillmore-labs.com/bloatedscope/internal/config"
)

// Options represent the configuration of an analysis run.
type Options struct {
	// Detectors represent the detectors to be enabled.
	Detectors config.BitMask[config.DetectorFlags]

	// Risk extends the risk tables. Setting ReplaceDefaults discards the built-in tables.
	Risk config.Risk

	// RiskFile names an optional YAML file with additional risk tables.
	RiskFile string

	// MinPriority is the lowest priority reported.
	MinPriority level.Priority

	// Concurrency limits the number of methods analyzed in parallel.
	Concurrency int

	// Logger receives progress and warnings. A nil logger discards output.
	Logger *slog.Logger
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Detectors:   config.NewBitMask(config.BloatedScopeDetector, config.NonCollectionDetector),
		MinPriority: level.PriorityLow,
		Concurrency: runtime.GOMAXPROCS(0),
	}
}
