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
	"log/slog"

	"fillmore-labs.com/bloatedscope/analyzer/level"
	"fillmore-labs.com/bloatedscope/internal/config"
	"fillmore-labs.com/bloatedscope/internal/run"
)

// Option configures specific behavior of a [New] bloatedscope analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithBloatedScope is an [Option] to configure whether bloated assignment scopes are reported.
func WithBloatedScope(enabled bool) Option {
	return detectorOption{key: "bas", detector: config.BloatedScopeDetector, enabled: enabled}
}

// WithNonCollection is an [Option] to configure whether legacy Hashtable and Vector methods are reported.
func WithNonCollection(enabled bool) Option {
	return detectorOption{key: "ncmu", detector: config.NonCollectionDetector, enabled: enabled}
}

type detectorOption struct {
	key      string
	detector config.DetectorFlags
	enabled  bool
}

func (o detectorOption) apply(r *run.Options) {
	r.Detectors.Set(o.detector, o.enabled)
}

func (o detectorOption) LogAttr() slog.Attr {
	return slog.Bool(o.key, o.enabled)
}

// WithRiskConfig is an [Option] naming a YAML file that extends the risk tables.
func WithRiskConfig(filename string) Option { return riskConfigOption{filename: filename} }

type riskConfigOption struct{ filename string }

func (o riskConfigOption) apply(r *run.Options) {
	r.RiskFile = o.filename
}

func (o riskConfigOption) LogAttr() slog.Attr {
	return slog.String("risk-config", o.filename)
}

// WithRiskyClasses is an [Option] adding classes, like "java/io/InputStream", whose
// instance method results must not be moved.
func WithRiskyClasses(classes ...string) Option {
	return riskOption{key: "risky-classes", values: classes, field: func(r *config.Risk) *[]string { return &r.Classes }}
}

// WithRiskyMethods is an [Option] adding methods, like "java/lang/System.nanoTime()J",
// whose results must not be moved.
func WithRiskyMethods(methods ...string) Option {
	return riskOption{key: "risky-methods", values: methods, field: func(r *config.Risk) *[]string { return &r.Methods }}
}

// WithRiskyPatterns is an [Option] adding case-insensitive regular expressions matched
// against the full "owner.name(descriptor)" key of called methods.
func WithRiskyPatterns(patterns ...string) Option {
	return riskOption{key: "risky-method-patterns", values: patterns, field: func(r *config.Risk) *[]string { return &r.Patterns }}
}

// WithRiskyStoreTypes is an [Option] adding declared variable signatures, like
// "Ljava/util/concurrent/Future;", whose stores must not be moved.
func WithRiskyStoreTypes(signatures ...string) Option {
	return riskOption{key: "risky-store-types", values: signatures, field: func(r *config.Risk) *[]string { return &r.StoreTypes }}
}

type riskOption struct {
	key    string
	values []string
	field  func(r *config.Risk) *[]string
}

func (o riskOption) apply(r *run.Options) {
	f := o.field(&r.Risk)
	*f = append(*f, o.values...)
}

func (o riskOption) LogAttr() slog.Attr {
	return slog.Any(o.key, o.values)
}

// WithMinPriority is an [Option] to configure the lowest reported priority.
func WithMinPriority(priority level.Priority) Option { return priorityOption{priority: priority} }

type priorityOption struct{ priority level.Priority }

func (o priorityOption) apply(r *run.Options) {
	r.MinPriority = o.priority
}

func (o priorityOption) LogAttr() slog.Attr {
	return slog.String("priority", o.priority.String())
}

// WithConcurrency is an [Option] limiting the number of methods analyzed in parallel.
// Values below one remove the limit.
func WithConcurrency(n int) Option { return concurrencyOption{n: n} }

type concurrencyOption struct{ n int }

func (o concurrencyOption) apply(r *run.Options) {
	r.Concurrency = o.n
}

func (o concurrencyOption) LogAttr() slog.Attr {
	return slog.Int("concurrency", o.n)
}

// WithLogger is an [Option] to receive progress and warnings.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
