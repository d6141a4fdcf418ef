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

// Bloatedscope reports local variable stores in javap listings that can be moved
// into the only block using them.
//
// Usage:
//
//	javap -c -l -p -s Foo.class | bloatedscope
//	bloatedscope [flags] listing.javap bundle.txtar ...
//
// The exit status is 1 when diagnostics were reported and 2 on errors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"fillmore-labs.com/bloatedscope/analyzer"
	"fillmore-labs.com/bloatedscope/bytecode"
	"fillmore-labs.com/bloatedscope/internal/input"
)

const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var logLevel slog.LevelVar
	logLevel.Set(slog.LevelWarn)

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: &logLevel}))

	a := analyzer.New(analyzer.WithLogger(logger))
	a.Flags.SetOutput(stderr)
	verbose := a.Flags.Bool("v", false, "log progress to standard error")
	a.Flags.Usage = func() {
		fmt.Fprintf(stderr, "%s\n\nUsage: %s [flags] [file.javap | file.txtar]...\n\nFlags:\n", a.Doc, a.Name)
		a.Flags.PrintDefaults()
	}

	if err := a.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitError
	}

	if *verbose {
		logLevel.Set(slog.LevelDebug)
	}

	classes, err := load(a.Flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", a.Name, err)

		return exitError
	}

	logger.DebugContext(ctx, "Loaded classes", slog.Int("classes", len(classes)))

	diagnostics, err := a.Run(ctx, classes...)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", a.Name, err)

		return exitError
	}

	p := newPrinter(stdout)
	for _, d := range diagnostics {
		p.print(d)
	}

	if len(diagnostics) > 0 {
		return exitFindings
	}

	return exitOK
}

// load reads the named inputs, or standard input when there are none or the name is "-".
func load(names []string, stdin io.Reader) ([]*bytecode.Class, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	var classes []*bytecode.Class

	for _, name := range names {
		var (
			c   []*bytecode.Class
			err error
		)

		if name == "-" {
			c, err = input.Read("<stdin>", stdin)
		} else {
			c, err = input.ReadFile(name)
		}

		if err != nil {
			return nil, err
		}

		classes = append(classes, c...)
	}

	return classes, nil
}
