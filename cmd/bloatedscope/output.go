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

package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"fillmore-labs.com/bloatedscope/analyzer"
)

const (
	bold  = "\033[1m%s\033[0m"
	faint = "\033[2m%s\033[0m"
)

// printer writes diagnostics, highlighting them when the output is a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) printer {
	f, ok := w.(*os.File)

	return printer{w: w, color: ok && term.IsTerminal(int(f.Fd()))}
}

func (p printer) print(d analyzer.Diagnostic) {
	if !p.color {
		fmt.Fprintln(p.w, d.String())

		return
	}

	fmt.Fprintf(p.w, bold+": %s "+faint+"\n", d.Position(), d.Message, "("+d.Pattern.String()+")")
}
