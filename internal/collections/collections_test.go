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

package collections_test

import (
	"context"
	"testing"

	. "fillmore-labs.com/bloatedscope/internal/collections"
	"fillmore-labs.com/bloatedscope/internal/report"
	"fillmore-labs.com/bloatedscope/internal/testsource"
)

func TestMethod(t *testing.T) {
	t.Parallel()

	class, m := testsource.Method(t, "static java.lang.Object f(java.util.Vector, java.util.Hashtable);", `
0: aload_0
1: iconst_0
2: invokevirtual #2                  // Method java/util/Vector.elementAt:(I)Ljava/lang/Object;
5: pop
6: aload_1
7: aload_0
8: invokevirtual #3                  // Method java/util/Hashtable.contains:(Ljava/lang/Object;)Z
11: pop
12: aload_0
13: iconst_0
14: invokevirtual #4                  // Method java/util/Vector.get:(I)Ljava/lang/Object;
17: areturn
LineNumberTable:
  line 10: 0
  line 11: 6
  line 12: 12
`)

	diagnostics := Method(context.Background(), class, m)

	if len(diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(diagnostics), diagnostics)
	}

	tests := []struct {
		pc, line int
		message  string
	}{
		{2, 10, "Call of legacy method java/util/Vector.elementAt, use get instead"},
		{8, 11, "Call of legacy method java/util/Hashtable.contains, use containsValue instead"},
	}

	for i, tt := range tests {
		d := diagnostics[i]

		if d.Pattern != report.NonCollectionMethodUse || d.PC != tt.pc || d.Line != tt.line || d.Message != tt.message {
			t.Errorf("diagnostic %d = %+v, want pc %d line %d %q", i, d, tt.pc, tt.line, tt.message)
		}
	}
}
