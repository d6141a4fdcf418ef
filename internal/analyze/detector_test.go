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

package analyze_test

import (
	"context"
	"slices"
	"testing"

	. "fillmore-labs.com/bloatedscope/internal/analyze"
	"fillmore-labs.com/bloatedscope/internal/report"
	"fillmore-labs.com/bloatedscope/internal/risk"
	"fillmore-labs.com/bloatedscope/internal/testsource"
)

func TestDetector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		decl string
		body string
		want []int // locations of reported stores
	}{
		{
			name: "SingleIf",
			decl: "static void f(boolean);",
			body: `
0: iconst_5
1: istore_1
2: iload_0
3: ifeq          13
6: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
9: iload_1
10: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
13: return
`,
			want: []int{1},
		},
		{
			name: "TwoSiblingIfs",
			decl: "static void f(boolean, boolean);",
			body: `
0: iconst_5
1: istore_2
2: iload_0
3: ifeq          13
6: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
9: iload_2
10: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
13: iload_1
14: ifeq          24
17: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
20: iload_2
21: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
24: return
`,
		},
		{
			name: "Loop",
			decl: "static void f(int);",
			body: `
0: iconst_0
1: istore_1
2: iload_1
3: iload_0
4: if_icmpge     29
7: iload_1
8: iconst_2
9: imul
10: istore_2
11: iload_2
12: iconst_3
13: if_icmple     23
16: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
19: iload_2
20: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
23: iinc          1, 1
26: goto          2
29: return
`,
		},
		{
			name: "ElseArm",
			decl: "static void f(boolean);",
			body: `
0: iconst_5
1: istore_1
2: iload_0
3: ifeq          16
6: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
9: iconst_0
10: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
13: goto          23
16: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
19: iload_1
20: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
23: return
`,
			want: []int{1},
		},
		{
			name: "BothArms",
			decl: "static void f(boolean);",
			body: `
0: iconst_5
1: istore_1
2: iload_0
3: ifeq          16
6: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
9: iload_1
10: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
13: goto          23
16: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
19: iload_1
20: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
23: return
`,
		},
		{
			name: "BottomTestedLoop",
			decl: "static void f(int);",
			body: `
0: iconst_5
1: istore_1
2: goto          15
5: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
8: iload_1
9: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
12: iinc          0, -1
15: iload_0
16: ifgt          5
19: return
`,
		},
		{
			name: "Timestamp",
			decl: "static void f(boolean);",
			body: `
0: invokestatic  #2                  // Method java/lang/System.currentTimeMillis:()J
3: lstore_1
4: iload_0
5: ifeq          15
8: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
11: lload_1
12: invokevirtual #16                 // Method java/io/PrintStream.println:(J)V
15: return
`,
		},
		{
			name: "PlainStaticCall",
			decl: "static void f(boolean);",
			body: `
0: invokestatic  #2                  // Method com/example/Clock.ticks:()J
3: lstore_1
4: iload_0
5: ifeq          15
8: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
11: lload_1
12: invokevirtual #16                 // Method java/io/PrintStream.println:(J)V
15: return
`,
			want: []int{3},
		},
		{
			name: "IteratorNext",
			decl: "static void f(java.util.Iterator<java.lang.String>, boolean);",
			body: `
0: aload_0
1: invokeinterface #2,  1            // InterfaceMethod java/util/Iterator.next:()Ljava/lang/Object;
6: astore_2
7: iload_1
8: ifeq          18
11: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
14: aload_2
15: invokevirtual #19                 // Method java/io/PrintStream.println:(Ljava/lang/Object;)V
18: return
`,
		},
		{
			name: "NullConstant",
			decl: "static void f(boolean);",
			body: `
0: aconst_null
1: astore_1
2: iload_0
3: ifeq          13
6: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
9: aload_1
10: invokevirtual #19                 // Method java/io/PrintStream.println:(Ljava/lang/Object;)V
13: return
`,
		},
		{
			name: "SwitchOneArm",
			decl: "static void f(int);",
			body: switchBody("iload_1", "iconst_1"),
			want: []int{2},
		},
		{
			name: "SwitchTwoArms",
			decl: "static void f(int);",
			body: switchBody("iload_1", "iload_1"),
		},
		{
			name: "CatchVariable",
			decl: "static void f(boolean);",
			body: `
0: invokestatic  #2                  // Method foo:()V
3: goto          18
6: astore_1
7: iload_0
8: ifeq          18
11: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
14: aload_1
15: invokevirtual #19                 // Method java/io/PrintStream.println:(Ljava/lang/Object;)V
18: return
Exception table:
   from    to  target type
       0     3     6   Class java/lang/Exception
`,
		},
		{
			name: "OuterValueUsedInCatchHandler",
			decl: "static void f();",
			body: `
0: iconst_5
1: istore_0
2: invokestatic  #2                  // Method foo:()V
5: goto          16
8: astore_1
9: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
12: iload_0
13: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
16: return
Exception table:
   from    to  target type
       2     5     8   Class java/lang/Exception
`,
			want: []int{1}, // only the handler's own store is catch-bound
		},
		{
			name: "Synchronized",
			decl: "static void f(java.lang.Object, boolean);",
			body: `
0: aload_0
1: dup
2: astore_2
3: monitorenter
4: iconst_5
5: istore_3
6: iload_1
7: ifeq          17
10: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
13: iload_3
14: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
17: aload_2
18: monitorexit
19: goto          29
22: astore        4
24: aload_2
25: monitorexit
26: aload         4
28: athrow
29: return
Exception table:
   from    to  target type
       4    19    22   any
`,
		},
		{
			name: "ReceiverModified",
			decl: "static void f(java.lang.StringBuilder, boolean);",
			body: `
0: aload_0
1: invokevirtual #2                  // Method java/lang/StringBuilder.toString:()Ljava/lang/String;
4: astore_2
5: aload_0
6: ldc           #3                  // String x
8: invokevirtual #4                  // Method java/lang/StringBuilder.append:(Ljava/lang/String;)Ljava/lang/StringBuilder;
11: pop
12: iload_1
13: ifeq          23
16: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
19: aload_2
20: invokevirtual #5                  // Method java/io/PrintStream.println:(Ljava/lang/String;)V
23: return
`,
		},
		{
			name: "ReceiverModifiedInNestedBlock",
			decl: "static void f(java.lang.StringBuilder, boolean);",
			body: `
0: aload_0
1: invokevirtual #2                  // Method java/lang/StringBuilder.toString:()Ljava/lang/String;
4: astore_2
5: iload_1
6: ifeq          17
9: aload_0
10: ldc           #3                  // String x
12: invokevirtual #4                  // Method java/lang/StringBuilder.append:(Ljava/lang/String;)Ljava/lang/StringBuilder;
15: pop
16: nop
17: iload_1
18: ifeq          28
21: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
24: aload_2
25: invokevirtual #5                  // Method java/io/PrintStream.println:(Ljava/lang/String;)V
28: return
`,
		},
		{
			name: "ReceiverUnmodified",
			decl: "static void f(java.lang.StringBuilder, boolean);",
			body: `
0: aload_0
1: invokevirtual #2                  // Method java/lang/StringBuilder.toString:()Ljava/lang/String;
4: astore_2
5: iload_1
6: ifeq          16
9: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
12: aload_2
13: invokevirtual #5                  // Method java/io/PrintStream.println:(Ljava/lang/String;)V
16: return
`,
			want: []int{4},
		},
		{
			name: "WasNull",
			decl: "static void f(java.sql.ResultSet, boolean) throws java.sql.SQLException;",
			body: resultSetBody("wasNull"),
		},
		{
			name: "IsClosed",
			decl: "static void f(java.sql.ResultSet, boolean) throws java.sql.SQLException;",
			body: resultSetBody("isClosed"),
			want: []int{3},
		},
		{
			name: "Iinc",
			decl: "static void f(boolean);",
			body: `
0: iconst_0
1: istore_1
2: iinc          1, 1
5: iload_0
6: ifeq          16
9: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
12: iload_1
13: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
16: return
`,
		},
	}

	d := New(risk.Default(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			class, m := testsource.Method(t, tt.decl, tt.body)

			diagnostics := d.Method(context.Background(), class, m)

			got := make([]int, 0, len(diagnostics))
			for _, diag := range diagnostics {
				if diag.Pattern != report.BloatedAssignmentScope {
					t.Errorf("unexpected pattern %v", diag.Pattern)
				}

				got = append(got, diag.PC)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("reported stores at %v, want %v", got, tt.want)
			}
		})
	}
}

// switchBody returns a four-way switch on the parameter where the first two arms
// print arm0 and arm1 and the others print constants.
func switchBody(arm0, arm1 string) string {
	return `
0: bipush        7
2: istore_1
3: iload_0
4: tableswitch   { // 0 to 3
             0: 36
             1: 46
             2: 56
             3: 66
       default: 76
  }
36: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
39: ` + arm0 + `
40: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
43: goto          83
46: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
49: ` + arm1 + `
50: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
53: goto          83
56: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
59: iconst_2
60: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
63: goto          83
66: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
69: iconst_3
70: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
73: goto          83
76: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
79: iconst_4
80: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
83: return
`
}

// resultSetBody stores a computed value and calls check on the result set before using it.
func resultSetBody(check string) string {
	return `
0: invokestatic  #2                  // Method compute:()I
3: istore_2
4: aload_0
5: invokeinterface #3,  1            // InterfaceMethod java/sql/ResultSet.` + check + `:()Z
10: pop
11: iload_1
12: ifeq          22
15: getstatic     #7                  // Field java/lang/System.out:Ljava/io/PrintStream;
18: iload_2
19: invokevirtual #13                 // Method java/io/PrintStream.println:(I)V
22: return
`
}
