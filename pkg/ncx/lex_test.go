// Copyright 2016 NetconfCentral.
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

package ncx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type lexTok struct {
	Kind TokenKind
	Text string
}

func lexAll(input string) []lexTok {
	l := newLexer(input, "test.yang")
	var toks []lexTok
	for t := l.Next(); t != nil; t = l.Next() {
		toks = append(toks, lexTok{t.Kind, t.Text})
	}
	return toks
}

func TestLex(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   string
		want []lexTok
	}{{
		name: "empty",
		in:   "",
		want: nil,
	}, {
		name: "punctuation",
		in:   "foo { bar; }",
		want: []lexTok{
			{TokIdentifier, "foo"},
			{'{', "{"},
			{TokIdentifier, "bar"},
			{';', ";"},
			{'}', "}"},
		},
	}, {
		name: "double quoted",
		in:   `leaf "a b";`,
		want: []lexTok{
			{TokIdentifier, "leaf"},
			{TokString, "a b"},
			{';', ";"},
		},
	}, {
		name: "single quoted keeps backslash",
		in:   `pattern '\d+';`,
		want: []lexTok{
			{TokIdentifier, "pattern"},
			{TokString, `\d+`},
			{';', ";"},
		},
	}, {
		name: "escapes",
		in:   `x "a\tb\"c\\d\n";`,
		want: []lexTok{
			{TokIdentifier, "x"},
			{TokString, "a\tb\"c\\d\n"},
			{';', ";"},
		},
	}, {
		name: "line comment",
		in:   "a // comment\nb",
		want: []lexTok{
			{TokIdentifier, "a"},
			{TokIdentifier, "b"},
		},
	}, {
		name: "block comment",
		in:   "a /* x\ny */ b",
		want: []lexTok{
			{TokIdentifier, "a"},
			{TokIdentifier, "b"},
		},
	}, {
		name: "unquoted with colon",
		in:   "namespace urn:x:a;",
		want: []lexTok{
			{TokIdentifier, "namespace"},
			{TokIdentifier, "urn:x:a"},
			{';', ";"},
		},
	}, {
		name: "unterminated string",
		in:   `"abc`,
		want: []lexTok{
			{TokError, "unterminated string"},
		},
	}, {
		name: "slash not comment",
		in:   "path /a/b;",
		want: []lexTok{
			{TokIdentifier, "path"},
			{TokIdentifier, "/a/b"},
			{';', ";"},
		},
	}} {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexLocation(t *testing.T) {
	l := newLexer("a\n  bb\n", "loc.yang")
	a := l.Next()
	if a.Line != 1 || a.Col != 1 {
		t.Errorf("a at %d:%d, want 1:1", a.Line, a.Col)
	}
	bb := l.Next()
	if bb.Line != 2 || bb.Col != 3 {
		t.Errorf("bb at %d:%d, want 2:3", bb.Line, bb.Col)
	}
}

func TestLexLongLine(t *testing.T) {
	l := newLexer("aaaa bbbb;\ncc;\n", "long.yang")
	l.maxLine = 5
	var locs []Location
	l.longLine = func(loc Location, n int) { locs = append(locs, loc) }
	for t := l.Next(); t != nil; t = l.Next() {
	}
	if len(locs) != 1 || locs[0].Line != 1 {
		t.Errorf("long lines = %v, want one hit on line 1", locs)
	}
}
