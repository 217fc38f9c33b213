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
	"strings"
	"testing"
)

func TestParseStatements(t *testing.T) {
	stmts, err := ParseStatements(`
module base {
  namespace "urn:x:base";
  prefix b;
  description "first" + " second";
  leaf x { type string; }
}
`, "base.yang")
	if err != nil {
		t.Fatal(err)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	s := stmts[0]
	if s.Keyword != "module" || s.Argument != "base" {
		t.Fatalf("got %s %q, want module base", s.Keyword, s.Argument)
	}
	if got := s.argOf("namespace"); got != "urn:x:base" {
		t.Errorf("namespace = %q", got)
	}
	if got := s.argOf("description"); got != "first second" {
		t.Errorf("concatenated description = %q", got)
	}
	leaf := s.substatement("leaf")
	if leaf == nil || leaf.Argument != "x" {
		t.Fatalf("leaf substatement missing")
	}
	if got := leaf.argOf("type"); got != "string" {
		t.Errorf("leaf type = %q", got)
	}
	if loc := leaf.Loc(); loc.File != "base.yang" || loc.Line != 6 {
		t.Errorf("leaf location = %v", loc)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   string
		want string
	}{{
		name: "stray brace",
		in:   "module m { }\n}\n",
		want: "unexpected '}'",
	}, {
		name: "unexpected eof",
		in:   "module m {\n",
		want: "unexpected EOF",
	}, {
		name: "missing separator",
		in:   "module m { leaf x { type string; } leaf }\n",
		want: "syntax error",
	}} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatements(tt.in, "err.yang")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got error %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestStatementWrite(t *testing.T) {
	stmts, err := ParseStatements(`leaf x { type string; }`, "w.yang")
	if err != nil {
		t.Fatal(err)
	}
	want := "leaf \"x\" {\n  type \"string\";\n}\n"
	if got := stmts[0].String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
