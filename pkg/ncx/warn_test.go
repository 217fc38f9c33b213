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

func TestSuppression(t *testing.T) {
	sources := map[string]string{
		"x": `module x { namespace "urn:x:x"; prefix p; leaf a { type string; } }`,
		"y": `module y { namespace "urn:x:y"; prefix p; leaf b { type string; } }`,
	}
	c := newTestContext(t, sources, Options{})
	c.Suppress(WarnDuplicatePrefix)
	if c.WarningEnabled(WarnDuplicatePrefix) {
		t.Fatal("suppressed warning still enabled")
	}
	mustLoad(t, c, "x")
	y := mustLoad(t, c, "y")
	if y.Warnings != 0 {
		t.Errorf("suppressed warning still counted: %d", y.Warnings)
	}
	// The remap itself still happens; only the report is silenced.
	if y.XMLPrefix != "p1" {
		t.Errorf("xml-prefix = %q, want p1", y.XMLPrefix)
	}

	c.Unsuppress(WarnDuplicatePrefix)
	if !c.WarningEnabled(WarnDuplicatePrefix) {
		t.Error("unsuppress did not re-enable the warning")
	}
}

func TestErrorsCannotBeSuppressed(t *testing.T) {
	c := NewContext(Options{})
	c.Suppress(ErrModuleNotFound)
	if !c.WarningEnabled(ErrModuleNotFound) {
		t.Error("error codes must never be suppressible")
	}
}

func TestWarnIDLenBoundary(t *testing.T) {
	atLimit := `module w { namespace "urn:x:w"; prefix w; leaf abcde { type string; } }`
	overLimit := `module w { namespace "urn:x:w"; prefix w; leaf abcdef { type string; } }`

	for _, tt := range []struct {
		name  string
		idlen int
		src   string
		warns int
	}{
		{"at limit", 5, atLimit, 0},
		{"over limit", 5, overLimit, 1},
		{"disabled", -1, overLimit, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, map[string]string{"w": tt.src}, Options{WarnIDLen: tt.idlen})
			m := mustLoad(t, c, "w")
			got := 0
			for _, err := range m.GetErrors() {
				if strings.Contains(err.Error(), "idlen-exceeded") {
					got++
				}
			}
			if got != tt.warns {
				t.Errorf("idlen warnings = %d, want %d", got, tt.warns)
			}
		})
	}
}

func TestWarnLineLen(t *testing.T) {
	src := "module w { namespace \"urn:x:w\"; prefix w;\n" +
		"  leaf a { type string; }                                                        \n" +
		"}\n"
	c := newTestContext(t, map[string]string{"w": src}, Options{WarnLineLen: 72})
	m := mustLoad(t, c, "w")
	got := 0
	for _, err := range m.GetErrors() {
		if strings.Contains(err.Error(), "linelen-exceeded") {
			got++
		}
	}
	if got != 1 {
		t.Errorf("linelen warnings = %d, want 1", got)
	}
}

func TestDiagnosticFormat(t *testing.T) {
	d := &Diagnostic{
		Loc:  Location{File: "mod.yang", Line: 12, Col: 3},
		Code: ErrDefNotFound,
		Msg:  "unknown type foo",
	}
	want := "mod.yang:12.3: error(def-not-found): unknown type foo"
	if got := d.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	// Unknown source files format as "--".
	d2 := &Diagnostic{Code: WarnIDLen, Msg: "m"}
	if got := d2.Error(); !strings.HasPrefix(got, "--:0.0: warning(idlen-exceeded)") {
		t.Errorf("no-file format = %q", got)
	}
}

func TestPinnedErrorLocation(t *testing.T) {
	c := NewContext(Options{})
	m := &Module{Name: "pin", ctx: c}
	pinned := Location{File: "real.yang", Line: 7, Col: 1}
	m.SetError(pinned)
	c.emit(m, Location{File: "wrong.yang", Line: 1, Col: 1}, ErrInternal, "boom")
	errs := m.GetErrors()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "real.yang:7.1") {
		t.Errorf("pinned location not used: %v", errs)
	}
	m.ClearError()
	c.emit(m, Location{File: "wrong.yang", Line: 1, Col: 1}, ErrInternal, "boom two")
	errs = m.GetErrors()
	if len(errs) != 2 || !strings.Contains(errs[1].Error(), "wrong.yang") {
		t.Errorf("cleared pin not honored: %v", errs)
	}
}
