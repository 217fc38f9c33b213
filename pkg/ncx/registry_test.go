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

	"github.com/openconfig/gnmi/errdiff"
)

func TestDefaultRevision(t *testing.T) {
	c := NewContext(Options{})
	old, errs := c.ParseSource(
		`module rev { namespace "urn:x:rev"; prefix r; revision 2019-01-01; leaf a { type string; } }`,
		"rev@2019-01-01.yang")
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	newer, errs := c.ParseSource(
		`module rev { namespace "urn:x:rev"; prefix r; revision 2021-06-30; revision 2019-06-01; leaf a { type string; } }`,
		"rev@2021-06-30.yang")
	if len(errs) > 0 {
		t.Fatal(errs)
	}

	if newer.Revision != "2021-06-30" {
		t.Fatalf("newest revision = %q", newer.Revision)
	}

	// Exactly one default per name, and it is the newest.
	defaults := 0
	c.IterDefault(func(m *Module) {
		if m.Name == "rev" {
			defaults++
			if m != newer {
				t.Error("default is not the newest revision")
			}
		}
	})
	if defaults != 1 {
		t.Errorf("default revisions = %d, want 1", defaults)
	}
	if old.DefaultRev {
		t.Error("old revision still flagged default")
	}

	if got := c.FindModule("rev", ""); got != newer {
		t.Error("revisionless find must return the default")
	}
	if got := c.FindModule("rev", "2019-01-01"); got != old {
		t.Error("exact revision find failed")
	}
	if got := c.FindModule("rev", "1999-01-01"); got != nil {
		t.Error("missing revision must return nil")
	}
	if got := c.RevisionCount("rev"); got != 2 {
		t.Errorf("revision count = %d, want 2", got)
	}
}

func TestRegisterConflict(t *testing.T) {
	c := NewContext(Options{})
	if _, errs := c.ParseSource(
		`module dup { namespace "urn:x:dup"; prefix d; leaf a { type string; } }`,
		"dup.yang"); len(errs) > 0 {
		t.Fatal(errs)
	}
	// Same name and revision from a different source conflicts.
	_, errs := c.ParseSource(
		`module dup { namespace "urn:x:dup"; prefix d; leaf a { type string; } }`,
		"other/dup.yang")
	var got error
	if len(errs) > 0 {
		got = errs[0]
	}
	if s := errdiff.Substring(got, "already registered"); s != "" {
		t.Error(s)
	}
}

func TestSessionScope(t *testing.T) {
	c := NewContext(Options{})
	global, errs := c.ParseSource(
		`module s { namespace "urn:x:s"; prefix s; leaf a { type string; } }`,
		"s.yang")
	if len(errs) > 0 {
		t.Fatal(errs)
	}

	// Build a shadow module directly and park it in a session scope.
	shadow := &Module{Name: "s", Revision: "2030-01-01", SourceFile: "session/s.yang"}
	sess := NewModSet()
	sess.add(shadow)

	c.SetSessionScope(sess)
	if got := c.FindModule("s", ""); got != shadow {
		t.Error("session scope must shadow the global scope")
	}
	if got := c.RevisionCount("s"); got != 2 {
		t.Errorf("revision count with session scope = %d, want 2", got)
	}
	c.ClearSessionScope()
	if got := c.FindModule("s", ""); got != global {
		t.Error("clearing the session scope must restore the global view")
	}
}

func TestSetCurrentScope(t *testing.T) {
	c := NewContext(Options{})
	if _, errs := c.ParseSource(
		`module cur { namespace "urn:x:cur"; prefix c; leaf a { type string; } }`,
		"cur.yang"); len(errs) > 0 {
		t.Fatal(errs)
	}
	old := c.SetCurrentScope(NewModSet())
	if c.FindModule("cur", "") != nil {
		t.Error("fresh current scope must be empty")
	}
	c.SetCurrentScope(old)
	if c.FindModule("cur", "") == nil {
		t.Error("restoring the scope must restore lookups")
	}
}

func TestLoadCallbackAndDeadQ(t *testing.T) {
	var loaded []string
	c := newTestContext(t, map[string]string{
		"cb": `module cb { namespace "urn:x:cb"; prefix c; leaf a { type string; } }`,
	}, Options{})
	c.SetLoadCallback(func(m *Module) { loaded = append(loaded, m.Name) })
	m := mustLoad(t, c, "cb")
	if len(loaded) != 1 || loaded[0] != "cb" {
		t.Errorf("load callback saw %v, want [cb]", loaded)
	}

	c.SetUseDeadModQ(true)
	c.Unload(m)
	if m.State == ModUnloaded {
		t.Error("dead module queue must defer cleanup")
	}
	if c.FindModule("cb", "") != nil {
		t.Error("unloaded module still visible")
	}
	c.DrainDeadModQ()
	if m.State != ModUnloaded {
		t.Error("drain must finish cleanup")
	}
}
