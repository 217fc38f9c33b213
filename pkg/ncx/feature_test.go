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

const featureMod = `module f {
  namespace "urn:x:f";
  prefix f;
  feature x;
  feature y { if-feature x; }
  leaf l { if-feature x; type string; }
  leaf m { type string; }
  leaf n { if-feature y; type string; }
}`

func TestFeatureGate(t *testing.T) {
	c := newTestContext(t, map[string]string{"f": featureMod}, Options{})
	m := mustLoad(t, c, "f")

	if err := c.SetFeatureEnabled("f", "x", false); err != nil {
		t.Fatal(err)
	}
	if got := FirstDataObject(m, IterDefault); got == nil || got.Name != "m" {
		t.Fatalf("with x disabled first object = %v, want m", got)
	}
	if diff := cmp.Diff([]string{"m"}, enabledNames(m)); diff != "" {
		t.Errorf("enabled set with x off (-want +got):\n%s", diff)
	}

	if err := c.SetFeatureEnabled("f", "x", true); err != nil {
		t.Fatal(err)
	}
	if got := FirstDataObject(m, IterDefault); got == nil || got.Name != "l" {
		t.Fatalf("with x enabled first object = %v, want l", got)
	}
	if diff := cmp.Diff([]string{"l", "m", "n"}, enabledNames(m)); diff != "" {
		t.Errorf("enabled set with x on (-want +got):\n%s", diff)
	}
}

func TestFeatureAncestorConjunction(t *testing.T) {
	c := newTestContext(t, map[string]string{"f": featureMod}, Options{})
	mustLoad(t, c, "f")

	// y is gated on x: disabling x disables y even though y's own
	// runtime flag stays on.
	if err := c.SetFeatureEnabled("f", "x", false); err != nil {
		t.Fatal(err)
	}
	if c.FeatureEnabled("f", "y") {
		t.Error("y must be disabled while its ancestor x is off")
	}
	if err := c.SetFeatureEnabled("f", "x", true); err != nil {
		t.Fatal(err)
	}
	if !c.FeatureEnabled("f", "y") {
		t.Error("y must be enabled once x is back on")
	}
	if c.FeatureEnabled("f", "ghost") {
		t.Error("unknown features read as disabled")
	}
}

func TestFeatureMonotonicity(t *testing.T) {
	c := newTestContext(t, map[string]string{"f": featureMod}, Options{})
	m := mustLoad(t, c, "f")

	on := enabledNames(m)
	if err := c.SetFeatureEnabled("f", "x", false); err != nil {
		t.Fatal(err)
	}
	off := enabledNames(m)

	// Disabling never enables: the off set is a subset of the on set.
	onSet := map[string]bool{}
	for _, n := range on {
		onSet[n] = true
	}
	for _, n := range off {
		if !onSet[n] {
			t.Errorf("disabling x enabled %s", n)
		}
	}
	if len(off) >= len(on) {
		t.Errorf("disabling x did not shrink the set: %v -> %v", on, off)
	}
}

func TestIteratorSnapshot(t *testing.T) {
	c := newTestContext(t, map[string]string{"f": featureMod}, Options{})
	m := mustLoad(t, c, "f")

	it := NewDataIterator(m, IterDefault)
	if err := c.SetFeatureEnabled("f", "x", false); err != nil {
		t.Fatal(err)
	}
	// The iterator keeps its creation-time view.
	var names []string
	for o := it.Next(); o != nil; o = it.Next() {
		names = append(names, o.Name)
	}
	if diff := cmp.Diff([]string{"l", "m", "n"}, names); diff != "" {
		t.Errorf("snapshot violated (-want +got):\n%s", diff)
	}
}
