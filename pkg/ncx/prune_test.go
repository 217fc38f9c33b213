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

const obsoleteMod = `module ob {
  namespace "urn:x:ob";
  prefix o;
  container keep {
    leaf fresh { type string; }
    leaf stale { status obsolete; type string; }
    container gone { status obsolete; leaf inside { type string; } }
  }
  leaf old { status deprecated; type string; }
}`

func TestPruneObsolete(t *testing.T) {
	c := newTestContext(t, map[string]string{"ob": obsoleteMod}, Options{PruneObsolete: true})
	m := mustLoad(t, c, "ob")

	keep := c.FindObjectTop(m, "keep")
	if keep == nil || keep.Child("fresh") == nil {
		t.Fatal("current nodes must survive pruning")
	}
	if keep.Child("stale") != nil {
		t.Error("obsolete leaf survived pruning")
	}
	if keep.Child("gone") != nil {
		t.Error("obsolete container survived pruning")
	}
	// Deprecated stays; only obsolete goes.
	if c.FindObjectTop(m, "old") == nil {
		t.Error("deprecated leaf must survive pruning")
	}
}

func TestPruneIdempotent(t *testing.T) {
	c := newTestContext(t, map[string]string{"ob": obsoleteMod}, Options{})
	m := mustLoad(t, c, "ob")

	c.PruneModule(m)
	once := treeDump(m)
	c.PruneModule(m)
	if diff := cmp.Diff(once, treeDump(m)); diff != "" {
		t.Errorf("second prune changed the tree (-first +second):\n%s", diff)
	}
}

func TestPruneKeepsWithoutOption(t *testing.T) {
	c := newTestContext(t, map[string]string{"ob": obsoleteMod}, Options{})
	m := mustLoad(t, c, "ob")
	if c.FindObjectTop(m, "keep").Child("stale") == nil {
		t.Error("without the prune option obsolete nodes stay")
	}
}
