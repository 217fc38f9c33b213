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

package yangentry

import (
	"testing"

	"github.com/netconfcentral/yangcore/pkg/ncx"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		inFiles  []string
		inPath   []string
		wantErr  bool
		wantMods []string
	}{{
		name:     "simple valid module",
		inFiles:  []string{"testdata/00-valid-module.yang"},
		inPath:   []string{"testdata"},
		wantMods: []string{"test-module"},
	}, {
		name:    "simple invalid module",
		inFiles: []string{"testdata/01-invalid-module.yang"},
		inPath:  []string{"testdata"},
		wantErr: true,
	}, {
		name:     "valid import",
		inFiles:  []string{"testdata/02-valid-import.yang"},
		inPath:   []string{"testdata/subdir"},
		wantMods: []string{"test-module"},
	}, {
		name:    "invalid import",
		inFiles: []string{"testdata/03-invalid-import.yang"},
		inPath:  []string{},
		wantErr: true,
	}, {
		name:     "two modules",
		inFiles:  []string{"testdata/04-valid-module-one.yang", "testdata/04-valid-module-two.yang"},
		inPath:   []string{},
		wantMods: []string{"module-one", "module-two"},
	}, {
		name:    "circular submodule dependency",
		inFiles: []string{"testdata/05-circular-main.yang"},
		inPath:  []string{"testdata/subdir"},
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods, errs := Parse(tt.inFiles, tt.inPath)
			if len(errs) != 0 && !tt.wantErr {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(errs) == 0 && tt.wantErr {
				t.Fatal("want an error, got none")
			}
			for _, name := range tt.wantMods {
				m, ok := mods[name]
				if !ok {
					t.Fatalf("module %s not returned", name)
				}
				if m.State != ncx.ModFrozen {
					t.Errorf("module %s state = %v, want frozen", name, m.State)
				}
			}
		})
	}
}

func TestParseExpandsGrouping(t *testing.T) {
	mods, errs := Parse([]string{"testdata/02-valid-import.yang"}, []string{"testdata/subdir"})
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	m := mods["test-module"]
	if m.TopObject("remote-leaf") == nil {
		t.Error("imported grouping not expanded into the using module")
	}
}
