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
	"fmt"
	"sort"
	"strings"
	"testing"
)

// mapLoader serves module source from memory so tests need no files.
type mapLoader map[string]string

func (l mapLoader) Load(c *Context, name, revision string, _ []*SaveDeviations) (*Module, error) {
	src, ok := l[name]
	if !ok {
		return nil, &Diagnostic{Code: ErrModuleNotFound,
			Msg: "no such module: " + name}
	}
	m, errs := c.ParseSource(src, name+".yang")
	if m == nil {
		return nil, errs[0]
	}
	if revision != "" && m.Revision != revision {
		return nil, &Diagnostic{Code: ErrWrongVersion,
			Msg: fmt.Sprintf("module %s is revision %q, want %s", name, m.Revision, revision)}
	}
	return m, nil
}

// newTestContext returns a Context serving sources from memory, with
// the remaining options taken from opts.
func newTestContext(t *testing.T, sources map[string]string, opts Options) *Context {
	t.Helper()
	opts.Loader = mapLoader(sources)
	return NewContext(opts)
}

// mustLoad loads name and fails the test on any error.
func mustLoad(t *testing.T, c *Context, name string) *Module {
	t.Helper()
	m, errs := c.Load(name, "")
	if len(errs) > 0 {
		t.Fatalf("load %s: %v", name, errs)
	}
	return m
}

// treeDump renders the object tree of m as an indented list of
// kind/name lines, stable across runs, for structural comparison.
func treeDump(m *Module) string {
	var b strings.Builder
	var dump func(o *Object, depth int)
	dump = func(o *Object, depth int) {
		fmt.Fprintf(&b, "%s%s %s", strings.Repeat("  ", depth), o.Kind, o.Name)
		if o.Type != nil {
			fmt.Fprintf(&b, " type=%s", o.Type.Root())
		}
		if len(o.KeyNames) > 0 {
			fmt.Fprintf(&b, " key=%s", strings.Join(o.KeyNames, ","))
		}
		fmt.Fprintln(&b)
		for _, ch := range o.Children {
			dump(ch, depth+1)
		}
		if o.Input != nil {
			dump(o.Input, depth+1)
		}
		if o.Output != nil {
			dump(o.Output, depth+1)
		}
	}
	for _, o := range m.Objects {
		dump(o, 0)
	}
	return b.String()
}

// enabledNames returns the names yielded by a default-filter iterator.
func enabledNames(m *Module) []string {
	var names []string
	it := NewDataIterator(m, IterDefault)
	for o := it.Next(); o != nil; o = it.Next() {
		names = append(names, o.Name)
	}
	sort.Strings(names)
	return names
}
