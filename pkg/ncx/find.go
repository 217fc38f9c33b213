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

// The walker and query API.  Every function returns weak references
// into module owned trees; nothing here transfers ownership.

import (
	"github.com/derekparker/trie"
)

// buildRPCIndex (re)builds m's RPC command index: a trie over rpc
// names used for byte-wise, case-sensitive prefix matching.
func (c *Context) buildRPCIndex(m *Module) {
	c.buildRPCIndexLocked(m)
}

func (c *Context) buildRPCIndexLocked(m *Module) {
	m.rpcIndex = trie.New()
	m.rpcOrder = map[string]int{}
	i := 0
	for _, o := range m.Objects {
		if o.Kind == ObjRPC {
			m.rpcIndex.Add(o.Name, o)
			m.rpcOrder[o.Name] = i
			i++
		}
	}
}

// FindRPC returns the rpc named name in m, or nil.
func FindRPC(m *Module, name string) *Object {
	if m.rpcIndex == nil {
		return nil
	}
	n, ok := m.rpcIndex.Find(name)
	if !ok {
		return nil
	}
	return n.Meta().(*Object)
}

// MatchRPC returns the number of rpcs in m whose name starts with
// prefix, and the first match in schema insertion order.  Matching is
// by byte and case sensitive.
func MatchRPC(m *Module, prefix string) (*Object, int) {
	if m.rpcIndex == nil {
		return nil, 0
	}
	names := m.rpcIndex.PrefixSearch(prefix)
	if len(names) == 0 {
		return nil, 0
	}
	first := names[0]
	for _, n := range names[1:] {
		if m.rpcOrder[n] < m.rpcOrder[first] {
			first = n
		}
	}
	obj, _ := m.rpcIndex.Find(first)
	return obj.Meta().(*Object), len(names)
}

// MatchAnyRPC searches for prefix across the registry: the named
// module only if modName is non-empty, otherwise every default
// revision module in search order.  It returns the first match and the
// total count across modules.
func (c *Context) MatchAnyRPC(modName, prefix string) (*Object, int) {
	if modName != "" {
		m := c.FindModule(modName, "")
		if m == nil {
			return nil, 0
		}
		return MatchRPC(m, prefix)
	}
	c.mu.Lock()
	var mods []*Module
	for _, s := range c.reg.scopes() {
		for _, name := range s.Names() {
			for _, m := range s.byName[name] {
				if m.DefaultRev {
					mods = append(mods, m)
				}
			}
		}
	}
	c.mu.Unlock()
	var first *Object
	count := 0
	for _, m := range mods {
		o, n := MatchRPC(m, prefix)
		if n > 0 && first == nil {
			first = o
		}
		count += n
	}
	return first, count
}

// FindObjectTop returns the top level data object named name in m, or
// nil.
func (c *Context) FindObjectTop(m *Module, name string) *Object {
	return m.TopObject(name)
}

// FindObjectAnywhere returns the first top level object named name
// across the registry, searching the session scope then the current
// scope, modules by name ascending.  A miss returns nil.
func (c *Context) FindObjectAnywhere(name string) *Object {
	o, _ := c.findAnywhere(name, false)
	return o
}

// FindObjectDistinct behaves like FindObjectAnywhere but fails with
// multiple-matches when the name is defined by more than one module.
func (c *Context) FindObjectDistinct(name string) (*Object, error) {
	return c.findAnywhere(name, true)
}

func (c *Context) findAnywhere(name string, distinct bool) (*Object, error) {
	c.mu.Lock()
	var mods []*Module
	seen := map[*Module]bool{}
	for _, s := range c.reg.scopes() {
		for _, mname := range s.Names() {
			for _, m := range s.byName[mname] {
				if !seen[m] {
					seen[m] = true
					mods = append(mods, m)
				}
			}
		}
	}
	c.mu.Unlock()

	var first *Object
	count := 0
	for _, m := range mods {
		if o := m.TopObject(name); o != nil {
			if first == nil {
				first = o
			}
			count++
			if !distinct && first != nil {
				return first, nil
			}
		}
	}
	if distinct && count > 1 {
		return first, &Diagnostic{Code: ErrMultipleMatches,
			Msg: "object " + name + " defined by more than one module"}
	}
	return first, nil
}

// IterFlags select which nodes a data iterator yields.
type IterFlags uint

// Iterator filter flags.
const (
	// IterHonorFeatures skips nodes disabled by an if-feature gate.
	IterHonorFeatures IterFlags = 1 << iota
	// IterSkipAbstract skips abstract and CLI only definitions.
	IterSkipAbstract
	// IterDescendChoice yields the data nodes inside choice and case
	// pseudo levels instead of the pseudo nodes themselves.
	IterDescendChoice
)

// IterDefault is the filter most callers want: real, enabled data
// nodes with choice levels transparent.
const IterDefault = IterHonorFeatures | IterSkipAbstract | IterDescendChoice

// A DataIterator yields the top level data objects of a module.  The
// candidate set is captured when the iterator is created, so toggling
// a feature mid iteration does not change what an existing iterator
// yields.
type DataIterator struct {
	objs  []*Object
	flags IterFlags
	pos   int
}

// NewDataIterator returns an iterator over m's top level data objects
// honoring flags.
func NewDataIterator(m *Module, flags IterFlags) *DataIterator {
	it := &DataIterator{flags: flags}
	it.collect(m.Objects)
	return it
}

func (it *DataIterator) collect(objs []*Object) {
	for _, o := range objs {
		switch o.Kind {
		case ObjRPC, ObjNotif, ObjUses, ObjRefine, ObjAugment:
			continue
		case ObjChoice, ObjCase:
			if it.flags&IterDescendChoice != 0 {
				if it.keep(o) {
					it.collect(o.Children)
				}
				continue
			}
		}
		if !it.keep(o) {
			continue
		}
		it.objs = append(it.objs, o)
	}
}

func (it *DataIterator) keep(o *Object) bool {
	if it.flags&IterSkipAbstract != 0 && (o.Abstract() || o.CLIOnly()) {
		return false
	}
	if it.flags&IterHonorFeatures != 0 && !o.enabled() {
		return false
	}
	return true
}

// Next returns the next data object, or nil when the iterator is
// exhausted.
func (it *DataIterator) Next() *Object {
	if it.pos >= len(it.objs) {
		return nil
	}
	o := it.objs[it.pos]
	it.pos++
	return o
}

// FirstDataObject returns the first top level data object of m under
// the given filter, or nil.
func FirstDataObject(m *Module, flags IterFlags) *Object {
	return NewDataIterator(m, flags).Next()
}

// NextDataObject returns the data object following prev among m's top
// level data objects under the given filter, or nil.
func NextDataObject(m *Module, prev *Object, flags IterFlags) *Object {
	it := NewDataIterator(m, flags)
	for o := it.Next(); o != nil; o = it.Next() {
		if o == prev {
			return it.Next()
		}
	}
	return nil
}

// A KeyVisitor is invoked by TraverseKeys with each ancestor list key.
type KeyVisitor func(list, key *Object) WalkAction

// TraverseKeys walks the list keys on the path from the schema root
// down to node, invoking v for each key in root-to-leaf order.  Code
// generators use this to emit key parameter lists.
func TraverseKeys(node *Object, v KeyVisitor) {
	var lists []*Object
	for n := node; n != nil; n = n.Parent {
		if n.Kind == ObjList {
			lists = append(lists, n)
		}
	}
	for i := len(lists) - 1; i >= 0; i-- {
		for _, k := range lists[i].Keys {
			if v(lists[i], k) == WalkStop {
				return
			}
		}
	}
}

// WalkModule traverses every top level object of m depth first in
// insertion order.
func WalkModule(m *Module, v Visitor) {
	for _, o := range m.Objects {
		if !o.Walk(v) {
			return
		}
	}
}

// FindGroupingIn returns the grouping visible in m under name: a
// prefix qualified name follows the prefix to its module, an
// unqualified name searches m (and its submodules when searchSubmods
// is set) and then each import in declaration order.
func FindGroupingIn(m *Module, name string, searchSubmods bool) *Grouping {
	prefix, base := getPrefix(name)
	if prefix != "" && prefix != m.Prefix {
		tm, ok := m.moduleForPrefix(prefix)
		if !ok {
			return nil
		}
		return tm.FindGrouping(base, searchSubmods)
	}
	if g := m.FindGrouping(base, searchSubmods); g != nil {
		return g
	}
	for _, im := range m.Imports {
		if im.Module == nil {
			continue
		}
		if g := im.Module.FindGrouping(base, searchSubmods); g != nil {
			return g
		}
	}
	return nil
}

// FindTypeIn is the typedef analog of FindGroupingIn.
func FindTypeIn(m *Module, name string, searchSubmods bool) *Typedef {
	prefix, base := getPrefix(name)
	if prefix != "" && prefix != m.Prefix {
		tm, ok := m.moduleForPrefix(prefix)
		if !ok {
			return nil
		}
		return tm.FindTypedef(base, searchSubmods)
	}
	if td := m.FindTypedef(base, searchSubmods); td != nil {
		return td
	}
	for _, im := range m.Imports {
		if im.Module == nil {
			continue
		}
		if td := im.Module.FindTypedef(base, searchSubmods); td != nil {
			return td
		}
	}
	return nil
}
