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

// The module registry: loaded modules keyed by (name, revision), with
// one default revision per name and an optional session scope that
// shadows the current scope during lookups.

import (
	"fmt"
	"sort"
)

// A ModSet is one lookup scope of registered modules.  Within a name,
// revisions are kept newest first; the newest is the default.
type ModSet struct {
	byName map[string][]*Module
}

// NewModSet returns an empty module set.
func NewModSet() *ModSet {
	return &ModSet{byName: map[string][]*Module{}}
}

// add inserts m into s, keeping newest-first order within the name and
// updating default-revision flags so exactly one holds.
func (s *ModSet) add(m *Module) {
	revs := s.byName[m.Name]
	i := sort.Search(len(revs), func(i int) bool {
		// Lexicographic ISO-8601; empty collates below all dates.
		return revs[i].Revision < m.Revision
	})
	revs = append(revs, nil)
	copy(revs[i+1:], revs[i:])
	revs[i] = m
	for j, r := range revs {
		r.DefaultRev = j == 0
	}
	s.byName[m.Name] = revs
}

// remove deletes m from s, promoting the next newest revision to
// default.
func (s *ModSet) remove(m *Module) {
	revs := s.byName[m.Name]
	for i, r := range revs {
		if r == m {
			revs = append(revs[:i], revs[i+1:]...)
			break
		}
	}
	if len(revs) == 0 {
		delete(s.byName, m.Name)
		return
	}
	for j, r := range revs {
		r.DefaultRev = j == 0
	}
	s.byName[m.Name] = revs
}

// find returns the module matching (name, revision).  An empty revision
// selects the default.  A specific revision requires an exact match.
func (s *ModSet) find(name, revision string) *Module {
	revs := s.byName[name]
	if len(revs) == 0 {
		return nil
	}
	if revision == "" {
		return revs[0]
	}
	for _, m := range revs {
		if m.Revision == revision {
			return m
		}
	}
	return nil
}

// Names returns the registered module names in ascending order.
func (s *ModSet) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A Registry is the stacked pair of module scopes plus the module
// lifecycle hooks.
type Registry struct {
	current *ModSet
	session *ModSet // optional shadow scope, searched first

	loadCallback func(*Module)

	// Batch teardown support: when enabled, unloaded modules are
	// queued instead of cleaned immediately.
	useDeadQ bool
	deadQ    []*Module

	// replaced is set by register when an identical reload displaced a
	// stored module, so the caller can log it.
	replaced *Module

	savedDeviations []*SaveDeviations
}

func newRegistry() *Registry {
	return &Registry{current: NewModSet()}
}

// scopes returns the lookup scopes in search order.
func (r *Registry) scopes() []*ModSet {
	if r.session != nil {
		return []*ModSet{r.session, r.current}
	}
	return []*ModSet{r.current}
}

// find searches the session scope then the current scope.
func (r *Registry) find(name, revision string) *Module {
	for _, s := range r.scopes() {
		if m := s.find(name, revision); m != nil {
			return m
		}
	}
	return nil
}

// register inserts m into the current scope.  Re-registering the
// same *Module is a no-op; the same (name,
// revision) from a different source is a module-conflict.  A duplicate
// revision from the same source logs and replaces the default pointer.
func (r *Registry) register(m *Module) error {
	if old := r.current.find(m.Name, m.Revision); old != nil && old.Revision == m.Revision {
		if old == m {
			return nil
		}
		if old.SourceFile != m.SourceFile {
			return &Diagnostic{Code: ErrModuleConflict,
				Msg: fmt.Sprintf("module %s already registered from %s",
					m.FullName(), old.SourceFile)}
		}
		// Identical module loaded twice; the new copy replaces the
		// stored entry and takes over the default pointer.
		r.replaced = old
		r.current.remove(old)
	}
	r.current.add(m)
	m.Registered = true
	m.State = ModRegistered
	return nil
}

// Register inserts m into the current scope, updating default-revision
// flags, and invokes the load callback.  See Registry.register for the
// conflict rules.
func (c *Context) Register(m *Module) error {
	c.mu.Lock()
	c.reg.replaced = nil
	err := c.reg.register(m)
	cb := c.reg.loadCallback
	replaced := c.reg.replaced
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if replaced != nil {
		c.log.Infof("module %s reloaded, replacing the default", m.FullName())
	}
	if cb != nil {
		cb(m)
	}
	return nil
}

// FindModule returns the registered module matching name and revision,
// searching the session scope then the current scope.  An empty
// revision selects the default revision.  A miss returns nil.
func (c *Context) FindModule(name, revision string) *Module {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.find(name, revision)
}

// FindModuleByNSID returns the registered module whose namespace ID is
// id, or nil.  The scan is linear across the current scope.
func (c *Context) FindModuleByNSID(id NSID) *Module {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range c.reg.current.Names() {
		for _, m := range c.reg.current.byName[name] {
			if m.NSID == id {
				return m
			}
		}
	}
	return nil
}

// IterDefault invokes fn for each module whose default-revision flag is
// set, grouped by name ascending.
func (c *Context) IterDefault(fn func(*Module)) {
	c.mu.Lock()
	var mods []*Module
	for _, name := range c.reg.current.Names() {
		for _, m := range c.reg.current.byName[name] {
			if m.DefaultRev {
				mods = append(mods, m)
			}
		}
	}
	c.mu.Unlock()
	for _, m := range mods {
		fn(m)
	}
}

// RevisionCount returns the number of registered revisions of name,
// counting the session scope when one is set.
func (c *Context) RevisionCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.reg.scopes() {
		n += len(s.byName[name])
	}
	return n
}

// SetSessionScope installs s as the session scope.  Lookups search the
// session scope before the current scope, so a per-session module set
// can shadow the global set without mutating it.  The swap is atomic
// with respect to other Context calls.
func (c *Context) SetSessionScope(s *ModSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.session = s
}

// ClearSessionScope removes the session scope.
func (c *Context) ClearSessionScope() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.session = nil
}

// SetCurrentScope replaces the authoritative module scope and returns
// the previous one.
func (c *Context) SetCurrentScope(s *ModSet) *ModSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.reg.current
	c.reg.current = s
	return old
}

// SetLoadCallback installs fn, invoked with each module after it enters
// the registry.  The callback must not call back into the Context.
func (c *Context) SetLoadCallback(fn func(*Module)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.loadCallback = fn
}

// SaveDeviationsFor records the deviations declared by m so the loader
// can apply them to modules loaded later in the batch.
func (c *Context) SaveDeviationsFor(m *Module) {
	if len(m.Deviations) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.savedDeviations = append(c.reg.savedDeviations, &SaveDeviations{
		ModuleName: m.Name,
		Deviations: m.Deviations,
	})
}

// SavedDeviations returns the deviations saved so far.
func (c *Context) SavedDeviations() []*SaveDeviations {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*SaveDeviations(nil), c.reg.savedDeviations...)
}

// SetUseDeadModQ enables or disables the dead module queue.  While
// enabled, Unload defers module cleanup; disabling drains the queue.
func (c *Context) SetUseDeadModQ(use bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.useDeadQ = use
	if !use {
		c.drainDeadQLocked()
	}
}

// Unload removes m from the registry.  With the dead module queue
// enabled the module is parked there so transitive references can die
// as a group; otherwise it is cleaned immediately.  Unloaded is
// terminal.
func (c *Context) Unload(m *Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.current.remove(m)
	m.Registered = false
	if c.reg.useDeadQ {
		c.reg.deadQ = append(c.reg.deadQ, m)
		return
	}
	m.State = ModUnloaded
}

// DrainDeadModQ releases every module parked on the dead module queue.
func (c *Context) DrainDeadModQ() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drainDeadQLocked()
}

func (c *Context) drainDeadQLocked() {
	// Reverse load order.
	for i := len(c.reg.deadQ) - 1; i >= 0; i-- {
		c.reg.deadQ[i].State = ModUnloaded
	}
	c.reg.deadQ = nil
}
