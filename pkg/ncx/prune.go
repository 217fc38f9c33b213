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

// The obsolete/deviation pruner.  A single depth first post order walk
// removes nodes whose status is obsolete or that a not-supported
// deviate marked for removal, so downstream consumers see a clean
// tree.  Pruning twice yields the same tree.

// PruneModule removes obsolete and not-supported objects from m and
// rebuilds m's RPC command index.  No other lookup index is rebuilt.
func (c *Context) PruneModule(m *Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneModuleLocked(m)
}

func (c *Context) pruneModuleLocked(m *Module) {
	m.Objects = pruneObjects(m.Objects)
	c.buildRPCIndexLocked(m)
	if m.State == ModRegistered {
		m.State = ModPruned
	}
}

// PruneAll prunes every registered module.  Deviations from one module
// may mark nodes in another, so a batch load prunes the whole registry
// once at the end.
func (c *Context) PruneAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range c.reg.current.Names() {
		for _, m := range c.reg.current.byName[name] {
			c.pruneModuleLocked(m)
		}
	}
}

// pruneObjects removes pruned nodes from objs, recursing first so the
// removal is post order.
func pruneObjects(objs []*Object) []*Object {
	out := objs[:0]
	for _, o := range objs {
		o.Children = pruneObjects(o.Children)
		if o.Input != nil {
			o.Input.Children = pruneObjects(o.Input.Children)
		}
		if o.Output != nil {
			o.Output.Children = pruneObjects(o.Output.Children)
		}
		if o.Status == StatusObsolete || o.NotSupported() {
			continue
		}
		out = append(out, o)
	}
	return out
}
