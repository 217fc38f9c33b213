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

// Feature conditioning: the runtime half of if-feature evaluation.
// Compile-enabled is computed during resolution; runtime-enabled is
// policy, toggled here between queries.

import "fmt"

// SetFeatureEnabled sets the runtime-enabled flag of the named feature
// in the named module.  Toggling is permitted between queries but not
// while an iterator from NewDataIterator is in use; iterators snapshot
// at creation.
func (c *Context) SetFeatureEnabled(modName, feature string, enabled bool) error {
	m := c.FindModule(modName, "")
	if m == nil {
		return &Diagnostic{Code: ErrModuleNotFound,
			Msg: fmt.Sprintf("module %s not loaded", modName)}
	}
	f := m.FindFeature(feature)
	if f == nil {
		return &Diagnostic{Code: ErrDefNotFound,
			Msg: fmt.Sprintf("feature %s not in module %s", feature, modName)}
	}
	c.mu.Lock()
	f.RuntimeEnabled = enabled
	c.mu.Unlock()
	return nil
}

// FeatureEnabled reports the effective enabled state of the named
// feature: compile-enabled AND runtime-enabled AND all if-feature
// ancestors effective.  An unknown feature reads as disabled.
func (c *Context) FeatureEnabled(modName, feature string) bool {
	m := c.FindModule(modName, "")
	if m == nil {
		return false
	}
	f := m.FindFeature(feature)
	if f == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return f.Effective()
}

// enabled reports whether every if-feature gate on o passes.  A node
// with an unresolved gate reads as disabled: a gate that cannot be
// evaluated must not enable content.
func (o *Object) enabled() bool {
	for _, g := range o.IfFeatures {
		if g.Feature == nil || !g.Feature.Effective() {
			return false
		}
	}
	return true
}

// Enabled reports whether o and all of its ancestors pass their
// if-feature gates.
func (o *Object) Enabled() bool {
	for n := o; n != nil; n = n.Parent {
		if !n.enabled() {
			return false
		}
	}
	return true
}
