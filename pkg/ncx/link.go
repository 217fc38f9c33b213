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

// The import/include linker: binding import and include statements to
// registered modules, loading them on demand, and detecting include
// cycles.

// linkModule resolves the imports and includes of m, loading missing
// modules through the configured Loader.
func (c *Context) linkModule(m *Module) {
	for _, im := range m.Imports {
		c.linkImport(m, im)
	}

	c.includeChain = append(c.includeChain, m.Name)
	for _, inc := range m.Includes {
		c.linkInclude(m, inc)
	}
	c.includeChain = c.includeChain[:len(c.includeChain)-1]

	m.AllIncludes = nil
	seen := map[*Module]bool{}
	collectIncludes(m, seen, &m.AllIncludes)
}

func (c *Context) linkImport(m *Module, im *Import) {
	if im.Module != nil || im.Failed {
		return
	}
	if found := c.FindModule(im.ModuleName, im.Revision); found != nil {
		im.Module = found
		return
	}
	loaded, err := c.loader.Load(c, im.ModuleName, im.Revision, c.SavedDeviations())
	if err != nil {
		im.Failed = true
		code := ErrModuleNotFound
		if d, ok := err.(*Diagnostic); ok && d.Code == ErrWrongVersion {
			code = ErrWrongVersion
		}
		c.emit(m, im.Loc, code, "cannot import %s: %v", im.ModuleName, err)
		return
	}
	im.Module = loaded
}

func (c *Context) linkInclude(m *Module, inc *Include) {
	if inc.Submodule != nil {
		return
	}
	// A back-edge during include expansion is fatal.
	for _, name := range c.includeChain {
		if name == inc.Name {
			c.emit(m, inc.Loc, ErrCycle, "include cycle through %s", inc.Name)
			return
		}
	}
	sub := c.FindModule(inc.Name, inc.Revision)
	if sub == nil {
		loaded, err := c.loader.Load(c, inc.Name, inc.Revision, c.SavedDeviations())
		if err != nil {
			c.emit(m, inc.Loc, ErrModuleNotFound,
				"cannot include %s: %v", inc.Name, err)
			return
		}
		sub = loaded
	}
	if !sub.Submodule {
		c.emit(m, inc.Loc, ErrWrongType, "%s is not a submodule", inc.Name)
		return
	}
	owner := m.Name
	if m.Submodule {
		owner = m.BelongsTo
	}
	if sub.BelongsTo != owner {
		c.emit(m, inc.Loc, ErrWrongType,
			"submodule %s belongs to %s, not %s", sub.Name, sub.BelongsTo, owner)
		return
	}
	inc.Submodule = sub
	// Submodules answer to the owning module's namespace.
	if !m.Submodule {
		sub.Namespace = m.Namespace
		sub.NSID = m.NSID
	}
}

// collectIncludes builds the transitive include closure of m.
func collectIncludes(m *Module, seen map[*Module]bool, out *[]*Module) {
	for _, inc := range m.Includes {
		sub := inc.Submodule
		if sub == nil || seen[sub] {
			continue
		}
		seen[sub] = true
		*out = append(*out, sub)
		collectIncludes(sub, seen, out)
	}
}
