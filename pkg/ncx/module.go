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

// The Module type and the definitions a module owns.

import "github.com/derekparker/trie"

// A ParseStatus summarizes the outcome of parsing and resolving a
// module.
type ParseStatus int

// Parse statuses.
const (
	StatusOK ParseStatus = iota
	StatusWarnings
	StatusErrors
)

// A ModState is a module lifecycle state.
type ModState int

// Lifecycle states.  Transitions run strictly forward; Unloaded is
// terminal.
const (
	ModNew ModState = iota
	ModParsing
	ModParsed
	ModResolving
	ModResolved
	ModRegistered
	ModPruned
	ModFrozen
	ModUnloaded
)

// A Revision is one entry of a module's revision history.
type Revision struct {
	Date        string // ISO-8601 date literal, preserved verbatim
	Description string
	Reference   string
}

// An Import records one import statement.  Module is populated on first
// successful lookup and cached.
type Import struct {
	ModuleName string
	Revision   string
	Prefix     string
	Loc        Location
	Module     *Module
	Failed     bool
	Used       bool
}

// An Include records one include statement.
type Include struct {
	Name      string
	Revision  string
	Loc       Location
	Submodule *Module
}

// A Typedef is a named reusable type owned by its defining module or
// submodule.
type Typedef struct {
	Name        string
	Loc         Location
	Type        *Typ
	Default     string
	Units       string
	Status      Status
	Description string
	Reference   string
	Module      *Module

	resolving bool // typedef chain cycle guard
}

// A Grouping is a named node template.  A uses instantiates a copy of
// its children.
type Grouping struct {
	Name        string
	Loc         Location
	Children    []*Object
	Typedefs    []*Typedef
	Status      Status
	Description string
	Reference   string
	Module      *Module

	expanded bool // template contains no unexpanded uses
}

// Child returns the template child named name, or nil.
func (g *Grouping) Child(name string) *Object {
	for _, ch := range g.Children {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}

// An Identity is a named symbolic value arranged in a DAG via base.
// Children collects the identities that name this one as their base; it
// is built during resolution.
type Identity struct {
	Name        string
	Loc         Location
	BasePrefix  string
	BaseName    string
	Base        *Identity
	Children    []*Identity
	Status      Status
	Description string
	Reference   string
	Module      *Module
}

// HasDerived reports whether name is this identity or any identity
// transitively derived from it.
func (i *Identity) HasDerived(name string) bool {
	if i.Name == name {
		return true
	}
	for _, ch := range i.Children {
		if ch.HasDerived(name) {
			return true
		}
	}
	return false
}

// A Feature is a named conditional controlled at compile and at run
// time.  CompileEnabled is computed during resolution from the
// feature's own if-feature gates; RuntimeEnabled may be toggled by
// policy after load.
type Feature struct {
	Name           string
	Loc            Location
	IfFeatures     []*IfFeature
	CompileEnabled bool
	RuntimeEnabled bool
	Status         Status
	Description    string
	Reference      string
	Module         *Module
}

// Effective reports the feature's effective enabled state: its own
// compile and runtime flags plus all if-feature ancestors.
func (f *Feature) Effective() bool {
	return f.effective(map[*Feature]bool{})
}

func (f *Feature) effective(seen map[*Feature]bool) bool {
	if seen[f] {
		// A gate cycle never enables anything.
		return false
	}
	seen[f] = true
	if !f.CompileEnabled || !f.RuntimeEnabled {
		return false
	}
	for _, g := range f.IfFeatures {
		if g.Feature == nil || !g.Feature.effective(seen) {
			return false
		}
	}
	return true
}

// A DeviateArg selects what a deviate statement does to its target.
type DeviateArg int

// Deviate arguments.
const (
	DeviateNotSupported DeviateArg = iota
	DeviateAdd
	DeviateReplace
	DeviateDelete
)

var deviateArgs = map[string]DeviateArg{
	"not-supported": DeviateNotSupported,
	"add":           DeviateAdd,
	"replace":       DeviateReplace,
	"delete":        DeviateDelete,
}

// String returns the YANG spelling of d.
func (d DeviateArg) String() string {
	for s, v := range deviateArgs {
		if v == d {
			return s
		}
	}
	return "deviate-?"
}

// A Deviate is one deviate statement: the argument plus the properties
// it adds, replaces or deletes.
type Deviate struct {
	Arg DeviateArg
	Loc Location

	Config      TriState
	Default     *string
	Mandatory   TriState
	MinElements *uint64
	MaxElements *uint64
	Musts       []*Must
	Type        *Typ
	Unique      [][]string
	Units       *string
}

// A Deviation names a target and the deviates to apply to it.
type Deviation struct {
	TargetPath string
	Loc        Location
	Target     *Object
	Deviates   []*Deviate
	Module     *Module
}

// SaveDeviations carries the deviations of one module so they can be
// applied to modules loaded later in the same batch.
type SaveDeviations struct {
	ModuleName string
	Deviations []*Deviation
}

// An Extension is an extension statement definition.  Usages are
// carried opaquely.
type Extension struct {
	Name        string
	Loc         Location
	Argument    string
	YinElement  bool
	Status      Status
	Description string
	Reference   string
}

// A Module is one YANG module or submodule and everything it owns.
type Module struct {
	Name       string
	Revision   string // newest revision date, "" if none
	Version    string // yang-version, "1" if unspecified
	Submodule  bool
	Namespace  string // namespace URI, modules only
	BelongsTo  string // owning module name, submodules only
	Prefix     string
	XMLPrefix  string // equals Prefix unless remapped on collision
	NSID       NSID
	SourceFile string

	Organization string
	Contact      string
	Description  string
	Reference    string

	Imports    []*Import
	Includes   []*Include
	Revisions  []*Revision // newest first
	Typedefs   []*Typedef
	Groupings  []*Grouping
	Extensions []*Extension
	Identities []*Identity
	Features   []*Feature
	Deviations []*Deviation

	// Objects holds the top level data nodes, rpcs and notifications
	// in schema insertion order.  Augments are kept separately.
	Objects  []*Object
	Augments []*Object

	// AllIncludes is the transitive include closure, built by the
	// linker.
	AllIncludes []*Module

	State      ModState
	Status     ParseStatus
	Errors     int
	Warnings   int
	DefaultRev bool
	Registered bool

	ctx    *Context
	errors []error
	errLoc Location

	rpcIndex *trie.Trie     // rpc name -> *Object, built after resolve
	rpcOrder map[string]int // rpc name -> insertion index
}

// FullName returns the module name with its newest revision appended,
// or just the name if the module has no revisions.
func (m *Module) FullName() string {
	if m.Revision != "" {
		return m.Name + "@" + m.Revision
	}
	return m.Name
}

// GetErrors returns every diagnostic recorded against m, warnings
// included, sorted by source location.
func (m *Module) GetErrors() []error {
	return errorSort(m.errors)
}

// ErrorDiags returns only the error severity diagnostics recorded
// against m.  Warnings are counted but never abort a load, so the load
// paths report this list.
func (m *Module) ErrorDiags() []error {
	var errs []error
	for _, err := range m.errors {
		if d, ok := err.(*Diagnostic); ok && !d.Code.IsError() {
			continue
		}
		errs = append(errs, err)
	}
	return errorSort(errs)
}

// OK reports whether the module parsed and resolved without errors.
func (m *Module) OK() bool { return m.Errors == 0 }

// TopObject returns the top level object named name, or nil.  Linking
// pseudo nodes are not returned.
func (m *Module) TopObject(name string) *Object {
	for _, o := range m.Objects {
		if o.Name == name && o.Kind.IsData() {
			return o
		}
	}
	return nil
}

// FindTypedef returns the typedef named name declared by m itself, or,
// if searchSubmods is set, by any submodule in its include closure.
func (m *Module) FindTypedef(name string, searchSubmods bool) *Typedef {
	for _, td := range m.Typedefs {
		if td.Name == name {
			return td
		}
	}
	if searchSubmods {
		for _, sm := range m.AllIncludes {
			for _, td := range sm.Typedefs {
				if td.Name == name {
					return td
				}
			}
		}
	}
	return nil
}

// FindGrouping returns the grouping named name declared by m itself,
// or, if searchSubmods is set, by any submodule in its include closure.
func (m *Module) FindGrouping(name string, searchSubmods bool) *Grouping {
	for _, g := range m.Groupings {
		if g.Name == name {
			return g
		}
	}
	if searchSubmods {
		for _, sm := range m.AllIncludes {
			for _, g := range sm.Groupings {
				if g.Name == name {
					return g
				}
			}
		}
	}
	return nil
}

// FindIdentity returns the identity named name declared by m or its
// include closure, or nil.
func (m *Module) FindIdentity(name string) *Identity {
	for _, id := range m.Identities {
		if id.Name == name {
			return id
		}
	}
	for _, sm := range m.AllIncludes {
		for _, id := range sm.Identities {
			if id.Name == name {
				return id
			}
		}
	}
	return nil
}

// FindFeature returns the feature named name declared by m or its
// include closure, or nil.
func (m *Module) FindFeature(name string) *Feature {
	for _, f := range m.Features {
		if f.Name == name {
			return f
		}
	}
	for _, sm := range m.AllIncludes {
		for _, f := range sm.Features {
			if f.Name == name {
				return f
			}
		}
	}
	return nil
}

// importByPrefix returns the import whose local prefix is prefix, or
// nil.  The module's own prefix returns nil; callers check that first.
func (m *Module) importByPrefix(prefix string) *Import {
	for _, im := range m.Imports {
		if im.Prefix == prefix {
			return im
		}
	}
	return nil
}

// moduleForPrefix resolves a prefix in the context of m: the module's
// own prefix (or empty) names m itself, otherwise the prefix selects an
// import.  The second result is false if the prefix is unknown or the
// import is unresolved.
func (m *Module) moduleForPrefix(prefix string) (*Module, bool) {
	if prefix == "" || prefix == m.Prefix {
		return m, true
	}
	if im := m.importByPrefix(prefix); im != nil && im.Module != nil {
		im.Used = true
		return im.Module, true
	}
	return nil, false
}
