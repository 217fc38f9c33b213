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

// The schema object tree.  An Object is a single node of the linked
// tree: a data node, an rpc, a notification, or one of the linking
// pseudo nodes (uses, augment).  Children are kept in schema insertion
// order, which is preserved verbatim through resolution.

import "fmt"

// A TriState may be true, false, or unset.
type TriState int

// The possible states of a TriState.
const (
	TSUnset = TriState(iota)
	TSTrue
	TSFalse
)

// Value returns the value of t as a boolean.  Unset is returned as
// false.
func (t TriState) Value() bool { return t == TSTrue }

// String displays t as a string.
func (t TriState) String() string {
	switch t {
	case TSTrue:
		return "true"
	case TSFalse:
		return "false"
	default:
		return "unset"
	}
}

// A Status is the YANG status of a definition.
type Status int

// Statuses, in increasing order of decay.
const (
	StatusCurrent Status = iota
	StatusDeprecated
	StatusObsolete
)

// String returns the YANG spelling of s.
func (s Status) String() string {
	switch s {
	case StatusDeprecated:
		return "deprecated"
	case StatusObsolete:
		return "obsolete"
	default:
		return "current"
	}
}

// parseStatus maps a status argument to its Status.
func parseStatus(arg string) (Status, bool) {
	switch arg {
	case "", "current":
		return StatusCurrent, true
	case "deprecated":
		return StatusDeprecated, true
	case "obsolete":
		return StatusObsolete, true
	}
	return StatusCurrent, false
}

// An ObjKind discriminates the variants of Object.
type ObjKind int

// Object kinds.
const (
	ObjNone ObjKind = iota
	ObjAnyxml
	ObjLeaf
	ObjLeafList
	ObjList
	ObjContainer
	ObjChoice
	ObjCase
	ObjUses
	ObjRefine
	ObjAugment
	ObjRPC
	ObjRPCIO
	ObjNotif
)

var objKindNames = map[ObjKind]string{
	ObjAnyxml:    "anyxml",
	ObjLeaf:      "leaf",
	ObjLeafList:  "leaf-list",
	ObjList:      "list",
	ObjContainer: "container",
	ObjChoice:    "choice",
	ObjCase:      "case",
	ObjUses:      "uses",
	ObjRefine:    "refine",
	ObjAugment:   "augment",
	ObjRPC:       "rpc",
	ObjRPCIO:     "rpc-io",
	ObjNotif:     "notification",
}

// String returns the YANG keyword for k.
func (k ObjKind) String() string {
	if s := objKindNames[k]; s != "" {
		return s
	}
	return fmt.Sprintf("obj-%d", int(k))
}

// IsData reports whether k is a real data node kind, as opposed to a
// linking pseudo node.
func (k ObjKind) IsData() bool {
	switch k {
	case ObjUses, ObjRefine, ObjAugment:
		return false
	}
	return true
}

// An IfFeature is one if-feature gate: the feature name as written plus
// the resolved feature once the if-feature pass has run.
type IfFeature struct {
	Prefix  string
	Name    string
	Loc     Location
	Feature *Feature
}

// Expr returns the gate as written.
func (f *IfFeature) Expr() string {
	if f.Prefix != "" {
		return f.Prefix + ":" + f.Name
	}
	return f.Name
}

// A Must is one "must" XPath constraint with its error annotations.
// The expression is carried opaquely; evaluation is out of scope.
type Must struct {
	Expr    string
	Errinfo *Errinfo
}

// Copy returns a deep copy of m.
func (m *Must) Copy() *Must {
	if m == nil {
		return nil
	}
	return &Must{Expr: m.Expr, Errinfo: m.Errinfo.Copy()}
}

// Object flags.
type objFlag uint16

const (
	flagNotSupported objFlag = 1 << iota // marked by a not-supported deviate
	flagAbstract                         // not a real data node (e.g. CLI only)
	flagCLI                              // CLI command definition
	flagFromUses                         // cloned into place by a uses
	flagFromAugment                      // spliced into place by an augment
	flagTopLevel                         // direct child of the module
)

// An Object is one node of the schema tree.
type Object struct {
	Kind   ObjKind
	Name   string
	Module *Module // owning module; never nil after build
	Parent *Object // nil for top level objects
	NSID   NSID    // namespace the node answers to

	Loc         Location
	Config      TriState // explicit config, or TSUnset to inherit
	Status      Status
	Description string
	Reference   string
	When        string
	IfFeatures  []*IfFeature
	Musts       []*Must

	flags objFlag

	// Children in schema insertion order.  Populated for the
	// structural kinds; nil for leafs.
	Children []*Object

	// Leaf and leaf-list.
	Type      *Typ
	Default   string   // leaf and choice default
	Defaults  []string // leaf-list defaults
	Units     string
	Mandatory TriState

	// List.
	KeyNames    []string  // key leaf names in declared order
	Keys        []*Object // resolved key leafs
	Unique      [][]string
	MinElements uint64
	MaxElements uint64 // 0 means unbounded
	OrderedBy   string

	// Container.
	Presence string

	// Uses.
	GroupingRef string // prefix qualified grouping name
	Grouping    *Grouping
	Refines     []*Refine
	usesDone    bool

	// Augment.
	TargetPath string
	Target     *Object
	augmented  bool

	// RPC.
	Input  *Object // ObjRPCIO, nil if absent
	Output *Object // ObjRPCIO, nil if absent
}

// A Refine is one refine edit applied by a uses to a cloned descendant.
type Refine struct {
	Target string // descendant schema node path, relative to the uses
	Loc    Location

	Description *string
	Reference   *string
	Config      TriState
	Default     *string
	Mandatory   TriState
	Presence    *string
	Musts       []*Must
	MinElements *uint64
	MaxElements *uint64
}

// IsConfig reports the effective config state of o: an explicit config
// statement wins, otherwise the parent state is inherited, defaulting
// to true at the top of the tree.  RPC subtrees (input and output
// alike) and notification subtrees are never config.
func (o *Object) IsConfig() bool {
	for n := o; n != nil; n = n.Parent {
		switch n.Kind {
		case ObjRPC, ObjRPCIO, ObjNotif:
			return false
		}
		switch n.Config {
		case TSTrue:
			return true
		case TSFalse:
			return false
		}
	}
	return true
}

// Child returns the direct child named name, or nil.
func (o *Object) Child(name string) *Object {
	for _, ch := range o.Children {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}

// ChildDeep returns the direct child named name, descending through
// choice and case pseudo levels.
func (o *Object) ChildDeep(name string) *Object {
	for _, ch := range o.Children {
		if ch.Name == name {
			return ch
		}
		if ch.Kind == ObjChoice || ch.Kind == ObjCase {
			if d := ch.ChildDeep(name); d != nil {
				return d
			}
		}
	}
	return nil
}

// NotSupported reports whether o was marked by a not-supported deviate.
func (o *Object) NotSupported() bool { return o.flags&flagNotSupported != 0 }

// Abstract reports whether o is an abstract (non data) definition.
func (o *Object) Abstract() bool { return o.flags&flagAbstract != 0 }

// CLIOnly reports whether o is a CLI only definition.
func (o *Object) CLIOnly() bool { return o.flags&flagCLI != 0 }

// FromUses reports whether o was cloned into place by a uses.
func (o *Object) FromUses() bool { return o.flags&flagFromUses != 0 }

// FromAugment reports whether o was spliced into place by an augment.
func (o *Object) FromAugment() bool { return o.flags&flagFromAugment != 0 }

// Path returns the absolute schema path of o, e.g. "/interfaces/interface/name".
func (o *Object) Path() string {
	if o == nil {
		return ""
	}
	return o.Parent.Path() + "/" + o.Name
}

// clone returns a deep copy of o reparented under parent, carrying the
// given namespace ID.  Used by grouping expansion: the clone inherits
// the new parent's namespace, not the grouping's.
func (o *Object) clone(parent *Object, mod *Module, nsid NSID) *Object {
	no := *o
	no.Parent = parent
	no.Module = mod
	no.NSID = nsid
	no.flags |= flagFromUses
	no.IfFeatures = append([]*IfFeature(nil), o.IfFeatures...)
	no.Musts = nil
	for _, m := range o.Musts {
		no.Musts = append(no.Musts, m.Copy())
	}
	no.KeyNames = append([]string(nil), o.KeyNames...)
	no.Keys = nil // re-resolved after expansion
	no.Unique = nil
	for _, u := range o.Unique {
		no.Unique = append(no.Unique, append([]string(nil), u...))
	}
	no.Defaults = append([]string(nil), o.Defaults...)
	no.Refines = append([]*Refine(nil), o.Refines...)
	no.Children = nil
	for _, ch := range o.Children {
		no.Children = append(no.Children, ch.clone(&no, mod, nsid))
	}
	if o.Input != nil {
		no.Input = o.Input.clone(&no, mod, nsid)
	}
	if o.Output != nil {
		no.Output = o.Output.clone(&no, mod, nsid)
	}
	return &no
}

// Walk action returned by a node visitor.
type WalkAction int

// Visitor results.
const (
	WalkContinue WalkAction = iota
	WalkStop
)

// A Visitor is invoked for each object during a Walk.
type Visitor func(o *Object) WalkAction

// Walk traverses o and its descendants depth first in insertion order,
// invoking v for each node.  Walk stops early if v returns WalkStop and
// reports whether the traversal ran to completion.
func (o *Object) Walk(v Visitor) bool {
	if o == nil {
		return true
	}
	if v(o) == WalkStop {
		return false
	}
	for _, ch := range o.Children {
		if !ch.Walk(v) {
			return false
		}
	}
	if o.Input != nil && !o.Input.Walk(v) {
		return false
	}
	if o.Output != nil && !o.Output.Walk(v) {
		return false
	}
	return true
}
