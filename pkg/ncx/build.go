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

// Building a Module from a parsed statement tree.  The builder only
// records what the source says; name resolution across modules happens
// later in resolve.go.

import "strconv"

// buildModule converts the statement s, which must be a module or
// submodule statement, into a Module.  Diagnostics are recorded against
// the returned module.
func (c *Context) buildModule(s *Statement, sourceFile string) *Module {
	m := &Module{
		Name:       s.Argument,
		Version:    "1",
		SourceFile: sourceFile,
		State:      ModParsing,
		ctx:        c,
	}
	switch s.Keyword {
	case "module":
	case "submodule":
		m.Submodule = true
	default:
		c.emit(m, s.Loc(), ErrSyntax, "%s: expected module or submodule", s.Keyword)
		return m
	}
	if !IsIdentifier(m.Name) {
		c.emit(m, s.Loc(), ErrInvalidValue, "invalid module name %q", m.Name)
	}
	c.checkWarnIDLen(m, s.Loc(), m.Name)

	for _, cs := range s.SubStatements() {
		switch cs.Keyword {
		case "yang-version":
			m.Version = cs.Argument
		case "namespace":
			m.Namespace = cs.Argument
		case "prefix":
			m.Prefix = cs.Argument
			m.XMLPrefix = cs.Argument
		case "belongs-to":
			m.BelongsTo = cs.Argument
			if p := cs.argOf("prefix"); p != "" {
				m.Prefix = p
				m.XMLPrefix = p
			}
		case "organization":
			m.Organization = cs.Argument
		case "contact":
			m.Contact = cs.Argument
		case "description":
			m.Description = cs.Argument
		case "reference":
			m.Reference = cs.Argument
		case "revision":
			m.Revisions = append(m.Revisions, &Revision{
				Date:        cs.Argument,
				Description: cs.argOf("description"),
				Reference:   cs.argOf("reference"),
			})
		case "import":
			m.Imports = append(m.Imports, &Import{
				ModuleName: cs.Argument,
				Prefix:     cs.argOf("prefix"),
				Revision:   cs.argOf("revision-date"),
				Loc:        cs.Loc(),
			})
		case "include":
			m.Includes = append(m.Includes, &Include{
				Name:     cs.Argument,
				Revision: cs.argOf("revision-date"),
				Loc:      cs.Loc(),
			})
		case "typedef":
			m.Typedefs = append(m.Typedefs, c.buildTypedef(m, cs))
		case "grouping":
			m.Groupings = append(m.Groupings, c.buildGrouping(m, cs))
		case "identity":
			m.Identities = append(m.Identities, c.buildIdentity(m, cs))
		case "feature":
			m.Features = append(m.Features, c.buildFeature(m, cs))
		case "extension":
			m.Extensions = append(m.Extensions, c.buildExtension(m, cs))
		case "deviation":
			m.Deviations = append(m.Deviations, c.buildDeviation(m, cs))
		case "augment":
			m.Augments = append(m.Augments, c.buildObject(m, nil, cs))
		case "rpc", "notification",
			"container", "leaf", "leaf-list", "list", "choice", "anyxml", "anydata", "uses":
			if o := c.buildObject(m, nil, cs); o != nil {
				o.flags |= flagTopLevel
				m.Objects = append(m.Objects, o)
			}
		default:
			// Unknown keywords are extension usages; carried opaquely.
		}
	}

	// Order the revision history newest first and adopt the newest as
	// the module revision.  Dates compare lexicographically; the empty
	// date collates below all real dates.
	sortRevisions(m.Revisions)
	if len(m.Revisions) > 0 {
		m.Revision = m.Revisions[0].Date
	}

	if !m.Submodule && m.Namespace == "" {
		c.emit(m, s.Loc(), ErrDataMissing, "module %s has no namespace", m.Name)
	}
	if !m.Submodule && m.Prefix == "" {
		c.emit(m, s.Loc(), ErrDataMissing, "module %s has no prefix", m.Name)
	}
	if m.Submodule && m.BelongsTo == "" {
		c.emit(m, s.Loc(), ErrDataMissing, "submodule %s has no belongs-to", m.Name)
	}

	m.State = ModParsed
	return m
}

func sortRevisions(revs []*Revision) {
	// Insertion sort; revision histories are short.
	for i := 1; i < len(revs); i++ {
		for j := i; j > 0 && revs[j-1].Date < revs[j].Date; j-- {
			revs[j-1], revs[j] = revs[j], revs[j-1]
		}
	}
}

func (c *Context) buildTypedef(m *Module, s *Statement) *Typedef {
	td := &Typedef{
		Name:        s.Argument,
		Loc:         s.Loc(),
		Default:     s.argOf("default"),
		Units:       s.argOf("units"),
		Description: s.argOf("description"),
		Reference:   s.argOf("reference"),
		Module:      m,
	}
	c.checkWarnIDLen(m, s.Loc(), td.Name)
	td.Status = c.buildStatus(m, s)
	if ts := s.substatement("type"); ts != nil {
		td.Type = c.buildType(m, ts)
	} else {
		c.emit(m, s.Loc(), ErrDataMissing, "typedef %s has no type", td.Name)
	}
	return td
}

func (c *Context) buildGrouping(m *Module, s *Statement) *Grouping {
	g := &Grouping{
		Name:        s.Argument,
		Loc:         s.Loc(),
		Description: s.argOf("description"),
		Reference:   s.argOf("reference"),
		Module:      m,
	}
	c.checkWarnIDLen(m, s.Loc(), g.Name)
	g.Status = c.buildStatus(m, s)
	for _, cs := range s.SubStatements() {
		switch cs.Keyword {
		case "typedef":
			g.Typedefs = append(g.Typedefs, c.buildTypedef(m, cs))
		case "container", "leaf", "leaf-list", "list", "choice", "anyxml", "anydata", "uses":
			if o := c.buildObject(m, nil, cs); o != nil {
				g.Children = append(g.Children, o)
			}
		}
	}
	return g
}

func (c *Context) buildIdentity(m *Module, s *Statement) *Identity {
	id := &Identity{
		Name:        s.Argument,
		Loc:         s.Loc(),
		Description: s.argOf("description"),
		Reference:   s.argOf("reference"),
		Module:      m,
	}
	id.Status = c.buildStatus(m, s)
	if base := s.argOf("base"); base != "" {
		id.BasePrefix, id.BaseName = getPrefix(base)
	}
	return id
}

func (c *Context) buildFeature(m *Module, s *Statement) *Feature {
	f := &Feature{
		Name:        s.Argument,
		Loc:         s.Loc(),
		Description: s.argOf("description"),
		Reference:   s.argOf("reference"),
		Module:      m,
		// Both default on; resolution recomputes compile-enabled
		// from the gates and policy may clear runtime-enabled.
		CompileEnabled: true,
		RuntimeEnabled: true,
	}
	f.Status = c.buildStatus(m, s)
	f.IfFeatures = c.buildIfFeatures(s)
	return f
}

func (c *Context) buildExtension(m *Module, s *Statement) *Extension {
	e := &Extension{
		Name:        s.Argument,
		Loc:         s.Loc(),
		Description: s.argOf("description"),
		Reference:   s.argOf("reference"),
	}
	e.Status = c.buildStatus(m, s)
	if a := s.substatement("argument"); a != nil {
		e.Argument = a.Argument
		e.YinElement = a.argOf("yin-element") == "true"
	}
	return e
}

func (c *Context) buildDeviation(m *Module, s *Statement) *Deviation {
	d := &Deviation{
		TargetPath: s.Argument,
		Loc:        s.Loc(),
		Module:     m,
	}
	for _, cs := range s.SubStatements() {
		if cs.Keyword != "deviate" {
			continue
		}
		arg, ok := deviateArgs[cs.Argument]
		if !ok {
			c.emit(m, cs.Loc(), ErrInvalidValue, "invalid deviate argument %q", cs.Argument)
			continue
		}
		dv := &Deviate{Arg: arg, Loc: cs.Loc()}
		for _, ds := range cs.SubStatements() {
			switch ds.Keyword {
			case "config":
				dv.Config = c.buildTriState(m, ds)
			case "default":
				arg := ds.Argument
				dv.Default = &arg
			case "mandatory":
				dv.Mandatory = c.buildTriState(m, ds)
			case "min-elements":
				if n, err := strconv.ParseUint(ds.Argument, 10, 64); err == nil {
					dv.MinElements = &n
				} else {
					c.emit(m, ds.Loc(), ErrInvalidValue, "invalid min-elements %q", ds.Argument)
				}
			case "max-elements":
				if n, ok := c.buildMaxElements(m, ds); ok {
					dv.MaxElements = &n
				}
			case "must":
				dv.Musts = append(dv.Musts, c.buildMust(ds))
			case "type":
				dv.Type = c.buildType(m, ds)
			case "unique":
				dv.Unique = append(dv.Unique, splitDescendants(ds.Argument))
			case "units":
				arg := ds.Argument
				dv.Units = &arg
			}
		}
		d.Deviates = append(d.Deviates, dv)
	}
	if len(d.Deviates) == 0 {
		c.emit(m, s.Loc(), ErrDataMissing, "deviation %s has no deviate", d.TargetPath)
	}
	return d
}

// buildType converts a type statement.  Named (non built-in) types keep
// Base == BTNone until the resolver binds the typedef chain.
func (c *Context) buildType(m *Module, s *Statement) *Typ {
	t := &Typ{Name: s.Argument, Loc: s.Loc()}
	t.Base = baseTypes[t.Name]
	for _, cs := range s.SubStatements() {
		switch cs.Keyword {
		case "range":
			t.Range = c.buildRestriction(cs)
		case "length":
			t.Length = c.buildRestriction(cs)
		case "pattern":
			t.Patterns = append(t.Patterns, c.buildRestriction(cs))
		case "enum":
			e := &EnumDef{
				Name:        cs.Argument,
				Value:       enumAutoValue,
				Description: cs.argOf("description"),
				Reference:   cs.argOf("reference"),
			}
			e.Status = c.buildStatus(m, cs)
			if v := cs.argOf("value"); v != "" {
				n, err := parseInt64(v)
				if err != nil {
					c.emit(m, cs.Loc(), ErrInvalidValue, "invalid enum value %q", v)
				} else {
					e.Value = n
				}
			}
			t.Enums = append(t.Enums, e)
		case "bit":
			b := &BitDef{
				Name:        cs.Argument,
				Position:    bitAutoPosition,
				Description: cs.argOf("description"),
				Reference:   cs.argOf("reference"),
			}
			b.Status = c.buildStatus(m, cs)
			if v := cs.argOf("position"); v != "" {
				n, err := parseUint32(v)
				if err != nil {
					c.emit(m, cs.Loc(), ErrInvalidValue, "invalid bit position %q", v)
				} else {
					b.Position = n
				}
			}
			t.Bits = append(t.Bits, b)
		case "path":
			t.Path = cs.Argument
		case "base":
			t.IdentityBase = cs.Argument
		case "fraction-digits":
			if n, err := strconv.Atoi(cs.Argument); err == nil && n >= 1 && n <= 18 {
				t.FractionDigits = n
			} else {
				c.emit(m, cs.Loc(), ErrInvalidValue, "invalid fraction-digits %q", cs.Argument)
			}
		case "require-instance":
			t.RequireInstance = cs.Argument == "true"
		case "type":
			t.Union = append(t.Union, c.buildType(m, cs))
		}
	}
	switch t.Base {
	case BTEnum:
		c.assignEnumValues(m, t)
	case BTBits:
		c.assignBitPositions(m, t)
	case BTLeafref:
		if t.Path == "" {
			c.emit(m, s.Loc(), ErrDataMissing, "leafref has no path")
		}
	case BTIdentityref:
		if t.IdentityBase == "" {
			c.emit(m, s.Loc(), ErrDataMissing, "identityref has no base")
		}
	case BTUnion:
		if len(t.Union) == 0 {
			c.emit(m, s.Loc(), ErrDataMissing, "union has no member types")
		}
	}
	return t
}

func (c *Context) buildRestriction(s *Statement) *Restriction {
	r := &Restriction{Arg: s.Argument}
	if e := c.buildErrinfo(s); e != nil {
		r.Errinfo = e
	}
	return r
}

func (c *Context) buildErrinfo(s *Statement) *Errinfo {
	e := &Errinfo{
		Description: s.argOf("description"),
		Reference:   s.argOf("reference"),
		AppTag:      s.argOf("error-app-tag"),
		Message:     s.argOf("error-message"),
	}
	if *e == (Errinfo{}) {
		return nil
	}
	return e
}

func (c *Context) buildMust(s *Statement) *Must {
	return &Must{Expr: s.Argument, Errinfo: c.buildErrinfo(s)}
}

func (c *Context) buildStatus(m *Module, s *Statement) Status {
	arg := s.argOf("status")
	st, ok := parseStatus(arg)
	if !ok {
		c.emit(m, s.Loc(), ErrInvalidValue, "invalid status %q", arg)
	}
	return st
}

func (c *Context) buildTriState(m *Module, s *Statement) TriState {
	switch s.Argument {
	case "true":
		return TSTrue
	case "false":
		return TSFalse
	}
	c.emit(m, s.Loc(), ErrInvalidValue, "invalid boolean %q", s.Argument)
	return TSUnset
}

func (c *Context) buildMaxElements(m *Module, s *Statement) (uint64, bool) {
	if s.Argument == "unbounded" {
		return 0, true
	}
	n, err := strconv.ParseUint(s.Argument, 10, 64)
	if err != nil || n == 0 {
		c.emit(m, s.Loc(), ErrInvalidValue, "invalid max-elements %q", s.Argument)
		return 0, false
	}
	return n, true
}

func (c *Context) buildIfFeatures(s *Statement) []*IfFeature {
	var gates []*IfFeature
	for _, cs := range s.SubStatements() {
		if cs.Keyword != "if-feature" {
			continue
		}
		prefix, name := getPrefix(cs.Argument)
		gates = append(gates, &IfFeature{Prefix: prefix, Name: name, Loc: cs.Loc()})
	}
	return gates
}

var objKeywords = map[string]ObjKind{
	"anyxml":       ObjAnyxml,
	"anydata":      ObjAnyxml,
	"leaf":         ObjLeaf,
	"leaf-list":    ObjLeafList,
	"list":         ObjList,
	"container":    ObjContainer,
	"choice":       ObjChoice,
	"case":         ObjCase,
	"uses":         ObjUses,
	"augment":      ObjAugment,
	"rpc":          ObjRPC,
	"notification": ObjNotif,
}

// buildObject converts a data definition statement into an Object
// under parent (nil for top level).
func (c *Context) buildObject(m *Module, parent *Object, s *Statement) *Object {
	kind, ok := objKeywords[s.Keyword]
	if !ok {
		c.emit(m, s.Loc(), ErrSyntax, "unexpected keyword %q", s.Keyword)
		return nil
	}
	o := &Object{
		Kind:        kind,
		Name:        s.Argument,
		Module:      m,
		Parent:      parent,
		Loc:         s.Loc(),
		Description: s.argOf("description"),
		Reference:   s.argOf("reference"),
		When:        s.argOf("when"),
	}
	if kind == ObjUses {
		o.GroupingRef = s.Argument
	}
	if kind == ObjAugment {
		o.TargetPath = s.Argument
	}
	if kind != ObjUses && kind != ObjAugment {
		c.checkWarnIDLen(m, s.Loc(), o.Name)
	}
	o.Status = c.buildStatus(m, s)
	o.IfFeatures = c.buildIfFeatures(s)

	for _, cs := range s.SubStatements() {
		switch cs.Keyword {
		case "config":
			o.Config = c.buildTriState(m, cs)
		case "type":
			o.Type = c.buildType(m, cs)
		case "default":
			if kind == ObjLeafList {
				o.Defaults = append(o.Defaults, cs.Argument)
			} else {
				o.Default = cs.Argument
			}
		case "units":
			o.Units = cs.Argument
		case "mandatory":
			o.Mandatory = c.buildTriState(m, cs)
		case "must":
			o.Musts = append(o.Musts, c.buildMust(cs))
		case "presence":
			o.Presence = cs.Argument
		case "key":
			o.KeyNames = splitDescendants(cs.Argument)
		case "unique":
			o.Unique = append(o.Unique, splitDescendants(cs.Argument))
		case "min-elements":
			if n, err := strconv.ParseUint(cs.Argument, 10, 64); err == nil {
				o.MinElements = n
			} else {
				c.emit(m, cs.Loc(), ErrInvalidValue, "invalid min-elements %q", cs.Argument)
			}
		case "max-elements":
			if n, ok := c.buildMaxElements(m, cs); ok {
				o.MaxElements = n
			}
		case "ordered-by":
			o.OrderedBy = cs.Argument
		case "refine":
			if kind == ObjUses {
				o.Refines = append(o.Refines, c.buildRefine(m, cs))
			}
		case "input":
			if kind == ObjRPC {
				o.Input = c.buildRPCIO(m, o, cs, "input")
			}
		case "output":
			if kind == ObjRPC {
				o.Output = c.buildRPCIO(m, o, cs, "output")
			}
		case "typedef":
			// Local typedefs are hoisted to the owning module; the
			// name scoping loss is acceptable to the registry model.
			m.Typedefs = append(m.Typedefs, c.buildTypedef(m, cs))
		case "grouping":
			m.Groupings = append(m.Groupings, c.buildGrouping(m, cs))
		case "container", "leaf", "leaf-list", "list", "choice", "case",
			"anyxml", "anydata", "uses", "augment":
			if ch := c.buildObject(m, o, cs); ch != nil {
				o.Children = append(o.Children, ch)
			}
		case "ncx:abstract":
			o.flags |= flagAbstract
		case "ncx:cli":
			o.flags |= flagCLI
		}
	}

	switch kind {
	case ObjLeaf, ObjLeafList:
		if o.Type == nil {
			c.emit(m, s.Loc(), ErrDataMissing, "%s %s has no type", kind, o.Name)
		}
	case ObjList:
		if len(o.KeyNames) == 0 && o.IsConfig() {
			c.emit(m, s.Loc(), ErrDataMissing, "list %s has no key", o.Name)
		}
	}
	return o
}

func (c *Context) buildRPCIO(m *Module, rpc *Object, s *Statement, name string) *Object {
	io := &Object{
		Kind:   ObjRPCIO,
		Name:   name,
		Module: m,
		Parent: rpc,
		Loc:    s.Loc(),
	}
	for _, cs := range s.SubStatements() {
		switch cs.Keyword {
		case "typedef":
			m.Typedefs = append(m.Typedefs, c.buildTypedef(m, cs))
		case "grouping":
			m.Groupings = append(m.Groupings, c.buildGrouping(m, cs))
		case "container", "leaf", "leaf-list", "list", "choice", "anyxml", "anydata", "uses":
			if ch := c.buildObject(m, io, cs); ch != nil {
				io.Children = append(io.Children, ch)
			}
		}
	}
	return io
}

func (c *Context) buildRefine(m *Module, s *Statement) *Refine {
	r := &Refine{Target: s.Argument, Loc: s.Loc()}
	for _, cs := range s.SubStatements() {
		switch cs.Keyword {
		case "description":
			arg := cs.Argument
			r.Description = &arg
		case "reference":
			arg := cs.Argument
			r.Reference = &arg
		case "config":
			r.Config = c.buildTriState(m, cs)
		case "default":
			arg := cs.Argument
			r.Default = &arg
		case "mandatory":
			r.Mandatory = c.buildTriState(m, cs)
		case "presence":
			arg := cs.Argument
			r.Presence = &arg
		case "must":
			r.Musts = append(r.Musts, c.buildMust(cs))
		case "min-elements":
			if n, err := strconv.ParseUint(cs.Argument, 10, 64); err == nil {
				r.MinElements = &n
			} else {
				c.emit(m, cs.Loc(), ErrInvalidValue, "invalid min-elements %q", cs.Argument)
			}
		case "max-elements":
			if n, ok := c.buildMaxElements(m, cs); ok {
				r.MaxElements = &n
			}
		}
	}
	return r
}

// splitDescendants splits a whitespace separated list of descendant
// node names, as used by key and unique arguments.
func splitDescendants(arg string) []string {
	var names []string
	start := -1
	for i := 0; i <= len(arg); i++ {
		if i == len(arg) || arg[i] == ' ' || arg[i] == '\t' || arg[i] == '\n' {
			if start >= 0 {
				names = append(names, arg[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return names
}
