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

// The reference resolver.  Resolution runs the stages below to
// fixpoint: every pass either makes progress or the loop stops, and
// references still unresolved after the final pass are reported.
//
//  1. base type binding (typedef chains, union members, leafref AST)
//  2. grouping expansion via uses, applying refines
//  3. augment splicing
//  4. identity linkage
//  5. if-feature resolution
//  6. deviation application
//  7. leafref dereference check

import (
	"fmt"
	"strings"
)

// A pathStep is one step of a schema node path.  up steps ("..") only
// occur in leafref paths.
type pathStep struct {
	prefix string
	name   string
	up     bool
}

// parsePath parses a schema node path of the limited form used by
// augment, deviation and leafref arguments: steps separated by '/',
// each "prefix:name", "name", or "..".  The second result reports
// whether the path was absolute.
func parsePath(arg string) ([]pathStep, bool) {
	arg = strings.TrimSpace(arg)
	absolute := strings.HasPrefix(arg, "/")
	var steps []pathStep
	for _, part := range strings.Split(strings.Trim(arg, "/"), "/") {
		if part == "" {
			continue
		}
		if part == ".." {
			steps = append(steps, pathStep{up: true})
			continue
		}
		// Strip any predicate; key expressions are not evaluated here.
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		prefix, name := getPrefix(part)
		steps = append(steps, pathStep{prefix: prefix, name: name})
	}
	return steps, absolute
}

// resolveModule runs the resolution stages on m until fixpoint.
func (c *Context) resolveModule(m *Module) {
	m.State = ModResolving
	r := &resolver{c: c, m: m}
	for pass := 0; pass < c.opts.MaxPasses; pass++ {
		r.progress = 0
		r.pending = 0
		r.report = false

		r.resolveTypes()
		r.expandUses()
		r.spliceAugments()
		r.linkIdentities()
		r.resolveIfFeatures()
		r.applyDeviations()

		if r.pending == 0 || r.progress == 0 {
			break
		}
	}
	// Report everything still unresolved, then verify leafrefs against
	// the settled tree.
	r.report = true
	r.resolveTypes()
	r.expandUses()
	r.spliceAugments()
	r.linkIdentities()
	r.resolveIfFeatures()
	r.applyDeviations()
	r.checkLeafrefs()

	c.buildRPCIndex(m)
	m.State = ModResolved
}

// A resolver carries the per-module resolution pass state.
type resolver struct {
	c        *Context
	m        *Module
	progress int  // references resolved this pass
	pending  int  // references not yet resolved
	report   bool // emit errors instead of retrying
}

// miss records an unresolved reference: counted while passes are still
// running, reported once the loop has settled.
func (r *resolver) miss(loc Location, code Code, format string, args ...interface{}) {
	if r.report {
		r.c.emit(r.m, loc, code, format, args...)
		return
	}
	r.pending++
}

// ---- stage 1: types ----

func (r *resolver) resolveTypes() {
	for _, td := range r.m.Typedefs {
		r.resolveTypedef(td)
	}
	for _, g := range r.m.Groupings {
		for _, o := range g.Children {
			r.resolveObjectTypes(o)
		}
	}
	for _, o := range r.m.Objects {
		r.resolveObjectTypes(o)
	}
	for _, o := range r.m.Augments {
		r.resolveObjectTypes(o)
	}
}

func (r *resolver) resolveObjectTypes(o *Object) {
	if o.Type != nil {
		r.resolveType(r.m, o.Type)
	}
	for _, ch := range o.Children {
		r.resolveObjectTypes(ch)
	}
	if o.Input != nil {
		r.resolveObjectTypes(o.Input)
	}
	if o.Output != nil {
		r.resolveObjectTypes(o.Output)
	}
}

func (r *resolver) resolveTypedef(td *Typedef) {
	if td.Type == nil || td.resolving {
		return
	}
	td.resolving = true
	r.resolveType(td.Module, td.Type)
	td.resolving = false
}

// resolveType binds t to its built-in base, following the typedef
// chain across modules as needed.  Union members recurse; leafref
// paths are parsed but not yet dereferenced.
func (r *resolver) resolveType(m *Module, t *Typ) {
	if t == nil || t.Resolved {
		return
	}
	switch t.Base {
	case BTNone:
		// Named type: bind the typedef chain.
		prefix, name := getPrefix(t.Name)
		tm, ok := m.moduleForPrefix(prefix)
		if !ok {
			r.miss(t.Loc, ErrDefNotFound, "unknown prefix %q in type %s", prefix, t.Name)
			return
		}
		td := tm.FindTypedef(name, true)
		if td == nil {
			r.miss(t.Loc, ErrDefNotFound, "unknown type %s", t.Name)
			return
		}
		if td.resolving {
			r.c.emit(r.m, t.Loc, ErrCycle, "typedef cycle through %s", td.Name)
			return
		}
		r.resolveTypedef(td)
		if td.Type == nil || !td.Type.Resolved {
			r.miss(t.Loc, ErrDefNotFound, "type %s is not resolved", t.Name)
			return
		}
		t.Typedef = td
		t.Base = td.Type.Root()
		// Restrictions and members not overridden locally are adopted
		// from the typedef.
		if t.Range == nil {
			t.Range = td.Type.Range
		}
		if t.Length == nil {
			t.Length = td.Type.Length
		}
		if len(t.Patterns) == 0 {
			t.Patterns = td.Type.Patterns
		}
		if len(t.Enums) == 0 {
			t.Enums = td.Type.Enums
		}
		if len(t.Bits) == 0 {
			t.Bits = td.Type.Bits
		}
		if t.Path == "" {
			t.Path = td.Type.Path
		}
		if t.IdentityBase == "" {
			t.IdentityBase = td.Type.IdentityBase
		}
		if len(t.Union) == 0 {
			t.Union = td.Type.Union
		}
		r.checkDecayedRef(t.Loc, td.Status, "typedef "+td.Name)
		r.progress++
	case BTUnion:
		done := true
		for _, ut := range t.Union {
			r.resolveType(m, ut)
			if !ut.Resolved {
				done = false
			}
		}
		if !done {
			return
		}
	case BTLeafref:
		if t.PathAST == nil {
			t.PathAST, _ = parsePath(t.Path)
		}
	}
	t.Resolved = true
}

// checkDecayedRef warns on references to deprecated definitions and
// errors on references to obsolete ones.
func (r *resolver) checkDecayedRef(loc Location, st Status, what string) {
	switch st {
	case StatusDeprecated:
		r.c.emit(r.m, loc, WarnUsingDeprecated, "reference to deprecated %s", what)
	case StatusObsolete:
		r.c.emit(r.m, loc, ErrUsingObsolete, "reference to obsolete %s", what)
	}
}

// ---- stage 2: uses ----

func (r *resolver) expandUses() {
	chain := map[*Grouping]bool{}
	for _, g := range r.m.Groupings {
		r.expandGrouping(g, chain)
	}
	r.m.Objects = r.expandUsesIn(r.m.Objects, nil, chain)
	for _, a := range r.m.Augments {
		a.Children = r.expandUsesIn(a.Children, a, chain)
	}
}

// expandGrouping expands the uses inside g's own template.  chain holds
// the groupings currently being expanded; meeting one again is a cycle.
func (r *resolver) expandGrouping(g *Grouping, chain map[*Grouping]bool) {
	if g.expanded || chain[g] {
		return
	}
	chain[g] = true
	g.Children = r.expandUsesIn(g.Children, nil, chain)
	delete(chain, g)
	g.expanded = !hasUses(g.Children)
}

// hasUses reports whether any uses node remains under objs.
func hasUses(objs []*Object) bool {
	for _, o := range objs {
		if o.Kind == ObjUses || hasUses(o.Children) {
			return true
		}
	}
	return false
}

// expandUsesIn replaces every uses in objs with clones of its
// grouping's children, recursing into the structural kinds.
func (r *resolver) expandUsesIn(objs []*Object, parent *Object, chain map[*Grouping]bool) []*Object {
	var out []*Object
	for _, o := range objs {
		if o.Kind != ObjUses {
			o.Children = r.expandUsesIn(o.Children, o, chain)
			if o.Input != nil {
				o.Input.Children = r.expandUsesIn(o.Input.Children, o.Input, chain)
			}
			if o.Output != nil {
				o.Output.Children = r.expandUsesIn(o.Output.Children, o.Output, chain)
			}
			out = append(out, o)
			continue
		}
		clones, ok := r.expandOneUses(o, parent, chain)
		if !ok {
			out = append(out, o) // retried next pass
			continue
		}
		out = append(out, clones...)
	}
	return out
}

func (r *resolver) expandOneUses(u *Object, parent *Object, chain map[*Grouping]bool) ([]*Object, bool) {
	prefix, name := getPrefix(u.GroupingRef)
	gm, ok := r.m.moduleForPrefix(prefix)
	if !ok {
		r.miss(u.Loc, ErrDefNotFound, "unknown prefix %q in uses %s", prefix, u.GroupingRef)
		return nil, false
	}
	g := gm.FindGrouping(name, true)
	if g == nil {
		r.miss(u.Loc, ErrDefNotFound, "unknown grouping %s", u.GroupingRef)
		return nil, false
	}
	if chain[g] {
		r.c.emit(r.m, u.Loc, ErrCycle, "grouping cycle through %s", g.Name)
		return nil, true // the uses is dropped
	}
	r.expandGrouping(g, chain)
	if !g.expanded {
		// The template still holds unresolved uses of its own.
		r.miss(u.Loc, ErrDefNotFound, "grouping %s is not resolved", g.Name)
		return nil, false
	}
	r.checkDecayedRef(u.Loc, g.Status, "grouping "+g.Name)

	nsid := r.m.NSID
	var clones []*Object
	for _, ch := range g.Children {
		cl := ch.clone(parent, r.m, nsid)
		// The uses' own gates and when condition constrain every
		// cloned child.
		cl.IfFeatures = append(cl.IfFeatures, u.IfFeatures...)
		if cl.When == "" {
			cl.When = u.When
		}
		clones = append(clones, cl)
	}

	for _, ref := range u.Refines {
		r.applyRefine(u, clones, ref)
	}

	// Augments declared inside the uses splice into the cloned
	// content, relative to the uses' parent.
	for _, a := range u.Children {
		if a.Kind != ObjAugment {
			continue
		}
		steps, _ := parsePath(a.TargetPath)
		target := findDescendant(clones, steps)
		if target == nil {
			r.c.emit(r.m, a.Loc, ErrDefNotFound,
				"uses augment target %s not found", a.TargetPath)
			continue
		}
		r.spliceInto(target, a)
	}

	r.progress++
	return clones, true
}

// applyRefine applies one refine edit to the cloned subtree.
func (r *resolver) applyRefine(u *Object, clones []*Object, ref *Refine) {
	steps, _ := parsePath(ref.Target)
	target := findDescendant(clones, steps)
	if target == nil {
		r.c.emit(r.m, ref.Loc, ErrDefNotFound, "refine target %s not found", ref.Target)
		return
	}
	if ref.Description != nil {
		target.Description = *ref.Description
	}
	if ref.Reference != nil {
		target.Reference = *ref.Reference
	}
	if ref.Config != TSUnset {
		target.Config = ref.Config
	}
	if ref.Default != nil {
		target.Default = *ref.Default
	}
	if ref.Mandatory != TSUnset {
		target.Mandatory = ref.Mandatory
	}
	if ref.Presence != nil {
		target.Presence = *ref.Presence
	}
	for _, mu := range ref.Musts {
		target.Musts = append(target.Musts, mu.Copy())
	}
	if ref.MinElements != nil {
		target.MinElements = *ref.MinElements
	}
	if ref.MaxElements != nil {
		target.MaxElements = *ref.MaxElements
	}
}

// findDescendant walks steps down from the candidate top objects.
func findDescendant(tops []*Object, steps []pathStep) *Object {
	if len(steps) == 0 {
		return nil
	}
	var cur *Object
	for _, o := range tops {
		if o.Name == steps[0].name {
			cur = o
			break
		}
	}
	for _, st := range steps[1:] {
		if cur == nil {
			return nil
		}
		cur = cur.ChildDeep(st.name)
	}
	return cur
}

// ---- stage 3: augments ----

func (r *resolver) spliceAugments() {
	for _, a := range r.m.Augments {
		if a.augmented {
			continue
		}
		target, ok := r.resolveTargetPath(a.TargetPath, a.Loc)
		if target == nil {
			if !ok {
				r.miss(a.Loc, ErrDefNotFound, "augment target %s not found", a.TargetPath)
			}
			continue
		}
		r.spliceInto(target, a)
		a.augmented = true
		a.Target = target
		r.progress++
	}
}

// resolveTargetPath resolves an absolute schema node path against the
// registry, starting from the module owning the first step.
func (r *resolver) resolveTargetPath(path string, loc Location) (*Object, bool) {
	steps, absolute := parsePath(path)
	if !absolute || len(steps) == 0 {
		// Malformed, never resolvable; reported once the passes settle.
		if r.report {
			r.c.emit(r.m, loc, ErrInvalidValue, "target path %s is not absolute", path)
		}
		return nil, true
	}
	tm, ok := r.m.moduleForPrefix(steps[0].prefix)
	if !ok {
		return nil, false
	}
	cur := tm.TopObject(steps[0].name)
	if cur == nil && tm == r.m {
		// The first step may name a node another module augmented in;
		// search pseudo levels too.
		cur = findDescendant(tm.Objects, steps[:1])
	}
	for _, st := range steps[1:] {
		if cur == nil {
			return nil, false
		}
		cur = cur.ChildDeep(st.name)
	}
	return cur, cur != nil
}

// spliceInto appends a's children to target's child list.  The spliced
// nodes keep the augmenting module's namespace ID.  A choice target
// accepts only case children; other kinds get a wrapping case
// synthesized.
func (r *resolver) spliceInto(target *Object, a *Object) {
	for _, ch := range a.Children {
		if ch.Kind == ObjAugment {
			continue
		}
		ch.Parent = target
		ch.NSID = r.m.NSID
		ch.Module = r.m
		ch.flags |= flagFromAugment
		ch.IfFeatures = append(ch.IfFeatures, a.IfFeatures...)
		if target.Kind == ObjChoice && ch.Kind != ObjCase {
			wrap := &Object{
				Kind:   ObjCase,
				Name:   ch.Name,
				Module: r.m,
				Parent: target,
				NSID:   r.m.NSID,
				Loc:    ch.Loc,
				flags:  flagFromAugment,
			}
			ch.Parent = wrap
			wrap.Children = []*Object{ch}
			target.Children = append(target.Children, wrap)
			continue
		}
		target.Children = append(target.Children, ch)
	}
}

// ---- stage 4: identities ----

func (r *resolver) linkIdentities() {
	for _, id := range r.m.Identities {
		if id.Base != nil || id.BaseName == "" {
			continue
		}
		bm, ok := r.m.moduleForPrefix(id.BasePrefix)
		if !ok {
			r.miss(id.Loc, ErrDefNotFound,
				"unknown prefix %q in identity base", id.BasePrefix)
			continue
		}
		base := bm.FindIdentity(id.BaseName)
		if base == nil {
			r.miss(id.Loc, ErrDefNotFound, "unknown identity base %s", id.BaseName)
			continue
		}
		// A base reachable from id's own children closes a cycle.
		if id.HasDerived(base.Name) && base.Module == id.Module {
			r.c.emit(r.m, id.Loc, ErrCycle, "identity cycle through %s", id.Name)
			continue
		}
		id.Base = base
		base.Children = append(base.Children, id)
		r.checkDecayedRef(id.Loc, base.Status, "identity "+base.Name)
		r.progress++
	}
}

// ---- stage 5: if-feature ----

func (r *resolver) resolveIfFeatures() {
	for _, f := range r.m.Features {
		r.resolveGates(f.IfFeatures)
	}
	// Compile-enabled is the conjunction of each feature's gate
	// ancestors; a feature with an unresolved gate is disabled.
	for _, f := range r.m.Features {
		f.CompileEnabled = true
		for _, g := range f.IfFeatures {
			if g.Feature == nil || !g.Feature.CompileEnabled {
				f.CompileEnabled = false
				break
			}
		}
	}
	walk := func(o *Object) WalkAction {
		r.resolveGates(o.IfFeatures)
		return WalkContinue
	}
	for _, o := range r.m.Objects {
		o.Walk(walk)
	}
	for _, a := range r.m.Augments {
		a.Walk(walk)
	}
}

func (r *resolver) resolveGates(gates []*IfFeature) {
	for _, g := range gates {
		if g.Feature != nil {
			continue
		}
		fm, ok := r.m.moduleForPrefix(g.Prefix)
		if !ok {
			r.miss(g.Loc, ErrDefNotFound, "unknown prefix %q in if-feature", g.Prefix)
			continue
		}
		f := fm.FindFeature(g.Name)
		if f == nil {
			r.miss(g.Loc, ErrDefNotFound, "unknown feature %s", g.Expr())
			continue
		}
		g.Feature = f
		r.progress++
	}
}

// ---- stage 6: deviations ----

func (r *resolver) applyDeviations() {
	for _, d := range r.m.Deviations {
		if d.Target != nil {
			continue
		}
		target, ok := r.resolveTargetPath(d.TargetPath, d.Loc)
		if target == nil {
			if !ok {
				// Unknown targets are reported but non-fatal.
				r.missNonFatal(d.Loc, "deviation target %s not found", d.TargetPath)
			}
			continue
		}
		d.Target = target
		for _, dv := range d.Deviates {
			r.applyDeviate(target, dv)
		}
		r.progress++
	}
}

// missNonFatal reports a non-fatal miss as a warning once the pass loop
// has settled.
func (r *resolver) missNonFatal(loc Location, format string, args ...interface{}) {
	if r.report {
		r.c.log.Warningf("%s: %s", loc, fmt.Sprintf(format, args...))
		return
	}
	r.pending++
}

func (r *resolver) applyDeviate(target *Object, dv *Deviate) {
	switch dv.Arg {
	case DeviateNotSupported:
		target.flags |= flagNotSupported
	case DeviateAdd:
		target.Musts = append(target.Musts, dv.Musts...)
		target.Unique = append(target.Unique, dv.Unique...)
		if dv.Default != nil && target.Default == "" {
			target.Default = *dv.Default
		}
		if dv.Units != nil && target.Units == "" {
			target.Units = *dv.Units
		}
		if dv.Config != TSUnset {
			target.Config = dv.Config
		}
		if dv.Mandatory != TSUnset {
			target.Mandatory = dv.Mandatory
		}
		if dv.MinElements != nil {
			target.MinElements = *dv.MinElements
		}
		if dv.MaxElements != nil {
			target.MaxElements = *dv.MaxElements
		}
	case DeviateReplace:
		if dv.Type != nil {
			r.resolveType(r.m, dv.Type)
			target.Type = dv.Type
		}
		if dv.Default != nil {
			target.Default = *dv.Default
		}
		if dv.Units != nil {
			target.Units = *dv.Units
		}
		if dv.Config != TSUnset {
			target.Config = dv.Config
		}
		if dv.Mandatory != TSUnset {
			target.Mandatory = dv.Mandatory
		}
		if dv.MinElements != nil {
			target.MinElements = *dv.MinElements
		}
		if dv.MaxElements != nil {
			target.MaxElements = *dv.MaxElements
		}
	case DeviateDelete:
		if dv.Default != nil && target.Default == *dv.Default {
			target.Default = ""
		}
		if dv.Units != nil && target.Units == *dv.Units {
			target.Units = ""
		}
		for _, mu := range dv.Musts {
			for i, tm := range target.Musts {
				if tm.Expr == mu.Expr {
					target.Musts = append(target.Musts[:i], target.Musts[i+1:]...)
					break
				}
			}
		}
		for _, un := range dv.Unique {
			for i, tu := range target.Unique {
				if joinNames(tu) == joinNames(un) {
					target.Unique = append(target.Unique[:i], target.Unique[i+1:]...)
					break
				}
			}
		}
	}
}

// ---- stage 7: leafrefs ----

func (r *resolver) checkLeafrefs() {
	check := func(o *Object) WalkAction {
		if (o.Kind == ObjLeaf || o.Kind == ObjLeafList) &&
			o.Type != nil && o.Type.Base == BTLeafref {
			r.checkLeafref(o)
		}
		return WalkContinue
	}
	for _, o := range r.m.Objects {
		o.Walk(check)
	}
	for _, a := range r.m.Augments {
		a.Walk(check)
	}
	// List keys resolve here too: all nodes exist once uses are done.
	resolveKeys := func(o *Object) WalkAction {
		if o.Kind != ObjList || len(o.Keys) == len(o.KeyNames) {
			return WalkContinue
		}
		o.Keys = nil
		for _, kn := range o.KeyNames {
			k := o.Child(kn)
			if k == nil || k.Kind != ObjLeaf {
				r.c.emit(r.m, o.Loc, ErrDefNotFound,
					"list %s key %s not found", o.Name, kn)
				continue
			}
			o.Keys = append(o.Keys, k)
		}
		return WalkContinue
	}
	for _, o := range r.m.Objects {
		o.Walk(resolveKeys)
	}
}

func (r *resolver) checkLeafref(o *Object) {
	t := o.Type
	if t.RefType != nil {
		return
	}
	steps := t.PathAST
	if steps == nil {
		steps, _ = parsePath(t.Path)
	}
	var cur *Object
	if strings.HasPrefix(strings.TrimSpace(t.Path), "/") {
		// Absolute: start at the top of the first step's module.
		if len(steps) == 0 {
			r.c.emit(r.m, t.Loc, ErrInvalidValue, "empty leafref path")
			return
		}
		tm, ok := r.m.moduleForPrefix(steps[0].prefix)
		if !ok {
			r.c.emit(r.m, t.Loc, ErrDefNotFound,
				"unknown prefix %q in leafref path", steps[0].prefix)
			return
		}
		cur = tm.TopObject(steps[0].name)
		steps = steps[1:]
	} else {
		// A relative path starts at the leaf itself; each ".." moves
		// to the enclosing node.  Walking above the module top lands
		// at the top level object named by the next step.
		cur = o
		for len(steps) > 0 && steps[0].up {
			if cur == nil {
				break
			}
			cur = cur.Parent
			steps = steps[1:]
		}
		if len(steps) > 0 && cur == nil {
			cur = findDescendant(r.m.Objects, steps[:1])
			steps = steps[1:]
		}
	}
	for _, st := range steps {
		if cur == nil {
			break
		}
		cur = cur.ChildDeep(st.name)
	}
	if cur == nil {
		r.c.emit(r.m, t.Loc, ErrDefNotFound,
			"leafref %s: target %s not found", o.Name, t.Path)
		return
	}
	if cur.Kind != ObjLeaf && cur.Kind != ObjLeafList {
		r.c.emit(r.m, t.Loc, ErrWrongType,
			"leafref %s: target %s is a %s, not a leaf", o.Name, t.Path, cur.Kind)
		return
	}
	t.RefType = cur.Type
}
