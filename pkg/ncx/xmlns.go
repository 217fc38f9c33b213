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

// The namespace registry: a bijection between URI strings, short
// prefixes, and small integer namespace IDs.

import "fmt"

// An NSID is a small integer alias for a namespace URI.  NSID 0 is
// never allocated; a zero NSID means "no namespace".
type NSID uint32

// Well-known namespace URIs.
const (
	InvalidURI      = "INVALID"
	WildcardURI     = "urn:ietf:params:xml:ns:netconf:wildcard:1.1"
	NetconfURI      = "urn:ietf:params:xml:ns:netconf:base:1.0"
	YangURI         = "urn:ietf:params:xml:ns:yang:1"
	YinURI          = "urn:ietf:params:xml:ns:yang:yin:1"
	XmlnsURI        = "http://www.w3.org/2000/xmlns/"
	XSDURI          = "http://www.w3.org/2001/XMLSchema"
	XSIURI          = "http://www.w3.org/2001/XMLSchema-instance"
	XMLURI          = "http://www.w3.org/XML/1998/namespace"
	WithDefaultsURI = "urn:ietf:params:xml:ns:netconf:default:1.0"
)

// Reserved namespace IDs, allocated at registry creation in this order.
const (
	NSInvalid NSID = 1 + iota // invalid-filter sentinel
	NSWildcard
	NSNetconf
	NSYang
	NSYin
	NSXmlns
	NSXSD
	NSXSI
	NSXML
	NSWithDefaults
)

// maxPrefixSuffix bounds the prefix remap loop.  When every suffixed
// prefix up to this value is taken, registration fails.
const maxPrefixSuffix = 9999

// A Namespace is one registered namespace record.
type Namespace struct {
	ID     NSID
	URI    string
	Prefix string
	Owner  string // owning module name, "" if none
}

// An NSRegistry allocates namespace IDs and maintains the URI, prefix
// and ID mappings.
type NSRegistry struct {
	byID     []*Namespace // index 0 unused
	byURI    map[string]*Namespace
	byPrefix map[string]*Namespace
}

// newNSRegistry returns a registry with the well-known namespaces
// reserved.
func newNSRegistry() *NSRegistry {
	r := &NSRegistry{
		byID:     []*Namespace{nil},
		byURI:    map[string]*Namespace{},
		byPrefix: map[string]*Namespace{},
	}
	reserved := []struct {
		uri    string
		prefix string
	}{
		{InvalidURI, "inv"},
		{WildcardURI, "wild"},
		{NetconfURI, "nc"},
		{YangURI, "yang"},
		{YinURI, "yin"},
		{XmlnsURI, "xmlns"},
		{XSDURI, "xs"},
		{XSIURI, "xsi"},
		{XMLURI, "xml"},
		{WithDefaultsURI, "wda"},
	}
	for _, ns := range reserved {
		// Reserved entries cannot collide with an empty registry.
		r.register(ns.uri, ns.prefix, "")
	}
	return r
}

func (r *NSRegistry) register(uri, prefix, owner string) (NSID, error) {
	if old := r.byURI[uri]; old != nil {
		// Back-fill the owner if the existing record has none;
		// anything else is a duplicate claim on the URI.
		if owner != "" && old.Owner == "" {
			old.Owner = owner
			return old.ID, nil
		}
		if owner == "" || owner == old.Owner {
			return old.ID, nil
		}
		return 0, &Diagnostic{Code: ErrDuplicateNamespace,
			Msg: fmt.Sprintf("namespace %s already registered to %s", uri, old.Owner)}
	}
	ns := &Namespace{
		ID:     NSID(len(r.byID)),
		URI:    uri,
		Prefix: prefix,
		Owner:  owner,
	}
	r.byID = append(r.byID, ns)
	r.byURI[uri] = ns
	if _, taken := r.byPrefix[prefix]; !taken {
		r.byPrefix[prefix] = ns
	}
	return ns.ID, nil
}

// pickPrefix returns prefix if it is free, otherwise the first free
// prefix formed by appending an integer suffix 1..9999.  The second
// result is false at saturation.
func (r *NSRegistry) pickPrefix(prefix string) (string, bool) {
	if _, taken := r.byPrefix[prefix]; !taken {
		return prefix, true
	}
	for i := 1; i <= maxPrefixSuffix; i++ {
		p := fmt.Sprintf("%s%d", prefix, i)
		if _, taken := r.byPrefix[p]; !taken {
			return p, true
		}
	}
	return "", false
}

// findByURI returns the record for uri, or nil.
func (r *NSRegistry) findByURI(uri string) *Namespace { return r.byURI[uri] }

// findByPrefix returns the record whose prefix is prefix, or nil.
func (r *NSRegistry) findByPrefix(prefix string) *Namespace { return r.byPrefix[prefix] }

// findByID returns the record for id, or nil.
func (r *NSRegistry) findByID(id NSID) *Namespace {
	if id == 0 || int(id) >= len(r.byID) {
		return nil
	}
	return r.byID[id]
}

// findByModule returns the record owned by the named module, or nil.
func (r *NSRegistry) findByModule(name string) *Namespace {
	for _, ns := range r.byID[1:] {
		if ns.Owner == name {
			return ns
		}
	}
	return nil
}

// RegisterNamespace registers uri with the preferred prefix on behalf
// of owner and returns its ID.  Registering an already known URI
// returns the existing ID (back-filling a missing owner); a URI claimed
// by a different module is a duplicate-namespace error.
func (c *Context) RegisterNamespace(uri, prefix, owner string) (NSID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ns.register(uri, prefix, owner)
}

// FindNamespaceByURI returns the namespace record for uri, or nil.
func (c *Context) FindNamespaceByURI(uri string) *Namespace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ns.findByURI(uri)
}

// FindNamespaceByPrefix returns the namespace record for prefix, or
// nil.
func (c *Context) FindNamespaceByPrefix(prefix string) *Namespace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ns.findByPrefix(prefix)
}

// FindNamespaceByID returns the namespace record for id, or nil.
func (c *Context) FindNamespaceByID(id NSID) *Namespace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ns.findByID(id)
}

// FindNamespaceByModule returns the namespace record owned by the named
// module, or nil.
func (c *Context) FindNamespaceByModule(name string) *Namespace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ns.findByModule(name)
}

// registerModuleNamespace allocates the namespace ID and XML prefix for
// m.  A prefix collision with a different module remaps the XML prefix
// with an integer suffix and warns; the YANG prefix is untouched.
func (c *Context) registerModuleNamespace(m *Module) {
	if m.Submodule || m.Namespace == "" {
		return
	}
	xml, ok := m.Prefix, true
	if ns := c.ns.findByPrefix(m.Prefix); ns == nil || ns.Owner != m.Name {
		xml, ok = c.ns.pickPrefix(m.Prefix)
	}
	if !ok {
		c.emit(m, Location{File: m.SourceFile}, ErrDuplicateNamespace,
			"no free prefix for %s: all suffixes of %q taken", m.Name, m.Prefix)
		return
	}
	if xml != m.Prefix {
		c.emit(m, Location{File: m.SourceFile}, WarnDuplicatePrefix,
			"prefix %q in use, module %s remapped to %q", m.Prefix, m.Name, xml)
	}
	m.XMLPrefix = xml
	id, err := c.ns.register(m.Namespace, xml, m.Name)
	if err != nil {
		d := err.(*Diagnostic)
		c.emit(m, Location{File: m.SourceFile}, d.Code, "%s", d.Msg)
		return
	}
	m.NSID = id
}
