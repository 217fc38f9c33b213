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

// The compiler Context: the registries, caches and configuration that
// every public entry point operates on.  A Context replaces the
// process-wide state of older toolchains so independent module sets
// can be compiled in isolation.

import "sync"

// Options configures a Context.  The zero value selects the defaults.
type Options struct {
	// AcceptImperfect registers modules that resolved with errors
	// instead of rejecting them.  Such modules stay usable for
	// reporting but carry a non-zero error count.
	AcceptImperfect bool

	// PruneObsolete removes obsolete and not-supported nodes after
	// resolution.
	PruneObsolete bool

	// MaxPasses bounds the resolution pass loop.  0 means the default
	// of 8.
	MaxPasses int

	// MaxFilterCache bounds the filter pointer free list.  0 means the
	// default of 300.
	MaxFilterCache int

	// WarnIDLen and WarnLineLen are the identifier and line length
	// soft limits.  Negative disables the check; 0 selects the
	// defaults of 64 and 72.
	WarnIDLen   int
	WarnLineLen int

	// Loader, if non-nil, replaces the search path file loader used
	// for transitive imports.
	Loader Loader

	// Logger, if non-nil, replaces the default glog sink.
	Logger Logger
}

// The default resolution pass bound.
const defaultMaxPasses = 8

// A Context holds all compiler state: the module and namespace
// registries, the filter pointer cache, warning suppression, and the
// file search configuration.  All public calls serialize on an
// internal lock; the core is not reentrant.
type Context struct {
	mu   sync.Mutex
	opts Options

	reg        *Registry
	ns         *NSRegistry
	filters    *FilterCache
	suppressed map[Code]bool
	log        Logger
	loader     Loader

	// File search configuration, consumed only by the loader.
	searchPath  []string
	homeDir     string
	installRoot string

	// includeChain tracks the modules along the current load for
	// include cycle detection.
	includeChain []string
}

// NewContext returns an initialized Context.
func NewContext(opts Options) *Context {
	if opts.MaxPasses == 0 {
		opts.MaxPasses = defaultMaxPasses
	}
	if opts.MaxFilterCache == 0 {
		opts.MaxFilterCache = DefaultMaxFilterCache
	}
	switch {
	case opts.WarnIDLen == 0:
		opts.WarnIDLen = DefaultWarnIDLen
	case opts.WarnIDLen < 0:
		opts.WarnIDLen = 0
	}
	switch {
	case opts.WarnLineLen == 0:
		opts.WarnLineLen = DefaultWarnLineLen
	case opts.WarnLineLen < 0:
		opts.WarnLineLen = 0
	}
	c := &Context{
		opts:       opts,
		reg:        newRegistry(),
		ns:         newNSRegistry(),
		suppressed: map[Code]bool{},
		log:        opts.Logger,
		loader:     opts.Loader,
	}
	c.filters = newFilterCache(opts.MaxFilterCache)
	if c.log == nil {
		c.log = glogger{}
	}
	if c.loader == nil {
		c.loader = &fileLoader{}
	}
	return c
}

// SetSearchPath sets the list of directories searched for module
// source files.
func (c *Context) SetSearchPath(dirs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchPath = expandSearchPath(dirs)
}

// SearchPath returns the configured search directories.
func (c *Context) SearchPath() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.searchPath...)
}

// SetHomeDir records the home directory for the loader.  The core does
// not interpret it.
func (c *Context) SetHomeDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.homeDir = dir
}

// HomeDir returns the recorded home directory.
func (c *Context) HomeDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.homeDir
}

// SetInstallRoot records the install root for the loader.
func (c *Context) SetInstallRoot(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.installRoot = dir
}

// InstallRoot returns the recorded install root.
func (c *Context) InstallRoot() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.installRoot
}

// Load loads the named module at the requested revision (empty for the
// newest available), recursively loading its imports and includes,
// resolving all references, and registering it.  A module already
// registered at a matching revision is returned as is.  The returned
// error list is empty on success; with AcceptImperfect set a module
// that resolved with errors is still returned and registered.
func (c *Context) Load(name, revision string) (*Module, []error) {
	if m := c.FindModule(name, revision); m != nil {
		return m, nil
	}
	m, err := c.loader.Load(c, name, revision, c.SavedDeviations())
	if err != nil {
		return nil, []error{err}
	}
	return m, m.ErrorDiags()
}

// ParseSource compiles data as YANG source named sourceName: the module
// is parsed, linked (loading imports on demand), resolved, and
// registered.  This is the path the file loader itself uses; it is
// exported so tests and embedders can compile from strings.
func (c *Context) ParseSource(data, sourceName string) (*Module, []error) {
	lx := newLexer(data, sourceName)
	var longLines []Location
	var longLens []int
	if c.opts.WarnLineLen > 0 {
		lx.maxLine = c.opts.WarnLineLen
		lx.longLine = func(loc Location, n int) {
			longLines = append(longLines, loc)
			longLens = append(longLens, n)
		}
	}
	stmts, err := parseTokens(lx)
	if err != nil {
		return nil, []error{err}
	}
	if len(stmts) == 0 {
		return nil, []error{&Diagnostic{Loc: Location{File: sourceName},
			Code: ErrSyntax, Msg: "no module statement found"}}
	}
	// One source file holds one module.
	m := c.buildModule(stmts[0], sourceName)
	for i, loc := range longLines {
		c.checkWarnLineLen(m, loc, longLens[i])
	}

	c.linkModule(m)

	// The namespace ID must exist before resolution: grouping clones
	// and augment splices stamp this module's ID on the nodes they
	// create.
	c.registerModuleNamespace(m)
	stamp := func(o *Object) WalkAction {
		o.NSID = m.NSID
		return WalkContinue
	}
	for _, o := range m.Objects {
		o.Walk(stamp)
	}
	for _, a := range m.Augments {
		a.Walk(stamp)
	}

	c.resolveModule(m)

	if m.Errors > 0 && !c.opts.AcceptImperfect {
		return m, m.ErrorDiags()
	}
	if err := c.Register(m); err != nil {
		m.errors = append(m.errors, err)
		return m, m.ErrorDiags()
	}
	c.SaveDeviationsFor(m)
	if c.opts.PruneObsolete {
		// Deviations may have marked nodes in previously loaded
		// modules, so the whole registry is pruned.
		c.PruneAll()
	}
	if m.Errors == 0 && m.Warnings > 0 {
		m.Status = StatusWarnings
	}
	m.State = ModFrozen
	c.log.Infof("loaded module %s", m.FullName())
	return m, m.ErrorDiags()
}
