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

// Package ncx implements the YANG schema compiler core: it reads YANG
// module source, builds a linked and validated object tree, and exposes
// the registries and query API used by output back ends and by a server
// runtime.
//
// The usual entry point is a Context:
//
//	c := ncx.NewContext(ncx.Options{})
//	c.SetSearchPath("testdata")
//	m, errs := c.Load("example-module", "")
//
// Load recursively loads imports and includes, runs the multi-pass
// reference resolver, registers the module and invokes the load
// callback.  The resulting Module owns its object tree; cross module
// references are resolved to direct pointers during resolution but do
// not extend the lifetime of the referenced module.
//
// All operations on a single Context serialize on an internal lock.
// The package is not reentrant: a load callback must not call back into
// the Context that invoked it.
package ncx
