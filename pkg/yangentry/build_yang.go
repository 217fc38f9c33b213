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

// Package yangentry contains high-level helpers for compiling a set of
// YANG modules in one call.
package yangentry

import (
	"fmt"

	"github.com/netconfcentral/yangcore/pkg/ncx"
)

// Parse takes a list of either module names or .yang file paths, and a
// list of include paths.  It compiles the named modules, searching for
// them and their imports in the include paths or in the current
// directory, and returns the loaded modules keyed by module name along
// with any errors encountered.
func Parse(yangfiles, path []string) (map[string]*ncx.Module, []error) {
	return ParseWithOptions(yangfiles, path, ncx.Options{})
}

// ParseWithOptions is Parse with an explicit compiler configuration.
func ParseWithOptions(yangfiles, path []string, opts ncx.Options) (map[string]*ncx.Module, []error) {
	c := ncx.NewContext(opts)
	dirs := make([]string, 0, len(path))
	for _, p := range path {
		dirs = append(dirs, fmt.Sprintf("%s/...", p))
	}
	c.SetSearchPath(dirs...)

	mods := map[string]*ncx.Module{}
	var errs []error
	for _, name := range yangfiles {
		if name == "" {
			continue
		}
		m, loadErrs := c.Load(name, "")
		errs = append(errs, loadErrs...)
		if m != nil {
			mods[m.Name] = m
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return mods, nil
}
