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

// Locating module source files on the search path, and the default
// Loader built on it.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// A Loader produces a parsed, resolved and registered module for a
// (name, revision) request.  It is invoked for explicit loads and for
// transitive imports; a custom Loader can fetch source from anywhere as
// long as it ends by calling back into the Context's registration path
// (ParseSource does this).
type Loader interface {
	Load(c *Context, name, revision string, deviations []*SaveDeviations) (*Module, error)
}

// fileLoader is the default Loader: it finds name[@revision].yang on
// the search path and compiles it.
type fileLoader struct{}

func (fileLoader) Load(c *Context, name, revision string, _ []*SaveDeviations) (*Module, error) {
	path, data, err := c.findModuleFile(name, revision)
	if err != nil {
		return nil, err
	}
	m, errs := c.ParseSource(data, path)
	if m == nil {
		return nil, errs[0]
	}
	if !m.Registered {
		if len(errs) > 0 {
			return nil, errs[0]
		}
		return nil, &Diagnostic{Loc: Location{File: path}, Code: ErrModuleNotFound,
			Msg: fmt.Sprintf("module %s failed to load", name)}
	}
	if revision != "" && m.Revision != revision {
		return nil, &Diagnostic{Loc: Location{File: path}, Code: ErrWrongVersion,
			Msg: fmt.Sprintf("module %s is revision %s, want %s", name, m.Revision, revision)}
	}
	return m, nil
}

// expandSearchPath splits colon separated elements and drops
// duplicates.
func expandSearchPath(dirs []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, d := range dirs {
		for _, p := range strings.Split(d, ":") {
			if p != "" && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// findModuleFile returns the path and contents of the source file for
// the requested module.  A name with a revision looks for
// name@revision.yang first, then name.yang.  The current directory is
// checked before the search path.  A search path entry of the form
// dir/... searches dir and all of its subdirectories.
func (c *Context) findModuleFile(name, revision string) (string, string, error) {
	var bases []string
	if revision != "" {
		bases = append(bases, name+"@"+revision+".yang")
	}
	bases = append(bases, name+".yang")
	if strings.HasSuffix(name, ".yang") {
		bases = []string{name}
	}

	c.mu.Lock()
	dirs := append([]string{"."}, c.searchPath...)
	c.mu.Unlock()

	for _, base := range bases {
		for _, dir := range dirs {
			var path string
			if filepath.Base(dir) == "..." {
				path = findInDir(filepath.Dir(dir), base)
				if path == "" {
					continue
				}
			} else {
				path = filepath.Join(dir, base)
			}
			if data, err := os.ReadFile(path); err == nil {
				return path, string(data), nil
			}
		}
	}
	return "", "", &Diagnostic{Code: ErrModuleNotFound,
		Msg: fmt.Sprintf("no such module: %s", name)}
}

// findInDir looks for base in dir or any of its subdirectories.
func findInDir(dir, base string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() {
			if e.Name() == base {
				return filepath.Join(dir, base)
			}
			continue
		}
		if p := findInDir(filepath.Join(dir, e.Name()), base); p != "" {
			return p
		}
	}
	return ""
}
