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

package main

import (
	"fmt"
	"io"

	"github.com/netconfcentral/yangcore/pkg/ncx"
	"github.com/pborman/getopt"
)

var typesVerbose bool

func init() {
	flags := getopt.New()
	register(&formatter{
		name:  "types",
		f:     doTypes,
		help:  "display the types used by the compiled modules",
		flags: flags,
	})
	flags.BoolVarLong(&typesVerbose, "types_verbose", 0, "include restriction information")
}

func doTypes(w io.Writer, mods []*ncx.Module) {
	seen := map[*ncx.Typ]bool{}
	for _, m := range mods {
		ncx.WalkModule(m, func(o *ncx.Object) ncx.WalkAction {
			if o.Type != nil && !seen[o.Type] {
				seen[o.Type] = true
				printType(w, o.Type)
			}
			return ncx.WalkContinue
		})
	}
}

// printType prints t in a moderately human readable format.
func printType(w io.Writer, t *ncx.Typ) {
	fmt.Fprintf(w, "%s", t.Name)
	if root := t.Root(); root.String() != t.Name {
		fmt.Fprintf(w, " -> %s", root)
	}
	if !typesVerbose {
		fmt.Fprintln(w)
		return
	}
	if t.Range != nil {
		fmt.Fprintf(w, " range %s", t.Range.Arg)
	}
	if t.Length != nil {
		fmt.Fprintf(w, " length %s", t.Length.Arg)
	}
	for _, p := range t.Patterns {
		fmt.Fprintf(w, " pattern %s", p.Arg)
	}
	for _, e := range t.Enums {
		fmt.Fprintf(w, " enum %s=%d", e.Name, e.Value)
	}
	for _, b := range t.Bits {
		fmt.Fprintf(w, " bit %s=%d", b.Name, b.Position)
	}
	if t.Path != "" {
		fmt.Fprintf(w, " path %q", t.Path)
	}
	fmt.Fprintln(w)
}
