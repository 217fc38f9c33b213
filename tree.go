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
	"strings"

	"github.com/netconfcentral/yangcore/pkg/indent"
	"github.com/netconfcentral/yangcore/pkg/ncx"
)

func init() {
	register(&formatter{
		name: "tree",
		f:    doTree,
		help: "display in a tree format",
	})
}

func doTree(w io.Writer, mods []*ncx.Module) {
	for _, m := range mods {
		fmt.Fprintf(w, "module: %s\n", m.FullName())
		it := ncx.NewDataIterator(m, 0)
		for o := it.Next(); o != nil; o = it.Next() {
			writeTree(w, o)
		}
		ncx.WalkModule(m, func(o *ncx.Object) ncx.WalkAction {
			if o.Parent == nil && (o.Kind == ncx.ObjRPC || o.Kind == ncx.ObjNotif) {
				writeTree(w, o)
			}
			return ncx.WalkContinue
		})
	}
}

// writeTree writes o, formatted, and all of its children to w.
func writeTree(w io.Writer, o *ncx.Object) {
	if o.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(indent.NewWriter(w, "// "), o.Description)
	}
	switch {
	case o.Kind == ncx.ObjRPC:
		fmt.Fprintf(w, "RPC: ")
	case o.Kind == ncx.ObjNotif:
		fmt.Fprintf(w, "notif: ")
	case o.IsConfig():
		fmt.Fprintf(w, "rw: ")
	default:
		fmt.Fprintf(w, "RO: ")
	}
	if o.Type != nil {
		fmt.Fprintf(w, "%s ", o.Type.Root())
	}
	switch o.Kind {
	case ncx.ObjLeafList:
		fmt.Fprintf(w, "[]%s\n", o.Name)
		return
	case ncx.ObjLeaf, ncx.ObjAnyxml:
		fmt.Fprintf(w, "%s\n", o.Name)
		return
	case ncx.ObjList:
		fmt.Fprintf(w, "[%s]%s {\n", strings.Join(o.KeyNames, " "), o.Name)
	default:
		fmt.Fprintf(w, "%s {\n", o.Name)
	}
	for _, ch := range o.Children {
		writeTree(indent.NewWriter(w, "  "), ch)
	}
	if o.Input != nil && len(o.Input.Children) > 0 {
		fmt.Fprintln(w, "  input {")
		for _, ch := range o.Input.Children {
			writeTree(indent.NewWriter(w, "    "), ch)
		}
		fmt.Fprintln(w, "  }")
	}
	if o.Output != nil && len(o.Output.Children) > 0 {
		fmt.Fprintln(w, "  output {")
		for _, ch := range o.Output.Children {
			writeTree(indent.NewWriter(w, "    "), ch)
		}
		fmt.Fprintln(w, "  }")
	}
	fmt.Fprintln(w, "}")
}
