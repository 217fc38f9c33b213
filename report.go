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

var reportTotals bool

func init() {
	flags := getopt.New()
	register(&formatter{
		name:  "report",
		f:     doReport,
		help:  "display per module definition statistics",
		flags: flags,
	})
	flags.BoolVarLong(&reportTotals, "report_totals", 0, "append a totals line")
}

// moduleStats counts the definitions one module contributes.
type moduleStats struct {
	typedefs, groupings, identities, features            int
	leafs, leafLists, lists, containers, choices, anyxml int
	rpcs, notifications                                  int
	augments, deviations                                 int
	errors, warnings                                     int
}

func (s *moduleStats) add(o *moduleStats) {
	s.typedefs += o.typedefs
	s.groupings += o.groupings
	s.identities += o.identities
	s.features += o.features
	s.leafs += o.leafs
	s.leafLists += o.leafLists
	s.lists += o.lists
	s.containers += o.containers
	s.choices += o.choices
	s.anyxml += o.anyxml
	s.rpcs += o.rpcs
	s.notifications += o.notifications
	s.augments += o.augments
	s.deviations += o.deviations
	s.errors += o.errors
	s.warnings += o.warnings
}

func collectStats(m *ncx.Module) *moduleStats {
	s := &moduleStats{
		typedefs:   len(m.Typedefs),
		groupings:  len(m.Groupings),
		identities: len(m.Identities),
		features:   len(m.Features),
		augments:   len(m.Augments),
		deviations: len(m.Deviations),
		errors:     m.Errors,
		warnings:   m.Warnings,
	}
	ncx.WalkModule(m, func(o *ncx.Object) ncx.WalkAction {
		switch o.Kind {
		case ncx.ObjLeaf:
			s.leafs++
		case ncx.ObjLeafList:
			s.leafLists++
		case ncx.ObjList:
			s.lists++
		case ncx.ObjContainer:
			s.containers++
		case ncx.ObjChoice, ncx.ObjCase:
			s.choices++
		case ncx.ObjAnyxml:
			s.anyxml++
		case ncx.ObjRPC:
			s.rpcs++
		case ncx.ObjNotif:
			s.notifications++
		}
		return ncx.WalkContinue
	})
	return s
}

func doReport(w io.Writer, mods []*ncx.Module) {
	total := &moduleStats{}
	for _, m := range mods {
		s := collectStats(m)
		total.add(s)
		fmt.Fprintf(w, "module %s\n", m.FullName())
		writeStats(w, s)
	}
	if reportTotals {
		fmt.Fprintf(w, "totals (%d modules)\n", len(mods))
		writeStats(w, total)
	}
}

func writeStats(w io.Writer, s *moduleStats) {
	fmt.Fprintf(w, "  typedefs %d  groupings %d  identities %d  features %d\n",
		s.typedefs, s.groupings, s.identities, s.features)
	fmt.Fprintf(w, "  leafs %d  leaf-lists %d  lists %d  containers %d  choices %d  anyxml %d\n",
		s.leafs, s.leafLists, s.lists, s.containers, s.choices, s.anyxml)
	fmt.Fprintf(w, "  rpcs %d  notifications %d  augments %d  deviations %d\n",
		s.rpcs, s.notifications, s.augments, s.deviations)
	fmt.Fprintf(w, "  errors %d  warnings %d\n", s.errors, s.warnings)
}
