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

// Program yangcore compiles YANG modules, displays errors, and writes
// something related to the compiled schema on output.
//
// Usage: yangcore [--path DIR] [--format FORMAT] [FORMAT OPTIONS] [MODULE ...]
//
// Each MODULE is a module name resolved on the search path, or a .yang
// file.  If no modules are named, standard input is compiled.
//
// If DIR is specified, it is a comma separated list of directories to
// append to the module search path.  If DIR appears as DIR/... then DIR
// and all of its subdirectories are searched.
//
// FORMAT, which defaults to "tree", selects the output to produce.
// Use "yangcore --help" for the list of formats.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/netconfcentral/yangcore/pkg/indent"
	"github.com/netconfcentral/yangcore/pkg/ncx"
	"github.com/pborman/getopt"
)

// Each format registers a formatter with register.  The function f is
// called once with the set of compiled modules.
type formatter struct {
	name  string
	f     func(io.Writer, []*ncx.Module)
	help  string
	flags *getopt.Set
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

// exitIfError writes errs to standard error and exits with status 1.
// An empty errs does nothing.
func exitIfError(errs []error) {
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		stop(1)
	}
}

var stop = os.Exit

func main() {
	var format string
	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	var help bool
	var paths []string
	var imperfect bool
	var noPrune bool
	getopt.ListVarLong(&paths, "path", 0, "comma separated list of directories to add to the search path", "DIR[,DIR...]")
	getopt.StringVarLong(&format, "format", 0, "format to display: "+strings.Join(formats, ", "), "FORMAT")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.BoolVarLong(&imperfect, "imperfect", 0, "register modules that resolved with errors")
	getopt.BoolVarLong(&noPrune, "no-prune", 0, "keep obsolete and not-supported nodes")
	getopt.SetParameters("[FORMAT OPTIONS] [MODULE] [...]")

	if err := getopt.Getopt(func(o getopt.Option) bool {
		if o.Name() == "--format" {
			f, ok := formatters[format]
			if !ok {
				fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n",
					format, strings.Join(formats, ", "))
				stop(1)
			}
			if f.flags != nil {
				f.flags.VisitAll(func(o getopt.Option) {
					getopt.AddOption(o)
				})
			}
		}
		return true
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, `
MODULE may be a module name or a .yang file.

Formats:
`)
		for _, fn := range formats {
			f := formatters[fn]
			fmt.Fprintf(os.Stderr, "    %s - %s\n", f.name, f.help)
			if f.flags != nil {
				f.flags.PrintOptions(indent.NewWriter(os.Stderr, "   "))
			}
			fmt.Fprintln(os.Stderr)
		}
		stop(0)
	}

	if format == "" {
		format = "tree"
	}
	if _, ok := formatters[format]; !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n",
			format, strings.Join(formats, ", "))
		stop(1)
	}

	c := ncx.NewContext(ncx.Options{
		AcceptImperfect: imperfect,
		PruneObsolete:   !noPrune,
	})
	c.SetSearchPath(paths...)

	files := getopt.Args()

	var mods []*ncx.Module
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
		}
		m, errs := c.ParseSource(string(data), "<STDIN>")
		exitIfError(errs)
		mods = append(mods, m)
	}
	for _, name := range files {
		name = strings.TrimSuffix(name, ".yang")
		m, errs := c.Load(name, "")
		exitIfError(errs)
		mods = append(mods, m)
	}

	sort.Slice(mods, func(i, j int) bool { return mods[i].Name < mods[j].Name })
	formatters[format].f(os.Stdout, mods)
}
