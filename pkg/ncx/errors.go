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

// This file defines the diagnostic vocabulary: error codes, source
// locations, and the emit path that all user visible output from the
// compiler flows through.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// A Code identifies one kind of diagnostic.  Codes below warningBase are
// errors; codes at or above warningBase are warnings.
type Code int

// Error codes.
const (
	CodeNone Code = iota

	ErrModuleNotFound   // import or load of an unknown module
	ErrWrongVersion     // mismatched revision request
	ErrModuleConflict   // same (name, revision) registered from a different source
	ErrDefNotFound      // unresolved named definition
	ErrDuplicateDef     // two definitions with the same qualified name
	ErrDuplicateNamespace
	ErrCycle        // include or identity-base cycle
	ErrInvalidValue // out of range or malformed literal
	ErrWrongType    // type mismatch at a leafref or union arm
	ErrUsingObsolete
	ErrDataMissing      // mandatory sub-statement absent
	ErrAmbiguousCommand // RPC prefix matched two or more commands
	ErrMultipleMatches  // distinct lookup hit more than one module
	ErrSyntax           // malformed YANG statement
	ErrInternal         // invariant violation, always a bug
)

// warningBase is the first warning code.  Only warnings may be
// suppressed.
const warningBase Code = 400

// Warning codes.
const (
	WarnDuplicatePrefix Code = warningBase + iota // prefix collision, auto remapped
	WarnUsingDeprecated
	WarnIDLen   // identifier longer than the soft limit
	WarnLineLen // source line longer than the soft limit
	WarnDuplicateRevision
)

var codeNames = map[Code]string{
	ErrModuleNotFound:     "module-not-found",
	ErrWrongVersion:       "wrong-version",
	ErrModuleConflict:     "module-conflict",
	ErrDefNotFound:        "def-not-found",
	ErrDuplicateDef:       "duplicate-def",
	ErrDuplicateNamespace: "duplicate-namespace",
	ErrCycle:              "cycle",
	ErrInvalidValue:       "invalid-value",
	ErrWrongType:          "wrong-type",
	ErrUsingObsolete:      "using-obsolete",
	ErrDataMissing:        "data-missing",
	ErrAmbiguousCommand:   "ambiguous-partial-command",
	ErrMultipleMatches:    "multiple-matches",
	ErrSyntax:             "syntax-error",
	ErrInternal:           "internal",
	WarnDuplicatePrefix:   "duplicate-prefix",
	WarnUsingDeprecated:   "using-deprecated",
	WarnIDLen:             "idlen-exceeded",
	WarnLineLen:           "linelen-exceeded",
	WarnDuplicateRevision: "duplicate-revision",
}

// IsError reports whether c is an error (as opposed to a warning).
func (c Code) IsError() bool { return c < warningBase }

// String returns the diagnostic name for c.
func (c Code) String() string {
	if s := codeNames[c]; s != "" {
		return s
	}
	return "code-" + strconv.Itoa(int(c))
}

// A Location identifies a position in YANG source.  Line and Col are
// 1's based; a zero Location means the position is unknown.
type Location struct {
	File string
	Line int
	Col  int
}

// String formats l as "file:line.col".  If no source file is known the
// file part is "--".
func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "--"
	}
	return fmt.Sprintf("%s:%d.%d", file, l.Line, l.Col)
}

// A Diagnostic is one emitted error or warning.
type Diagnostic struct {
	Loc  Location
	Code Code
	Msg  string
}

// Error implements the error interface using the location format
// "sourcefile:line.col: severity(code): message".
func (d *Diagnostic) Error() string {
	sev := "warning"
	if d.Code.IsError() {
		sev = "error"
	}
	return fmt.Sprintf("%s: %s(%s): %s", d.Loc, sev, d.Code, d.Msg)
}

// errorSort sorts errs by source location, with diagnostics that carry
// no location first and errors that are not Diagnostics last, and
// returns the sorted slice.  Duplicate messages are dropped.
func errorSort(errs []error) []error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs
	}
	seen := map[string]bool{}
	var out []error
	for _, err := range errs {
		if err == nil || seen[err.Error()] {
			continue
		}
		seen[err.Error()] = true
		out = append(out, err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]) < sortKey(out[j])
	})
	return out
}

func sortKey(err error) string {
	if d, ok := err.(*Diagnostic); ok {
		return fmt.Sprintf("%s:%08d:%08d:%s", d.Loc.File, d.Loc.Line, d.Loc.Col, d.Msg)
	}
	// Non-diagnostic errors collate after located diagnostics from the
	// same file, which in practice means last.
	return "\x7f" + err.Error()
}

// emit records a diagnostic against m.  Errors are always recorded and
// bump the module error counter.  Warnings are dropped when the code is
// suppressed, otherwise recorded and counted.  If m carries a pinned
// current-error location it wins over loc.
func (c *Context) emit(m *Module, loc Location, code Code, format string, args ...interface{}) {
	if m != nil && m.errLoc != (Location{}) {
		loc = m.errLoc
	}
	d := &Diagnostic{Loc: loc, Code: code, Msg: fmt.Sprintf(format, args...)}
	if !code.IsError() {
		if c.warnSuppressed(code) {
			return
		}
		if m != nil {
			m.Warnings++
			m.errors = append(m.errors, d)
		}
		c.log.Warningf("%s", d.Error())
		return
	}
	if m != nil {
		m.Errors++
		m.errors = append(m.errors, d)
		if m.Status < StatusErrors {
			m.Status = StatusErrors
		}
	}
	c.log.Errorf("%s", d.Error())
}

// SetError pins loc as the current-error location for m.  Subsequent
// diagnostics against m use loc until ClearError is called.  Used by
// callers that know a better location than the statement being
// processed (for example the token chain inside a grouping expansion).
func (m *Module) SetError(loc Location) { m.errLoc = loc }

// ClearError removes the pinned current-error location from m.
func (m *Module) ClearError() { m.errLoc = Location{} }

// joinNames joins a list of names for diagnostics.
func joinNames(names []string) string { return strings.Join(names, " ") }
