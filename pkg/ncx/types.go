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

// The built-in base type catalog and the resolved type representation.

import (
	"fmt"
	"strconv"
)

// A BType is a built-in YANG base type.  Every resolved type bottoms
// out in exactly one BType.
type BType int

// The base types.  The structural kinds (list, container, choice, case,
// anyxml) appear in the catalog as well as the leaf types.
const (
	BTNone BType = iota
	BTInt8
	BTInt16
	BTInt32
	BTInt64
	BTUint8
	BTUint16
	BTUint32
	BTUint64
	BTDecimal64
	BTString
	BTBinary
	BTBoolean
	BTEmpty
	BTEnum
	BTBits
	BTLeafref
	BTIdentityref
	BTUnion
	BTInstanceID
	BTSList // whitespace separated string list
	BTList
	BTContainer
	BTChoice
	BTCase
	BTAnyxml
)

var btypeNames = map[BType]string{
	BTNone:        "none",
	BTInt8:        "int8",
	BTInt16:       "int16",
	BTInt32:       "int32",
	BTInt64:       "int64",
	BTUint8:       "uint8",
	BTUint16:      "uint16",
	BTUint32:      "uint32",
	BTUint64:      "uint64",
	BTDecimal64:   "decimal64",
	BTString:      "string",
	BTBinary:      "binary",
	BTBoolean:     "boolean",
	BTEmpty:       "empty",
	BTEnum:        "enumeration",
	BTBits:        "bits",
	BTLeafref:     "leafref",
	BTIdentityref: "identityref",
	BTUnion:       "union",
	BTInstanceID:  "instance-identifier",
	BTSList:       "slist",
	BTList:        "list",
	BTContainer:   "container",
	BTChoice:      "choice",
	BTCase:        "case",
	BTAnyxml:      "anyxml",
}

// baseTypes maps the spellable built-in type names to their BType.  The
// structural kinds are not spellable in a "type" statement.
var baseTypes = map[string]BType{
	"int8":                BTInt8,
	"int16":               BTInt16,
	"int32":               BTInt32,
	"int64":               BTInt64,
	"uint8":               BTUint8,
	"uint16":              BTUint16,
	"uint32":              BTUint32,
	"uint64":              BTUint64,
	"decimal64":           BTDecimal64,
	"string":              BTString,
	"binary":              BTBinary,
	"boolean":             BTBoolean,
	"empty":               BTEmpty,
	"enumeration":         BTEnum,
	"bits":                BTBits,
	"leafref":             BTLeafref,
	"identityref":         BTIdentityref,
	"union":               BTUnion,
	"instance-identifier": BTInstanceID,
}

// String returns the YANG name of b.
func (b BType) String() string {
	if s := btypeNames[b]; s != "" {
		return s
	}
	return fmt.Sprintf("btype-%d", int(b))
}

// A TypeClass groups base types by their semantic class.
type TypeClass int

// The semantic classes.
const (
	ClassNone TypeClass = iota
	ClassNumeric
	ClassString
	ClassEnumlike // enumeration and bits
	ClassBoolean
	ClassEmpty
	ClassReference // leafref, identityref, instance-identifier
	ClassUnion
	ClassStructural // list, container, choice, case, anyxml
)

// Class returns the semantic class of b.
func (b BType) Class() TypeClass {
	switch b {
	case BTInt8, BTInt16, BTInt32, BTInt64,
		BTUint8, BTUint16, BTUint32, BTUint64, BTDecimal64:
		return ClassNumeric
	case BTString, BTBinary, BTSList:
		return ClassString
	case BTEnum, BTBits:
		return ClassEnumlike
	case BTBoolean:
		return ClassBoolean
	case BTEmpty:
		return ClassEmpty
	case BTLeafref, BTIdentityref, BTInstanceID:
		return ClassReference
	case BTUnion:
		return ClassUnion
	case BTList, BTContainer, BTChoice, BTCase, BTAnyxml:
		return ClassStructural
	}
	return ClassNone
}

// IsNumeric reports whether b is one of the numeric base types.
func (b BType) IsNumeric() bool { return b.Class() == ClassNumeric }

// Errinfo carries the error annotation sub-statements allowed on value
// restrictions and must expressions.
type Errinfo struct {
	Description string
	Reference   string
	AppTag      string // error-app-tag
	Message     string // error-message
}

// Copy returns a copy of e, or nil if e is nil.  All fields are copied.
func (e *Errinfo) Copy() *Errinfo {
	if e == nil {
		return nil
	}
	ne := *e
	return &ne
}

// A Restriction is a range, length or pattern restriction with its
// error annotations.  The argument is kept in its literal form for
// round-tripping.
type Restriction struct {
	Arg     string
	Errinfo *Errinfo
}

// An EnumDef is one enum of an enumeration type: a name plus its
// integer value.  Defs are kept in schema insertion order.
type EnumDef struct {
	Name        string
	Value       int64
	Description string
	Reference   string
	Status      Status
}

// A BitDef is one bit of a bits type: a name plus its bit position.
type BitDef struct {
	Name        string
	Position    uint32
	Description string
	Reference   string
	Status      Status
}

// A Typ is the resolved representation of a "type" statement.  Until
// the type resolution pass runs, Base is BTNone for named types and
// Typedef is nil; resolution binds the typedef chain and fills in Base
// from the chain's root.
type Typ struct {
	Name    string   // the name as written, possibly prefix qualified
	Base    BType    // resolved base type
	Typedef *Typedef // non-nil if Name referenced a typedef

	Loc Location

	// Restrictions.
	Range    *Restriction
	Length   *Restriction
	Patterns []*Restriction

	// Enumeration and bits members, in insertion order.
	Enums []*EnumDef
	Bits  []*BitDef

	// Leafref.
	Path     string
	PathAST  []pathStep
	RefType  *Typ // type adopted from the leafref target
	Resolved bool

	// Identityref.
	IdentityBase string // base argument as written
	Identity     *Identity

	// Union members.
	Union []*Typ

	FractionDigits  int
	RequireInstance bool
}

// Root returns the built-in base type at the bottom of t's typedef
// chain.  For a resolved leafref with a known target, the target's base
// is returned.
func (t *Typ) Root() BType {
	if t.Base == BTLeafref && t.RefType != nil {
		return t.RefType.Root()
	}
	return t.Base
}

// Enum returns the enum def with the given name, or nil.
func (t *Typ) Enum(name string) *EnumDef {
	for _, e := range t.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Bit returns the bit def with the given name, or nil.
func (t *Typ) Bit(name string) *BitDef {
	for _, b := range t.Bits {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// assignEnumValues assigns values to enums that did not declare one:
// each gets one more than the highest value assigned so far, starting
// at 0.  Duplicate names or values are reported as invalid-value.
func (c *Context) assignEnumValues(m *Module, t *Typ) {
	next := int64(0)
	names := map[string]bool{}
	values := map[int64]bool{}
	for _, e := range t.Enums {
		if names[e.Name] {
			c.emit(m, t.Loc, ErrInvalidValue, "duplicate enum name %q", e.Name)
			continue
		}
		names[e.Name] = true
		if e.Value == enumAutoValue {
			e.Value = next
		}
		if values[e.Value] {
			c.emit(m, t.Loc, ErrInvalidValue,
				"duplicate enum value %d for %q", e.Value, e.Name)
		}
		values[e.Value] = true
		if e.Value >= next {
			next = e.Value + 1
		}
	}
}

// assignBitPositions assigns positions to bits that did not declare
// one, one past the highest assigned so far.
func (c *Context) assignBitPositions(m *Module, t *Typ) {
	next := uint32(0)
	names := map[string]bool{}
	positions := map[uint32]bool{}
	for _, b := range t.Bits {
		if names[b.Name] {
			c.emit(m, t.Loc, ErrInvalidValue, "duplicate bit name %q", b.Name)
			continue
		}
		names[b.Name] = true
		if b.Position == bitAutoPosition {
			b.Position = next
		}
		if positions[b.Position] {
			c.emit(m, t.Loc, ErrInvalidValue,
				"duplicate bit position %d for %q", b.Position, b.Name)
		}
		positions[b.Position] = true
		if b.Position >= next {
			next = b.Position + 1
		}
	}
}

// Sentinels for members that did not declare a value or position.
const (
	enumAutoValue   = int64(-1) << 62
	bitAutoPosition = ^uint32(0)
)

// parseInt64 parses a YANG integer literal, accepting an optional sign.
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseUint32 parses an unsigned YANG literal that fits in 32 bits.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
