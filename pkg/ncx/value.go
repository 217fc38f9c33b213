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

// The typed value model: a tagged carrier for scalar, enum, bits and
// list values with equality, ordering and merge semantics.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// An EnumVal is an enum value: the name plus its assigned integer.
type EnumVal struct {
	Name  string
	Value int64
}

// A BitVal is one set bit of a bits value: the name plus its position.
type BitVal struct {
	Name     string
	Position uint32
}

// A Val is a typed value.  Kind selects which carrier field is active:
//
//	integer kinds    Num (int64 for signed, reinterpreted for unsigned)
//	BTDecimal64      Str
//	string kinds     Str
//	BTBoolean        Bool
//	BTEmpty          nothing
//	BTEnum           Enum
//	BTBits           Bits, canonically ordered by ascending position
//	BTSList, BTList  List
//
// The literal form is preserved in Raw so a back end that reserializes
// can match YANG canonical form.
type Val struct {
	Kind BType
	Raw  string

	Num  int64
	Str  string
	Bool bool
	Enum *EnumVal
	Bits []BitVal
	List *ListVal
}

// A MergeOrder controls where merged members are inserted.
type MergeOrder int

// Merge orders.
const (
	MergeFirst MergeOrder = iota
	MergeLast
	MergeSort
)

// A ListVal is an ordered or unordered list of typed members.
type ListVal struct {
	MemberType BType
	Members    []*Val
}

// NewStringVal returns a string Val.
func NewStringVal(s string) *Val {
	return &Val{Kind: BTString, Raw: s, Str: s}
}

// NewEnumVal returns an enum Val for def.
func NewEnumVal(def *EnumDef) *Val {
	return &Val{
		Kind: BTEnum,
		Raw:  def.Name,
		Enum: &EnumVal{Name: def.Name, Value: def.Value},
	}
}

// ParseVal parses the literal raw against the resolved type t,
// returning the typed value or an error.  Bits members are reordered
// into canonical ascending position order regardless of the order they
// appear in raw.
func ParseVal(t *Typ, raw string) (*Val, error) {
	v := &Val{Kind: t.Root(), Raw: raw}
	switch v.Kind {
	case BTInt8, BTInt16, BTInt32, BTInt64:
		n, err := strconv.ParseInt(raw, 10, btypeBitSize(v.Kind))
		if err != nil {
			return nil, fmt.Errorf("invalid %s literal %q", v.Kind, raw)
		}
		v.Num = n
	case BTUint8, BTUint16, BTUint32, BTUint64:
		n, err := strconv.ParseUint(raw, 10, btypeBitSize(v.Kind))
		if err != nil {
			return nil, fmt.Errorf("invalid %s literal %q", v.Kind, raw)
		}
		v.Num = int64(n)
	case BTDecimal64, BTString, BTBinary, BTLeafref, BTIdentityref, BTInstanceID:
		v.Str = raw
	case BTBoolean:
		switch raw {
		case "true":
			v.Bool = true
		case "false":
		default:
			return nil, fmt.Errorf("invalid boolean literal %q", raw)
		}
	case BTEmpty:
		if raw != "" {
			return nil, fmt.Errorf("empty type takes no value, got %q", raw)
		}
	case BTEnum:
		def := t.Enum(raw)
		if def == nil {
			return nil, fmt.Errorf("enum %q not defined", raw)
		}
		v.Enum = &EnumVal{Name: def.Name, Value: def.Value}
	case BTBits:
		for _, name := range strings.Fields(raw) {
			def := t.Bit(name)
			if def == nil {
				return nil, fmt.Errorf("bit %q not defined", name)
			}
			v.Bits = append(v.Bits, BitVal{Name: def.Name, Position: def.Position})
		}
		sortBits(v.Bits)
	case BTSList:
		lv := &ListVal{MemberType: BTString}
		for _, f := range strings.Fields(raw) {
			lv.Members = append(lv.Members, NewStringVal(f))
		}
		v.List = lv
	default:
		return nil, fmt.Errorf("cannot parse a value of type %s", v.Kind)
	}
	return v, nil
}

func btypeBitSize(b BType) int {
	switch b {
	case BTInt8, BTUint8:
		return 8
	case BTInt16, BTUint16:
		return 16
	case BTInt32, BTUint32:
		return 32
	}
	return 64
}

// sortBits orders bits into canonical ascending position order.
func sortBits(bits []BitVal) {
	sort.SliceStable(bits, func(i, j int) bool {
		return bits[i].Position < bits[j].Position
	})
}

// Compare compares v and o, returning -1, 0 or 1.  Values of different
// kinds compare by kind.  Lists compare member by member.
func (v *Val) Compare(o *Val) int {
	switch {
	case v == nil && o == nil:
		return 0
	case v == nil:
		return -1
	case o == nil:
		return 1
	case v.Kind != o.Kind:
		return cmpInt(int64(v.Kind), int64(o.Kind))
	}
	switch v.Kind {
	case BTInt8, BTInt16, BTInt32, BTInt64:
		return cmpInt(v.Num, o.Num)
	case BTUint8, BTUint16, BTUint32, BTUint64:
		return cmpUint(uint64(v.Num), uint64(o.Num))
	case BTBoolean:
		switch {
		case v.Bool == o.Bool:
			return 0
		case o.Bool:
			return -1
		}
		return 1
	case BTEmpty:
		return 0
	case BTEnum:
		return cmpInt(v.Enum.Value, o.Enum.Value)
	case BTBits:
		return cmpBits(v.Bits, o.Bits)
	case BTSList, BTList:
		return v.List.Compare(o.List)
	}
	return strings.Compare(v.Str, o.Str)
}

// Equal reports whether v and o compare equal.
func (v *Val) Equal(o *Val) bool { return v.Compare(o) == 0 }

// Copy returns a deep copy of v.
func (v *Val) Copy() *Val {
	if v == nil {
		return nil
	}
	nv := *v
	if v.Enum != nil {
		e := *v.Enum
		nv.Enum = &e
	}
	if v.Bits != nil {
		nv.Bits = append([]BitVal(nil), v.Bits...)
	}
	if v.List != nil {
		nv.List = v.List.Copy()
	}
	return &nv
}

// String returns the canonical string form of v.
func (v *Val) String() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case BTInt8, BTInt16, BTInt32, BTInt64:
		return strconv.FormatInt(v.Num, 10)
	case BTUint8, BTUint16, BTUint32, BTUint64:
		return strconv.FormatUint(uint64(v.Num), 10)
	case BTBoolean:
		return strconv.FormatBool(v.Bool)
	case BTEmpty:
		return ""
	case BTEnum:
		return v.Enum.Name
	case BTBits:
		names := make([]string, len(v.Bits))
		for i, b := range v.Bits {
			names[i] = b.Name
		}
		return joinNames(names)
	case BTSList, BTList:
		return v.List.String()
	}
	return v.Str
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpBits(a, b []BitVal) int {
	for i := range a {
		if i >= len(b) {
			return 1
		}
		if c := cmpUint(uint64(a[i].Position), uint64(b[i].Position)); c != 0 {
			return c
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}

// Len returns the number of members in lv.
func (lv *ListVal) Len() int {
	if lv == nil {
		return 0
	}
	return len(lv.Members)
}

// Empty reports whether lv has no members.
func (lv *ListVal) Empty() bool { return lv.Len() == 0 }

// Find returns the first member equal to v, or nil.
func (lv *ListVal) Find(v *Val) *Val {
	if lv == nil {
		return nil
	}
	for _, m := range lv.Members {
		if m.Equal(v) {
			return m
		}
	}
	return nil
}

// Compare compares lv and o member by member.
func (lv *ListVal) Compare(o *ListVal) int {
	n, on := lv.Len(), o.Len()
	for i := 0; i < n && i < on; i++ {
		if c := lv.Members[i].Compare(o.Members[i]); c != 0 {
			return c
		}
	}
	return cmpInt(int64(n), int64(on))
}

// Copy returns a deep copy of lv.
func (lv *ListVal) Copy() *ListVal {
	if lv == nil {
		return nil
	}
	nl := &ListVal{MemberType: lv.MemberType}
	for _, m := range lv.Members {
		nl.Members = append(nl.Members, m.Copy())
	}
	return nl
}

// Insert adds v to lv at the position selected by order: the front,
// the back, or its sorted position.
func (lv *ListVal) Insert(v *Val, order MergeOrder) {
	switch order {
	case MergeFirst:
		lv.Members = append([]*Val{v}, lv.Members...)
	case MergeSort:
		for i, m := range lv.Members {
			if v.Compare(m) < 0 {
				lv.Members = append(lv.Members, nil)
				copy(lv.Members[i+1:], lv.Members[i:])
				lv.Members[i] = v
				return
			}
		}
		lv.Members = append(lv.Members, v)
	default:
		lv.Members = append(lv.Members, v)
	}
}

// Merge moves all members of src into lv, placing each per order and
// dropping members already present in lv.  src is left empty.
func (lv *ListVal) Merge(src *ListVal, order MergeOrder) {
	if src == nil {
		return
	}
	for _, m := range src.Members {
		if lv.Find(m) == nil {
			lv.Insert(m, order)
		}
	}
	src.Members = nil
}

// String returns the members joined by single spaces.
func (lv *ListVal) String() string {
	if lv == nil {
		return ""
	}
	names := make([]string, len(lv.Members))
	for i, m := range lv.Members {
		names[i] = m.String()
	}
	return joinNames(names)
}
