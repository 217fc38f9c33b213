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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func bitsType() *Typ {
	return &Typ{
		Name: "bits",
		Base: BTBits,
		Bits: []*BitDef{
			{Name: "three", Position: 3},
			{Name: "one", Position: 1},
			{Name: "seven", Position: 7},
		},
	}
}

func TestParseValBitsCanonicalOrder(t *testing.T) {
	// Bit positions must come out non-decreasing no matter the input
	// order.
	for _, raw := range []string{
		"three one seven",
		"seven three one",
		"one three seven",
	} {
		v, err := ParseVal(bitsType(), raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		want := []BitVal{{"one", 1}, {"three", 3}, {"seven", 7}}
		if diff := cmp.Diff(want, v.Bits); diff != "" {
			t.Errorf("%q: bits mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestParseVal(t *testing.T) {
	enumT := &Typ{Name: "enumeration", Base: BTEnum,
		Enums: []*EnumDef{{Name: "up", Value: 0}, {Name: "down", Value: 1}}}
	for _, tt := range []struct {
		name    string
		typ     *Typ
		raw     string
		wantErr bool
		str     string
	}{
		{"uint8", &Typ{Base: BTUint8}, "200", false, "200"},
		{"uint8 overflow", &Typ{Base: BTUint8}, "300", true, ""},
		{"int32 negative", &Typ{Base: BTInt32}, "-17", false, "-17"},
		{"bool", &Typ{Base: BTBoolean}, "true", false, "true"},
		{"bool bad", &Typ{Base: BTBoolean}, "yes", true, ""},
		{"empty", &Typ{Base: BTEmpty}, "", false, ""},
		{"empty with value", &Typ{Base: BTEmpty}, "x", true, ""},
		{"enum", enumT, "down", false, "down"},
		{"enum unknown", enumT, "sideways", true, ""},
		{"bit unknown", bitsType(), "nine", true, ""},
		{"slist", &Typ{Base: BTSList}, "a  b\tc", false, "a b c"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVal(tt.typ, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err == nil && v.String() != tt.str {
				t.Errorf("String() = %q, want %q", v.String(), tt.str)
			}
		})
	}
}

func TestValCompare(t *testing.T) {
	u8 := func(n int64) *Val { return &Val{Kind: BTUint8, Num: n} }
	if u8(3).Compare(u8(5)) != -1 || u8(5).Compare(u8(3)) != 1 || !u8(4).Equal(u8(4)) {
		t.Error("uint compare misordered")
	}
	a := &Val{Kind: BTString, Str: "a"}
	b := &Val{Kind: BTString, Str: "b"}
	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Error("string compare misordered")
	}
	if a.Compare(nil) != 1 || (*Val)(nil).Compare(a) != -1 {
		t.Error("nil compare misordered")
	}
}

func TestListValMerge(t *testing.T) {
	mk := func(names ...string) *ListVal {
		lv := &ListVal{MemberType: BTString}
		for _, n := range names {
			lv.Members = append(lv.Members, NewStringVal(n))
		}
		return lv
	}
	names := func(lv *ListVal) []string {
		var out []string
		for _, m := range lv.Members {
			out = append(out, m.Str)
		}
		return out
	}

	dst := mk("c")
	dst.Merge(mk("b", "a", "c"), MergeSort)
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(dst)); diff != "" {
		t.Errorf("sorted merge (-want +got):\n%s", diff)
	}

	dst = mk("c")
	dst.Merge(mk("b", "a"), MergeLast)
	if diff := cmp.Diff([]string{"c", "b", "a"}, names(dst)); diff != "" {
		t.Errorf("last merge (-want +got):\n%s", diff)
	}

	dst = mk("c")
	src := mk("b")
	dst.Merge(src, MergeFirst)
	if diff := cmp.Diff([]string{"b", "c"}, names(dst)); diff != "" {
		t.Errorf("first merge (-want +got):\n%s", diff)
	}
	if !src.Empty() {
		t.Error("merge must leave the source empty")
	}
}

func TestListValFindCopyCompare(t *testing.T) {
	lv := &ListVal{MemberType: BTString,
		Members: []*Val{NewStringVal("x"), NewStringVal("y")}}
	if lv.Find(NewStringVal("y")) == nil {
		t.Error("Find missed an existing member")
	}
	if lv.Find(NewStringVal("z")) != nil {
		t.Error("Find invented a member")
	}
	cp := lv.Copy()
	if lv.Compare(cp) != 0 {
		t.Error("copy does not compare equal")
	}
	cp.Members[0].Str = "w"
	if lv.Members[0].Str != "x" {
		t.Error("copy aliases the original")
	}
	if lv.Compare(&ListVal{}) != 1 {
		t.Error("longer list must compare greater")
	}
}

func TestErrinfoCopy(t *testing.T) {
	e := &Errinfo{Description: "d", Reference: "r", AppTag: "t", Message: "m"}
	cp := e.Copy()
	if *cp != *e {
		t.Error("copy differs")
	}
	cp.AppTag = "other"
	if e.AppTag != "t" {
		t.Error("copy aliases the original")
	}
	if (*Errinfo)(nil).Copy() != nil {
		t.Error("nil copy must be nil")
	}
}
