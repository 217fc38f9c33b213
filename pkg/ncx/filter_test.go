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

import "testing"

func TestFilterCacheReuse(t *testing.T) {
	c := NewContext(Options{MaxFilterCache: 2})
	node := &Object{Kind: ObjLeaf, Name: "n"}

	a := c.NewFilterPtr(node)
	b := c.NewFilterPtr(node)
	if a.Node != node || b.Node != node {
		t.Fatal("new filter pointers not initialized")
	}
	c.ReleaseFilterPtr(a)
	if got := c.FilterCacheLen(); got != 1 {
		t.Errorf("cache len = %d, want 1", got)
	}
	// A released record comes back cleared.
	r := c.NewFilterPtr(nil)
	if r != a {
		t.Error("release/new did not recycle the record")
	}
	if r.Node != nil || r.Children != nil {
		t.Error("recycled record not cleared")
	}
	c.ReleaseFilterPtr(r)
	c.ReleaseFilterPtr(b)
}

func TestFilterCacheBound(t *testing.T) {
	c := NewContext(Options{MaxFilterCache: 2})
	var ptrs []*FilterPtr
	for i := 0; i < 5; i++ {
		ptrs = append(ptrs, c.NewFilterPtr(nil))
	}
	for _, p := range ptrs {
		c.ReleaseFilterPtr(p)
	}
	if got := c.FilterCacheLen(); got != 2 {
		t.Errorf("cache len = %d, want the bound of 2", got)
	}
}

func TestFilterCacheRecursiveRelease(t *testing.T) {
	c := NewContext(Options{MaxFilterCache: 10})
	root := c.NewFilterPtr(nil)
	root.Children = []*FilterPtr{c.NewFilterPtr(nil), c.NewFilterPtr(nil)}
	root.Children[0].Children = []*FilterPtr{c.NewFilterPtr(nil)}

	c.ReleaseFilterPtr(root)
	if got := c.FilterCacheLen(); got != 4 {
		t.Errorf("cache len = %d, want all 4 records pooled", got)
	}
}
