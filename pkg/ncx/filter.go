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

// The filter pointer cache: pooled lightweight records used by subtree
// filter evaluation.  Callers serialize; there is no concurrent access
// contract.

// DefaultMaxFilterCache bounds the free list when Options does not
// override it.
const DefaultMaxFilterCache = 300

// A FilterPtr links one schema node into a subtree filter result.
type FilterPtr struct {
	Node     *Object
	Children []*FilterPtr
}

// A FilterCache recycles FilterPtr records through a bounded free
// list; releases beyond the bound free the memory.
type FilterCache struct {
	free []*FilterPtr
	max  int
}

func newFilterCache(max int) *FilterCache {
	return &FilterCache{max: max}
}

// NewFilterPtr returns a cleared record, reusing a pooled one when
// available.
func (c *Context) NewFilterPtr(node *Object) *FilterPtr {
	fc := c.filters
	if n := len(fc.free); n > 0 {
		p := fc.free[n-1]
		fc.free = fc.free[:n-1]
		p.Node = node
		return p
	}
	return &FilterPtr{Node: node}
}

// ReleaseFilterPtr returns p to the pool, recursively releasing its
// child list first.  Records beyond the cache bound are dropped.
func (c *Context) ReleaseFilterPtr(p *FilterPtr) {
	if p == nil {
		return
	}
	for _, ch := range p.Children {
		c.ReleaseFilterPtr(ch)
	}
	p.Node = nil
	p.Children = nil
	fc := c.filters
	if len(fc.free) < fc.max {
		fc.free = append(fc.free, p)
	}
}

// FilterCacheLen reports the number of pooled records, for tests and
// statistics.
func (c *Context) FilterCacheLen() int { return len(c.filters.free) }
