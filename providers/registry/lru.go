// Copyright 2023 Google LLC
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

package registry

// lruCache is a fixed-size least-recently-used cache, used by
// CachingClient to avoid re-fetching package metadata that a resolution
// visits more than once (a very common case: popular transitive
// dependencies are requested repeatedly as different branches of the
// search converge on them).
type lruCache[K comparable, V any] struct {
	m       map[K]*lruNode[K, V]
	head    *lruNode[K, V]
	tail    *lruNode[K, V]
	maxSize int
}

type lruNode[K comparable, V any] struct {
	key        K
	value      V
	prev, next *lruNode[K, V]
}

func newLRUCache[K comparable, V any](size int) *lruCache[K, V] {
	return &lruCache[K, V]{
		m:       make(map[K]*lruNode[K, V], size+1),
		maxSize: size,
	}
}

// add inserts or updates the value for k, evicting the least-recently-used
// entry if the cache is full.
func (c *lruCache[K, V]) add(k K, v V) {
	if n, ok := c.m[k]; ok {
		n.value = v
		c.moveToFront(n)
		return
	}
	if len(c.m) < c.maxSize || c.maxSize == 0 {
		n := &lruNode[K, V]{key: k, value: v}
		c.pushFront(n)
		c.m[k] = n
		return
	}
	n := c.tail
	delete(c.m, n.key)
	n.key, n.value = k, v
	c.m[k] = n
	c.moveToFront(n)
}

// get returns the value stored for k, moving it to the front of the LRU
// order if found.
func (c *lruCache[K, V]) get(k K) (v V, ok bool) {
	n, ok := c.m[k]
	if !ok {
		return v, false
	}
	c.moveToFront(n)
	return n.value, true
}

func (c *lruCache[K, V]) pushFront(n *lruNode[K, V]) {
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *lruCache[K, V]) moveToFront(n *lruNode[K, V]) {
	if n == c.head {
		return
	}
	if n == c.tail {
		c.tail = n.prev
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
}
