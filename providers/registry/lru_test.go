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

import (
	"math/rand"
	"testing"

	"github.com/golang/groupcache/lru"
)

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newLRUCache[int, string](2)
	c.add(1, "a")
	c.add(2, "b")
	c.get(1) // touch 1, so 2 becomes the least recently used
	c.add(3, "c")

	if _, ok := c.get(2); ok {
		t.Error("entry 2 survived eviction, want it evicted as least recently used")
	}
	if v, ok := c.get(1); !ok || v != "a" {
		t.Errorf("get(1) = (%q, %v), want (\"a\", true)", v, ok)
	}
	if v, ok := c.get(3); !ok || v != "c" {
		t.Errorf("get(3) = (%q, %v), want (\"c\", true)", v, ok)
	}
}

func TestLRUCacheUpdateInPlace(t *testing.T) {
	c := newLRUCache[int, string](2)
	c.add(1, "a")
	c.add(1, "b")
	if v, ok := c.get(1); !ok || v != "b" {
		t.Errorf("get(1) = (%q, %v), want (\"b\", true)", v, ok)
	}
	if len(c.m) != 1 {
		t.Errorf("len(m) = %d, want 1 (re-adding a key must not grow the cache)", len(c.m))
	}
}

// BenchmarkCacheGet compares the cost of a lruCache lookup against
// groupcache's well-exercised LRU, over the same keys and a 50% hit rate.
func BenchmarkCacheGet(b *testing.B) {
	const size = 1000
	c := newLRUCache[int, string](size)
	gc := lru.New(size)
	for i := 0; i < size; i++ {
		val := make([]byte, 20)
		rand.Read(val)
		c.add(i, string(val))
		gc.Add(i, string(val))
	}
	b.Run("registry.lruCache", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			v, ok := c.get(i % (size * 2))
			_, _ = v, ok
		}
	})
	b.Run("groupcache.lru", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			v, ok := gc.Get(i % (size * 2))
			var val string
			if ok {
				val = v.(string)
			}
			_ = val
		}
	})
}
