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
	"context"
	"sync"
)

// DefaultCacheSize is the number of entries CachingClient keeps per
// method when no explicit size is given.
const DefaultCacheSize = 4096

// CachingClient wraps a Client with a small LRU memoization layer. A
// resolution routinely asks the same package for its versions or
// dependencies many times over as different candidates are tried and
// backtracked; caching those lookups turns what would be a network round
// trip (for an APIClient) into a map lookup. It is safe for concurrent
// use.
type CachingClient struct {
	client Client

	mu           sync.Mutex
	versions     *lruCache[VersionKey, Version]
	allVersions  *lruCache[PackageKey, []Version]
	requirements *lruCache[VersionKey, []RequirementVersion]
	matches      *lruCache[VersionKey, []Version]
}

// NewCachingClient wraps client with an LRU cache holding up to size
// entries per method. A size of 0 uses DefaultCacheSize.
func NewCachingClient(client Client, size int) *CachingClient {
	if size == 0 {
		size = DefaultCacheSize
	}
	return &CachingClient{
		client:       client,
		versions:     newLRUCache[VersionKey, Version](size),
		allVersions:  newLRUCache[PackageKey, []Version](size),
		requirements: newLRUCache[VersionKey, []RequirementVersion](size),
		matches:      newLRUCache[VersionKey, []Version](size),
	}
}

func (c *CachingClient) Version(ctx context.Context, vk VersionKey) (Version, error) {
	c.mu.Lock()
	if v, ok := c.versions.get(vk); ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := c.client.Version(ctx, vk)
	if err != nil {
		return Version{}, err
	}
	c.mu.Lock()
	c.versions.add(vk, v)
	c.mu.Unlock()
	return v, nil
}

func (c *CachingClient) Versions(ctx context.Context, pk PackageKey) ([]Version, error) {
	c.mu.Lock()
	if vs, ok := c.allVersions.get(pk); ok {
		c.mu.Unlock()
		return vs, nil
	}
	c.mu.Unlock()

	vs, err := c.client.Versions(ctx, pk)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.allVersions.add(pk, vs)
	c.mu.Unlock()
	return vs, nil
}

func (c *CachingClient) Requirements(ctx context.Context, vk VersionKey) ([]RequirementVersion, error) {
	c.mu.Lock()
	if rs, ok := c.requirements.get(vk); ok {
		c.mu.Unlock()
		return rs, nil
	}
	c.mu.Unlock()

	rs, err := c.client.Requirements(ctx, vk)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.requirements.add(vk, rs)
	c.mu.Unlock()
	return rs, nil
}

func (c *CachingClient) MatchingVersions(ctx context.Context, vk VersionKey) ([]Version, error) {
	c.mu.Lock()
	if vs, ok := c.matches.get(vk); ok {
		c.mu.Unlock()
		return vs, nil
	}
	c.mu.Unlock()

	vs, err := c.client.MatchingVersions(ctx, vk)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.matches.add(vk, vs)
	c.mu.Unlock()
	return vs, nil
}
