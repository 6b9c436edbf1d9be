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

package resolver

// OrderedMap is an insertion-ordered map from K to V. The engine relies on
// its ordering for two things: stable iteration over criteria (so
// preference ties break on discovery order) and recovering the
// most-recently-pinned identifier during backtracking.
//
// Set updates a key in place, keeping its existing position. Reinsert
// moves a key to the end, as if it had just been deleted and re-added;
// attemptToPinCriterion uses this to record which identifier was pinned most
// recently. The zero value is not usable; use NewOrderedMap.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

// Get returns the value stored for k, if any.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice is a copy
// and may be modified by the caller.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Set inserts v for a new key k, or updates it in place if k is already
// present, preserving k's original position.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Reinsert is like Set, but if k is already present it is moved to the
// end, becoming the most-recently-inserted key.
func (m *OrderedMap[K, V]) Reinsert(k K, v V) {
	if _, ok := m.values[k]; ok {
		m.removeKey(k)
	}
	m.keys = append(m.keys, k)
	m.values[k] = v
}

// PopLast removes and returns the most-recently-inserted entry.
func (m *OrderedMap[K, V]) PopLast() (k K, v V, ok bool) {
	if len(m.keys) == 0 {
		return k, v, false
	}
	last := len(m.keys) - 1
	k = m.keys[last]
	v = m.values[k]
	m.keys = m.keys[:last]
	delete(m.values, k)
	return k, v, true
}

func (m *OrderedMap[K, V]) removeKey(k K) {
	for i, existing := range m.keys {
		if existing == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}

// Clone returns a shallow, independent copy: its own key slice and value
// map, but the same V values. This is cheap and safe precisely because
// Criterion values (the V the engine stores) are logically immutable.
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	c := &OrderedMap[K, V]{
		keys:   make([]K, len(m.keys)),
		values: make(map[K]V, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// State is one frame of resolution history: the current pinning and the
// current constraint set for every identifier seen so far. A new frame is
// pushed at the start of every round; rollback pops frames. Reporters
// receive a State by value but must not mutate the maps it points to —
// they are shared with the engine's own bookkeeping.
type State[R any, C comparable, K comparable] struct {
	// Mapping is the current pinning, in the order identifiers were
	// pinned.
	Mapping *OrderedMap[K, C]
	// Criteria holds every active constraint set, in first-contributed
	// order.
	Criteria *OrderedMap[K, Criterion[R, C]]
}

func newState[R any, C comparable, K comparable]() *State[R, C, K] {
	return &State[R, C, K]{
		Mapping:  NewOrderedMap[K, C](),
		Criteria: NewOrderedMap[K, Criterion[R, C]](),
	}
}

func (s *State[R, C, K]) clone() *State[R, C, K] {
	return &State[R, C, K]{
		Mapping:  s.Mapping.Clone(),
		Criteria: s.Criteria.Clone(),
	}
}
