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

package attr

import "testing"

func TestSetIsRegular(t *testing.T) {
	var s Set
	if !s.IsRegular() {
		t.Error("zero Set is not regular")
	}
	s.SetAttr(1, "x")
	if s.IsRegular() {
		t.Error("Set with an attribute reports regular")
	}
}

func TestSetCompareOrdersByMaskThenAttrs(t *testing.T) {
	var a, b Set
	a.Mask = 1
	b.Mask = 2
	if a.Compare(b) >= 0 {
		t.Errorf("Compare(mask=1, mask=2) = %d, want < 0", a.Compare(b))
	}

	var c, d Set
	c.SetAttr(0, "x")
	d.SetAttr(0, "y")
	if c.Compare(d) >= 0 {
		t.Errorf("Compare(x, y) = %d, want < 0", c.Compare(d))
	}
}

func TestSetMerge(t *testing.T) {
	var a, b Set
	a.Mask = 0b01
	a.SetAttr(0, "from-a")
	b.Mask = 0b10
	b.SetAttr(1, "from-b")

	merged := a.Merge(b)
	if merged.Mask != 0b11 {
		t.Errorf("merged.Mask = %b, want %b", merged.Mask, 0b11)
	}
	if v, ok := merged.GetAttr(0); !ok || v != "from-a" {
		t.Errorf("merged attr 0 = (%q, %v), want (\"from-a\", true)", v, ok)
	}
	if v, ok := merged.GetAttr(1); !ok || v != "from-b" {
		t.Errorf("merged attr 1 = (%q, %v), want (\"from-b\", true)", v, ok)
	}
}

func TestSetCloneIndependent(t *testing.T) {
	var s Set
	s.SetAttr(0, "x")
	clone := s.Clone()
	clone.SetAttr(0, "y")

	if v, _ := s.GetAttr(0); v != "x" {
		t.Errorf("original mutated by clone: got %q, want %q", v, "x")
	}
}

func TestForEachAttrAscendingOrder(t *testing.T) {
	var s Set
	s.SetAttr(5, "e")
	s.SetAttr(1, "b")
	s.SetAttr(3, "d")

	var keys []uint8
	s.ForEachAttr(func(key uint8, value string) {
		keys = append(keys, key)
	})
	want := []uint8{1, 3, 5}
	if len(keys) != len(want) {
		t.Fatalf("ForEachAttr visited %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %d, want %d", i, keys[i], want[i])
		}
	}
}
