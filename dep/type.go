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

/*
Package dep provides a compact representation for the type of a
dependency edge: whether it's a regular, dev, optional or test
dependency, plus whatever ecosystem-specific attributes ride alongside
it (a Maven scope, a PyPI environment marker, an npm alias).
*/
package dep

import (
	"fmt"
	"strings"

	"github.com/pinlock/resolvelib/internal/attr"
)

// Type describes one dependency edge. The zero value is a regular,
// unattributed dependency.
type Type struct {
	set attr.Set
}

// NewType builds a Type with the given value-less attributes set.
func NewType(attrs ...AttrKey) Type {
	var t Type
	for _, a := range attrs {
		t.AddAttr(a, "")
	}
	return t
}

// Clone returns an independent copy of t.
func (t *Type) Clone() Type {
	return Type{set: t.set.Clone()}
}

// AddAttr attaches an attribute to t. For the mask attributes
// (Dev/Opt/Test) value is ignored.
func (t *Type) AddAttr(key AttrKey, value string) {
	if key < 0 {
		t.set.Mask |= attr.Mask(-key)
		return
	}
	t.set.SetAttr(uint8(key), value)
}

// GetAttr returns the value of an attribute, and whether it is present.
func (t *Type) GetAttr(key AttrKey) (value string, ok bool) {
	if key < 0 {
		return "", t.set.Mask&attr.Mask(-key) != 0
	}
	return t.set.GetAttr(uint8(key))
}

// HasAttr reports whether key is present, ignoring any value.
func (t *Type) HasAttr(key AttrKey) bool {
	_, ok := t.GetAttr(key)
	return ok
}

// IsRegular reports whether t carries no attributes at all.
func (t Type) IsRegular() bool { return t.set.IsRegular() }

// Equal reports whether t and other carry the same attributes.
func (t Type) Equal(other Type) bool { return t.Compare(other) == 0 }

// Compare orders t relative to other; it has no meaning beyond providing
// a stable, total order for sorting dependency edges.
func (t Type) Compare(other Type) int { return t.set.Compare(other.set) }

func (t Type) String() string {
	s := "reg"
	if t.set.Mask != 0 {
		var ss []string
		if t.set.Mask&attr.Mask(-Dev) != 0 {
			ss = append(ss, "dev")
		}
		if t.set.Mask&attr.Mask(-Opt) != 0 {
			ss = append(ss, "opt")
		}
		if t.set.Mask&attr.Mask(-Test) != 0 {
			ss = append(ss, "test")
		}
		s = strings.Join(ss, "|")
	}
	t.set.ForEachAttr(func(key uint8, value string) {
		s += fmt.Sprintf("|%s=%q", AttrKey(key), value)
	})
	return s
}
