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
Package version provides a compact representation for metadata attached
to one version of a package: whether it has been yanked upstream, when it
was published, what it's been redirected to, and similar facts a registry
client learns about a version beyond its identity.
*/
package version

import "github.com/pinlock/resolvelib/internal/attr"

// AttrKey names an attribute that may be attached to an AttrSet.
type AttrKey int8

const (
	// Blocked indicates the version has been yanked or disabled
	// upstream and should not be offered to a resolution unless it is
	// already pinned. Its value is ignored; its presence is the
	// indicator.
	Blocked AttrKey = -0x01

	// Deleted indicates the version no longer exists upstream at all.
	// Its value is ignored; its presence is the indicator.
	Deleted AttrKey = -0x02

	// Redirect names the version (or package) this version has been
	// permanently moved to, such as a Maven relocation POM.
	Redirect AttrKey = 1

	// Published is the time the version was published upstream,
	// encoded as a Unix timestamp in seconds.
	Published AttrKey = 2

	// Tags is a comma-separated list of other names this version is
	// known by, such as npm's "latest" dist-tag.
	Tags AttrKey = 3
)

// AttrSet holds the attributes known about a single version.
type AttrSet struct {
	set attr.Set
}

// AddAttr attaches an attribute. For the mask attributes
// (Blocked/Deleted) value is ignored.
func (a *AttrSet) AddAttr(key AttrKey, value string) {
	if key < 0 {
		a.set.Mask |= attr.Mask(-key)
		return
	}
	a.set.SetAttr(uint8(key), value)
}

// GetAttr returns the value of an attribute, and whether it is present.
func (a *AttrSet) GetAttr(key AttrKey) (value string, ok bool) {
	if key < 0 {
		return "", a.set.Mask&attr.Mask(-key) != 0
	}
	return a.set.GetAttr(uint8(key))
}

// HasAttr reports whether key is present, ignoring any value.
func (a *AttrSet) HasAttr(key AttrKey) bool {
	_, ok := a.GetAttr(key)
	return ok
}

// Clone returns an independent copy of a.
func (a AttrSet) Clone() AttrSet {
	return AttrSet{set: a.set.Clone()}
}
