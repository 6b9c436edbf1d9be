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
Package registry is a resolver.Provider for real package ecosystems: npm,
Maven and PyPI. It turns the generic resolver engine into something that
can resolve an actual dependency graph, sourcing package metadata from a
Client — either the deps.dev Insights API or an in-memory fixture.
*/
package registry

import (
	"fmt"
	"sort"

	apipb "deps.dev/api/v3"
	"deps.dev/util/pypi"
	"deps.dev/util/semver"

	"github.com/pinlock/resolvelib/dep"
)

// System nominates a packaging ecosystem.
type System byte

const (
	UnknownSystem = System(apipb.System_SYSTEM_UNSPECIFIED)
	NPM           = System(apipb.System_NPM)
	Maven         = System(apipb.System_MAVEN)
	PyPI          = System(apipb.System_PYPI)
)

func (s System) String() string {
	return apipb.System(s).String()
}

// Semver returns the semver.System that parses and compares versions for
// s.
func (s System) Semver() semver.System {
	switch s {
	case NPM:
		return semver.NPM
	case Maven:
		return semver.Maven
	case PyPI:
		return semver.PyPI
	}
	return semver.DefaultSystem
}

// PackageKey uniquely identifies a package within its System.
type PackageKey struct {
	System
	Name string
}

func (k PackageKey) String() string {
	return k.System.String() + ":" + k.Name
}

// NewPackageKey returns a PackageKey with name canonicalized the way sys
// canonicalizes it for comparison purposes: PyPI names are folded per PEP
// 503 (runs of [-_.] collapsed to a single "-", lowercased) so that, say,
// "Flask_SQLAlchemy" and "flask-sqlalchemy" identify the same package; other
// systems are left as given.
func NewPackageKey(sys System, name string) PackageKey {
	if sys == PyPI {
		name = pypi.CanonPackageName(name)
	}
	return PackageKey{System: sys, Name: name}
}

// Compare orders pk1 relative to pk2 by System then Name.
func (pk1 PackageKey) Compare(pk2 PackageKey) int {
	if pk1.System != pk2.System {
		if pk1.System < pk2.System {
			return -1
		}
		return 1
	}
	if pk1.Name != pk2.Name {
		if pk1.Name < pk2.Name {
			return -1
		}
		return 1
	}
	return 0
}

// VersionType distinguishes a concrete version from a requirement on a
// range of versions.
type VersionType byte

const (
	UnknownVersionType VersionType = iota
	// Concrete identifies one specific, installable version.
	Concrete
	// Requirement identifies a range or constraint, in whatever syntax
	// the package's System uses in its manifests.
	Requirement
)

// VersionKey uniquely identifies a version (Concrete) or a requirement
// (Requirement) of a package.
type VersionKey struct {
	PackageKey
	VersionType
	Version string
}

func (k VersionKey) String() string {
	return fmt.Sprintf("%s[%d:%s]", k.PackageKey, k.VersionType, k.Version)
}

// Compare orders vk1 relative to vk2 by PackageKey, then VersionType,
// then Version.
func (vk1 VersionKey) Compare(vk2 VersionKey) int {
	if c := vk1.PackageKey.Compare(vk2.PackageKey); c != 0 {
		return c
	}
	if vk1.VersionType != vk2.VersionType {
		if vk1.VersionType < vk2.VersionType {
			return -1
		}
		return 1
	}
	if vk1.Version != vk2.Version {
		if vk1.Version < vk2.Version {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether vk1 sorts before vk2.
func (vk1 VersionKey) Less(vk2 VersionKey) bool { return vk1.Compare(vk2) < 0 }

// SortVersionKeys sorts ks in place by VersionKey.Less.
func SortVersionKeys(ks []VersionKey) {
	sort.Slice(ks, func(i, j int) bool { return ks[i].Less(ks[j]) })
}

// RequirementVersion is a direct dependency: a version requirement plus
// the kind of dependency edge it represents (dev, optional, and so on).
type RequirementVersion struct {
	VersionKey
	Type dep.Type
}

func (d RequirementVersion) String() string {
	s := d.VersionKey.String()
	if !d.Type.IsRegular() {
		s = d.Type.String() + "|" + s
	}
	return s
}
