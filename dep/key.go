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

package dep

// AttrKey names an attribute that may be attached to a Type.
//
// Its specific values are an implementation detail of this package; code
// outside it should only use the named constants.
type AttrKey int8

const (
	// maskLen is how many of the negative AttrKey values below are
	// packed into Type's bitmask rather than its keyed attribute map.
	maskLen = 3

	// Dev indicates the dependency is only required to develop a
	// package (build tooling, code generators), not to use it.
	// Its value is ignored; its presence is the indicator.
	Dev AttrKey = -0x01

	// Opt indicates the dependency is optional: resolution may proceed
	// without it, but picking it up enables extra functionality.
	// Its value is ignored; its presence is the indicator.
	Opt AttrKey = -0x02

	// Test indicates the dependency is required only to build or run a
	// package's own test suite.
	// Its value is ignored; its presence is the indicator.
	Test AttrKey = -0x04

	// Scope holds a dependency scope that doesn't fit Dev/Opt/Test, for
	// ecosystems with their own scope vocabulary: "provided" or
	// "runtime" for Maven, "peer" for npm, and so on.
	Scope AttrKey = 1

	// Environment holds a marker expression that restricts when a
	// dependency applies, such as a PyPI PEP 508 environment marker.
	Environment AttrKey = 2

	// KnownAs is the name under which a dependency is referenced by its
	// dependent, when that differs from the depended-on package's own
	// name (an npm alias, for instance).
	KnownAs AttrKey = 3

	// Exclusions lists transitive dependencies to drop, encoded as a
	// '|'-separated list of "group:artifact" pairs (a '*' component is a
	// wildcard), matching Maven's <exclusions> element.
	Exclusions AttrKey = 4
)

func (k AttrKey) String() string {
	switch k {
	case Dev:
		return "Dev"
	case Opt:
		return "Opt"
	case Test:
		return "Test"
	case Scope:
		return "Scope"
	case Environment:
		return "Environment"
	case KnownAs:
		return "KnownAs"
	case Exclusions:
		return "Exclusions"
	default:
		return "AttrKey(?)"
	}
}
