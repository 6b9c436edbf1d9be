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
	"sort"
	"strings"

	"deps.dev/util/semver"

	"github.com/pinlock/resolvelib/dep"
	"github.com/pinlock/resolvelib/version"
)

// SortVersions sorts vs in ascending semver order. npm gets special
// handling: a version tagged "latest" is moved to the end unless doing
// so would prefer a pre-release over an available stable release.
func SortVersions(vs []Version) {
	if len(vs) == 0 {
		return
	}
	if vs[0].System == NPM {
		sortNPMVersions(vs)
		return
	}
	sys := vs[0].System.Semver()
	parsed := make(map[VersionKey]*semver.Version, len(vs))
	for _, v := range vs {
		if p, err := sys.Parse(v.Version); err == nil {
			parsed[v.VersionKey] = p
		}
	}
	sort.Slice(vs, func(i, j int) bool {
		pi, pj := parsed[vs[i].VersionKey], parsed[vs[j].VersionKey]
		if pi == nil || pj == nil {
			return vs[i].Version < vs[j].Version
		}
		return pi.Compare(pj) < 0
	})
}

func sortNPMVersions(vs []Version) {
	parsed := make(map[VersionKey]*semver.Version, len(vs))
	for _, v := range vs {
		if p, err := semver.NPM.Parse(v.Version); err == nil {
			parsed[v.VersionKey] = p
		}
	}
	sort.Slice(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		pa, pb := parsed[a.VersionKey], parsed[b.VersionKey]
		if (pa != nil) != (pb != nil) {
			return pa != nil
		}
		if pa != nil {
			if c := pa.Compare(pb); c != 0 {
				return c < 0
			}
		}
		return a.Version < b.Version
	})

	allPrerelease := true
	latestIdx := -1
	latestIsPrerelease := false
	for i, v := range vs {
		if p := parsed[v.VersionKey]; p != nil {
			allPrerelease = allPrerelease && p.IsPrerelease()
		} else {
			allPrerelease = false
		}
		if tags, _ := v.GetAttr(version.Tags); strings.Contains(tags, "latest") {
			latestIdx = i
			latestIsPrerelease = parsed[v.VersionKey] != nil && parsed[v.VersionKey].IsPrerelease()
		}
	}
	if latestIdx >= 0 && !(latestIsPrerelease && !allPrerelease) {
		latest := vs[latestIdx]
		copy(vs[latestIdx:], vs[latestIdx+1:])
		vs[len(vs)-1] = latest
	}
}

// SortDependencies sorts deps into the order a resolution for its
// ecosystem expects to see them. Most ecosystems have no such order and
// rely on discovery order instead; npm does not, because the same
// dependency set in a different order can change which version wins a
// conflict.
func SortDependencies(deps []RequirementVersion) {
	if len(deps) == 0 || deps[0].System != NPM {
		return
	}
	devType := dep.NewType(dep.Dev)
	sort.Slice(deps, func(i, j int) bool {
		a, b := deps[i], deps[j]
		if da, db := a.Type.Equal(devType), b.Type.Equal(devType); da != db {
			return db
		}
		na, nb := a.Name, b.Name
		if n, ok := a.Type.GetAttr(dep.KnownAs); ok {
			na = n
		}
		if n, ok := b.Type.GetAttr(dep.KnownAs); ok {
			nb = n
		}
		la, lb := strings.ToLower(na), strings.ToLower(nb)
		if la != lb {
			return la < lb
		}
		return na > nb
	})
}

// MatchRequirement returns the versions from vs admissible for req, in
// the preference order its System expects a resolver to try them in.
func MatchRequirement(req VersionKey, vs []Version) []Version {
	if req.System == NPM {
		return matchNPMRequirement(req, vs)
	}
	return matchRequirement(req, vs)
}

func matchNPMRequirement(req VersionKey, vs []Version) []Version {
	sortNPMVersions(vs)
	constraint, err := req.System.Semver().ParseConstraint(req.Version)
	if err != nil {
		for _, v := range vs {
			if req.Version == v.Version {
				return []Version{v}
			}
			tags, _ := v.GetAttr(version.Tags)
			for _, tag := range strings.Split(tags, ",") {
				if req.Version == tag {
					return []Version{v}
				}
			}
		}
		return nil
	}
	matches := make([]Version, 0, len(vs))
	for _, v := range vs {
		if constraint.Match(v.Version) {
			matches = append(matches, v)
		}
	}
	return matches
}

func matchRequirement(req VersionKey, vs []Version) []Version {
	constraint, err := req.System.Semver().ParseConstraint(req.Version)
	matches := make([]Version, 0, len(vs))
	for _, v := range vs {
		if constraint != nil && err == nil {
			if !constraint.Match(v.Version) {
				continue
			}
		} else if req.Version != v.Version {
			continue
		}
		matches = append(matches, v)
	}
	SortVersions(matches)
	return matches
}
