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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pinlock/resolvelib/version"
)

func mavenVersion(v string) Version {
	return Version{VersionKey: VersionKey{
		PackageKey:  PackageKey{System: Maven, Name: "g:a"},
		VersionType: Concrete,
		Version:     v,
	}}
}

func TestMatchRequirementSemverRange(t *testing.T) {
	vs := []Version{mavenVersion("1.0.0"), mavenVersion("1.5.0"), mavenVersion("2.0.0")}
	req := VersionKey{PackageKey: PackageKey{System: Maven, Name: "g:a"}, VersionType: Requirement, Version: "[1.0.0,2.0.0)"}

	got := MatchRequirement(req, vs)
	var gotVersions []string
	for _, v := range got {
		gotVersions = append(gotVersions, v.Version)
	}
	want := []string{"1.0.0", "1.5.0"}
	if diff := cmp.Diff(want, gotVersions); diff != "" {
		t.Errorf("MatchRequirement (-want +got):\n%s", diff)
	}
}

func TestSortVersionsAscending(t *testing.T) {
	vs := []Version{mavenVersion("2.0.0"), mavenVersion("1.0.0"), mavenVersion("1.5.0")}
	SortVersions(vs)
	var got []string
	for _, v := range vs {
		got = append(got, v.Version)
	}
	want := []string{"1.0.0", "1.5.0", "2.0.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortVersions (-want +got):\n%s", diff)
	}
}

func TestSortVersionsNPMLatestTagMovesToEnd(t *testing.T) {
	old := Version{VersionKey: VersionKey{PackageKey: PackageKey{System: NPM, Name: "p"}, Version: "0.9.0"}}
	latest := Version{VersionKey: VersionKey{PackageKey: PackageKey{System: NPM, Name: "p"}, Version: "1.0.0"}}
	latest.AddAttr(version.Tags, "latest")
	newer := Version{VersionKey: VersionKey{PackageKey: PackageKey{System: NPM, Name: "p"}, Version: "1.1.0"}}

	vs := []Version{newer, old, latest}
	SortVersions(vs)
	if got := vs[len(vs)-1].Version; got != "1.0.0" {
		t.Errorf("last version = %q, want the npm \"latest\"-tagged version 1.0.0", got)
	}
}
