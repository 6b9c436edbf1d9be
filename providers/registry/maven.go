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
	"errors"
	"strings"

	"deps.dev/util/maven"

	"github.com/pinlock/resolvelib/dep"
)

// MavenDepType translates a maven.Dependency's scope, optionality and
// exclusions into a dep.Type.
func MavenDepType(d maven.Dependency) dep.Type {
	var dt dep.Type
	if d.Optional == "true" {
		dt.AddAttr(dep.Opt, "")
	}
	if d.Scope == "test" {
		dt.AddAttr(dep.Test, "")
	} else if d.Scope != "" && d.Scope != "compile" {
		dt.AddAttr(dep.Scope, string(d.Scope))
	}
	if len(d.Exclusions) > 0 {
		var parts []string
		for _, e := range d.Exclusions {
			parts = append(parts, string(e.GroupID)+":"+string(e.ArtifactID))
		}
		dt.AddAttr(dep.Exclusions, strings.Join(parts, "|"))
	}
	return dt
}

// MavenDepTypeToDependency reconstructs the maven.Dependency fields
// MavenDepType is able to express. It is the inverse used when a
// provider needs to hand a requirement back to the Maven tooling, for
// instance to re-evaluate an exclusion.
func MavenDepTypeToDependency(typ dep.Type) (maven.Dependency, error) {
	var result maven.Dependency
	if _, ok := typ.GetAttr(dep.Opt); ok {
		result.Optional = "true"
	}
	if _, ok := typ.GetAttr(dep.Test); ok {
		result.Scope = "test"
	}
	if s, ok := typ.GetAttr(dep.Scope); ok {
		if result.Scope != "" {
			return maven.Dependency{}, errors.New("registry: dep.Type encodes both Test and Scope")
		}
		result.Scope = maven.String(s)
	}
	if e, ok := typ.GetAttr(dep.Exclusions); ok {
		for _, ex := range strings.Split(e, "|") {
			i := strings.Index(ex, ":")
			if i < 0 {
				continue
			}
			result.Exclusions = append(result.Exclusions, maven.Exclusion{
				GroupID:    maven.String(ex[:i]),
				ArtifactID: maven.String(ex[i+1:]),
			})
		}
	}
	return result, nil
}
