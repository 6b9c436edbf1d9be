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
	"strings"

	"github.com/pinlock/resolvelib/dep"
)

// Environment is the subset of a PEP 508 environment a Provider
// evaluates a dependency's marker against: the extras the dependent has
// requested, plus whatever interpreter facts the caller cares to supply
// ("python_version", "sys_platform", and so on).
type Environment struct {
	Extras map[string]bool
	Vars   map[string]string
}

// DefaultEnvironment returns an Environment with no extras enabled,
// suitable when a caller wants base (non-extra) dependencies only.
func DefaultEnvironment() Environment {
	return Environment{Extras: map[string]bool{}, Vars: map[string]string{}}
}

// MarkerSatisfied reports whether typ's Environment attribute (a PEP 508
// marker expression, if the dependency carries one) is satisfied by env.
// A dependency with no marker at all is always satisfied.
//
// This supports the common shape of marker actually emitted by PyPI
// metadata: a conjunction of `and`-joined comparisons, optionally gated
// by an `extra == "name"` clause, rather than the full PEP 508 grammar.
// An expression this evaluator cannot parse is treated as satisfied,
// matching the provider's bias toward over- rather than under-matching
// candidates (the resolver's IsSatisfiedBy narrowing then has a chance to
// reject the candidate on other grounds; an environment marker false
// negative is silent and much harder to diagnose than a few superfluous
// candidates).
func MarkerSatisfied(typ dep.Type, env Environment) bool {
	marker, ok := typ.GetAttr(dep.Environment)
	if !ok || strings.TrimSpace(marker) == "" {
		return true
	}
	if strings.Contains(marker, " or ") || strings.Contains(marker, "(") {
		return true // beyond the and-joined shape this evaluator parses.
	}
	for _, clause := range strings.Split(marker, " and ") {
		if !evalClause(strings.TrimSpace(clause), env) {
			return false
		}
	}
	return true
}

// evalClause evaluates one `lhs op rhs` comparison, or an `extra == "x"`
// membership test. lhs and rhs may appear in either order, matching how
// PyPI metadata writes both `extra == "name"` and `"name" == extra`.
func evalClause(clause string, env Environment) bool {
	for _, op := range []string{"==", "!=", ">=", "<=", ">", "<"} {
		i := strings.Index(clause, op)
		if i < 0 {
			continue
		}
		lhs := strings.TrimSpace(clause[:i])
		rhs := strings.TrimSpace(clause[i+len(op):])
		return evalComparison(unquote(lhs), op, unquote(rhs), env)
	}
	return true
}

func evalComparison(lhs, op, rhs string, env Environment) bool {
	if lhs == "extra" {
		return evalExtra(op, rhs, env)
	}
	if rhs == "extra" {
		return evalExtra(op, lhs, env)
	}

	lv, lIsVar := resolveVar(lhs, env)
	rv, rIsVar := resolveVar(rhs, env)
	if !lIsVar && !rIsVar {
		return true // nothing we can evaluate; don't reject on it.
	}

	switch op {
	case "==":
		return lv == rv
	case "!=":
		return lv != rv
	default:
		// Version-range comparisons on interpreter facts (e.g.
		// python_version >= "3.8") aren't evaluated; treat as
		// satisfied rather than risk an incorrect rejection.
		return true
	}
}

func evalExtra(op, name string, env Environment) bool {
	enabled := env.Extras[name]
	if op == "!=" {
		return !enabled
	}
	return enabled
}

// resolveVar looks up name in env.Vars, reporting whether it names a
// known variable at all (as opposed to being a quoted literal).
func resolveVar(s string, env Environment) (string, bool) {
	if v, ok := env.Vars[s]; ok {
		return v, true
	}
	return s, false
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
