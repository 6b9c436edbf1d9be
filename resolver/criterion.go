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

import "context"

// Criterion is the aggregated constraint state for one identifier: every
// requirement that has contributed to it, the candidates still admissible
// given all of them, and the candidates already tried and rejected.
//
// A Criterion is logically immutable. The three functions below are the
// only ways a new one is produced; none of them mutates the Criterion
// they start from, so an older Criterion referenced by an earlier State on
// the stack stays valid.
type Criterion[R any, C comparable] struct {
	// Candidates still admissible for this identifier, in descending
	// preference order. Never empty for a Criterion stored in a State;
	// narrowing that would empty it fails instead.
	Candidates []C
	// Information is every RequirementInformation that contributed to
	// this criterion, in arrival order. Duplicates are allowed.
	Information []RequirementInformation[R, C]
	// Incompatibilities holds candidates known not to work for this
	// identifier, recorded during backtracking.
	Incompatibilities []C
}

// criterionFromRequirement builds the initial Criterion for an
// identifier that has just appeared for the first time.
func criterionFromRequirement[R any, C comparable, K comparable](ctx context.Context, p Provider[R, C, K], requirement R, parent C, hasParent bool) (Criterion[R, C], error) {
	candidates, err := p.FindMatches(ctx, requirement)
	if err != nil {
		return Criterion[R, C]{}, err
	}
	crit := Criterion[R, C]{
		Candidates:  candidates,
		Information: []RequirementInformation[R, C]{{Requirement: requirement, Parent: parent, HasParent: hasParent}},
	}
	if len(crit.Candidates) == 0 {
		return Criterion[R, C]{}, &conflictError[R, C]{criterion: crit}
	}
	return crit, nil
}

// mergedWith returns a new Criterion incorporating one more contributing
// requirement, narrowing Candidates to those that also satisfy it.
func (crit Criterion[R, C]) mergedWith(ctx context.Context, p interface {
	IsSatisfiedBy(ctx context.Context, requirement R, candidate C) (bool, error)
}, requirement R, parent C, hasParent bool) (Criterion[R, C], error) {
	information := make([]RequirementInformation[R, C], len(crit.Information), len(crit.Information)+1)
	copy(information, crit.Information)
	information = append(information, RequirementInformation[R, C]{Requirement: requirement, Parent: parent, HasParent: hasParent})

	var candidates []C
	for _, c := range crit.Candidates {
		ok, err := p.IsSatisfiedBy(ctx, requirement, c)
		if err != nil {
			return Criterion[R, C]{}, err
		}
		if ok {
			candidates = append(candidates, c)
		}
	}

	incompatibilities := append([]C(nil), crit.Incompatibilities...)
	merged := Criterion[R, C]{Candidates: candidates, Information: information, Incompatibilities: incompatibilities}
	if len(candidates) == 0 {
		return Criterion[R, C]{}, &conflictError[R, C]{criterion: merged}
	}
	return merged, nil
}

// excludedOf returns a new Criterion with candidate marked incompatible
// and removed from Candidates. It is used only during backtracking.
func (crit Criterion[R, C]) excludedOf(candidate C) (Criterion[R, C], error) {
	incompatibilities := make([]C, len(crit.Incompatibilities), len(crit.Incompatibilities)+1)
	copy(incompatibilities, crit.Incompatibilities)
	incompatibilities = append(incompatibilities, candidate)

	var candidates []C
	for _, c := range crit.Candidates {
		if c != candidate {
			candidates = append(candidates, c)
		}
	}

	excluded := Criterion[R, C]{Candidates: candidates, Information: crit.Information, Incompatibilities: incompatibilities}
	if len(candidates) == 0 {
		return Criterion[R, C]{}, &conflictError[R, C]{criterion: excluded}
	}
	return excluded, nil
}

// requirements returns the Requirement half of every contributing
// RequirementInformation, in arrival order.
func (crit Criterion[R, C]) requirements() []R {
	reqs := make([]R, len(crit.Information))
	for i, info := range crit.Information {
		reqs[i] = info.Requirement
	}
	return reqs
}
