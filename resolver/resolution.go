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

import (
	"context"
	"errors"
)

// Resolve computes a pinning that satisfies every requirement in
// requirements, calling back into provider to enumerate candidates and
// discover sub-dependencies, and into reporter (if non-nil) to observe
// progress.
//
// Resolve runs at most maxRounds rounds before giving up with a
// *ResolutionTooDeepError. Each round either pins one more identifier or
// retracts the most recently pinned one and tries the next candidate for
// it; a conflict that cannot be resolved by retracting any prior pin
// surfaces as a *ResolutionImpossibleError[R].
//
// Candidate identity during result-graph pruning is Go's == on C. If C is
// instantiated as a pointer type this matches the pointer identity the
// Provider handed out; if C is a value type, structurally equal
// candidates are treated as the same candidate even when a Provider meant
// them to be distinct. Instantiate C as a pointer type to avoid this.
func Resolve[R any, C comparable, K comparable](ctx context.Context, provider Provider[R, C, K], reporter Reporter[R, C, K], requirements []R, maxRounds int) (*Result[R, C, K], error) {
	if reporter == nil {
		reporter = NoopReporter[R, C, K]{}
	}

	root := newState[R, C, K]()
	var zeroC C
	for _, r := range requirements {
		if err := addToCriteria(ctx, provider, root.Criteria, r, zeroC, false); err != nil {
			var ce *conflictError[R, C]
			if errors.As(err, &ce) {
				return nil, &ResolutionImpossibleError[R]{Requirements: ce.criterion.requirements()}
			}
			return nil, err
		}
	}

	res := &resolution[R, C, K]{
		provider: provider,
		reporter: reporter,
		states:   []*State[R, C, K]{root, root.clone()},
	}

	reporter.Starting()

	for round := 0; round < maxRounds; round++ {
		reporter.StartingRound(round)

		state := res.top()
		unsatisfied, err := res.unsatisfiedNames(ctx, state)
		if err != nil {
			return nil, err
		}

		if len(unsatisfied) == 0 {
			reporter.Ending(*state)
			return buildResult(provider, state), nil
		}

		name, err := res.preferredName(ctx, state, unsatisfied)
		if err != nil {
			return nil, err
		}

		criterion, _ := state.Criteria.Get(name)
		pinned, causes, err := res.attemptToPinCriterion(ctx, state, name, criterion)
		if err != nil {
			return nil, err
		}

		if pinned {
			res.pushNewState()
		} else if !res.backtrack() {
			var reqs []R
			for _, c := range causes {
				reqs = append(reqs, c.requirements()...)
			}
			return nil, &ResolutionImpossibleError[R]{Requirements: reqs}
		}

		reporter.EndingRound(round, *res.top())
	}

	return nil, &ResolutionTooDeepError{MaxRounds: maxRounds}
}

// resolution holds the mutable machinery behind a single Resolve call: the
// provider and reporter it was given, and the stack of states built up as
// rounds pin and, occasionally, retract candidates.
type resolution[R any, C comparable, K comparable] struct {
	provider Provider[R, C, K]
	reporter Reporter[R, C, K]
	states   []*State[R, C, K]
}

func (res *resolution[R, C, K]) top() *State[R, C, K] {
	return res.states[len(res.states)-1]
}

func (res *resolution[R, C, K]) pushNewState() {
	res.states = append(res.states, res.top().clone())
}

// unsatisfiedNames returns, in criteria discovery order, every identifier
// whose current pin (if any) fails to satisfy one of its contributing
// requirements.
func (res *resolution[R, C, K]) unsatisfiedNames(ctx context.Context, state *State[R, C, K]) ([]K, error) {
	var unsatisfied []K
	for _, name := range state.Criteria.Keys() {
		criterion, _ := state.Criteria.Get(name)
		ok, err := isCurrentPinSatisfying(ctx, res.provider, state, name, criterion)
		if err != nil {
			return nil, err
		}
		if !ok {
			unsatisfied = append(unsatisfied, name)
		}
	}
	return unsatisfied, nil
}

func isCurrentPinSatisfying[R any, C comparable, K comparable](ctx context.Context, p Provider[R, C, K], state *State[R, C, K], name K, criterion Criterion[R, C]) (bool, error) {
	pinned, ok := state.Mapping.Get(name)
	if !ok {
		return false, nil
	}
	for _, info := range criterion.Information {
		satisfied, err := p.IsSatisfiedBy(ctx, info.Requirement, pinned)
		if err != nil {
			return false, err
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

// preferredName picks the identifier among names that the provider would
// most like to pin next: the one for which GetPreference returns the
// lowest value. Ties keep the first candidate encountered, which makes
// the choice deterministic given names' (insertion) order.
func (res *resolution[R, C, K]) preferredName(ctx context.Context, state *State[R, C, K], names []K) (K, error) {
	var best K
	var bestScore int
	haveBest := false
	for _, name := range names {
		criterion, _ := state.Criteria.Get(name)
		var pinned *C
		if c, ok := state.Mapping.Get(name); ok {
			pinned = &c
		}
		score, err := res.provider.GetPreference(ctx, pinned, criterion.Candidates, criterion.Information)
		if err != nil {
			var zero K
			return zero, err
		}
		if !haveBest || score < bestScore {
			best, bestScore, haveBest = name, score, true
		}
	}
	return best, nil
}

// attemptToPinCriterion tries every candidate of criterion, in order,
// looking for one that satisfies every contributing requirement and whose
// dependencies do not conflict with the rest of state. The first such
// candidate is pinned (moving name to the end of state.Mapping) and its
// dependencies are folded into state.Criteria. causes collects the
// conflicts encountered along the way, for use in an eventual
// *ResolutionImpossibleError if every candidate fails.
func (res *resolution[R, C, K]) attemptToPinCriterion(ctx context.Context, state *State[R, C, K], name K, criterion Criterion[R, C]) (bool, []Criterion[R, C], error) {
	var causes []Criterion[R, C]

	for _, candidate := range criterion.Candidates {
		satisfied := true
		for _, info := range criterion.Information {
			ok, err := res.provider.IsSatisfiedBy(ctx, info.Requirement, candidate)
			if err != nil {
				return false, nil, err
			}
			if !ok {
				satisfied = false
				break
			}
		}
		if !satisfied {
			continue
		}

		updated, err := getUpdatedCriteria(ctx, res.provider, state.Criteria, candidate)
		if err != nil {
			var ce *conflictError[R, C]
			if errors.As(err, &ce) {
				causes = append(causes, ce.criterion)
				continue
			}
			return false, nil, err
		}

		state.Mapping.Reinsert(name, candidate)
		state.Criteria = updated
		return true, nil, nil
	}

	return false, causes, nil
}

func getUpdatedCriteria[R any, C comparable, K comparable](ctx context.Context, p Provider[R, C, K], criteria *OrderedMap[K, Criterion[R, C]], candidate C) (*OrderedMap[K, Criterion[R, C]], error) {
	updated := criteria.Clone()
	deps, err := p.GetDependencies(ctx, candidate)
	if err != nil {
		return nil, err
	}
	for _, r := range deps {
		if err := addToCriteria(ctx, p, updated, r, candidate, true); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func addToCriteria[R any, C comparable, K comparable](ctx context.Context, p Provider[R, C, K], criteria *OrderedMap[K, Criterion[R, C]], requirement R, parent C, hasParent bool) error {
	name := p.Identify(requirement)

	var merged Criterion[R, C]
	var err error
	if existing, ok := criteria.Get(name); ok {
		merged, err = existing.mergedWith(ctx, p, requirement, parent, hasParent)
	} else {
		merged, err = criterionFromRequirement(ctx, p, requirement, parent, hasParent)
	}
	if err != nil {
		return err
	}

	criteria.Set(name, merged)
	return nil
}

// backtrack retracts the most recently pinned identifier in the last
// still-viable state, excludes the candidate that was pinned for it, and
// pushes a fresh working state so the next round can try a different
// candidate. If a state has nothing left to retract, or excluding its
// last pin empties that criterion too, backtrack discards the state
// outright and keeps unwinding. It reports false once the stack is
// exhausted, meaning no earlier pin can be changed to escape the
// conflict.
func (res *resolution[R, C, K]) backtrack() bool {
	for len(res.states) >= 2 {
		res.states = res.states[:len(res.states)-1]
		prev := res.top()

		name, candidate, ok := prev.Mapping.PopLast()
		if !ok {
			continue
		}
		criterion, ok := prev.Criteria.Get(name)
		if !ok {
			continue
		}
		excluded, err := criterion.excludedOf(candidate)
		if err != nil {
			continue
		}

		prev.Criteria.Set(name, excluded)
		res.states = append(res.states, prev.clone())
		return true
	}
	return false
}
