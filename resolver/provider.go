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

// RequirementInformation pairs a contributing Requirement with the
// Candidate whose dependency list produced it. HasParent is false for a
// root requirement, supplied directly to Resolve rather than discovered
// through a candidate's dependencies; Parent is then the zero value of C
// and must not be used.
type RequirementInformation[R any, C comparable] struct {
	Requirement R
	Parent      C
	HasParent   bool
}

// Provider supplies everything the engine needs to know about a
// dependency ecosystem without the engine needing to understand
// requirement or candidate syntax itself.
//
// R (Requirement) and C (Candidate) are opaque to the engine. K
// (Identifier) must be comparable: the engine groups every Requirement
// and Candidate that compete for the same pinning slot by their K, and
// uses Go's built-in equality on C as an identity analogue when pruning
// the result graph (see Resolve's doc comment for the caveat this
// implies).
//
// Every method takes a context.Context and returns an error. The engine
// does not interpret a returned error as a conflict: it propagates
// unchanged out of Resolve, exactly as an exception from a provider
// callback would propagate out of the original Python implementation this
// engine is modeled on.
type Provider[R any, C comparable, K comparable] interface {
	// Identify returns the identifier a Requirement resolves against.
	Identify(requirement R) K

	// IdentifyCandidate returns the identifier a Candidate provides.
	IdentifyCandidate(candidate C) K

	// FindMatches returns every admissible Candidate for requirement,
	// ordered by descending preference (the most preferred candidate
	// first). The engine tries candidates in this order and pins the
	// first one that satisfies every contributing requirement and does
	// not conflict with the rest of the current state.
	FindMatches(ctx context.Context, requirement R) ([]C, error)

	// IsSatisfiedBy reports whether candidate satisfies requirement.
	IsSatisfiedBy(ctx context.Context, requirement R, candidate C) (bool, error)

	// GetDependencies returns the sub-requirements candidate imposes.
	GetDependencies(ctx context.Context, candidate C) ([]R, error)

	// GetPreference orders pending criteria for pinning: the engine pins
	// the criterion for which this returns the lowest value first. pinned
	// is nil when the identifier has no current pin.
	GetPreference(ctx context.Context, pinned *C, candidates []C, information []RequirementInformation[R, C]) (int, error)
}

// Reporter observes a resolution as it runs. Every method is purely
// observational: the engine ignores whatever a Reporter does and never
// calls one concurrently. Implementations must not mutate the State they
// are given; it is shared with the engine's own bookkeeping.
type Reporter[R any, C comparable, K comparable] interface {
	Starting()
	StartingRound(round int)
	EndingRound(round int, state State[R, C, K])
	Ending(state State[R, C, K])
}

// NoopReporter implements Reporter by doing nothing. It is substituted
// automatically when Resolve is given a nil Reporter.
type NoopReporter[R any, C comparable, K comparable] struct{}

func (NoopReporter[R, C, K]) Starting()                       {}
func (NoopReporter[R, C, K]) StartingRound(int)                {}
func (NoopReporter[R, C, K]) EndingRound(int, State[R, C, K])  {}
func (NoopReporter[R, C, K]) Ending(State[R, C, K])            {}
