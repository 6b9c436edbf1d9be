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

import "fmt"

// conflictError is the engine's internal control-flow signal: narrowing a
// Criterion produced an empty candidate set. It is always caught inside
// this package: by attemptToPinCriterion (which discards the attempted
// candidate), by backtrack (which keeps unwinding to an earlier state), or
// by Resolve while adding the root requirements (which reports a
// *ResolutionImpossibleError). Leaking one out of the package is a bug.
type conflictError[R any, C comparable] struct {
	criterion Criterion[R, C]
}

func (e *conflictError[R, C]) Error() string {
	return fmt.Sprintf("resolver: requirements conflicted (%d contributing requirement(s))", len(e.criterion.Information))
}

// ResolverError is implemented by every error Resolve can return.
// Callers that want to treat all engine failures uniformly can use
// errors.As with this interface; those that care which failure occurred
// should use errors.As with *ResolutionImpossibleError[R] or
// *ResolutionTooDeepError directly.
type ResolverError interface {
	error
	resolverError()
}

// ResolutionImpossibleError reports that no pinning exists which
// satisfies every active requirement, either because the root
// requirements conflict directly or because backtracking exhausted every
// alternative. Requirements holds the requirements that demonstrate the
// conflict, in discovery order.
type ResolutionImpossibleError[R any] struct {
	Requirements []R
}

func (e *ResolutionImpossibleError[R]) Error() string {
	return fmt.Sprintf("resolver: resolution impossible (%d conflicting requirement(s))", len(e.Requirements))
}

func (*ResolutionImpossibleError[R]) resolverError() {}

// ResolutionTooDeepError reports that the round budget was exhausted
// before a pinning was found. This usually indicates a dependency cycle
// that never stabilizes or pathological fan-out; callers may retry with a
// larger MaxRounds if they believe the resolution is merely large.
type ResolutionTooDeepError struct {
	MaxRounds int
}

func (e *ResolutionTooDeepError) Error() string {
	return fmt.Sprintf("resolver: resolution too deep, exceeded %d round(s)", e.MaxRounds)
}

func (*ResolutionTooDeepError) resolverError() {}
