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
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// requirement and candidate are the fixture R/C types shared by every test
// in this file: a requirement names a package and a minimum version; a
// candidate is a concrete, deduplicated package version carrying the
// dependencies it imposes.
type requirement struct {
	name string
	min  int
}

type candidate struct {
	name string
	ver  int
	deps []requirement
}

// fixtureProvider resolves against an in-memory package universe: name ->
// every available version, highest first, each with its own dependency
// list. It never errors; GetPreference prefers the identifier with fewer
// admissible candidates and leaves ties to the engine, which keeps the
// first identifier in criteria order.
type fixtureProvider struct {
	universe map[string][]*candidate
}

func newFixtureProvider() *fixtureProvider {
	return &fixtureProvider{universe: make(map[string][]*candidate)}
}

// add registers one version of a package, given highest-version-first
// within a name by construction order of the test's calls to add.
func (f *fixtureProvider) add(name string, ver int, deps ...requirement) *candidate {
	c := &candidate{name: name, ver: ver, deps: deps}
	f.universe[name] = append(f.universe[name], c)
	return c
}

func (f *fixtureProvider) Identify(r requirement) string { return r.name }

func (f *fixtureProvider) IdentifyCandidate(c *candidate) string { return c.name }

func (f *fixtureProvider) FindMatches(ctx context.Context, r requirement) ([]*candidate, error) {
	var out []*candidate
	for _, c := range f.universe[r.name] {
		if c.ver >= r.min {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fixtureProvider) IsSatisfiedBy(ctx context.Context, r requirement, c *candidate) (bool, error) {
	return c.ver >= r.min, nil
}

func (f *fixtureProvider) GetDependencies(ctx context.Context, c *candidate) ([]requirement, error) {
	return c.deps, nil
}

func (f *fixtureProvider) GetPreference(ctx context.Context, pinned **candidate, candidates []*candidate, information []RequirementInformation[requirement, *candidate]) (int, error) {
	return len(candidates), nil
}

var errBoom = errors.New("fixture: boom")

// erroringProvider wraps a fixtureProvider and fails IsSatisfiedBy on its
// Nth call, to exercise Resolve's plain error propagation path.
type erroringProvider struct {
	*fixtureProvider
	failIsSatisfiedByCall int
	calls                 int
}

func (e *erroringProvider) IsSatisfiedBy(ctx context.Context, r requirement, c *candidate) (bool, error) {
	e.calls++
	if e.calls == e.failIsSatisfiedByCall {
		return false, errBoom
	}
	return e.fixtureProvider.IsSatisfiedBy(ctx, r, c)
}

func sortedNames(m map[string]*candidate) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func TestResolveSingleRoot(t *testing.T) {
	p := newFixtureProvider()
	p.add("a", 1)

	result, err := Resolve[requirement, *candidate, string](context.Background(), p, nil, []requirement{{name: "a", min: 1}}, 10)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := len(result.Mapping), 1; got != want {
		t.Fatalf("len(Mapping) = %d, want %d", got, want)
	}
	if result.Mapping["a"].ver != 1 {
		t.Errorf("Mapping[a].ver = %d, want 1", result.Mapping["a"].ver)
	}
}

func TestResolveChain(t *testing.T) {
	p := newFixtureProvider()
	p.add("a", 1, requirement{name: "b", min: 1})
	p.add("b", 1, requirement{name: "c", min: 1})
	p.add("c", 1)

	result, err := Resolve[requirement, *candidate, string](context.Background(), p, nil, []requirement{{name: "a", min: 1}}, 10)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, sortedNames(result.Mapping)); diff != "" {
		t.Errorf("pinned identifiers (-want +got):\n%s", diff)
	}

	gotEdges := map[string]string{}
	for _, e := range result.Graph.Edges() {
		if e.From.IsRoot {
			continue
		}
		gotEdges[e.From.Key] = e.To.Key
	}
	want := map[string]string{"a": "b", "b": "c"}
	if diff := cmp.Diff(want, gotEdges); diff != "" {
		t.Errorf("dependency edges (-want +got):\n%s", diff)
	}
}

func TestResolveBacktracksOnConflict(t *testing.T) {
	p := newFixtureProvider()
	// a's newest version requires c>=2, which doesn't exist; a's older
	// version requires c>=1, which does. The resolver must reject a@2
	// and pin a@1 instead.
	p.add("a", 2, requirement{name: "c", min: 2})
	p.add("a", 1, requirement{name: "c", min: 1})
	p.add("c", 1)
	p.add("b", 1, requirement{name: "c", min: 1})

	result, err := Resolve[requirement, *candidate, string](context.Background(), p, nil,
		[]requirement{{name: "a", min: 1}, {name: "b", min: 1}}, 20)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := result.Mapping["a"].ver; got != 1 {
		t.Errorf("Mapping[a].ver = %d, want 1 (backtracked pin)", got)
	}
	if got := result.Mapping["c"].ver; got != 1 {
		t.Errorf("Mapping[c].ver = %d, want 1", got)
	}
}

func TestResolveImpossible(t *testing.T) {
	p := newFixtureProvider()
	p.add("a", 1, requirement{name: "c", min: 2})
	p.add("b", 1, requirement{name: "c", min: 1})
	p.add("c", 1)

	_, err := Resolve[requirement, *candidate, string](context.Background(), p, nil,
		[]requirement{{name: "a", min: 1}, {name: "b", min: 1}}, 20)

	var impossible *ResolutionImpossibleError[requirement]
	if !errors.As(err, &impossible) {
		t.Fatalf("Resolve error = %v, want *ResolutionImpossibleError", err)
	}
	if len(impossible.Requirements) == 0 {
		t.Errorf("ResolutionImpossibleError.Requirements is empty, want at least one conflicting requirement")
	}
}

func TestResolveRespectsCycle(t *testing.T) {
	p := newFixtureProvider()
	p.add("a", 1, requirement{name: "b", min: 1})
	p.add("b", 1, requirement{name: "a", min: 1})

	result, err := Resolve[requirement, *candidate, string](context.Background(), p, nil, []requirement{{name: "a", min: 1}}, 10)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, sortedNames(result.Mapping)); diff != "" {
		t.Errorf("pinned identifiers (-want +got):\n%s", diff)
	}
}

func TestResolveTooDeep(t *testing.T) {
	p := newFixtureProvider()
	p.add("a", 1, requirement{name: "b", min: 1})
	p.add("b", 1)

	_, err := Resolve[requirement, *candidate, string](context.Background(), p, nil, []requirement{{name: "a", min: 1}}, 1)

	var tooDeep *ResolutionTooDeepError
	if !errors.As(err, &tooDeep) {
		t.Fatalf("Resolve error = %v, want *ResolutionTooDeepError", err)
	}
	if tooDeep.MaxRounds != 1 {
		t.Errorf("MaxRounds = %d, want 1", tooDeep.MaxRounds)
	}
}

func TestResolvePropagatesProviderError(t *testing.T) {
	p := &erroringProvider{fixtureProvider: newFixtureProvider(), failIsSatisfiedByCall: 1}
	p.add("a", 1)

	_, err := Resolve[requirement, *candidate, string](context.Background(), p, nil, []requirement{{name: "a", min: 1}}, 10)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Resolve error = %v, want errBoom", err)
	}

	var resolverErr ResolverError
	if errors.As(err, &resolverErr) {
		t.Errorf("plain provider error wrongly satisfies ResolverError")
	}
}

type recordingReporter struct {
	startingRounds int
	endingRounds   int
	ended          bool
}

func (r *recordingReporter) Starting()                                                   {}
func (r *recordingReporter) StartingRound(int)                                           { r.startingRounds++ }
func (r *recordingReporter) EndingRound(int, State[requirement, *candidate, string])      { r.endingRounds++ }
func (r *recordingReporter) Ending(State[requirement, *candidate, string])                { r.ended = true }

func TestResolveReportsProgress(t *testing.T) {
	p := newFixtureProvider()
	p.add("a", 1, requirement{name: "b", min: 1})
	p.add("b", 1)

	reporter := &recordingReporter{}
	_, err := Resolve[requirement, *candidate, string](context.Background(), p, reporter, []requirement{{name: "a", min: 1}}, 10)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reporter.ended {
		t.Error("Ending was never called")
	}
	if reporter.startingRounds == 0 {
		t.Error("StartingRound was never called")
	}
}

func TestOrderedMapSetPreservesPositionReinsertMoves(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10) // update in place, must not move "a"
	if diff := cmp.Diff([]string{"a", "b"}, m.Keys()); diff != "" {
		t.Errorf("Keys after Set update (-want +got):\n%s", diff)
	}

	m.Reinsert("a", 11) // must move "a" to the end
	if diff := cmp.Diff([]string{"b", "a"}, m.Keys()); diff != "" {
		t.Errorf("Keys after Reinsert (-want +got):\n%s", diff)
	}

	k, v, ok := m.PopLast()
	if !ok || k != "a" || v != 11 {
		t.Errorf("PopLast = (%v, %v, %v), want (a, 11, true)", k, v, ok)
	}
}

func TestOrderedMapPopLastOnEmpty(t *testing.T) {
	m := NewOrderedMap[string, int]()
	_, _, ok := m.PopLast()
	if ok {
		t.Error("PopLast on empty map reported ok=true")
	}
}

func TestOrderedMapCloneIsIndependent(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	clone := m.Clone()
	clone.Set("b", 2)
	if m.Len() != 1 {
		t.Errorf("original map mutated by clone's Set: len = %d, want 1", m.Len())
	}
	if diff := cmp.Diff([]string{"a", "b"}, clone.Keys(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("clone Keys (-want +got):\n%s", diff)
	}
}
