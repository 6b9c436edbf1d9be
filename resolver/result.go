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

// Result is the outcome of a successful Resolve: a consistent pinning,
// the dependency graph that justifies it, and the final constraint set
// behind every pinned identifier.
//
// Mapping contains only identifiers reachable from the root along edges in
// Graph; an identifier that was pinned at some point during the search but
// whose only route to root was later cut by backtracking does not appear
// in Mapping or Graph. Criteria holds every criterion of the final state,
// reachable or not.
type Result[R any, C comparable, K comparable] struct {
	Mapping  map[K]C
	Graph    *Graph[K]
	Criteria map[K]Criterion[R, C]
}

// buildResult prunes state down to the identifiers with a route back to
// the root requirements and renders that reachable subset as a Result.
//
// An identifier can in principle depend on itself, directly or through a
// cycle, without ever routing back to the root; visiting guards each
// depth-first probe against that case so hasRoute always terminates
// instead of recursing forever.
func buildResult[R any, C comparable, K comparable](provider Provider[R, C, K], state *State[R, C, K]) *Result[R, C, K] {
	connected := make(map[K]bool)

	var hasRoute func(k K, visiting map[K]bool) bool
	hasRoute = func(k K, visiting map[K]bool) bool {
		if connected[k] {
			return true
		}
		if visiting[k] {
			return false
		}
		criterion, ok := state.Criteria.Get(k)
		if !ok {
			return false
		}

		visiting[k] = true
		defer delete(visiting, k)

		for _, info := range criterion.Information {
			if !info.HasParent {
				connected[k] = true
				return true
			}
			parentKey := provider.IdentifyCandidate(info.Parent)
			if pinned, ok := state.Mapping.Get(parentKey); !ok || pinned != info.Parent {
				continue
			}
			if hasRoute(parentKey, visiting) {
				connected[k] = true
				return true
			}
		}
		return false
	}

	mapping := make(map[K]C)
	criteria := make(map[K]Criterion[R, C])
	graph := NewGraph[K]()

	for _, k := range state.Criteria.Keys() {
		criteria[k], _ = state.Criteria.Get(k)
	}

	for _, k := range state.Mapping.Keys() {
		if !hasRoute(k, make(map[K]bool)) {
			continue
		}
		candidate, _ := state.Mapping.Get(k)
		mapping[k] = candidate
		graph.Add(KeyVertex(k))
	}

	for _, k := range state.Criteria.Keys() {
		if _, ok := mapping[k]; !ok {
			continue
		}
		for _, info := range criteria[k].Information {
			if !info.HasParent {
				graph.Connect(RootVertex[K](), KeyVertex(k))
				continue
			}
			parentKey := provider.IdentifyCandidate(info.Parent)
			if pinned, ok := mapping[parentKey]; !ok || pinned != info.Parent {
				continue
			}
			graph.Connect(KeyVertex(parentKey), KeyVertex(k))
		}
	}

	return &Result[R, C, K]{Mapping: mapping, Graph: graph, Criteria: criteria}
}
