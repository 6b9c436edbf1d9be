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

/*
Package resolver implements a generic, provider-driven dependency
resolution engine.

Given a set of root requirements and a Provider that knows how to
enumerate candidates and inspect their sub-dependencies, Resolve computes a
consistent pinning — one concrete candidate per identifier — that
simultaneously satisfies every active requirement, or reports that no such
pinning exists.

The engine has no opinion on what a requirement or candidate looks like;
both are opaque type parameters. It works by repeatedly selecting the
least-satisfied identifier, trying its candidates in preference order, and
backtracking when a candidate's sub-dependencies make some other
identifier unsatisfiable. This is the same strategy used by backtracking
package-manager resolvers generally: build a pinning incrementally, and
undo the most recent pin (not the whole resolution) when a later
constraint proves it was wrong.
*/
package resolver
