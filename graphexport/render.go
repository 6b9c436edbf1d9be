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
Package graphexport renders a resolver.Result as human-readable text: a
tree following the first edge discovered into each identifier, with
labeled back-references wherever an identifier has more than one
dependent.
*/
package graphexport

import (
	"fmt"
	"strings"

	"github.com/pinlock/resolvelib/resolver"
)

// Stringer is satisfied by any candidate or key type with a text form;
// Render uses it to label the identifiers and pins it walks.
type Stringer interface {
	String() string
}

// Render returns a tree-shaped text representation of result, rooted at
// the synthetic root vertex. Each line names the identifier pinned at
// that point in the graph and the candidate chosen for it; an identifier
// reached by more than one dependent is printed once, in the position it
// was first discovered, and referenced by a "$N" label everywhere else.
func Render[R any, C interface {
	comparable
	Stringer
}, K comparable](result *resolver.Result[R, C, K]) string {
	var b strings.Builder
	root := resolver.RootVertex[K]()

	dependents := make(map[resolver.Vertex[K]]int)
	creator := make(map[resolver.Vertex[K]]resolver.Vertex[K])
	dependents[root] = 1
	for _, e := range result.Graph.Edges() {
		dependents[e.To]++
		if _, ok := creator[e.To]; !ok && e.To != e.From {
			creator[e.To] = e.From
		}
	}

	label := 0
	labels := make(map[resolver.Vertex[K]]int)
	for _, v := range result.Graph.Vertices() {
		if dependents[v] > 1 {
			label++
			labels[v] = label
		}
	}

	seen := make(map[resolver.Vertex[K]]bool)
	var walk func(v resolver.Vertex[K], prefix1, prefix2 string)
	walk = func(v resolver.Vertex[K], prefix1, prefix2 string) {
		seen[v] = true
		fmt.Fprint(&b, prefix1)
		if n := labels[v]; n > 0 {
			fmt.Fprintf(&b, "%d: ", n)
		}
		if v.IsRoot {
			b.WriteString("root\n")
		} else if c, ok := result.Mapping[v.Key]; ok {
			fmt.Fprintf(&b, "%v\n", c)
		} else {
			fmt.Fprintf(&b, "%v\n", v.Key)
		}

		children := result.Graph.OutgoingFrom(v)
		for i, to := range children {
			p1, p2 := "├─ ", "│  "
			if i == len(children)-1 {
				p1, p2 = "└─ ", "   "
			}
			if c, ok := creator[to]; !ok || c != v || to == v || seen[to] {
				fmt.Fprintf(&b, "%s%s$%d\n", prefix2, p1, labels[to])
				continue
			}
			walk(to, prefix2+p1, prefix2+p2)
		}
	}
	walk(root, "", "")
	return b.String()
}
