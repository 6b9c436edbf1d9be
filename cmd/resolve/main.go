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
resolve is an example program that resolves a single published package
version against the deps.dev Insights API and prints the resulting
dependency graph, alongside the graph the API itself reports via
GetDependencies, for comparison.
*/
package main

import (
	"context"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	pb "deps.dev/api/v3"

	"github.com/pinlock/resolvelib/graphexport"
	"github.com/pinlock/resolvelib/providers/registry"
	"github.com/pinlock/resolvelib/resolver"
)

const usage = "Usage: resolve <system> <package-name> <version>"

func main() {
	log.SetFlags(0)
	if len(os.Args) != 4 {
		log.Fatal(usage)
	}
	sys, err := parseSystem(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	root := registry.VersionKey{
		PackageKey:  registry.NewPackageKey(sys, os.Args[2]),
		VersionType: registry.Concrete,
		Version:     os.Args[3],
	}

	certPool, err := x509.SystemCertPool()
	if err != nil {
		log.Fatalf("getting system cert pool: %v", err)
	}
	creds := credentials.NewClientTLSFromCert(certPool, "")
	conn, err := grpc.Dial("api.deps.dev:443", grpc.WithTransportCredentials(creds))
	if err != nil {
		log.Fatalf("dialing: %v", err)
	}
	insights := pb.NewInsightsClient(conn)

	client := registry.NewCachingClient(registry.NewAPIClient(insights), registry.DefaultCacheSize)
	provider := registry.NewProvider(client, registry.DefaultEnvironment())
	ctx := context.Background()

	start := time.Now()
	log.Printf("resolving %v", root)
	result, err := resolver.Resolve[registry.RequirementVersion, *registry.Version, registry.PackageKey](
		ctx, provider, resolver.NoopReporter[registry.RequirementVersion, *registry.Version, registry.PackageKey]{},
		[]registry.RequirementVersion{{VersionKey: root}}, 500,
	)
	if err != nil {
		log.Fatalf("resolving %v: %v", root, err)
	}
	log.Printf("resolved in %v", time.Since(start))

	start = time.Now()
	log.Printf("GetDependencies(%v)", root)
	resp, err := insights.GetDependencies(ctx, &pb.GetDependenciesRequest{
		VersionKey: &pb.VersionKey{
			System:  pb.System(sys),
			Name:    root.Name,
			Version: root.Version,
		},
	})
	if err != nil {
		log.Fatalf("GetDependencies(%v): %v", root, err)
	}
	log.Printf("GetDependencies in %v", time.Since(start))

	printGraphs(graphexport.Render[registry.RequirementVersion, *registry.Version, registry.PackageKey](result), remoteGraphString(resp))
}

func parseSystem(s string) (registry.System, error) {
	switch strings.ToLower(s) {
	case "npm":
		return registry.NPM, nil
	case "maven":
		return registry.Maven, nil
	case "pypi":
		return registry.PyPI, nil
	}
	return registry.UnknownSystem, fmt.Errorf("unknown system %q", s)
}

// remoteGraphString renders the API's own GetDependencies answer in the
// same node-per-line shape as graphexport.Render, so the two can be
// diffed by eye.
func remoteGraphString(resp *pb.GetDependenciesResponse) string {
	var b strings.Builder
	for _, n := range resp.Nodes {
		vk := n.GetVersionKey()
		fmt.Fprintf(&b, "%s@%s\n", vk.GetName(), vk.GetVersion())
	}
	return b.String()
}

// printGraphs prints the two resolved graphs side by side.
func printGraphs(local, remote string) {
	s1 := strings.Split(strings.TrimRight(local, "\n"), "\n")
	s2 := strings.Split(strings.TrimRight(remote, "\n"), "\n")

	w := tabwriter.NewWriter(os.Stdout, 10, 2, 2, ' ', 0)
	fmt.Fprintf(w, "Local\tGetDependencies\n")
	for len(s1) > 0 || len(s2) > 0 {
		var l1, l2 string
		if len(s1) > 0 {
			l1, s1 = s1[0], s1[1:]
		}
		if len(s2) > 0 {
			l2, s2 = s2[0], s2[1:]
		}
		fmt.Fprintf(w, "%s\t%s\n", l1, l2)
	}
	w.Flush()
}
