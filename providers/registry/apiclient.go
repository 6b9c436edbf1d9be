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
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "deps.dev/api/v3"
	"deps.dev/util/maven"

	"github.com/pinlock/resolvelib/dep"
	"github.com/pinlock/resolvelib/version"
)

// APIClient is a Client backed by the deps.dev Insights API. It performs
// no caching of its own; wrap it in a CachingClient for repeated lookups.
// It is safe for concurrent use, since every method is a stateless RPC.
type APIClient struct {
	c pb.InsightsClient
}

// NewAPIClient returns an APIClient that calls the deps.dev Insights
// service through c.
func NewAPIClient(c pb.InsightsClient) *APIClient {
	return &APIClient{c: c}
}

func (a *APIClient) Version(ctx context.Context, vk VersionKey) (Version, error) {
	resp, err := a.c.GetVersion(ctx, &pb.GetVersionRequest{
		VersionKey: &pb.VersionKey{
			System:  pb.System(vk.System),
			Name:    vk.Name,
			Version: vk.Version,
		},
	})
	if status.Code(err) == codes.NotFound {
		return Version{}, fmt.Errorf("version %v: %w", vk, ErrNotFound)
	}
	if err != nil {
		return Version{}, err
	}
	return makeVersion(vk, resp.GetIsDefault()), nil
}

func (a *APIClient) Versions(ctx context.Context, pk PackageKey) ([]Version, error) {
	resp, err := a.c.GetPackage(ctx, &pb.GetPackageRequest{
		PackageKey: &pb.PackageKey{
			System: pb.System(pk.System),
			Name:   pk.Name,
		},
	})
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("package %v: %w", pk, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	vs := make([]Version, len(resp.Versions))
	for i, v := range resp.Versions {
		vk := VersionKey{PackageKey: pk, VersionType: Concrete, Version: v.VersionKey.Version}
		vs[i] = makeVersion(vk, v.GetIsDefault())
	}
	return vs, nil
}

func (a *APIClient) Requirements(ctx context.Context, vk VersionKey) ([]RequirementVersion, error) {
	resp, err := a.c.GetRequirements(ctx, &pb.GetRequirementsRequest{
		VersionKey: &pb.VersionKey{
			System:  pb.System(vk.System),
			Name:    vk.Name,
			Version: vk.Version,
		},
	})
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("version %v: %w", vk, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	switch vk.System {
	case Maven:
		return mavenAPIRequirements(resp.Maven), nil
	case NPM:
		return npmAPIRequirements(resp.Npm), nil
	case PyPI:
		return pypiAPIRequirements(resp.Pypi), nil
	}
	return nil, errors.New("registry: unsupported system")
}

func (a *APIClient) MatchingVersions(ctx context.Context, vk VersionKey) ([]Version, error) {
	vs, err := a.Versions(ctx, vk.PackageKey)
	if err != nil {
		return nil, err
	}
	return MatchRequirement(vk, vs), nil
}

func makeVersion(vk VersionKey, isDefault bool) Version {
	var v Version
	v.VersionKey = vk
	if vk.System == NPM && isDefault {
		v.AddAttr(version.Tags, "latest")
	}
	return v
}

func mavenAPIRequirements(reqs *pb.Requirements_Maven) []RequirementVersion {
	if reqs == nil {
		return nil
	}
	var out []RequirementVersion
	for _, d := range reqs.Dependencies {
		md := maven.Dependency{
			Scope:    maven.String(d.Scope),
			Optional: maven.FalsyBool(d.Optional),
		}
		for _, e := range d.Exclusions {
			md.Exclusions = append(md.Exclusions, maven.Exclusion{
				GroupID:    maven.String(e.GroupId),
				ArtifactID: maven.String(e.ArtifactId),
			})
		}
		out = append(out, RequirementVersion{
			VersionKey: VersionKey{
				PackageKey:  PackageKey{System: Maven, Name: d.Name},
				VersionType: Requirement,
				Version:     d.Version,
			},
			Type: MavenDepType(md),
		})
	}
	return out
}

func npmAPIRequirements(reqs *pb.Requirements_NPM) []RequirementVersion {
	if reqs == nil {
		return nil
	}
	deps := reqs.GetDependencies()
	var out []RequirementVersion
	addDeps := func(ds []*pb.Requirements_NPM_Dependencies_Dependency, typ dep.Type) {
		for _, d := range ds {
			name, req := d.Name, d.Requirement
			t := typ.Clone()
			if r, ok := strings.CutPrefix(d.Requirement, "npm:"); ok {
				t.AddAttr(dep.KnownAs, d.Name)
				if i := strings.LastIndex(r, "@"); i >= 0 {
					name, req = r[:i], r[i+1:]
				}
			}
			out = append(out, RequirementVersion{
				VersionKey: VersionKey{
					PackageKey:  PackageKey{System: NPM, Name: name},
					VersionType: Requirement,
					Version:     req,
				},
				Type: t,
			})
		}
	}
	addDeps(deps.GetDependencies(), dep.NewType())
	addDeps(deps.GetDevDependencies(), dep.NewType(dep.Dev))
	addDeps(deps.GetOptionalDependencies(), dep.NewType(dep.Opt))

	peer := dep.Type{}
	peer.AddAttr(dep.Scope, "peer")
	addDeps(deps.GetPeerDependencies(), peer)

	SortDependencies(out)
	return out
}

func pypiAPIRequirements(reqs *pb.Requirements_PyPI) []RequirementVersion {
	if reqs == nil {
		return nil
	}
	var out []RequirementVersion
	for _, d := range reqs.Dependencies {
		typ := dep.Type{}
		if d.Extra != "" {
			typ.AddAttr(dep.Opt, "")
			typ.AddAttr(dep.KnownAs, d.Extra)
		}
		if d.Environment != "" {
			typ.AddAttr(dep.Environment, d.Environment)
		}
		out = append(out, RequirementVersion{
			VersionKey: VersionKey{
				PackageKey:  NewPackageKey(PyPI, d.Name),
				VersionType: Requirement,
				Version:     d.Requirement,
			},
			Type: typ,
		})
	}
	return out
}
