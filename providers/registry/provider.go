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
	"fmt"

	"github.com/pinlock/resolvelib/resolver"
)

// Provider adapts a Client into a resolver.Provider[RequirementVersion,
// *Version, PackageKey]: requirements and candidates are identified by
// the package they name, FindMatches asks the Client for admissible
// concrete versions, and GetDependencies asks it for their direct
// dependencies, dropping any a PEP 508-style Environment marker rules
// out.
type Provider struct {
	Client Client
	Env    Environment
}

// NewProvider returns a Provider backed by client. env controls which
// conditional (PyPI extra / environment marker) dependencies are
// included; pass DefaultEnvironment() to leave every extra disabled.
func NewProvider(client Client, env Environment) *Provider {
	return &Provider{Client: client, Env: env}
}

var _ resolver.Provider[RequirementVersion, *Version, PackageKey] = (*Provider)(nil)

func (p *Provider) Identify(r RequirementVersion) PackageKey {
	return r.PackageKey
}

func (p *Provider) IdentifyCandidate(c *Version) PackageKey {
	return c.PackageKey
}

// FindMatches asks the Client for the versions admissible for r, then
// hands them to the engine most-preferred first. MatchingVersions (like
// SortVersions it is built on) orders ascending, oldest first; the
// engine wants to try the newest admissible version first, so the order
// is reversed here.
func (p *Provider) FindMatches(ctx context.Context, r RequirementVersion) ([]*Version, error) {
	vs, err := p.Client.MatchingVersions(ctx, r.VersionKey)
	if err != nil {
		return nil, err
	}
	out := make([]*Version, len(vs))
	for i := range vs {
		v := vs[len(vs)-1-i]
		out[i] = &v
	}
	return out, nil
}

func (p *Provider) IsSatisfiedBy(ctx context.Context, r RequirementVersion, c *Version) (bool, error) {
	if c.PackageKey != r.PackageKey {
		return false, nil
	}
	if !MarkerSatisfied(r.Type, p.Env) {
		return false, nil
	}
	matches := MatchRequirement(r.VersionKey, []Version{*c})
	return len(matches) == 1, nil
}

func (p *Provider) GetDependencies(ctx context.Context, c *Version) ([]RequirementVersion, error) {
	reqs, err := p.Client.Requirements(ctx, c.VersionKey)
	if err != nil {
		return nil, fmt.Errorf("dependencies of %v: %w", c.VersionKey, err)
	}
	out := reqs[:0:0]
	for _, r := range reqs {
		if !MarkerSatisfied(r.Type, p.Env) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// GetPreference prefers the identifier with fewer admissible candidates,
// so the resolver narrows its most constrained choices first; ties break
// in favor of an identifier that is already pinned, to avoid reopening a
// decision that's currently working.
func (p *Provider) GetPreference(ctx context.Context, pinned **Version, candidates []*Version, information []resolver.RequirementInformation[RequirementVersion, *Version]) (int, error) {
	score := len(candidates) * 2
	if pinned == nil {
		score++
	}
	return score, nil
}
