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

	"github.com/pinlock/resolvelib/version"
)

// Version pairs a VersionKey with the attributes known about it, such as
// whether it has been yanked or what it's been redirected to.
type Version struct {
	VersionKey
	version.AttrSet
}

func (v Version) String() string {
	return fmt.Sprintf("{%v}", v.VersionKey)
}

// ErrNotFound is returned by a Client when the requested package or
// version does not exist.
var ErrNotFound = errors.New("not found")

// Client fetches the package metadata a resolution needs: which
// versions exist, what a version depends on, and which concrete versions
// satisfy a requirement.
type Client interface {
	// Version looks up a single concrete version.
	Version(ctx context.Context, vk VersionKey) (Version, error)
	// Versions returns every known version of a package.
	Versions(ctx context.Context, pk PackageKey) ([]Version, error)
	// Requirements returns the direct dependencies of a concrete
	// version.
	Requirements(ctx context.Context, vk VersionKey) ([]RequirementVersion, error)
	// MatchingVersions returns the concrete versions satisfying a
	// requirement, in ascending system-specific preference order (most
	// preferred last), as produced by MatchRequirement.
	MatchingVersions(ctx context.Context, vk VersionKey) ([]Version, error)
}

// LocalClient is an in-memory Client, useful for tests and for resolving
// against a fixed, pre-fetched package universe.
type LocalClient struct {
	// PackageVersions holds every known concrete version of every
	// package.
	PackageVersions map[PackageKey][]Version

	imports map[VersionKey][]RequirementVersion
}

// NewLocalClient returns an empty LocalClient.
func NewLocalClient() *LocalClient {
	return &LocalClient{
		PackageVersions: make(map[PackageKey][]Version),
		imports:         make(map[VersionKey][]RequirementVersion),
	}
}

// AddVersion registers a concrete version and its direct dependencies,
// replacing any existing entry for the same VersionKey. It also ensures
// every package named in deps has an entry in PackageVersions, even if
// empty, so Versions doesn't report ErrNotFound for a package this
// version merely depends on.
func (lc *LocalClient) AddVersion(v Version, deps []RequirementVersion) {
	versions := lc.PackageVersions[v.PackageKey]
	replaced := false
	for i, w := range versions {
		if w.VersionKey == v.VersionKey {
			versions[i] = v
			replaced = true
			break
		}
	}
	if !replaced {
		versions = append(versions, v)
		SortVersions(versions)
	}
	lc.PackageVersions[v.PackageKey] = versions

	SortDependencies(deps)
	lc.imports[v.VersionKey] = deps

	for _, d := range deps {
		if _, ok := lc.PackageVersions[d.PackageKey]; !ok {
			lc.PackageVersions[d.PackageKey] = []Version{}
		}
	}
}

func (lc *LocalClient) Version(ctx context.Context, vk VersionKey) (Version, error) {
	for _, v := range lc.PackageVersions[vk.PackageKey] {
		if v.VersionKey == vk {
			return v, nil
		}
	}
	return Version{}, fmt.Errorf("version %v: %w", vk, ErrNotFound)
}

func (lc *LocalClient) Versions(ctx context.Context, pk PackageKey) ([]Version, error) {
	if vs, ok := lc.PackageVersions[pk]; ok {
		return vs, nil
	}
	return nil, fmt.Errorf("package %v: %w", pk, ErrNotFound)
}

func (lc *LocalClient) Requirements(ctx context.Context, vk VersionKey) ([]RequirementVersion, error) {
	if deps, ok := lc.imports[vk]; ok {
		return deps, nil
	}
	return nil, fmt.Errorf("version %v: %w", vk, ErrNotFound)
}

func (lc *LocalClient) MatchingVersions(ctx context.Context, vk VersionKey) ([]Version, error) {
	vs, ok := lc.PackageVersions[vk.PackageKey]
	if !ok {
		return nil, fmt.Errorf("package %v: %w", vk.PackageKey, ErrNotFound)
	}
	return MatchRequirement(vk, vs), nil
}
