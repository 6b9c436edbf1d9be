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

package version

import "testing"

func TestAttrSetBlocked(t *testing.T) {
	var set AttrSet
	if set.HasAttr(Blocked) {
		t.Error("zero AttrSet reports Blocked")
	}
	set.AddAttr(Blocked, "")
	if !set.HasAttr(Blocked) {
		t.Error("AttrSet does not report Blocked after AddAttr")
	}
}

func TestAttrSetRedirect(t *testing.T) {
	var set AttrSet
	set.AddAttr(Redirect, "example.other/pkg@2.0.0")
	got, ok := set.GetAttr(Redirect)
	if !ok || got != "example.other/pkg@2.0.0" {
		t.Errorf("GetAttr(Redirect) = (%q, %v), want (\"example.other/pkg@2.0.0\", true)", got, ok)
	}
}

func TestAttrSetCloneIndependent(t *testing.T) {
	var set AttrSet
	set.AddAttr(Tags, "latest")
	clone := set.Clone()
	clone.AddAttr(Tags, "beta")

	gotOrig, _ := set.GetAttr(Tags)
	gotClone, _ := clone.GetAttr(Tags)
	if gotOrig != "latest" {
		t.Errorf("original Tags = %q, want %q", gotOrig, "latest")
	}
	if gotClone != "beta" {
		t.Errorf("clone Tags = %q, want %q", gotClone, "beta")
	}
}
