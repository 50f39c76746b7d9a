// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package manifest records the inputs of a cache key computation: the digest
// of every hashed file together with the composite key they fold into.
package manifest

import (
	"sort"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
)

// ResourceDescriptor is one (identifier, digest) entry of a manifest.
type ResourceDescriptor struct {
	// Identifier is the canonical POSIX path of the input, relative to the
	// hashed root.
	Identifier string

	Digest digests.Digest
}

// Manifest pairs every hashed input with its digest and carries the
// composite key computed over all of them.
type Manifest struct {
	name   string
	items  map[string]digests.Digest
	key    digests.Digest
	params Parameters
}

// NewManifest builds a manifest from already hashed items.
//
// The name is informative and does not take part in equality. Items with
// the same canonical name collapse to the last one given.
func NewManifest(name string, items []ManifestItem, key digests.Digest, params Parameters) *Manifest {
	itemMap := make(map[string]digests.Digest, len(items))
	for _, it := range items {
		itemMap[it.Name()] = it.Digest()
	}
	return &Manifest{
		name:   name,
		items:  itemMap,
		key:    key,
		params: params,
	}
}

// Name returns the informative name of the hashed root.
func (m *Manifest) Name() string {
	return m.name
}

// Algorithm returns the registered algorithm name the manifest was built with.
func (m *Manifest) Algorithm() string {
	return m.params.Algorithm
}

// Key returns the composite cache key.
func (m *Manifest) Key() digests.Digest {
	return m.key
}

// Parameters returns a copy of the settings that produced the manifest.
func (m *Manifest) Parameters() Parameters {
	p := m.params
	p.IgnorePaths = append([]string(nil), m.params.IgnorePaths...)
	return p
}

// Len returns the number of hashed inputs.
func (m *Manifest) Len() int {
	return len(m.items)
}

// Digest returns the digest recorded for identifier.
func (m *Manifest) Digest(identifier string) (digests.Digest, bool) {
	d, ok := m.items[identifier]
	return d, ok
}

// Equal reports whether two manifests hold the same inputs, digests and key.
// Names are ignored.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if !m.key.Equal(other.key) || m.params.Algorithm != other.params.Algorithm {
		return false
	}
	if len(m.items) != len(other.items) {
		return false
	}
	for id, d := range m.items {
		od, ok := other.items[id]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}

// ResourceDescriptors returns every input sorted by identifier.
//
//nolint:revive
func (m *Manifest) ResourceDescriptors() []ResourceDescriptor {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	descs := make([]ResourceDescriptor, 0, len(ids))
	for _, id := range ids {
		descs = append(descs, ResourceDescriptor{
			Identifier: id,
			Digest:     m.items[id],
		})
	}
	return descs
}
