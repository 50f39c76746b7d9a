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

package manifest

import "sort"

// ManifestDiff explains why two cache keys differ.
//
// nolint:revive
type ManifestDiff struct {
	// Added lists inputs present in the current manifest only.
	Added []string `json:"added"`

	// Removed lists inputs present in the previous manifest only.
	Removed []string `json:"removed"`

	// Changed lists inputs present in both with different digests.
	Changed []HashMismatch `json:"changed"`

	// AlgorithmChanged is set when the manifests were built with different
	// algorithms. Per-input digests are then not comparable and every common
	// input shows up in Changed.
	AlgorithmChanged bool `json:"algorithm_changed"`

	// KeyChanged is set when the composite keys differ.
	KeyChanged bool `json:"key_changed"`

	PreviousKey string `json:"previous_key"`
	CurrentKey  string `json:"current_key"`
}

// HashMismatch is one input whose digest changed.
type HashMismatch struct {
	Identifier   string `json:"identifier"`
	PreviousHash string `json:"previous"`
	CurrentHash  string `json:"current"`
}

// IsEmpty reports whether the manifests produce the same key from the same
// inputs.
func (d *ManifestDiff) IsEmpty() bool {
	return !d.KeyChanged && !d.AlgorithmChanged &&
		len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// ComputeDiff compares the current manifest against a previous one. All
// slices are sorted by identifier.
func ComputeDiff(current, previous *Manifest) *ManifestDiff {
	diff := &ManifestDiff{
		Added:            []string{},
		Removed:          []string{},
		Changed:          []HashMismatch{},
		AlgorithmChanged: current.Algorithm() != previous.Algorithm(),
		KeyChanged:       !current.key.Equal(previous.key),
		PreviousKey:      previous.key.Hex(),
		CurrentKey:       current.key.Hex(),
	}

	var common []string
	for id := range current.items {
		if _, ok := previous.items[id]; ok {
			common = append(common, id)
		} else {
			diff.Added = append(diff.Added, id)
		}
	}
	for id := range previous.items {
		if _, ok := current.items[id]; !ok {
			diff.Removed = append(diff.Removed, id)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Strings(common)

	for _, id := range common {
		cur, prev := current.items[id], previous.items[id]
		if !cur.Equal(prev) {
			diff.Changed = append(diff.Changed, HashMismatch{
				Identifier:   id,
				PreviousHash: prev.Hex(),
				CurrentHash:  cur.Hex(),
			})
		}
	}

	return diff
}
