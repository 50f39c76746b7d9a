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

package fast

import (
	"fmt"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
)

var _ hashengines.Checksum = (*MixChecksum)(nil)

// MixChecksum combines 64-bit contributions with a commutative, associative
// step (acc += mix64(v)), so the composite does not depend on the order in
// which per-item hashes arrive. Items can be hashed concurrently and fed as
// they complete, without sorting.
//
// Update is not safe for concurrent use; callers serialize contributions.
type MixChecksum struct {
	name      string
	primitive Primitive
	count     int
	received  int
	acc       uint64
	finalized bool
}

// NewMixChecksum creates a checksum named name expecting count
// contributions. Contributions that are not 8 bytes wide are first reduced
// with p.
func NewMixChecksum(name string, p Primitive, count int) (*MixChecksum, error) {
	if count < 0 {
		return nil, fmt.Errorf("checksum count must be non-negative, got %d", count)
	}
	if p.Sum64 == nil {
		return nil, fmt.Errorf("primitive %q has no one-shot function", p.Name)
	}

	return &MixChecksum{
		name:      name,
		primitive: p,
		count:     count,
		acc:       mixSeed,
	}, nil
}

// Update folds d into the accumulator.
func (c *MixChecksum) Update(d digests.Digest) error {
	if c.finalized {
		return hashengines.NewAlreadyFinalizedError(c.name)
	}
	if c.received >= c.count {
		return hashengines.NewTooManyContributionsError(c.name, c.count)
	}

	v, ok := d.Uint64()
	if !ok {
		v = c.primitive.Sum64(d.Value())
	}

	c.acc += mix64(v)
	c.received++
	return nil
}

// Compute returns mix64(acc ^ count) once every contribution has arrived.
func (c *MixChecksum) Compute() (digests.Digest, error) {
	if c.finalized {
		return digests.Digest{}, hashengines.NewAlreadyFinalizedError(c.name)
	}
	if c.received < c.count {
		return digests.Digest{}, hashengines.NewIncompleteAggregationError(c.name, c.received, c.count)
	}
	c.finalized = true

	return digests.NewUint64Digest(c.name, mix64(c.acc^uint64(c.count))), nil
}

func (c *MixChecksum) Count() int { return c.count }

func (c *MixChecksum) Received() int { return c.received }

func (c *MixChecksum) DigestName() string { return c.name }
