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

package memory

import (
	"fmt"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
)

var _ hashengines.Checksum = (*SequentialChecksum)(nil)

// SequentialChecksum digests the raw bytes of each contribution, in arrival
// order, through a single streaming session. Reordering distinct
// contributions changes the result.
//
// It works with any hashengines.Algorithm, so the fast families reuse it for
// their non-mixing variants.
type SequentialChecksum struct {
	engine    hashengines.Algorithm
	count     int
	received  int
	finalized bool
}

// NewSequentialChecksum creates a checksum expecting count contributions,
// combined through engine. The engine must be fresh.
func NewSequentialChecksum(engine hashengines.Algorithm, count int) (*SequentialChecksum, error) {
	if engine == nil {
		return nil, fmt.Errorf("checksum engine must not be nil")
	}
	if count < 0 {
		return nil, fmt.Errorf("checksum count must be non-negative, got %d", count)
	}

	return &SequentialChecksum{
		engine: engine,
		count:  count,
	}, nil
}

// Update feeds the raw bytes of d into the session.
func (c *SequentialChecksum) Update(d digests.Digest) error {
	if c.finalized {
		return hashengines.NewAlreadyFinalizedError(c.engine.DigestName())
	}
	if c.received >= c.count {
		return hashengines.NewTooManyContributionsError(c.engine.DigestName(), c.count)
	}
	if err := c.engine.Update(d.Value()); err != nil {
		return err
	}
	c.received++
	return nil
}

// Compute finalizes the session once every contribution has arrived.
func (c *SequentialChecksum) Compute() (digests.Digest, error) {
	if c.finalized {
		return digests.Digest{}, hashengines.NewAlreadyFinalizedError(c.engine.DigestName())
	}
	if c.received < c.count {
		return digests.Digest{}, hashengines.NewIncompleteAggregationError(c.engine.DigestName(), c.received, c.count)
	}
	d, err := c.engine.Compute()
	if err != nil {
		return digests.Digest{}, err
	}
	c.finalized = true
	return d, nil
}

func (c *SequentialChecksum) Count() int { return c.count }

func (c *SequentialChecksum) Received() int { return c.received }

func (c *SequentialChecksum) DigestName() string { return c.engine.DigestName() }
