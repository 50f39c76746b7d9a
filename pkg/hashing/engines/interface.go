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

// Package hashengines defines the contracts shared by every hash family:
// single-use streaming sessions (Algorithm) and fixed-size aggregators that
// fold many per-item digests into one composite value (Checksum).
//
// Concrete implementations live in the memory (cryptographic digests) and
// fast (64-bit non-cryptographic hashes) subpackages. None of the
// implementations lock; each instance belongs to one caller at a time.
package hashengines

import (
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
)

// Family identifies the kind of primitive behind an algorithm.
type Family int

const (
	// FamilyCryptographic covers sequential message digests (SHA, BLAKE2b).
	FamilyCryptographic Family = iota
	// FamilyFast covers non-cryptographic 64-bit hashes (xxHash, MetroHash).
	FamilyFast
)

func (f Family) String() string {
	switch f {
	case FamilyCryptographic:
		return "cryptographic"
	case FamilyFast:
		return "fast"
	default:
		return "unknown"
	}
}

// CombineMode selects how a Checksum folds its contributions.
type CombineMode int

const (
	// CombineSequential feeds contributions, in arrival order, through one
	// streaming session of the same algorithm. The result is order-sensitive.
	CombineSequential CombineMode = iota
	// CombineMultiplyMix mixes each 64-bit contribution and adds it to a
	// scalar accumulator. The result does not depend on contribution order.
	CombineMultiplyMix
)

func (m CombineMode) String() string {
	switch m {
	case CombineSequential:
		return "sequential"
	case CombineMultiplyMix:
		return "multiply-mix"
	default:
		return "unknown"
	}
}

// Algorithm is a streaming hash session over one logical input.
//
// An Algorithm is single-use: once Compute has returned a digest, further
// calls to Update or Compute fail with ErrTypeAlreadyFinalized.
type Algorithm interface {
	// Update appends data to the input. Splitting an input across several
	// calls produces the same result as a single call with the concatenation.
	Update(data []byte) error

	// Compute finalizes the session and returns the digest.
	Compute() (digests.Digest, error)

	// DigestName returns the registered algorithm name. It is copied into the
	// algorithm field of every Digest returned by Compute.
	DigestName() string

	// DigestSize returns the size in bytes of the digests produced by Compute.
	DigestSize() int
}

// Checksum aggregates exactly Count() per-item digests into one composite
// digest.
type Checksum interface {
	// Update contributes one per-item digest. It fails with
	// ErrTypeTooManyContributions once Count() digests have been received.
	Update(d digests.Digest) error

	// Compute returns the composite digest. It fails with
	// ErrTypeIncompleteAggregation while fewer than Count() digests have been
	// contributed.
	Compute() (digests.Digest, error)

	// Count returns the number of contributions the checksum was sized for.
	Count() int

	// Received returns the number of contributions accepted so far.
	Received() int

	// DigestName returns the registered algorithm name.
	DigestName() string
}

// AlgorithmFactory creates a fresh Algorithm.
type AlgorithmFactory func() (Algorithm, error)
