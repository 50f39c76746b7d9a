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

// Package memory implements the cryptographic hash family: streaming
// sessions over a standard hash.Hash and the sequential checksum that digests
// the concatenation of per-item digests.
package memory

import (
	"fmt"
	"hash"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
)

var _ hashengines.Algorithm = (*GenericHashEngine)(nil)

// HashFactoryFunc returns a new, empty hash.Hash.
type HashFactoryFunc func() (hash.Hash, error)

// GenericHashEngine adapts any hash.Hash to the hashengines.Algorithm
// contract.
type GenericHashEngine struct {
	name      string
	size      int
	h         hash.Hash
	finalized bool
}

// NewGenericHashEngine creates a session named name around a fresh hash from
// factory. size must match the length of the hash's Sum output.
func NewGenericHashEngine(name string, size int, factory HashFactoryFunc) (*GenericHashEngine, error) {
	if factory == nil {
		return nil, fmt.Errorf("hash factory for %q must not be nil", name)
	}

	h, err := factory()
	if err != nil {
		return nil, fmt.Errorf("create %s hash: %w", name, err)
	}

	if h.Size() != size {
		return nil, fmt.Errorf("%s hash produces %d bytes, expected %d", name, h.Size(), size)
	}

	return &GenericHashEngine{
		name: name,
		size: size,
		h:    h,
	}, nil
}

// Update appends data to the input.
func (e *GenericHashEngine) Update(data []byte) error {
	if e.finalized {
		return hashengines.NewAlreadyFinalizedError(e.name)
	}
	if len(data) > 0 {
		// hash.Hash.Write never returns an error
		_, _ = e.h.Write(data)
	}
	return nil
}

// Compute finalizes the session.
func (e *GenericHashEngine) Compute() (digests.Digest, error) {
	if e.finalized {
		return digests.Digest{}, hashengines.NewAlreadyFinalizedError(e.name)
	}
	e.finalized = true

	sum := e.h.Sum(nil)
	e.h = nil
	return digests.NewDigest(e.name, sum), nil
}

// DigestName returns the algorithm name.
func (e *GenericHashEngine) DigestName() string {
	return e.name
}

// DigestSize returns the digest width in bytes.
func (e *GenericHashEngine) DigestSize() int {
	return e.size
}
