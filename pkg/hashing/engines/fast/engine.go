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

// Package fast implements the non-cryptographic 64-bit hash family and its
// two checksum flavours: the sequential one shared with the cryptographic
// family, and the order-independent multiply-mix checksum.
//
// Every value produced here is 8 bytes wide, the big-endian encoding of the
// 64-bit hash.
package fast

import (
	"fmt"
	"hash"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
)

var _ hashengines.Algorithm = (*Engine)(nil)

// Engine is a streaming session over a 64-bit hash primitive.
type Engine struct {
	name      string
	h         hash.Hash64
	finalized bool
}

// NewEngine starts a session for primitive p. name is the registered
// algorithm name stamped on the resulting digest; several names (e.g. "XX"
// and "XXMM") share one primitive.
func NewEngine(name string, p Primitive) (*Engine, error) {
	if p.New == nil {
		return nil, fmt.Errorf("primitive %q has no constructor", p.Name)
	}
	return &Engine{name: name, h: p.New()}, nil
}

// Update appends data to the input.
func (e *Engine) Update(data []byte) error {
	if e.finalized {
		return hashengines.NewAlreadyFinalizedError(e.name)
	}
	if len(data) > 0 {
		_, _ = e.h.Write(data)
	}
	return nil
}

// Compute finalizes the session and returns the 64-bit hash as 8 bytes.
func (e *Engine) Compute() (digests.Digest, error) {
	if e.finalized {
		return digests.Digest{}, hashengines.NewAlreadyFinalizedError(e.name)
	}
	e.finalized = true

	sum := e.h.Sum64()
	e.h = nil
	return digests.NewUint64Digest(e.name, sum), nil
}

func (e *Engine) DigestName() string { return e.name }

func (e *Engine) DigestSize() int { return digests.Uint64Size }
