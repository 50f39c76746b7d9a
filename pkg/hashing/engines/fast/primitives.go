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
	"hash"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-metro"
	"github.com/zeebo/xxh3"
)

// Primitive is an external 64-bit hash function. New returns a streaming
// instance; Sum64 is the one-shot form and must agree with it.
type Primitive struct {
	Name  string
	New   func() hash.Hash64
	Sum64 func(data []byte) uint64
}

var (
	// XX is XXH64 with seed 0.
	XX = Primitive{
		Name:  "XX",
		New:   func() hash.Hash64 { return xxhash.New() },
		Sum64: xxhash.Sum64,
	}

	// XXH3 is the 64-bit XXH3 variant with the default secret.
	XXH3 = Primitive{
		Name:  "XXH3",
		New:   func() hash.Hash64 { return xxh3.New() },
		Sum64: xxh3.Hash,
	}

	// Metro is MetroHash64 with seed 0. go-metro only offers a one-shot
	// function, so the streaming form keeps every written byte in memory
	// until Sum64: a file is held in full whatever the chunk size.
	Metro = Primitive{
		Name:  "METRO",
		New:   func() hash.Hash64 { return newMetro64(0) },
		Sum64: func(data []byte) uint64 { return metro.Hash64(data, 0) },
	}
)
