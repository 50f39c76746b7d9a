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
	"encoding/binary"
	"hash"

	"github.com/dgryski/go-metro"
)

var _ hash.Hash64 = (*metro64)(nil)

// metro64 exposes the one-shot go-metro function as a hash.Hash64 by
// buffering the written bytes until Sum64. Memory grows with the input.
type metro64 struct {
	seed uint64
	buf  []byte
}

func newMetro64(seed uint64) *metro64 { return &metro64{seed: seed} }

func (h *metro64) Write(p []byte) (int, error) {
	h.buf = append(h.buf, p...)
	return len(p), nil
}

func (h *metro64) Sum(b []byte) []byte {
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], h.Sum64())
	return append(b, out[:]...)
}

func (h *metro64) Sum64() uint64 { return metro.Hash64(h.buf, h.seed) }

func (h *metro64) Reset() { h.buf = h.buf[:0] }

func (h *metro64) Size() int { return 8 }

func (h *metro64) BlockSize() int { return 32 }
