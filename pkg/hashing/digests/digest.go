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

// Package digests provides the hash value type produced by every hashing
// engine and checksum in this module.
//
// A Digest pairs the algorithm name it was computed with and the raw bytes of
// the value. Its fields are unexported and copied on the way in and out, so a
// Digest can be shared freely between goroutines.
package digests

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Uint64Size is the width in bytes of digests produced by the fast 64-bit
// hash families.
const Uint64Size = 8

// Digest is a computed hash value.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest creates a Digest for the given algorithm name and raw value.
//
// The value slice is copied.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// NewUint64Digest creates an 8-byte Digest holding v in big-endian order.
func NewUint64Digest(algorithm string, v uint64) Digest {
	value := make([]byte, Uint64Size)
	binary.BigEndian.PutUint64(value, v)
	return Digest{
		algorithm: algorithm,
		value:     value,
	}
}

// ParseHex decodes a hexadecimal digest value. Upper and lower case are both
// accepted; surrounding whitespace is ignored.
func ParseHex(algorithm, s string) (Digest, error) {
	value, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return Digest{}, fmt.Errorf("invalid hex digest %q: %w", s, err)
	}
	return Digest{algorithm: algorithm, value: value}, nil
}

// Algorithm returns the name of the algorithm that produced this digest, as
// registered in the hashing factory (e.g. "SHA-256" or "XX").
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Uint64 interprets an 8-byte digest as a big-endian 64-bit value. The second
// result is false when the digest has any other width.
func (d Digest) Uint64() (uint64, bool) {
	if len(d.value) != Uint64Size {
		return 0, false
	}
	return binary.BigEndian.Uint64(d.value), true
}

// Hex returns the lowercase hexadecimal encoding of the digest value.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the length in bytes of the digest value.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d is the zero Digest.
func (d Digest) IsZero() bool {
	return d.algorithm == "" && len(d.value) == 0
}

// String returns "algorithm:hexvalue".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests carry the same algorithm name and value.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
