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
	"crypto/sha1" //nolint:gosec // SHA-1 is a selectable cache key algorithm, not a security control
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// Primitive describes a cryptographic digest: its registered name, its output
// width and how to build an empty instance.
type Primitive struct {
	Name string
	Size int
	New  HashFactoryFunc
}

func stdlib(newHash func() hash.Hash) HashFactoryFunc {
	return func() (hash.Hash, error) {
		return newHash(), nil
	}
}

var (
	SHA1   = Primitive{Name: "SHA-1", Size: sha1.Size, New: stdlib(sha1.New)}
	SHA256 = Primitive{Name: "SHA-256", Size: sha256.Size, New: stdlib(sha256.New)}
	SHA384 = Primitive{Name: "SHA-384", Size: sha512.Size384, New: stdlib(sha512.New384)}
	SHA512 = Primitive{Name: "SHA-512", Size: sha512.Size, New: stdlib(sha512.New)}
)

// NewEngine starts a streaming session for p.
func NewEngine(p Primitive) (*GenericHashEngine, error) {
	return NewGenericHashEngine(p.Name, p.Size, p.New)
}
