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
	"hash"

	"golang.org/x/crypto/blake2b"
)

// BLAKE2b512 is unkeyed BLAKE2b with a 64-byte digest.
var BLAKE2b512 = Primitive{
	Name: "BLAKE2b-512",
	Size: blake2b.Size,
	New: func() (hash.Hash, error) {
		return blake2b.New512(nil)
	},
}
