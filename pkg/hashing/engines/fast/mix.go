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

// MixVersion identifies the multiply-mix construction below. Any change to
// mixSeed, mix64 or the finalization in MixChecksum.Compute changes every
// cache key computed by an "+MM" algorithm and needs a new version.
const MixVersion = "mm-v1"

// mixSeed initialises the accumulator (2^64 / golden ratio).
const mixSeed uint64 = 0x9e3779b97f4a7c15

// mix64 is the MurmurHash3 fmix64 finalizer: two multiplications by odd
// constants interleaved with xor-shift folds. It is a bijection on uint64.
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
