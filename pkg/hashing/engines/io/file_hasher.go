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

// Package io hashes file contents through the streaming algorithms of the
// hashengines package.
package io

import (
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
)

// FileHasher computes the digest of one file.
type FileHasher interface {
	// Compute reads the file and returns its digest. Each call starts a new
	// hashing session, so Compute may be called again after the file changes.
	Compute() (digests.Digest, error)

	// DigestName returns the algorithm name stamped on the digest.
	DigestName() string
}
