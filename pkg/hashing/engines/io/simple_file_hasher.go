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

package io

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
)

var _ FileHasher = (*SimpleFileHasher)(nil)

// SimpleFileHasher hashes a whole file as a single input.
type SimpleFileHasher struct {
	filePath     string
	newAlgorithm hashengines.AlgorithmFactory
	name         string
	chunkSize    int
}

// NewSimpleFileHasher creates a hasher for filePath whose digests are named
// digestName. Every Compute call takes a fresh session from newAlgorithm. A
// chunkSize of 0 reads the file in one go; otherwise the file is streamed
// chunkSize bytes at a time.
func NewSimpleFileHasher(
	filePath string,
	digestName string,
	newAlgorithm hashengines.AlgorithmFactory,
	chunkSize int,
) (*SimpleFileHasher, error) {
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}

	if filePath == "" {
		return nil, fmt.Errorf("file path must be non-empty")
	}

	if digestName == "" {
		return nil, fmt.Errorf("digest name must be non-empty")
	}

	if newAlgorithm == nil {
		return nil, fmt.Errorf("algorithm factory must not be nil")
	}

	return &SimpleFileHasher{
		filePath:     filePath,
		newAlgorithm: newAlgorithm,
		name:         digestName,
		chunkSize:    chunkSize,
	}, nil
}

// SetFile changes the file hashed by the next Compute call.
func (h *SimpleFileHasher) SetFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path must be non-empty")
	}
	h.filePath = filePath
	return nil
}

func (h *SimpleFileHasher) DigestName() string {
	return h.name
}

// Compute hashes the current contents of the file.
func (h *SimpleFileHasher) Compute() (digests.Digest, error) {
	algorithm, err := h.newAlgorithm()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("create algorithm: %w", err)
	}

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	defer f.Close()

	if h.chunkSize == 0 {
		data, err := io.ReadAll(f)
		if err != nil {
			return digests.Digest{}, fmt.Errorf("read file %q: %w", h.filePath, err)
		}
		if err := algorithm.Update(data); err != nil {
			return digests.Digest{}, err
		}
	} else {
		buf := make([]byte, h.chunkSize)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				if uerr := algorithm.Update(buf[:n]); uerr != nil {
					return digests.Digest{}, uerr
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return digests.Digest{}, fmt.Errorf("read file %q: %w", h.filePath, err)
			}
		}
	}

	d, err := algorithm.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute digest: %w", err)
	}
	return d, nil
}
