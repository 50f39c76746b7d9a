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
	"testing"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
)

func sha256Of(t *testing.T, s string) digests.Digest {
	t.Helper()
	h := mustEngine(t, SHA256)
	if err := h.Update([]byte(s)); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	d, err := h.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return d
}

func combine(t *testing.T, parts ...digests.Digest) digests.Digest {
	t.Helper()
	c, err := NewSequentialChecksum(mustEngine(t, SHA256), len(parts))
	if err != nil {
		t.Fatalf("NewSequentialChecksum() error = %v", err)
	}
	for _, p := range parts {
		if err := c.Update(p); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}
	d, err := c.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return d
}

func TestSequentialChecksum_DigestOfConcatenation(t *testing.T) {
	// sha256(sha256("a") || sha256("b"))
	const want = "e5a01fee14e0ed5c48714f22180f25ad8365b53f9779f79dc4a3d7e93963f94a"

	got := combine(t, sha256Of(t, "a"), sha256Of(t, "b"))
	if got.Hex() != want {
		t.Errorf("Compute() = %q, want %q", got.Hex(), want)
	}
	if got.Algorithm() != "SHA-256" {
		t.Errorf("Algorithm() = %q, want %q", got.Algorithm(), "SHA-256")
	}
}

func TestSequentialChecksum_OrderSensitive(t *testing.T) {
	a, b := sha256Of(t, "a"), sha256Of(t, "b")

	ab := combine(t, a, b)
	ba := combine(t, b, a)
	if ab.Equal(ba) {
		t.Errorf("combine(a, b) == combine(b, a) = %s, want different values", ab.Hex())
	}
}

func TestSequentialChecksum_CountContract(t *testing.T) {
	c, err := NewSequentialChecksum(mustEngine(t, SHA1), 3)
	if err != nil {
		t.Fatalf("NewSequentialChecksum() error = %v", err)
	}
	d := sha256Of(t, "x")

	for i := 0; i < 2; i++ {
		if err := c.Update(d); err != nil {
			t.Fatalf("Update() #%d error = %v", i+1, err)
		}
	}
	if _, err := c.Compute(); !hashengines.IsType(err, hashengines.ErrTypeIncompleteAggregation) {
		t.Fatalf("Compute() after 2 of 3 error = %v, want IncompleteAggregation", err)
	}

	if err := c.Update(d); err != nil {
		t.Fatalf("Update() #3 error = %v", err)
	}
	if err := c.Update(d); !hashengines.IsType(err, hashengines.ErrTypeTooManyContributions) {
		t.Fatalf("Update() #4 error = %v, want TooManyContributions", err)
	}
	if c.Received() != 3 || c.Count() != 3 {
		t.Errorf("Received()/Count() = %d/%d, want 3/3", c.Received(), c.Count())
	}

	if _, err := c.Compute(); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if err := c.Update(d); !hashengines.IsType(err, hashengines.ErrTypeAlreadyFinalized) {
		t.Errorf("Update() after Compute() error = %v, want AlreadyFinalized", err)
	}
	if _, err := c.Compute(); !hashengines.IsType(err, hashengines.ErrTypeAlreadyFinalized) {
		t.Errorf("second Compute() error = %v, want AlreadyFinalized", err)
	}
}

func TestSequentialChecksum_ZeroCount(t *testing.T) {
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	got := combine(t)
	if got.Hex() != want {
		t.Errorf("Compute() with no contributions = %q, want %q", got.Hex(), want)
	}
}

func TestNewSequentialChecksum_Validation(t *testing.T) {
	if _, err := NewSequentialChecksum(nil, 1); err == nil {
		t.Error("NewSequentialChecksum(nil engine) error = nil, want error")
	}
	if _, err := NewSequentialChecksum(mustEngine(t, SHA1), -1); err == nil {
		t.Error("NewSequentialChecksum(count -1) error = nil, want error")
	}
}
