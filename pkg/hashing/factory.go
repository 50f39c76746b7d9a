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

package hashing

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/fast"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/memory"
)

// HashFactory describes one selectable hash algorithm and creates its
// streaming sessions and checksums.
//
// A HashFactory is immutable and safe for concurrent use; the sessions and
// checksums it creates are not.
type HashFactory struct {
	name         string
	family       hashengines.Family
	combine      hashengines.CombineMode
	newAlgorithm func() (hashengines.Algorithm, error)
	newChecksum  func(count int) (hashengines.Checksum, error)
}

// The registered algorithms. Names are part of the persisted cache key
// format and must never be reused for a different construction.
var (
	SHA1       = cryptoFactory(memory.SHA1)
	SHA256     = cryptoFactory(memory.SHA256)
	SHA384     = cryptoFactory(memory.SHA384)
	SHA512     = cryptoFactory(memory.SHA512)
	BLAKE2b512 = cryptoFactory(memory.BLAKE2b512)
	XX         = fastFactory("XX", fast.XX, hashengines.CombineSequential)
	XXMM       = fastFactory("XXMM", fast.XX, hashengines.CombineMultiplyMix)
	XXH3       = fastFactory("XXH3", fast.XXH3, hashengines.CombineSequential)
	XXH3MM     = fastFactory("XXH3+MM", fast.XXH3, hashengines.CombineMultiplyMix)
	METRO      = fastFactory("METRO", fast.Metro, hashengines.CombineSequential)
	METROMM    = fastFactory("METRO+MM", fast.Metro, hashengines.CombineMultiplyMix)
)

var values = []*HashFactory{
	SHA1, SHA256, SHA384, SHA512, BLAKE2b512,
	XX, XXMM, XXH3, XXH3MM, METRO, METROMM,
}

var lookup = sync.OnceValue(func() map[string]*HashFactory {
	m := make(map[string]*HashFactory, len(values))
	for _, f := range values {
		if _, dup := m[f.name]; dup {
			panic(fmt.Sprintf("hash algorithm %q registered twice", f.name))
		}
		m[f.name] = f
	}
	return m
})

func cryptoFactory(p memory.Primitive) *HashFactory {
	newAlgorithm := func() (hashengines.Algorithm, error) {
		return memory.NewEngine(p)
	}
	return &HashFactory{
		name:         p.Name,
		family:       hashengines.FamilyCryptographic,
		combine:      hashengines.CombineSequential,
		newAlgorithm: newAlgorithm,
		newChecksum:  sequentialChecksum(newAlgorithm),
	}
}

func fastFactory(name string, p fast.Primitive, combine hashengines.CombineMode) *HashFactory {
	newAlgorithm := func() (hashengines.Algorithm, error) {
		return fast.NewEngine(name, p)
	}
	f := &HashFactory{
		name:         name,
		family:       hashengines.FamilyFast,
		combine:      combine,
		newAlgorithm: newAlgorithm,
		newChecksum:  sequentialChecksum(newAlgorithm),
	}
	if combine == hashengines.CombineMultiplyMix {
		f.newChecksum = func(count int) (hashengines.Checksum, error) {
			return fast.NewMixChecksum(name, p, count)
		}
	}
	return f
}

func sequentialChecksum(newAlgorithm func() (hashengines.Algorithm, error)) func(int) (hashengines.Checksum, error) {
	return func(count int) (hashengines.Checksum, error) {
		engine, err := newAlgorithm()
		if err != nil {
			return nil, err
		}
		return memory.NewSequentialChecksum(engine, count)
	}
}

// Of resolves a registered algorithm by its exact, case-sensitive name.
func Of(name string) (*HashFactory, error) {
	f, ok := lookup()[name]
	if !ok {
		return nil, hashengines.NewUnknownAlgorithmError(name, Names())
	}
	return f, nil
}

// Values returns every registered algorithm in declaration order.
func Values() []*HashFactory {
	out := make([]*HashFactory, len(values))
	copy(out, values)
	return out
}

// Names returns the sorted list of registered algorithm names.
func Names() []string {
	names := make([]string, 0, len(values))
	for _, f := range values {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name is registered.
func IsSupported(name string) bool {
	_, ok := lookup()[name]
	return ok
}

// Algorithm returns the registered name.
func (f *HashFactory) Algorithm() string { return f.name }

// Family reports whether the algorithm is cryptographic or fast.
func (f *HashFactory) Family() hashengines.Family { return f.family }

// CombineMode reports how checksums created by this factory fold their
// contributions.
func (f *HashFactory) CombineMode() hashengines.CombineMode { return f.combine }

func (f *HashFactory) String() string { return f.name }

// CreateAlgorithm returns a fresh single-use streaming session.
func (f *HashFactory) CreateAlgorithm() (hashengines.Algorithm, error) {
	return f.newAlgorithm()
}

// CreateChecksum returns a fresh checksum sized for count contributions.
func (f *HashFactory) CreateChecksum(count int) (hashengines.Checksum, error) {
	return f.newChecksum(count)
}

// Hash digests data in one call.
func (f *HashFactory) Hash(data []byte) (digests.Digest, error) {
	a, err := f.newAlgorithm()
	if err != nil {
		return digests.Digest{}, err
	}
	if err := a.Update(data); err != nil {
		return digests.Digest{}, err
	}
	return a.Compute()
}

// Checksum aggregates parts, in order, with a checksum sized for len(parts).
func (f *HashFactory) Checksum(parts ...digests.Digest) (digests.Digest, error) {
	c, err := f.newChecksum(len(parts))
	if err != nil {
		return digests.Digest{}, err
	}
	for _, p := range parts {
		if err := c.Update(p); err != nil {
			return digests.Digest{}, err
		}
	}
	return c.Compute()
}
