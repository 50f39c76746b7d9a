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
	"errors"
	"sync"
	"testing"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantErr   bool
	}{
		{"sha1", "SHA-1", false},
		{"sha256", "SHA-256", false},
		{"sha384", "SHA-384", false},
		{"sha512", "SHA-512", false},
		{"blake2b", "BLAKE2b-512", false},
		{"xx", "XX", false},
		{"xxmm", "XXMM", false},
		{"xxh3", "XXH3", false},
		{"xxh3mm", "XXH3+MM", false},
		{"metro", "METRO", false},
		{"metromm", "METRO+MM", false},
		{"lower case", "sha-256", true},
		{"unsupported", "MD5", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Of(tt.algorithm)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Of(%q) error = %v, wantErr %v", tt.algorithm, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if f.Algorithm() != tt.algorithm {
				t.Errorf("Algorithm() = %q, want %q", f.Algorithm(), tt.algorithm)
			}
		})
	}
}

func TestOf_UnknownAlgorithmCarriesName(t *testing.T) {
	_, err := Of("not-a-real-algorithm")
	if !hashengines.IsType(err, hashengines.ErrTypeUnknownAlgorithm) {
		t.Fatalf("Of() error = %v, want UnknownAlgorithm", err)
	}

	var hashErr *hashengines.HashError
	if !errors.As(err, &hashErr) {
		t.Fatalf("Of() error type = %T, want *HashError", err)
	}
	if hashErr.Algorithm != "not-a-real-algorithm" {
		t.Errorf("HashError.Algorithm = %q, want %q", hashErr.Algorithm, "not-a-real-algorithm")
	}
}

func TestFamiliesAndCombineModes(t *testing.T) {
	tests := []struct {
		factory *HashFactory
		family  hashengines.Family
		combine hashengines.CombineMode
		size    int
	}{
		{SHA1, hashengines.FamilyCryptographic, hashengines.CombineSequential, 20},
		{SHA256, hashengines.FamilyCryptographic, hashengines.CombineSequential, 32},
		{SHA384, hashengines.FamilyCryptographic, hashengines.CombineSequential, 48},
		{SHA512, hashengines.FamilyCryptographic, hashengines.CombineSequential, 64},
		{BLAKE2b512, hashengines.FamilyCryptographic, hashengines.CombineSequential, 64},
		{XX, hashengines.FamilyFast, hashengines.CombineSequential, 8},
		{XXMM, hashengines.FamilyFast, hashengines.CombineMultiplyMix, 8},
		{XXH3, hashengines.FamilyFast, hashengines.CombineSequential, 8},
		{XXH3MM, hashengines.FamilyFast, hashengines.CombineMultiplyMix, 8},
		{METRO, hashengines.FamilyFast, hashengines.CombineSequential, 8},
		{METROMM, hashengines.FamilyFast, hashengines.CombineMultiplyMix, 8},
	}

	for _, tt := range tests {
		t.Run(tt.factory.Algorithm(), func(t *testing.T) {
			if tt.factory.Family() != tt.family {
				t.Errorf("Family() = %v, want %v", tt.factory.Family(), tt.family)
			}
			if tt.factory.CombineMode() != tt.combine {
				t.Errorf("CombineMode() = %v, want %v", tt.factory.CombineMode(), tt.combine)
			}
			a, err := tt.factory.CreateAlgorithm()
			if err != nil {
				t.Fatalf("CreateAlgorithm() error = %v", err)
			}
			if a.DigestSize() != tt.size {
				t.Errorf("DigestSize() = %d, want %d", a.DigestSize(), tt.size)
			}
		})
	}
}

func TestValuesAndNames(t *testing.T) {
	vals := Values()
	names := Names()
	if len(vals) != len(names) {
		t.Fatalf("len(Values()) = %d, len(Names()) = %d", len(vals), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, f := range vals {
		if !IsSupported(f.Algorithm()) {
			t.Errorf("IsSupported(%q) = false", f.Algorithm())
		}
	}
	if IsSupported("XX ") {
		t.Error("IsSupported(\"XX \") = true, want false")
	}
}

func TestEmptyInputDeterminism(t *testing.T) {
	for _, f := range Values() {
		t.Run(f.Algorithm(), func(t *testing.T) {
			first, err := f.Hash(nil)
			if err != nil {
				t.Fatalf("Hash(nil) error = %v", err)
			}
			for i := 0; i < 3; i++ {
				a, err := f.CreateAlgorithm()
				if err != nil {
					t.Fatalf("CreateAlgorithm() error = %v", err)
				}
				d, err := a.Compute()
				if err != nil {
					t.Fatalf("Compute() error = %v", err)
				}
				if !d.Equal(first) {
					t.Errorf("Compute() = %s, want %s", d, first)
				}
			}
		})
	}
}

// Digests of the empty input. MM variants share their primitive with the
// plain fast algorithm.
func TestEmptyInputGolden(t *testing.T) {
	tests := map[string]string{
		"SHA-1":       "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		"SHA-256":     "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		"SHA-384":     "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b",
		"SHA-512":     "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		"BLAKE2b-512": "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be2ce",
		"XX":          "ef46db3751d8e999",
		"XXMM":        "ef46db3751d8e999",
		"XXH3":        "2d06800538d394c2",
		"XXH3+MM":     "2d06800538d394c2",
		"METRO":       "705fb008071e967d",
		"METRO+MM":    "705fb008071e967d",
	}
	if len(tests) != len(Names()) {
		t.Fatalf("golden table has %d entries, registry has %d", len(tests), len(Names()))
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Of(name)
			if err != nil {
				t.Fatalf("Of(%q) error = %v", name, err)
			}
			d, err := f.Hash(nil)
			if err != nil {
				t.Fatalf("Hash(nil) error = %v", err)
			}
			if d.Hex() != want {
				t.Errorf("Hash(nil) = %q, want %q", d.Hex(), want)
			}
		})
	}
}

func TestSplitFeedEquivalence(t *testing.T) {
	b1 := []byte("org.apache.maven:maven-core:3.9.6\n")
	b2 := []byte("src/main/java/Foo.java\x00bar")

	for _, f := range Values() {
		t.Run(f.Algorithm(), func(t *testing.T) {
			a, err := f.CreateAlgorithm()
			if err != nil {
				t.Fatalf("CreateAlgorithm() error = %v", err)
			}
			if err := a.Update(b1); err != nil {
				t.Fatalf("Update(b1) error = %v", err)
			}
			if err := a.Update(b2); err != nil {
				t.Fatalf("Update(b2) error = %v", err)
			}
			split, err := a.Compute()
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}

			whole, err := f.Hash(append(append([]byte{}, b1...), b2...))
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !split.Equal(whole) {
				t.Errorf("split = %s, whole = %s", split, whole)
			}
		})
	}
}

// Reference digests of the bytes "hello world\n".
func TestHelloWorldReference(t *testing.T) {
	tests := map[string]string{
		"SHA-1":   "22596363b3de40b06f981fb85d82312e8c0ed511",
		"SHA-256": "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447",
		"SHA-384": "6b3b69ff0a404f28d75e98a066d3fc64fffd9940870cc68bece28545b9a75086b343d7a1366838083e4b8f3ca6fd3c80",
		"SHA-512": "db3974a97f2407b7cae1ae637c0030687a11913274d578492558e39c16c017de84eacdc8c62fe34ee4e12b4b1428817f09b6a2760c3f8a664ceae94d2434a593",
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Of(name)
			if err != nil {
				t.Fatalf("Of(%q) error = %v", name, err)
			}
			d, err := f.Hash([]byte("hello world\n"))
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if d.Hex() != want {
				t.Errorf("Hash() = %q, want %q", d.Hex(), want)
			}
		})
	}
}

func hashes(t *testing.T, f *HashFactory, inputs ...string) []digests.Digest {
	t.Helper()
	out := make([]digests.Digest, 0, len(inputs))
	for _, in := range inputs {
		d, err := f.Hash([]byte(in))
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", in, err)
		}
		out = append(out, d)
	}
	return out
}

func TestChecksum_OrderSemantics(t *testing.T) {
	for _, f := range Values() {
		t.Run(f.Algorithm(), func(t *testing.T) {
			parts := hashes(t, f, "pom.xml", "src/A.java", "src/B.java")

			forward, err := f.Checksum(parts[0], parts[1], parts[2])
			if err != nil {
				t.Fatalf("Checksum() error = %v", err)
			}
			reversed, err := f.Checksum(parts[2], parts[1], parts[0])
			if err != nil {
				t.Fatalf("Checksum() error = %v", err)
			}

			switch f.CombineMode() {
			case hashengines.CombineMultiplyMix:
				if !forward.Equal(reversed) {
					t.Errorf("multiply-mix checksum depends on order: %s vs %s", forward, reversed)
				}
			default:
				if forward.Equal(reversed) {
					t.Errorf("sequential checksum ignores order: %s", forward)
				}
			}

			single, err := f.Checksum(parts[0])
			if err != nil {
				t.Fatalf("Checksum(single) error = %v", err)
			}
			again, err := f.Checksum(parts[0])
			if err != nil {
				t.Fatalf("Checksum(single) error = %v", err)
			}
			if !single.Equal(again) {
				t.Errorf("Checksum(single) not deterministic: %s vs %s", single, again)
			}
		})
	}
}

// A sequential fast checksum is the primitive applied to the concatenated
// contribution values.
func TestChecksum_SequentialGolden(t *testing.T) {
	tests := map[string]string{
		"XX":    "b5cb2cb49784abff",
		"XXH3":  "fd7caabc2c178028",
		"METRO": "e4c616437e43e243",
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Of(name)
			if err != nil {
				t.Fatalf("Of(%q) error = %v", name, err)
			}
			a, err := digests.ParseHex(name, "0123456789abcdef")
			if err != nil {
				t.Fatalf("ParseHex() error = %v", err)
			}
			b, err := digests.ParseHex(name, "fedcba9876543210")
			if err != nil {
				t.Fatalf("ParseHex() error = %v", err)
			}
			got, err := f.Checksum(a, b)
			if err != nil {
				t.Fatalf("Checksum() error = %v", err)
			}
			if got.Hex() != want {
				t.Errorf("Checksum() = %q, want %q", got.Hex(), want)
			}
		})
	}
}

func TestChecksum_CountContract(t *testing.T) {
	for _, f := range Values() {
		t.Run(f.Algorithm(), func(t *testing.T) {
			parts := hashes(t, f, "a", "b", "c", "d")

			c, err := f.CreateChecksum(3)
			if err != nil {
				t.Fatalf("CreateChecksum(3) error = %v", err)
			}
			for _, p := range parts[:2] {
				if err := c.Update(p); err != nil {
					t.Fatalf("Update() error = %v", err)
				}
			}
			if _, err := c.Compute(); !hashengines.IsType(err, hashengines.ErrTypeIncompleteAggregation) {
				t.Errorf("Compute() after 2 of 3 error = %v, want IncompleteAggregation", err)
			}
			if err := c.Update(parts[2]); err != nil {
				t.Fatalf("Update() #3 error = %v", err)
			}
			if err := c.Update(parts[3]); !hashengines.IsType(err, hashengines.ErrTypeTooManyContributions) {
				t.Errorf("Update() #4 error = %v, want TooManyContributions", err)
			}
			if _, err := c.Compute(); err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if err := c.Update(parts[3]); !hashengines.IsType(err, hashengines.ErrTypeAlreadyFinalized) {
				t.Errorf("Update() after Compute() error = %v, want AlreadyFinalized", err)
			}
			if _, err := c.Compute(); !hashengines.IsType(err, hashengines.ErrTypeAlreadyFinalized) {
				t.Errorf("second Compute() error = %v, want AlreadyFinalized", err)
			}
		})
	}
}

func TestCreateChecksum_NegativeCount(t *testing.T) {
	for _, f := range []*HashFactory{SHA256, XX, XXMM} {
		if _, err := f.CreateChecksum(-1); err == nil {
			t.Errorf("%s.CreateChecksum(-1) error = nil, want error", f)
		}
	}
}

func TestConcurrentLookupAndHashing(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]digests.Digest, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := Of("XXMM")
			if err != nil {
				t.Errorf("Of() error = %v", err)
				return
			}
			d, err := f.Hash([]byte("shared input"))
			if err != nil {
				t.Errorf("Hash() error = %v", err)
				return
			}
			results[i] = d
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if !results[i].Equal(results[0]) {
			t.Errorf("results[%d] = %s, want %s", i, results[i], results[0])
		}
	}
}
