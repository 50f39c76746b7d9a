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

package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
)

// SchemaVersion is the persisted manifest format. Bump it whenever
// storedManifest changes shape.
const SchemaVersion uint16 = 1

type storedManifest struct {
	Schema uint16         `msgpack:"schema"`
	Name   string         `msgpack:"name"`
	Key    []byte         `msgpack:"key"`
	Params map[string]any `msgpack:"params"`
	Items  []storedItem   `msgpack:"items"`
}

type storedItem struct {
	Path   string `msgpack:"path"`
	Digest []byte `msgpack:"digest"`
}

// Encode writes m to w in the persisted msgpack format.
func Encode(w io.Writer, m *Manifest) error {
	descs := m.ResourceDescriptors()
	payload := storedManifest{
		Schema: SchemaVersion,
		Name:   m.name,
		Key:    m.key.Value(),
		Params: m.params.Map(),
		Items:  make([]storedItem, 0, len(descs)),
	}
	for _, rd := range descs {
		payload.Items = append(payload.Items, storedItem{
			Path:   rd.Identifier,
			Digest: rd.Digest.Value(),
		})
	}

	if err := msgpack.NewEncoder(w).Encode(&payload); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

// Decode reads a manifest written by Encode.
func Decode(r io.Reader) (*Manifest, error) {
	var payload storedManifest
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if payload.Schema != SchemaVersion {
		return nil, fmt.Errorf("unsupported manifest schema %d, want %d", payload.Schema, SchemaVersion)
	}

	params, err := ParametersFromMap(payload.Params)
	if err != nil {
		return nil, fmt.Errorf("decode manifest parameters: %w", err)
	}

	items := make([]ManifestItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, NewFileManifestItem(it.Path, digests.NewDigest(params.Algorithm, it.Digest)))
	}

	key := digests.NewDigest(params.Algorithm, payload.Key)
	return NewManifest(payload.Name, items, key, params), nil
}

// SaveFile writes m to path, replacing any existing file atomically.
func SaveFile(path string, m *Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := Encode(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %q: %w", tmp, err)
	}
	return nil
}

// LoadFile reads a manifest saved by SaveFile.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %q: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
