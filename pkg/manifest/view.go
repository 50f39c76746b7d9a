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

// View is the JSON rendering of a manifest, with digests hex encoded.
type View struct {
	Name        string     `json:"name"`
	Algorithm   string     `json:"algorithm"`
	CombineMode string     `json:"combine_mode"`
	MixVersion  string     `json:"mix_version,omitempty"`
	Key         string     `json:"key"`
	Files       []FileView `json:"files"`
}

type FileView struct {
	Path   string `json:"path"`
	Digest string `json:"digest"`
}

// View returns the JSON rendering of m, with files sorted by path.
func (m *Manifest) View() View {
	descs := m.ResourceDescriptors()
	v := View{
		Name:        m.name,
		Algorithm:   m.params.Algorithm,
		CombineMode: m.params.CombineMode,
		MixVersion:  m.params.MixVersion,
		Key:         m.key.Hex(),
		Files:       make([]FileView, 0, len(descs)),
	}
	for _, rd := range descs {
		v.Files = append(v.Files, FileView{Path: rd.Identifier, Digest: rd.Digest.Hex()})
	}
	return v
}
