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
	"path"
	"path/filepath"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
)

// ManifestItem is one hashed input of a manifest.
//
//nolint:revive
type ManifestItem interface {
	Name() string
	Digest() digests.Digest
}

// FileManifestItem pairs a file path, relative to the hashed root, with the
// digest of its content. The path is stored in clean POSIX form.
type FileManifestItem struct {
	path   string
	digest digests.Digest
}

func NewFileManifestItem(p string, digest digests.Digest) *FileManifestItem {
	return &FileManifestItem{
		path:   CanonicalPath(p),
		digest: digest,
	}
}

// Name returns the canonical POSIX path of the file.
func (item *FileManifestItem) Name() string {
	return item.path
}

func (item *FileManifestItem) Digest() digests.Digest {
	return item.digest
}

// CanonicalPath converts an OS path into the identifier used in manifests.
func CanonicalPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
