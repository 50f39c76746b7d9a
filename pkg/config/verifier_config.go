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

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing"
	"github.com/gnodet/maven-build-cache-extension/pkg/logging"
	"github.com/gnodet/maven-build-cache-extension/pkg/manifest"
)

// VerifierConfig checks a directory tree against a saved manifest.
//
// Unless a hashing configuration is set explicitly, the one recorded in the
// saved manifest is used, so the recomputed key is comparable.
type VerifierConfig struct {
	hashingConfig *hashing.Config
	onlyRecorded  bool
	jobs          int
	logger        logging.Logger
}

func NewVerifierConfig() *VerifierConfig {
	return &VerifierConfig{logger: logging.Discard()}
}

// SetHashingConfig disables guessing the configuration from the manifest.
func (c *VerifierConfig) SetHashingConfig(hc *hashing.Config) *VerifierConfig {
	c.hashingConfig = hc
	return c
}

// SetOnlyRecordedFiles restricts hashing to the files listed in the saved
// manifest. New files in the tree are then not reported.
func (c *VerifierConfig) SetOnlyRecordedFiles(only bool) *VerifierConfig {
	c.onlyRecorded = only
	return c
}

func (c *VerifierConfig) SetJobs(jobs int) *VerifierConfig {
	c.jobs = jobs
	return c
}

func (c *VerifierConfig) SetLogger(l logging.Logger) *VerifierConfig {
	c.logger = logging.EnsureLogger(l)
	return c
}

// Verify rehashes root and compares it with the manifest saved at
// manifestPath. It returns the diff together with a non-nil error when the
// keys differ.
func (c *VerifierConfig) Verify(ctx context.Context, root, manifestPath string) (*manifest.ManifestDiff, error) {
	expected, err := manifest.LoadFile(manifestPath)
	if err != nil {
		return nil, err
	}

	hc := c.hashingConfig
	if hc == nil {
		hc, err = c.guessHashingConfig(expected)
		if err != nil {
			return nil, fmt.Errorf("failed to determine hashing config: %w", err)
		}
	}

	var files []string
	if c.onlyRecorded {
		files = make([]string, 0, expected.Len())
		for _, rd := range expected.ResourceDescriptors() {
			rel := filepath.FromSlash(rd.Identifier)
			if _, err := os.Lstat(filepath.Join(root, rel)); errors.Is(err, fs.ErrNotExist) {
				continue
			}
			files = append(files, rel)
		}
	}

	actual, err := hc.Hash(ctx, root, files)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", root, err)
	}

	diff := manifest.ComputeDiff(actual, expected)
	if !diff.IsEmpty() {
		return diff, fmt.Errorf("cache key mismatch:\n%s", FormatDiff(diff))
	}
	return diff, nil
}

func (c *VerifierConfig) guessHashingConfig(m *manifest.Manifest) (*hashing.Config, error) {
	p := m.Parameters()

	hc := hashing.NewConfig().
		SetIgnoredPaths(p.IgnorePaths, p.IgnoreGitPaths).
		SetAllowSymlinks(p.AllowSymlinks).
		SetJobs(c.jobs).
		SetLogger(c.logger)
	if err := hc.SetAlgorithm(p.Algorithm); err != nil {
		return nil, err
	}

	if got := hc.Parameters(); got.CombineMode != p.CombineMode || got.MixVersion != p.MixVersion {
		return nil, fmt.Errorf("manifest was built with %s %s%s, this build uses %s %s%s",
			p.Algorithm, p.CombineMode, suffix(p.MixVersion),
			got.Algorithm, got.CombineMode, suffix(got.MixVersion))
	}
	return hc, nil
}

func suffix(v string) string {
	if v == "" {
		return ""
	}
	return " (" + v + ")"
}

// FormatDiff renders a diff as one line per finding.
func FormatDiff(d *manifest.ManifestDiff) string {
	var lines []string
	if d.AlgorithmChanged {
		lines = append(lines, "Algorithm changed")
	}
	if len(d.Added) > 0 {
		lines = append(lines, fmt.Sprintf("Added files: %v", d.Added))
	}
	if len(d.Removed) > 0 {
		lines = append(lines, fmt.Sprintf("Removed files: %v", d.Removed))
	}
	for _, m := range d.Changed {
		lines = append(lines, fmt.Sprintf("Hash mismatch for '%s': previous '%s', current '%s'",
			m.Identifier, m.PreviousHash, m.CurrentHash))
	}
	if d.KeyChanged {
		lines = append(lines, fmt.Sprintf("Key changed: previous '%s', current '%s'", d.PreviousKey, d.CurrentKey))
	}
	if len(lines) == 0 {
		return "no differences found"
	}
	return strings.Join(lines, "\n")
}
