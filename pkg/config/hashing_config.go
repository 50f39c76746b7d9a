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

// Package config loads the cache key settings from a TOML file and turns
// them into a ready-to-run hashing configuration.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing"
	"github.com/gnodet/maven-build-cache-extension/pkg/logging"
)

// DefaultFileName is looked up in the hashed root when no file is given.
const DefaultFileName = "cachekey.toml"

// HashingConfig is the on-disk form of the hashing settings.
//
//	algorithm = "XXMM"
//	chunk_size = 65536
//	jobs = 8
//	ignore_paths = ["target", "build"]
//	ignore_git_paths = true
//	allow_symlinks = false
type HashingConfig struct {
	Algorithm      string   `toml:"algorithm"`
	ChunkSize      int      `toml:"chunk_size"`
	Jobs           int      `toml:"jobs"`
	IgnorePaths    []string `toml:"ignore_paths"`
	IgnoreGitPaths bool     `toml:"ignore_git_paths"`
	AllowSymlinks  bool     `toml:"allow_symlinks"`
}

// Default returns the settings used when no file is present.
func Default() HashingConfig {
	return HashingConfig{
		Algorithm:      hashing.SHA256.Algorithm(),
		ChunkSize:      hashing.DefaultChunkSize,
		IgnoreGitPaths: true,
	}
}

// Load reads path on top of Default(). Unknown keys are rejected so typos do
// not silently change the key.
func Load(path string) (HashingConfig, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return HashingConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := checkMeta(meta, cfg); err != nil {
		return HashingConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for in-memory content.
func Parse(data string) (HashingConfig, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return HashingConfig{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := checkMeta(meta, cfg); err != nil {
		return HashingConfig{}, err
	}
	return cfg, nil
}

func checkMeta(meta toml.MetaData, cfg HashingConfig) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("algorithm") && strings.TrimSpace(cfg.Algorithm) == "" {
		return fmt.Errorf("algorithm must not be empty")
	}
	if meta.IsDefined("jobs") && cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}
	return nil
}

// Validate checks that the settings can be run.
func (c HashingConfig) Validate() error {
	if _, err := hashing.Of(c.Algorithm); err != nil {
		return err
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be non-negative, got %d", c.ChunkSize)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be non-negative, got %d", c.Jobs)
	}
	for _, p := range c.IgnorePaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("ignore_paths must not contain empty entries")
		}
	}
	return nil
}

// Build validates the settings and returns the matching hashing.Config.
// A zero Jobs value means one worker per CPU.
func (c HashingConfig) Build(logger logging.Logger) (*hashing.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	hc := hashing.NewConfig().
		SetIgnoredPaths(c.IgnorePaths, c.IgnoreGitPaths).
		SetAllowSymlinks(c.AllowSymlinks).
		SetChunkSize(c.ChunkSize).
		SetJobs(c.Jobs).
		SetLogger(logger)
	if err := hc.SetAlgorithm(c.Algorithm); err != nil {
		return nil, err
	}
	return hc, nil
}
