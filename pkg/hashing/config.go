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
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/fast"
	hashio "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/io"
	"github.com/gnodet/maven-build-cache-extension/pkg/logging"
	"github.com/gnodet/maven-build-cache-extension/pkg/manifest"
	"github.com/gnodet/maven-build-cache-extension/pkg/tracing"
	"github.com/gnodet/maven-build-cache-extension/pkg/utils"
)

// DefaultChunkSize is the read buffer used for each file.
const DefaultChunkSize = 8192

// GitRelatedPaths are skipped when git paths are ignored.
var GitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

// Config computes the cache key of a directory tree.
//
// Every file is hashed with a fresh session of the configured algorithm and
// the per-file digests are folded into one checksum. Sequential algorithms
// fold in sorted path order; multiply-mix algorithms fold in whatever order
// the workers finish, which yields the same key.
type Config struct {
	factory        *HashFactory
	allowSymlinks  bool
	ignoredPaths   []string
	ignoreGitPaths bool
	chunkSize      int
	jobs           int
	logger         logging.Logger
}

// NewConfig returns a configuration using SHA-256, DefaultChunkSize and one
// worker per CPU.
func NewConfig() *Config {
	return &Config{
		factory:   SHA256,
		chunkSize: DefaultChunkSize,
		jobs:      runtime.GOMAXPROCS(0),
		logger:    logging.Discard(),
	}
}

// SetAlgorithm selects the algorithm by registered name.
func (c *Config) SetAlgorithm(name string) error {
	f, err := Of(name)
	if err != nil {
		return err
	}
	c.factory = f
	return nil
}

func (c *Config) UseAlgorithm(f *HashFactory) *Config {
	c.factory = f
	return c
}

func (c *Config) Algorithm() *HashFactory {
	return c.factory
}

// SetIgnoredPaths replaces the ignore list. Relative entries are matched
// against paths relative to the hashed root, absolute ones against absolute
// paths. An entry also ignores everything below it.
func (c *Config) SetIgnoredPaths(paths []string, ignoreGitPaths bool) *Config {
	c.ignoredPaths = append([]string(nil), paths...)
	c.ignoreGitPaths = ignoreGitPaths
	return c
}

func (c *Config) SetAllowSymlinks(allow bool) *Config {
	c.allowSymlinks = allow
	return c
}

// SetChunkSize sets the read buffer size. 0 reads each file at once.
func (c *Config) SetChunkSize(size int) *Config {
	c.chunkSize = size
	return c
}

// SetJobs bounds the number of files hashed concurrently. Values below 1
// mean one worker per CPU.
func (c *Config) SetJobs(jobs int) *Config {
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}
	c.jobs = jobs
	return c
}

func (c *Config) SetLogger(l logging.Logger) *Config {
	if l == nil {
		l = logging.Discard()
	}
	c.logger = l
	return c
}

// Parameters describes this configuration as recorded in manifests.
func (c *Config) Parameters() manifest.Parameters {
	p := manifest.Parameters{
		Algorithm:      c.factory.Algorithm(),
		CombineMode:    c.factory.CombineMode().String(),
		AllowSymlinks:  c.allowSymlinks,
		IgnoreGitPaths: c.ignoreGitPaths,
		IgnorePaths:    append([]string(nil), c.ignoredPaths...),
	}
	if c.factory.CombineMode() == hashengines.CombineMultiplyMix {
		p.MixVersion = fast.MixVersion
	}
	return p
}

type hashedFile struct {
	rel    string
	digest digests.Digest
}

// Hash computes the cache key of root.
//
// When files is nil the tree under root is walked, honoring the ignore rules
// and the symlink policy. Otherwise exactly the given files are hashed;
// relative entries are resolved against root and every entry must live
// inside it. Cancelling ctx stops the remaining work.
func (c *Config) Hash(ctx context.Context, root string, files []string) (*manifest.Manifest, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", root, err)
	}

	var out *manifest.Manifest
	attrs := map[string]any{
		"hash.algorithm": c.factory.Algorithm(),
		"hash.root":      absRoot,
		"hash.jobs":      c.jobs,
	}
	err = tracing.Run(ctx, "hashing.Hash", attrs, func(ctx context.Context) error {
		var (
			paths []string
			werr  error
		)
		if files == nil {
			paths, werr = c.walkDirectory(ctx, absRoot)
			if werr != nil {
				return fmt.Errorf("failed to walk directory: %w", werr)
			}
		} else {
			paths, werr = resolveFiles(absRoot, files, c.allowSymlinks)
			if werr != nil {
				return werr
			}
		}

		m, herr := c.hashPaths(ctx, absRoot, paths)
		if herr != nil {
			return herr
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func resolveFiles(absRoot string, files []string, allowSymlinks bool) ([]string, error) {
	seen := make(map[string]struct{}, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(absRoot, p)
		}
		p = filepath.Clean(p)
		rel, err := filepath.Rel(absRoot, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("file %q is outside of %q", f, absRoot)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		if err := utils.CheckHashableFile(p, allowSymlinks); err != nil {
			return nil, err
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	return paths, nil
}

// walkDirectory returns every regular file under root that is not ignored.
func (c *Config) walkDirectory(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		if c.shouldIgnorePath(path, root) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			if !c.allowSymlinks {
				c.logger.WithField("path", path).Debugln("skipping symlink")
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to resolve symlink %s: %w", path, err)
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		case !d.Type().IsRegular():
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Config) shouldIgnorePath(path, root string) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	for _, ignored := range c.ignoredPaths {
		compareWith := relPath
		if filepath.IsAbs(ignored) {
			compareWith = path
		}
		ignored = filepath.Clean(ignored)
		if compareWith == ignored || strings.HasPrefix(compareWith, ignored+string(filepath.Separator)) {
			return true
		}
	}

	if c.ignoreGitPaths {
		for _, gitPath := range GitRelatedPaths {
			if relPath == gitPath || strings.HasPrefix(relPath, gitPath+string(filepath.Separator)) {
				return true
			}
		}
	}

	return false
}

func (c *Config) hashPaths(ctx context.Context, root string, paths []string) (*manifest.Manifest, error) {
	start := time.Now()
	log := c.logger.WithField("algorithm", c.factory.Algorithm())

	results := make([]hashedFile, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		results[i].rel = manifest.CanonicalPath(rel)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].rel < results[j].rel })

	checksum, err := c.factory.CreateChecksum(len(results))
	if err != nil {
		return nil, err
	}
	unordered := c.factory.CombineMode() == hashengines.CombineMultiplyMix
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(c.jobs, len(results))))

	for i := range results {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			abs := filepath.Join(root, filepath.FromSlash(results[i].rel))
			hasher, err := hashio.NewSimpleFileHasher(abs, c.factory.Algorithm(), c.factory.CreateAlgorithm, c.chunkSize)
			if err != nil {
				return fmt.Errorf("failed to create hasher for %s: %w", results[i].rel, err)
			}
			d, err := hasher.Compute()
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", results[i].rel, err)
			}
			results[i].digest = d

			if unordered {
				mu.Lock()
				err = checksum.Update(d)
				mu.Unlock()
				if err != nil {
					return err
				}
			}

			log.WithField("path", results[i].rel).Debug("hashed %s", d.Hex())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]manifest.ManifestItem, 0, len(results))
	for _, r := range results {
		if !unordered {
			if err := checksum.Update(r.digest); err != nil {
				return nil, err
			}
		}
		items = append(items, manifest.NewFileManifestItem(r.rel, r.digest))
	}

	key, err := checksum.Compute()
	if err != nil {
		return nil, fmt.Errorf("failed to compute key: %w", err)
	}

	log.WithFields(map[string]any{
		"files":    len(results),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("computed key %s", key.Hex())

	return manifest.NewManifest(filepath.Base(root), items, key, c.Parameters()), nil
}
