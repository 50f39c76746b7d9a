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

package options

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnodet/maven-build-cache-extension/pkg/config"
)

// HashOptions holds the flags of the hash command.
type HashOptions struct {
	AlgorithmFlags
	PathFlags
	OutputFlags

	ConfigPath string // --config
	Jobs       int    // --jobs
	ChunkSize  int    // --chunk-size
	SavePath   string // --save
	ListFiles  bool   // --files
}

var _ FlagAdder = (*HashOptions)(nil)

func (o *HashOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.AlgorithmFlags, &o.PathFlags, &o.OutputFlags)

	cmd.Flags().StringVarP(&o.ConfigPath, "config", "c", "",
		"TOML settings file. Defaults to "+config.DefaultFileName+" in the hashed directory when present.")
	_ = cmd.MarkFlagFilename("config", "toml")
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", 0, "Number of files hashed concurrently. 0 uses one worker per CPU.")
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", config.Default().ChunkSize, "Read buffer size per file. 0 reads whole files.")
	cmd.Flags().StringVar(&o.SavePath, "save", "", "Write the manifest to this file.")
	cmd.Flags().BoolVar(&o.ListFiles, "files", false, "Print every file digest before the key.")
}

// HashingConfig merges the settings file with the flags given on the command
// line. Flags win over the file; untouched flags leave the file values alone.
func (o *HashOptions) HashingConfig(cmd *cobra.Command, root string) (config.HashingConfig, error) {
	cfg := config.Default()

	path := o.ConfigPath
	if path == "" {
		candidate := filepath.Join(root, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return config.HashingConfig{}, err
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.HashingConfig{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = o.Algorithm
	}
	if flags.Changed("jobs") {
		cfg.Jobs = o.Jobs
	}
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = o.ChunkSize
	}
	if flags.Changed("ignore-paths") {
		cfg.IgnorePaths = append(cfg.IgnorePaths, o.IgnorePaths...)
	}
	if flags.Changed("ignore-git-paths") {
		cfg.IgnoreGitPaths = o.IgnoreGitPaths
	}
	if flags.Changed("allow-symlinks") {
		cfg.AllowSymlinks = o.AllowSymlinks
	}
	return cfg, cfg.Validate()
}
