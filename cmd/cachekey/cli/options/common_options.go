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
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing"
)

// FlagAdder is implemented by any flag group that can register itself to a cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// PathFlags controls which files of a tree are hashed.
type PathFlags struct {
	// IgnorePaths lists file paths to exclude from hashing.
	IgnorePaths []string
	// IgnoreGitPaths controls whether git-related files are automatically excluded.
	IgnoreGitPaths bool
	// AllowSymlinks determines whether symbolic links should be followed.
	AllowSymlinks bool
}

// AddFlags adds path flags to the cobra command.
func (o *PathFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.IgnorePaths, "ignore-paths", nil, "File paths to ignore when hashing.")
	cmd.Flags().BoolVar(&o.IgnoreGitPaths, "ignore-git-paths", true, "Ignore git-related files when hashing.")
	cmd.Flags().BoolVar(&o.AllowSymlinks, "allow-symlinks", false, "Whether to follow symlinks when hashing.")
}

// AlgorithmFlags selects a registered hash algorithm.
type AlgorithmFlags struct {
	Algorithm string
}

// AddFlags adds the --algorithm flag with shell completion over the registry.
func (o *AlgorithmFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", hashing.SHA256.Algorithm(),
		"Hash algorithm, one of: "+strings.Join(hashing.Names(), ", "))
	_ = cmd.RegisterFlagCompletionFunc("algorithm", cobra.FixedCompletions(hashing.Names(), cobra.ShellCompDirectiveNoFileComp))
}

// OutputFlags selects between the text and JSON renderings.
type OutputFlags struct {
	JSON bool
}

func (o *OutputFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.JSON, "json", false, "Print the result as JSON.")
}

// AddAllFlags is a helper function to register multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}
