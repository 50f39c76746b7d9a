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

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnodet/maven-build-cache-extension/cmd/cachekey/cli/options"
	"github.com/gnodet/maven-build-cache-extension/pkg/config"
	"github.com/gnodet/maven-build-cache-extension/pkg/manifest"
	"github.com/gnodet/maven-build-cache-extension/pkg/utils"
)

// Diff creates the diff command, which compares two saved manifests.
func Diff() *cobra.Command {
	o := &options.DiffOptions{}

	cmd := &cobra.Command{
		Use:   "diff [OPTIONS] PREVIOUS CURRENT",
		Short: "Compare two saved manifests.",
		Long: `Compare the manifests saved at PREVIOUS and CURRENT (see hash --save) and
report added, removed and changed files.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.ValidateFileExists("previous manifest", args[0]); err != nil {
				return err
			}
			if err := utils.ValidateFileExists("current manifest", args[1]); err != nil {
				return err
			}

			previous, err := manifest.LoadFile(args[0])
			if err != nil {
				return err
			}
			current, err := manifest.LoadFile(args[1])
			if err != nil {
				return err
			}

			d := manifest.ComputeDiff(current, previous)
			if o.JSON {
				err = printJSON(cmd.OutOrStdout(), d)
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), config.FormatDiff(d))
			}
			if err != nil {
				return err
			}

			if o.ExitCode && !d.IsEmpty() {
				return &exitError{err: errors.New("manifests differ"), code: 1}
			}
			return nil
		},
	}

	o.AddFlags(cmd)
	return cmd
}
