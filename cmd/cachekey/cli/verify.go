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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnodet/maven-build-cache-extension/cmd/cachekey/cli/options"
	"github.com/gnodet/maven-build-cache-extension/pkg/config"
	"github.com/gnodet/maven-build-cache-extension/pkg/tracing"
	"github.com/gnodet/maven-build-cache-extension/pkg/utils"
)

// Verify creates the verify command, which checks a tree against a saved
// manifest.
func Verify() *cobra.Command {
	o := &options.VerifyOptions{}

	long := `Check the directory at ROOT against the manifest saved at MANIFEST.

The tree is rehashed with the algorithm and path settings recorded in the
manifest. The command fails with exit status 1 when the keys differ and lists
the files responsible.`

	cmd := &cobra.Command{
		Use:   "verify [OPTIONS] ROOT MANIFEST",
		Short: "Verify a directory tree against a saved manifest.",
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, o, args[0], args[1])
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runVerify(cmd *cobra.Command, o *options.VerifyOptions, root, manifestPath string) error {
	if err := utils.ValidateFolderExists("root", root); err != nil {
		return err
	}
	if err := utils.ValidateFileExists("manifest", manifestPath); err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	attrs := map[string]any{
		"cachekey.command":             "verify",
		"cachekey.root":                root,
		"cachekey.manifest":            manifestPath,
		"cachekey.only_recorded_files": o.OnlyRecordedFiles,
	}
	return tracing.Run(ctx, "Verify", attrs, func(ctx context.Context) error {
		verifier := config.NewVerifierConfig().
			SetOnlyRecordedFiles(o.OnlyRecordedFiles).
			SetJobs(o.Jobs).
			SetLogger(ro.NewObservability(cmd.ErrOrStderr()).Logger)

		diff, err := verifier.Verify(ctx, root, manifestPath)
		if diff == nil {
			return err
		}

		w := cmd.OutOrStdout()
		if o.JSON {
			if perr := printJSON(w, diff); perr != nil {
				return perr
			}
		} else if diff.IsEmpty() {
			fmt.Fprintf(w, "Verification succeeded: %s\n", diff.CurrentKey)
		}

		if err != nil {
			return &exitError{err: err, code: 1}
		}
		return nil
	})
}
