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
	"github.com/gnodet/maven-build-cache-extension/pkg/manifest"
	"github.com/gnodet/maven-build-cache-extension/pkg/tracing"
	"github.com/gnodet/maven-build-cache-extension/pkg/utils"
)

// Hash creates the hash command, which computes the cache key of a tree.
func Hash() *cobra.Command {
	o := &options.HashOptions{}

	long := `Compute the cache key of the directory at ROOT (default ".").

Every regular file below ROOT is hashed with the selected algorithm and the
per-file digests are folded into a single key. When FILE arguments follow
ROOT, exactly those files are hashed instead of walking the tree.

Settings are read from ` + "`cachekey.toml`" + ` in ROOT, or from --config.
Flags given on the command line override the file.`

	cmd := &cobra.Command{
		Use:   "hash [OPTIONS] [ROOT] [FILE...]",
		Short: "Compute the cache key of a directory tree.",
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			var files []string
			if len(args) > 0 {
				root = args[0]
			}
			if len(args) > 1 {
				files = args[1:]
			}
			return runHash(cmd, o, root, files)
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runHash(cmd *cobra.Command, o *options.HashOptions, root string, files []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := utils.ValidateFolderExists("root", root); err != nil {
		return err
	}
	if err := utils.ValidateOptionalFile("config", o.ConfigPath); err != nil {
		return err
	}

	logger := ro.NewObservability(cmd.ErrOrStderr()).Logger
	fileCfg, err := o.HashingConfig(cmd, root)
	if err != nil {
		return err
	}

	attrs := map[string]any{
		"cachekey.command":   "hash",
		"cachekey.root":      root,
		"cachekey.algorithm": fileCfg.Algorithm,
		"cachekey.files":     len(files),
	}
	return tracing.Run(ctx, "Hash", attrs, func(ctx context.Context) error {
		hc, err := fileCfg.Build(logger)
		if err != nil {
			return err
		}
		m, err := hc.Hash(ctx, root, files)
		if err != nil {
			return err
		}

		if o.SavePath != "" {
			if err := manifest.SaveFile(o.SavePath, m); err != nil {
				return err
			}
			logger.WithField("path", o.SavePath).Infoln("manifest saved")
		}

		w := cmd.OutOrStdout()
		if o.JSON {
			return printJSON(w, m.View())
		}
		if o.ListFiles {
			for _, rd := range m.ResourceDescriptors() {
				fmt.Fprintf(w, "%s  %s\n", rd.Digest.Hex(), rd.Identifier)
			}
		}
		fmt.Fprintln(w, m.Key().Hex())
		return nil
	})
}
