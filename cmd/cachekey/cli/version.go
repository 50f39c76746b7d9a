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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/fast"
)

type versionOutput struct {
	version.Info
	MixVersion string `json:"mixVersion"`
}

// Version creates the version command: release-utils build metadata followed
// by the multiply-mix revision.
func Version() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetVersionInfo()
			w := cmd.OutOrStdout()
			if outputJSON {
				return printJSON(w, versionOutput{Info: info, MixVersion: fast.MixVersion})
			}
			fmt.Fprintln(w, strings.TrimRight(info.String(), "\n"))
			fmt.Fprintf(w, "MixVersion:     %s\n", fast.MixVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "print JSON instead of text")
	return cmd
}
