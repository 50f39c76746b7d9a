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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gnodet/maven-build-cache-extension/cmd/cachekey/cli/options"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing"
	hashengines "github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/engines/fast"
)

type algorithmInfo struct {
	Name        string `json:"name"`
	Family      string `json:"family"`
	CombineMode string `json:"combine_mode"`
	MixVersion  string `json:"mix_version,omitempty"`
}

// Algorithms creates the algorithms command, which lists the registry.
func Algorithms() *cobra.Command {
	o := &options.OutputFlags{}

	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the supported hash algorithms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var infos []algorithmInfo
			for _, f := range hashing.Values() {
				info := algorithmInfo{
					Name:        f.Algorithm(),
					Family:      f.Family().String(),
					CombineMode: f.CombineMode().String(),
				}
				if f.CombineMode() == hashengines.CombineMultiplyMix {
					info.MixVersion = fast.MixVersion
				}
				infos = append(infos, info)
			}

			if o.JSON {
				return printJSON(cmd.OutOrStdout(), infos)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFAMILY\tCOMBINE")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Family, info.CombineMode)
			}
			return tw.Flush()
		},
	}

	o.AddFlags(cmd)
	return cmd
}
