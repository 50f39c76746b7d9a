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

	"github.com/spf13/cobra"

	"github.com/gnodet/maven-build-cache-extension/cmd/cachekey/cli/options"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing"
	"github.com/gnodet/maven-build-cache-extension/pkg/hashing/digests"
)

// Combine creates the combine command, which folds hex digests into one
// checksum.
func Combine() *cobra.Command {
	o := &options.CombineOptions{}

	long := `Fold the hexadecimal DIGEST arguments into one checksum.

Sequential algorithms fold the digests in the order given. Multiply-mix
algorithms (XXMM, XXH3+MM, METRO+MM) produce the same result for any order
and reduce digests wider than 8 bytes with the algorithm itself first.`

	cmd := &cobra.Command{
		Use:   "combine [OPTIONS] DIGEST...",
		Short: "Combine digests into a single checksum.",
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hashing.Of(o.Algorithm)
			if err != nil {
				return err
			}
			parts := make([]digests.Digest, 0, len(args))
			for _, arg := range args {
				d, err := digests.ParseHex(f.Algorithm(), arg)
				if err != nil {
					return err
				}
				parts = append(parts, d)
			}
			sum, err := f.Checksum(parts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum.Hex())
			return nil
		},
	}

	o.AddFlags(cmd)
	return cmd
}
