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
	"github.com/spf13/cobra"
)

type VerifyOptions struct {
	OutputFlags

	OnlyRecordedFiles bool // --only-recorded-files
	Jobs              int  // --jobs
}

func (o *VerifyOptions) AddFlags(cmd *cobra.Command) {
	o.OutputFlags.AddFlags(cmd)
	cmd.Flags().BoolVar(&o.OnlyRecordedFiles, "only-recorded-files", false,
		"Hash only the files listed in the manifest. New files are not reported.")
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", 0, "Number of files hashed concurrently. 0 uses one worker per CPU.")
}

type DiffOptions struct {
	OutputFlags

	ExitCode bool // --exit-code
}

func (o *DiffOptions) AddFlags(cmd *cobra.Command) {
	o.OutputFlags.AddFlags(cmd)
	cmd.Flags().BoolVar(&o.ExitCode, "exit-code", false, "Exit with status 1 when the manifests differ.")
}

type CombineOptions struct {
	AlgorithmFlags
}

func (o *CombineOptions) AddFlags(cmd *cobra.Command) {
	o.AlgorithmFlags.AddFlags(cmd)
}
