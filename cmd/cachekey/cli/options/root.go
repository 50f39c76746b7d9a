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

// Package options defines the command-line options and flags for the cachekey CLI.
// It provides option structures for the root command and every subcommand.
package options

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnodet/maven-build-cache-extension/pkg/logging"
)

// RootOptions defines flags and options for the root CLI command.
// These options are available globally across all subcommands.
type RootOptions struct {
	// OutputFile specifies a file path to redirect output to instead of stdout.
	OutputFile string
	// LogLevel sets the minimum log level (debug, info, warn, error, silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
	// Timeout sets the maximum duration for command execution.
	Timeout time.Duration
}

// DefaultTimeout specifies the default timeout duration for commands.
const DefaultTimeout = 3 * time.Minute

// ValidLogLevels lists the valid log level strings.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "silent"}

// ValidLogFormats lists the valid log format strings.
var ValidLogFormats = []string{"text", "json"}

var _ FlagAdder = (*RootOptions)(nil)

// AddFlags adds root-level flags to the cobra command.
// This includes flags for output file redirection, log level/format, and command timeout.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.OutputFile, "output-file", "",
		"write command output to a file")

	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "warn",
		"set the minimum log level (debug, info, warn, error, silent)")
	_ = cmd.RegisterFlagCompletionFunc("log-level", cobra.FixedCompletions(ValidLogLevels, cobra.ShellCompDirectiveNoFileComp))

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")
	_ = cmd.RegisterFlagCompletionFunc("log-format", cobra.FixedCompletions(ValidLogFormats, cobra.ShellCompDirectiveNoFileComp))

	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", DefaultTimeout,
		"timeout for commands")
}

// Validate rejects unknown log levels and formats before any command runs.
func (o *RootOptions) Validate() error {
	if _, err := logging.ParseLogLevel(o.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseLogFormat(o.LogFormat); err != nil {
		return err
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", o.Timeout)
	}
	return nil
}

// GetLogLevel returns the effective log level based on the options.
func (o *RootOptions) GetLogLevel() logging.LogLevel {
	level, _ := logging.ParseLogLevel(o.LogLevel)
	return level
}

// GetLogFormat returns the log format based on the options.
func (o *RootOptions) GetLogFormat() logging.LogFormat {
	format, _ := logging.ParseLogFormat(o.LogFormat)
	return format
}

// NewLogger creates a new logger writing to w based on the root options.
func (o *RootOptions) NewLogger(w io.Writer) logging.Logger {
	return logging.New(logging.Options{
		Level:     o.GetLogLevel(),
		Format:    o.GetLogFormat(),
		Output:    w,
		ShowLevel: true,
	})
}
