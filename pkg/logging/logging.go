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

// Package logging is the leveled, structured logger used by the cache key
// tooling. Diagnostics go to stderr so that hashing results written to
// stdout stay machine readable.
package logging

import (
	"fmt"
	"strings"
)

// LogLevel is the severity of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelSilent disables all output.
	LevelSilent
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a level name as accepted by the --log-level flag.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "none", "off":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn, error or silent)", s)
	}
}

// LogFormat selects how entries are rendered.
type LogFormat int

const (
	FormatText LogFormat = iota
	FormatJSON
)

func (f LogFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseLogFormat parses a format name as accepted by the --log-format flag.
func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "plain", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (want text or json)", s)
	}
}

// Logger is the logging contract shared by every package.
type Logger interface {
	Debug(format string, args ...any)
	Debugln(msg string)
	Info(format string, args ...any)
	Infoln(msg string)
	Warn(format string, args ...any)
	Warnln(msg string)
	Error(format string, args ...any)
	Errorln(msg string)

	// GetLevel returns the minimum level that produces output.
	GetLevel() LogLevel
	// Silent reports whether debug output is suppressed.
	Silent() bool

	// WithField returns a child logger that adds key=value to every entry.
	WithField(key string, value any) Logger
	// WithFields returns a child logger that adds all fields to every entry.
	WithFields(fields map[string]any) Logger
}

// Default returns an info-level text logger writing to stderr.
func Default() Logger {
	return New(DefaultOptions())
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	opts := DefaultOptions()
	opts.Level = LevelSilent
	return New(opts)
}

// EnsureLogger returns l, or Default() when l is nil.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}
