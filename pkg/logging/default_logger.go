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

package logging

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// Options configures a DefaultLogger.
type Options struct {
	Level LogLevel
	// Format is ignored when Formatter is set.
	Format    LogFormat
	Formatter Formatter
	// Output defaults to os.Stderr.
	Output     io.Writer
	TimeFormat string
	ShowLevel  bool
}

func DefaultOptions() Options {
	return Options{
		Level:     LevelInfo,
		Format:    FormatText,
		Output:    os.Stderr,
		ShowLevel: true,
	}
}

// DefaultLogger is the built-in Logger. Children created with WithFields
// share the parent's writer lock, so concurrent workers never interleave
// partial lines.
type DefaultLogger struct {
	mu        *sync.Mutex
	level     LogLevel
	formatter Formatter
	out       io.Writer
	fields    map[string]any
	now       func() time.Time
}

func New(opts Options) *DefaultLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	formatter := opts.Formatter
	if formatter == nil {
		switch opts.Format {
		case FormatJSON:
			formatter = &JSONFormatter{TimeFormat: opts.TimeFormat}
		default:
			formatter = &TextFormatter{TimeFormat: opts.TimeFormat, ShowLevel: opts.ShowLevel}
		}
	}

	return &DefaultLogger{
		mu:        &sync.Mutex{},
		level:     opts.Level,
		formatter: formatter,
		out:       out,
		now:       time.Now,
	}
}

func (l *DefaultLogger) WithFields(fields map[string]any) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)

	return &DefaultLogger{
		mu:        l.mu,
		level:     l.level,
		formatter: l.formatter,
		out:       l.out,
		fields:    merged,
		now:       l.now,
	}
}

func (l *DefaultLogger) WithField(key string, value any) Logger {
	return l.WithFields(map[string]any{key: value})
}

// SetLevel changes the minimum level of this logger only.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *DefaultLogger) Silent() bool {
	return l.GetLevel() > LevelDebug
}

// Enabled reports whether an entry at level would be written.
func (l *DefaultLogger) Enabled(level LogLevel) bool {
	return level < LevelSilent && level >= l.GetLevel()
}

func (l *DefaultLogger) log(level LogLevel, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level || l.level == LevelSilent {
		return
	}

	data, err := l.formatter.Format(LogEntry{
		Timestamp: l.now(),
		Level:     level,
		Message:   msg,
		Fields:    l.fields,
	})
	if err != nil {
		fmt.Fprintf(l.out, "logging error: %v\n", err)
		return
	}
	_, _ = l.out.Write(data)
}

func (l *DefaultLogger) Debug(format string, args ...any) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugln(msg string) {
	l.log(LevelDebug, msg)
}

func (l *DefaultLogger) Info(format string, args ...any) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Infoln(msg string) {
	l.log(LevelInfo, msg)
}

func (l *DefaultLogger) Warn(format string, args ...any) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Warnln(msg string) {
	l.log(LevelWarn, msg)
}

func (l *DefaultLogger) Error(format string, args ...any) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Errorln(msg string) {
	l.log(LevelError, msg)
}
