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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// LogEntry is what a Formatter renders.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Message   string
	Fields    map[string]any
}

// Formatter renders one entry, including the trailing newline.
type Formatter interface {
	Format(entry LogEntry) ([]byte, error)
}

// TextFormatter renders "[LEVEL] message key=value ..." lines. Fields are
// sorted by key so identical entries always render identically.
type TextFormatter struct {
	// TimeFormat prefixes each line with the timestamp. Empty disables it.
	TimeFormat string
	ShowLevel  bool
}

func (f *TextFormatter) Format(entry LogEntry) ([]byte, error) {
	var b strings.Builder

	if f.TimeFormat != "" {
		b.WriteString(entry.Timestamp.Format(f.TimeFormat))
		b.WriteByte(' ')
	}
	if f.ShowLevel {
		fmt.Fprintf(&b, "[%s] ", strings.ToUpper(entry.Level.String()))
	}
	b.WriteString(entry.Message)

	for _, k := range sortedKeys(entry.Fields) {
		v := fmt.Sprint(entry.Fields[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	b.WriteByte('\n')

	return []byte(b.String()), nil
}

// JSONFormatter renders one JSON object per line. Fields are merged into the
// top level; they never override the time, level and msg keys.
type JSONFormatter struct {
	// TimeFormat defaults to time.RFC3339.
	TimeFormat string
}

func (f *JSONFormatter) Format(entry LogEntry) ([]byte, error) {
	timeFmt := f.TimeFormat
	if timeFmt == "" {
		timeFmt = time.RFC3339
	}

	obj := make(map[string]any, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		obj[k] = v
	}
	obj["time"] = entry.Timestamp.Format(timeFmt)
	obj["level"] = entry.Level.String()
	obj["msg"] = entry.Message

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal log entry: %w", err)
	}
	return append(data, '\n'), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
