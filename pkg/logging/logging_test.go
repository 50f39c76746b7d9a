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
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer, level LogLevel, format LogFormat) *DefaultLogger {
	l := New(Options{Level: level, Format: format, Output: buf, ShowLevel: true})
	l.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestNewDefaults(t *testing.T) {
	l := New(Options{})
	if l.out != os.Stderr {
		t.Error("New() should default to os.Stderr")
	}
	if _, ok := l.formatter.(*TextFormatter); !ok {
		t.Errorf("formatter = %T, want *TextFormatter", l.formatter)
	}

	d := DefaultOptions()
	if d.Level != LevelInfo || d.Format != FormatText || d.Output != os.Stderr {
		t.Errorf("DefaultOptions() = %+v", d)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelSilent, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    LogFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"plain", FormatText, false},
		{"JSON", FormatJSON, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		want  []string
	}{
		{"debug", LevelDebug, []string{"[DEBUG] d", "[INFO] i", "[WARN] w", "[ERROR] e"}},
		{"info", LevelInfo, []string{"[INFO] i", "[WARN] w", "[ERROR] e"}},
		{"warn", LevelWarn, []string{"[WARN] w", "[ERROR] e"}},
		{"error", LevelError, []string{"[ERROR] e"}},
		{"silent", LevelSilent, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newTestLogger(&buf, tt.level, FormatText)
			l.Debug("%s", "d")
			l.Infoln("i")
			l.Warn("w")
			l.Errorln("e")

			got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if len(tt.want) == 0 {
				if buf.Len() != 0 {
					t.Errorf("output = %q, want none", buf.String())
				}
				return
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSilentAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo, FormatText)
	if !l.Silent() {
		t.Error("Silent() = false at info level")
	}
	if l.Enabled(LevelDebug) || !l.Enabled(LevelWarn) {
		t.Error("Enabled() wrong at info level")
	}

	l.SetLevel(LevelDebug)
	if l.Silent() || l.GetLevel() != LevelDebug {
		t.Error("SetLevel(LevelDebug) not applied")
	}
}

func TestTextFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo, FormatText)
	l.WithFields(map[string]any{
		"zeta":  1,
		"alpha": "x",
		"path":  "src/My File.java",
	}).Infoln("hashed")

	want := "[INFO] hashed alpha=x path=\"src/My File.java\" zeta=1\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTextTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, TimeFormat: time.RFC3339})
	l.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	l.Infoln("m")

	if buf.String() != "2025-01-02T03:04:05Z m\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo, FormatJSON)
	l.WithField("files", 3).WithField("err", errors.New("boom")).WithField("msg", "ignored").Warn("key %s", "ready")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	want := map[string]any{
		"time":  "2025-01-02T03:04:05Z",
		"level": "warn",
		"msg":   "key ready",
		"files": float64(3),
		"err":   "boom",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, LevelInfo, FormatText)
	child := parent.WithField("module", "core")

	parent.Infoln("parent")
	child.Infoln("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "[INFO] parent" {
		t.Errorf("parent line = %q", lines[0])
	}
	if lines[1] != "[INFO] child module=core" {
		t.Errorf("child line = %q", lines[1])
	}
}

func TestConcurrentChildrenWriteWholeLines(t *testing.T) {
	var buf bytes.Buffer
	root := newTestLogger(&buf, LevelInfo, FormatText)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			child := root.WithField("worker", i)
			for j := 0; j < 50; j++ {
				child.Infoln("tick")
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 400 {
		t.Fatalf("got %d lines, want 400", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "[INFO] tick worker=") {
			t.Fatalf("corrupted line %q", line)
		}
	}
}

type failingFormatter struct{}

func (failingFormatter) Format(LogEntry) ([]byte, error) { return nil, errors.New("nope") }

func TestFormatterError(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Formatter: failingFormatter{}})
	l.Infoln("x")
	if !strings.Contains(buf.String(), "logging error: nope") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestEnsureLoggerAndDiscard(t *testing.T) {
	if EnsureLogger(nil) == nil {
		t.Fatal("EnsureLogger(nil) = nil")
	}
	d := Discard()
	if EnsureLogger(d) != d {
		t.Error("EnsureLogger() replaced a non-nil logger")
	}
	if d.GetLevel() != LevelSilent {
		t.Errorf("Discard().GetLevel() = %v", d.GetLevel())
	}
}
