package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferAdapter() (*ZerologAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewZerologAdapterWithLogger(zerolog.New(&buf)), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestZerologAdapter_DefaultLevel(t *testing.T) {
	z, buf := newBufferAdapter()

	if z.Level() != LevelWarning {
		t.Fatalf("Level() = %v, want %v", z.Level(), LevelWarning)
	}

	z.Info("dropped")
	z.Debug("dropped")
	z.Warn("kept")
	z.Error("kept too", Err(errors.New("boom")))

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "warn" || lines[1]["level"] != "error" {
		t.Errorf("unexpected levels: %v, %v", lines[0]["level"], lines[1]["level"])
	}
	if lines[1]["error"] != "boom" {
		t.Errorf("error field = %v, want boom", lines[1]["error"])
	}
}

func TestZerologAdapter_WriteFiltersByNumericLevel(t *testing.T) {
	z, buf := newBufferAdapter()
	z.SetLevel(LevelInformation)

	z.Write(LevelInformation, "svc", "info")
	z.Write(LevelInformation+1, "svc", "too verbose")
	z.Write(LevelError, "", "untagged")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if lines[0]["tag"] != "svc" || lines[0]["message"] != "info" {
		t.Errorf("first line = %v", lines[0])
	}
	if _, ok := lines[1]["tag"]; ok {
		t.Errorf("untagged write should not carry a tag: %v", lines[1])
	}
}

func TestZerologAdapter_TaggedChildrenShareLevel(t *testing.T) {
	z, buf := newBufferAdapter()
	child := z.WithTag("worker")

	child.Info("before")
	z.SetLevel(LevelVerbose)
	child.Info("after", String("k", "v"), Duration("d", time.Second), Int("n", 3))
	z.Write(LevelDebug, "root", "debug")

	if child.Level() != LevelVerbose {
		t.Fatalf("child level = %v, want %v", child.Level(), LevelVerbose)
	}

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if lines[0]["tag"] != "worker" || lines[0]["k"] != "v" {
		t.Errorf("unexpected tagged line: %v", lines[0])
	}
	if lines[1]["level"] != "debug" || lines[1]["tag"] != "root" {
		t.Errorf("unexpected debug line: %v", lines[1])
	}
}

func TestTagged(t *testing.T) {
	z, buf := newBufferAdapter()

	Tagged(z, "lifecycle").Error("stopped")
	Tagged(NewNoopLogger(), "lifecycle").Error("discarded")

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %s", len(lines), buf.String())
	}
	if lines[0]["tag"] != "lifecycle" || lines[0]["message"] != "stopped" {
		t.Errorf("unexpected tagged line: %v", lines[0])
	}
	if _, ok := Tagged(NewNoopLogger(), "x").(*NoopLogger); !ok {
		t.Error("Tagged should return loggers without tag support unchanged")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"error", LevelError, false},
		{"WARNING", LevelWarning, false},
		{"warn", LevelWarning, false},
		{"info", LevelInformation, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelVerbose, false},
		{"500", Level(500), false},
		{"loud", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	if LevelDebug.String() != "debug" {
		t.Errorf("LevelDebug.String() = %s", LevelDebug.String())
	}
	if Level(42).String() != "42" {
		t.Errorf("Level(42).String() = %s", Level(42).String())
	}
}
