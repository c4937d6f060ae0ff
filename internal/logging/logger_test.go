package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn should be suppressed, got: %s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing from output: %s", out)
	}
}

func TestSetLevelDynamic(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})

	l.Debug("before")
	l.SetLevel(LevelDebug)
	l.Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("debug should be suppressed at info level: %s", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("debug should appear after SetLevel: %s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf, JSON: true}).WithComponent("task")

	l.Info("hello", "kind", "hostname")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "task" {
		t.Errorf("component field missing, got: %v", entry)
	}
	if entry["kind"] != "hostname" {
		t.Errorf("kind field missing, got: %v", entry)
	}
}
