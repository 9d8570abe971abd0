package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Disabled(t *testing.T) {
	logger, closeFn, err := New(false, filepath.Join(t.TempDir(), "unused.log"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("dropped")
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestNew_Enabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, closeFn, err := New(true, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("rejected", "reason", "project-conflict")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "rejected" || rec["reason"] != "project-conflict" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNew_BadPath(t *testing.T) {
	_, _, err := New(true, filepath.Join(t.TempDir(), "missing", "dir", "debug.log"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).Debug("hello", "n", 1)
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
