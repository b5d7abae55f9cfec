package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitJSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	Init(&buf)
	Component("world").WithField("level", 2).Debug("Level generated.")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "world" {
		t.Errorf("component = %v, want %q", entry["component"], "world")
	}
	if entry["msg"] != "Level generated." {
		t.Errorf("msg = %v, want %q", entry["msg"], "Level generated.")
	}
}

func TestInitLevelFallback(t *testing.T) {
	t.Setenv("LOG_LEVEL", "nonsense")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	Init(&buf)
	Log.Debug("hidden")
	Log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at default info level")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info message missing from %q", out)
	}
}
