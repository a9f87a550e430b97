package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "skillplan.log")
	l, err := New("prod", "info", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("run_id", "abc").Info("plan generated", "sessions", 3)
	l.Debug("hidden at info level")
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "plan generated") || !strings.Contains(out, `"run_id":"abc"`) {
		t.Fatalf("log output missing fields: %s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug line written at info level: %s", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("dev", "loud", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	l.Sync()
}
