package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger_WritesConsoleAndFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "bookforge.log")
	var console bytes.Buffer

	logger, err := NewLogger(Options{
		Level:    InfoLevel,
		FilePath: logPath,
		Console:  &console,
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("page generated", PageFields("42", "en-US", 0, 20)...)
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	if logger.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if logger.LogFilePath() != logPath {
		t.Errorf("LogFilePath() = %q, want %q", logger.LogFilePath(), logPath)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(console.Bytes()), &entry); err != nil {
		t.Fatalf("console output is not a single JSON entry: %v\n%s", err, console.String())
	}
	if entry[FieldMessage] != "page generated" || entry[FieldSeed] != "42" {
		t.Errorf("unexpected console entry: %v", entry)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"locale":"en-US"`) {
		t.Errorf("log file missing locale field: %s", data)
	}
	if strings.Contains(string(data), "hidden at info level") {
		t.Error("debug entry written at info level")
	}
}

func TestNewLogger_Development(t *testing.T) {
	var console bytes.Buffer

	logger, err := NewLogger(Options{Development: true, Level: DebugLevel, Console: &console})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Named("catalog").Debug("debug visible", zap.Int("count", 3))

	out := console.String()
	if !strings.Contains(out, "debug visible") || !strings.Contains(out, "catalog") {
		t.Errorf("console output = %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Error("development console output should not be JSON")
	}
	if logger.LogFilePath() != "" {
		t.Error("no file path expected")
	}
}

func TestNewLogger_InvalidPath(t *testing.T) {
	_, err := NewLogger(Options{FilePath: "/nonexistent/deeply/nested/bookforge.log"})
	if err == nil {
		t.Fatal("expected error for invalid path, got nil")
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var console bytes.Buffer
	logger, err := NewLogger(Options{Level: WarnLevel, Console: &console})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("suppressed")
	if console.Len() != 0 {
		t.Fatalf("info written at warn level: %s", console.String())
	}

	logger.SetLevel(InfoLevel)
	if logger.Level() != InfoLevel {
		t.Errorf("Level() = %v, want info", logger.Level())
	}
	logger.Info("now visible")
	if !strings.Contains(console.String(), "now visible") {
		t.Error("info not written after SetLevel")
	}
}

func TestLogger_SyncNil(t *testing.T) {
	var l *Logger
	if err := l.Sync(); err != nil {
		t.Errorf("nil Sync() = %v", err)
	}
}
