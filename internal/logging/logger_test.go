package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reelq/internal/config"
	"reelq/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg, "session-1", false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("queue updated", logging.FieldQueueLength, 3)

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "reelq.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "INFO queue updated") {
		t.Fatalf("expected console line, got %q", line)
	}
	if !strings.Contains(line, "queue_len=3") || !strings.Contains(line, "session_id=session-1") {
		t.Fatalf("expected attributes in log line, got %q", line)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerPromotesComponent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "component.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "viewer").Warn("probe failed", logging.Error(errors.New("gone away")))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "WARN viewer: probe failed") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, `error="gone away"`) {
		t.Fatalf("expected quoted error, got %q", line)
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}, SessionID: "abc"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("imported", logging.FieldURL, "https://example.com")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(content, &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "info" || record["msg"] != "imported" {
		t.Fatalf("unexpected record: %v", record)
	}
	ts, _ := record["ts"].(string)
	if _, err := time.Parse("2006-01-02T15:04:05.000Z07:00", ts); err != nil {
		t.Fatalf("expected millisecond ts, got %v", record)
	}
	if _, ok := record["time"]; ok {
		t.Fatalf("time key should be renamed, got %v", record)
	}
	if record[logging.FieldSessionID] != "abc" {
		t.Fatalf("expected session id, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", OutputPaths: []string{"stderr"}}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewSessionIDIsUnique(t *testing.T) {
	if logging.NewSessionID() == logging.NewSessionID() {
		t.Fatal("expected distinct session ids")
	}
}
