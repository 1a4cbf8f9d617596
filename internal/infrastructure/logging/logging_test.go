package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWithWriters_FansOut(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("job started", "job_id", "job-1")
	logger.Debug("hidden")

	if !strings.Contains(stderr.String(), "job started") || strings.Contains(stderr.String(), "hidden") {
		t.Fatalf("unexpected stderr output: %q", stderr.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(file.Bytes()), &entry); err != nil {
		t.Fatalf("file output is not json: %q", file.String())
	}
	if entry["job_id"] != "job-1" {
		t.Fatalf("unexpected json entry: %v", entry)
	}
}

func TestSetup_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fieldops.log")
	var stderr bytes.Buffer
	logger, cleanup := Setup(&stderr, path, slog.LevelInfo)
	logger.Warn("sync channel closed")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "sync channel closed") {
		t.Fatalf("log file missing entry: %q", string(b))
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupSplit_QuietStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldops.log")
	var stderr bytes.Buffer
	logger, cleanup := SetupSplit(&stderr, slog.LevelError, path, slog.LevelDebug)
	logger.Info("sync channel open", "team_id", "equipe-norte")
	logger.Error("session cache write failed")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if strings.Contains(stderr.String(), "sync channel open") || !strings.Contains(stderr.String(), "session cache write failed") {
		t.Fatalf("unexpected stderr output: %q", stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "sync channel open") {
		t.Fatalf("expected info line in file, got %q", string(data))
	}
}
