package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytvault/internal/config"
	"ytvault/internal/logging"
	"ytvault/internal/services"
)

func newFileLogger(t *testing.T, format, level string) (func(), string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := logging.New(logging.Options{Format: format, Level: level, OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return func() {
		logging.NewComponentLogger(logger, "sync").Info("playlist synced", logging.Int("created", 3), logging.String("title", "two words"))
	}, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	if got := readLog(t, filepath.Join(cfg.Paths.LogDir, logging.LogFileName)); !strings.Contains(got, "hello from config") {
		t.Fatalf("expected message in log file, got %q", got)
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	emit, path := newFileLogger(t, "console", "info")
	emit()

	line := readLog(t, path)
	for _, fragment := range []string{" INFO sync: playlist synced", "created=3", `title="two words"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	emit, path := newFileLogger(t, "console", "debug")
	emit()
	if line := readLog(t, path); !strings.Contains(line, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", line)
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	emit, path := newFileLogger(t, "json", "info")
	emit()

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, path))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	for _, key := range []string{"ts", "level", "msg", "component", "created"} {
		if _, ok := record[key]; !ok {
			t.Fatalf("expected key %q in %v", key, record)
		}
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltersLowerRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logging.Warn(logger, logging.Event{Type: "remote_count_mismatch", Impact: "fetched count used", Hint: "check the playlist"}, "shown")

	got := readLog(t, logPath)
	if strings.Contains(got, "hidden") {
		t.Fatalf("info record should be filtered: %q", got)
	}
	for _, fragment := range []string{"shown", "event_type=remote_count_mismatch", "error_hint=", "impact="} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %q", fragment, got)
		}
	}
}

func TestEventOmitsEmptyImpactAndHint(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "event.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logging.Fail(logger, logging.Event{Type: "sync_failed", Hint: "run ytvault status"}, "sync failed",
		logging.Path("YouTube/Talks"), logging.VideoID("abcdefghijk"))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record["level"] != "error" || record[logging.FieldEventType] != "sync_failed" {
		t.Fatalf("unexpected record %v", record)
	}
	if record[logging.FieldErrorHint] != "run ytvault status" {
		t.Fatalf("unexpected hint %v", record[logging.FieldErrorHint])
	}
	if _, ok := record[logging.FieldImpact]; ok {
		t.Fatalf("empty impact should be omitted: %v", record)
	}
	if record[logging.FieldPath] != "YouTube/Talks" || record[logging.FieldVideoID] != "abcdefghijk" {
		t.Fatalf("missing attrs in %v", record)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-xyz")
	ctx = services.WithPlaylistID(ctx, "PL42")
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldRunID] != "run-xyz" {
		t.Fatalf("unexpected run id %v", record[logging.FieldRunID])
	}
	if record[logging.FieldPlaylistID] != "PL42" {
		t.Fatalf("unexpected playlist id %v", record[logging.FieldPlaylistID])
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 100) {
		t.Fatal("nop logger should never be enabled")
	}
	logging.Warn(nil, logging.Event{Type: "noop"}, "ignored")
}
