package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %q is not json: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	traceID := func(context.Context) string { return "abc123" }
	log := New(&buf, LevelInfo, "takeout", traceID).With("run_id", "r1")

	log.Info(context.Background(), "added order", "customer", "Jane Smith")
	log.Error(context.Background(), "save orders", "error", errors.New("disk full"))

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	first := lines[0]
	for k, want := range map[string]string{
		"level":    "info",
		"msg":      "added order",
		"service":  "takeout",
		"run_id":   "r1",
		"trace_id": "abc123",
		"customer": "Jane Smith",
	} {
		if first[k] != want {
			t.Errorf("%s = %v, want %q", k, first[k], want)
		}
	}
	if _, ok := first["timestamp"]; !ok {
		t.Error("missing timestamp")
	}
	if lines[1]["level"] != "error" || lines[1]["error"] != "disk full" {
		t.Errorf("unexpected error line: %v", lines[1])
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "takeout", nil)
	log.Debug(context.Background(), "debug")
	log.Info(context.Background(), "info")
	log.Warn(context.Background(), "warn")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["msg"] != "warn" {
		t.Fatalf("expected only the warn line, got %v", lines)
	}
	if _, ok := lines[0]["trace_id"]; ok {
		t.Fatal("unexpected trace_id without extractor")
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	if err != nil || lvl != LevelDebug {
		t.Fatalf("ParseLevel(debug) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
