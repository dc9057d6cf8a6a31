package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to unmarshal log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONLogger_FixedClock(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	logger.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	logger.Info("detection complete", Count(3), Component("detector"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Time != "2024-05-01T12:00:00Z" {
		t.Errorf("Time = %q", entries[0].Time)
	}
	if entries[0].Fields["component"] != "detector" {
		t.Errorf("component = %v", entries[0].Fields["component"])
	}
	if entries[0].Fields["count"] != float64(3) {
		t.Errorf("count = %v", entries[0].Fields["count"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("skipped line")
	logger.Info("phase done")
	logger.Warn("no articulation points")
	logger.Error("sweep failed")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Levels = %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, InfoLevel)
	child := root.With(Component("simulator"))

	root.SetLevel(ErrorLevel)
	child.Info("should be filtered")
	if buf.Len() != 0 {
		t.Fatalf("Child ignored the root level change: %s", buf.String())
	}

	root.SetLevel(DebugLevel)
	child.Debug("node removed", NodeID(7))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Fields["component"] != "simulator" {
		t.Errorf("component = %v", entries[0].Fields["component"])
	}
	if entries[0].Fields["node_id"] != float64(7) {
		t.Errorf("node_id = %v", entries[0].Fields["node_id"])
	}
}

func TestJSONLogger_WithDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, InfoLevel)
	_ = root.With(RunID("abc"))

	root.Info("plain")

	entries := decodeLines(t, &buf)
	if _, ok := entries[0].Fields["run_id"]; ok {
		t.Error("Parent logger picked up child fields")
	}
}

func TestJSONLogger_ConcurrentChildren(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, InfoLevel)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			l := root.With(Workers(w))
			for i := 0; i < 50; i++ {
				l.Info("shard done", Count(i))
			}
		}(w)
	}
	wg.Wait()

	entries := decodeLines(t, &buf)
	if len(entries) != 400 {
		t.Errorf("Expected 400 intact lines, got %d", len(entries))
	}
}

func TestDomainFields(t *testing.T) {
	if f := Edge(3, 4); f.Key != "edge" || f.Value != "3-4" {
		t.Errorf("Edge() = %+v", f)
	}
	if f := Kind("node"); f.Key != "kind" || f.Value != "node" {
		t.Errorf("Kind() = %+v", f)
	}
	if f := Severity("critical"); f.Key != "severity" || f.Value != "critical" {
		t.Errorf("Severity() = %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil) = %+v", f)
	}
	if f := Error(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Error() = %+v", f)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "sweep", Kind("edge"))
	elapsed := timer.End(Count(12))
	if elapsed < 0 {
		t.Errorf("elapsed = %v", elapsed)
	}
	timer.EndError(errors.New("cancelled"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fields["count"] != float64(12) || entries[0].Fields["kind"] != "edge" {
		t.Errorf("End fields = %v", entries[0].Fields)
	}
	if _, ok := entries[0].Fields["latency"]; !ok {
		t.Error("End did not record latency")
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "cancelled" {
		t.Errorf("EndError entry = %+v", entries[1])
	}
}

func TestGlobalHelpers(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	t.Cleanup(func() { SetDefaultLogger(NewNopLogger()) })

	Info("i")
	ErrorLog("e")
	With(Component("cli")).Debug("child")

	entries := decodeLines(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[1].Level != "ERROR" {
		t.Errorf("ErrorLog level = %s", entries[1].Level)
	}
	if entries[2].Fields["component"] != "cli" {
		t.Errorf("component = %v", entries[2].Fields["component"])
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	if l.With(Count(1)) == nil {
		t.Error("NopLogger.With returned nil")
	}
	if l.GetLevel() != InfoLevel {
		t.Errorf("GetLevel = %v", l.GetLevel())
	}
}
