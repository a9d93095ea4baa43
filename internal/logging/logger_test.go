package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
	_ Logger = NopLogger{}
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestFieldHelpers(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{String("kernel", "lanes"), "kernel", "lanes"},
		{Int("lut", 20), "lut", 20},
		{Uint64("iterations", 1<<40), "iterations", uint64(1 << 40)},
		{Float64("rate", 2.5), "rate", 2.5},
		{Bool("extend", true), "extend", true},
		{Duration("table", time.Millisecond), "table", time.Millisecond},
		{Err(errBoom), "error", errBoom},
	}
	for _, tt := range tests {
		if tt.field.Key != tt.key || tt.field.Value != tt.value {
			t.Errorf("got %+v, want {%s %v}", tt.field, tt.key, tt.value)
		}
	}
}

func TestZerologAdapter_RunFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "collatz")

	logger.Info("run configured",
		String("kernel", "scalar"),
		Int("bits", 5),
		Uint64("mul3", 41),
		Bool("extend", false),
		Float64("rate", 1.5),
		Duration("table", 2*time.Millisecond),
	)

	entry := decodeLine(t, &buf)
	want := map[string]any{
		"level":     "info",
		"message":   "run configured",
		"component": "collatz",
		"kernel":    "scalar",
		"bits":      float64(5),
		"mul3":      float64(41),
		"extend":    false,
		"rate":      1.5,
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["table"]; !ok {
		t.Error("expected the duration field")
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a timestamp")
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "collatz")

	logger.Error("run failed", errors.New("buffer growth failed"), String("input", "2^100000 - 1"))

	entry := decodeLine(t, &buf)
	if entry["level"] != "error" || entry["error"] != "buffer growth failed" {
		t.Errorf("unexpected entry %v", entry)
	}
	if entry["input"] != "2^100000 - 1" {
		t.Errorf("input = %v", entry["input"])
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Printf("bytes: %d", 4096)
	if entry := decodeLine(t, &buf); entry["message"] != "bytes: 4096" {
		t.Errorf("Printf message = %v", entry["message"])
	}

	buf.Reset()
	logger.Println("mul3 =", 41)
	if entry := decodeLine(t, &buf); entry["message"] != "mul3 = 41" {
		t.Errorf("Println message = %v", entry["message"])
	}
}

func TestNewConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantInfo  bool
		wantDebug bool
	}{
		{"debug", true, true},
		{"info", true, false},
		{"WARN", false, false},
		{"", false, false},
		{"loud", false, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := NewConsoleLogger(&buf, "collatz", tt.level)
		logger.Info("table built")
		logger.Debug("run finished")

		out := buf.String()
		if got := strings.Contains(out, "table built"); got != tt.wantInfo {
			t.Errorf("level %q: info logged = %v, want %v", tt.level, got, tt.wantInfo)
		}
		if got := strings.Contains(out, "run finished"); got != tt.wantDebug {
			t.Errorf("level %q: debug logged = %v, want %v", tt.level, got, tt.wantDebug)
		}
	}
}

func TestNewConsoleLogger_PlainText(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "collatz", "info").Info("run configured", String("kernel", "lanes"))

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("console output must not be colored: %q", out)
	}
	for _, want := range []string{"run configured", "kernel=lanes", "component=collatz"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLoggerAdapter(log.New(&buf, "", 0))

	logger.Info("progress", Int("bytes", 4096))
	logger.Debug("scan", Uint64("shift", 3))
	logger.Error("load", errors.New("cannot read"), String("file", "seed.bin"))
	logger.Printf("lut: %s", "0.012s")
	logger.Println("done")

	want := []string{
		"[INFO] progress bytes=4096",
		"[DEBUG] scan shift=3",
		"[ERROR] load: cannot read file=seed.bin",
		"lut: 0.012s",
		"done",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Info("x", Int("n", 1))
	l.Debug("x")
	l.Error("x", errors.New("e"))
	l.Printf("%d", 1)
	l.Println(1)
}
