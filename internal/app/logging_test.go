package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		ok       bool
	}{
		{"debug", LogLevelDebug, true},
		{"DEBUG", LogLevelDebug, true},
		{"info", LogLevelInfo, true},
		{"Warn", LogLevelWarn, true},
		{"warning", LogLevelWarn, true},
		{"error", LogLevelError, true},
		{"verbose", LogLevelWarn, false},
		{"", LogLevelWarn, false},
	}

	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseLogLevel(%q) = %v, %v; expected %v, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func newTestLogger(buf *bytes.Buffer, level LogLevel) *Logger {
	l := NewLogger(LoggerConfig{Level: level, Output: buf, Prefix: "playground"})
	l.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	}
	return l
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelDebug)

	logger.Info("created %s", "/tmp/demo")

	want := "2026-03-01T12:30:00.000 [INFO] playground: created /tmp/demo\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("messages below the level were written: %q", output)
	}
	if !strings.Contains(output, "[WARN]") || !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected warn and error lines, got %q", output)
	}

	buf.Reset()
	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel did not lower the threshold")
	}
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelDebug).
		WithField("type", "console").
		WithComponent("playground")

	logger.Info("done")

	if !strings.HasSuffix(buf.String(), "done {component=playground, type=console}\n") {
		t.Errorf("unexpected fields: %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotModifyParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, LogLevelDebug)
	_ = parent.WithField("key", "value")

	parent.Info("plain")
	if strings.Contains(buf.String(), "key=value") {
		t.Error("child field leaked into the parent logger")
	}
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	logger := NewLogger(LoggerConfig{})
	if logger.output == nil {
		t.Error("expected default output to be set")
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic, including derived loggers.
	NullLogger.Error("ignored")
	NullLogger.WithComponent("x").Warn("ignored")
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelWarn {
		t.Errorf("Level = %v, want WARN", cfg.Level)
	}
	if cfg.Prefix != "playground" {
		t.Errorf("Prefix = %q, want playground", cfg.Prefix)
	}
}
