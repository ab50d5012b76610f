package docweave

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below the level leaked through:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("messages at or above the level missing:\n%s", out)
	}
}

func TestLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogOff)

	logger.Error("should not appear")

	if buf.Len() != 0 {
		t.Errorf("LogOff produced output: %s", buf.String())
	}
}

func TestLoggerIsDebugMode(t *testing.T) {
	logger := NewLogger(nil, LogInfo)
	if logger.IsDebugMode() {
		t.Error("IsDebugMode true at info level")
	}
	logger.SetLevel(LogDebug)
	if !logger.IsDebugMode() {
		t.Error("IsDebugMode false at debug level")
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogDebug)

	logger.WithField("path", "Customer.Name").Debug("lookup")

	out := buf.String()
	if !strings.Contains(out, "path=Customer.Name") {
		t.Errorf("field missing from output: %s", out)
	}

	buf.Reset()
	logger.WithFields(Fields{"a": 1, "b": 2}).Info("pair")
	out = buf.String()
	if !strings.Contains(out, "a=1") || !strings.Contains(out, "b=2") {
		t.Errorf("fields missing from output: %s", out)
	}
}

func TestLoggerWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogDebug)

	_ = logger.WithField("child", "x")
	logger.Debug("parent line")

	if strings.Contains(buf.String(), "child=x") {
		t.Errorf("child field leaked into parent logger: %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogDebug},
		{"info", LogInfo},
		{"warn", LogWarn},
		{"error", LogError},
		{"off", LogOff},
		{"bogus", LogInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
