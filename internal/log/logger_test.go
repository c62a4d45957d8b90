package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/queuedesk/queuedesk-go/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	logger.Info("request replayed", "client", "command", "status", 401)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if entry["msg"] != "request replayed" {
		t.Errorf("expected msg 'request replayed', got %v", entry["msg"])
	}

	if entry["client"] != "command" {
		t.Errorf("expected client 'command', got %v", entry["client"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: NewOutput(&buf),
	})

	logger.Debug("suppressed")
	logger.Info("suppressed too")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("debug/info output should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn output should be present, got: %s", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	err := errors.New(errors.ErrCodeIdentityRefreshFailed, "refresh failed")
	logger.WithError(err).Error("teardown triggered")

	out := buf.String()
	if !strings.Contains(out, "IDENTITY-003") {
		t.Errorf("expected error_code in output, got: %s", out)
	}
}
