package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMake_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New().ToWriter(&buf).Format("json").Level("warn").Make()
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Str("part", "WidgetStylingPart").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered: %s", out)
	}
	if !strings.Contains(out, `"part":"WidgetStylingPart"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestMake_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New().ToWriter(&buf).Make()
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestMake_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentparts.log")
	logger, err := New().ToFile(path).Format("json").Make()
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	logger.Info().Msg("to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("expected message in file, got %q", data)
	}
}

func TestMake_Errors(t *testing.T) {
	if _, err := New().Level("loud").Make(); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := New().Format("xml").Make(); err == nil {
		t.Fatalf("expected format error")
	}
}
