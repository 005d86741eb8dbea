package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vladyslavplus/KosherClouds-sub000/config"
)

func TestNilLoggerSafety(t *testing.T) {
	saved := log
	log = nil
	defer func() { log = saved }()

	// None of these may panic before Init.
	Debug("debug")
	Info("info", zap.String("k", "v"))
	Warn("warn")
	Error("error")
	if err := Sync(); err != nil {
		t.Errorf("Sync() on nil logger = %v", err)
	}
	if With(zap.String("k", "v")) == nil {
		t.Error("With() on nil logger returned nil")
	}
	if WithRequestID("r1") == nil {
		t.Error("WithRequestID() on nil logger returned nil")
	}
}

func TestInitStdout(t *testing.T) {
	cfg := &config.LogConfig{Level: "debug", Format: "json", Output: "stdout"}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if Get() == nil {
		t.Fatal("Get() = nil after Init")
	}
	Info("initialized", zap.String("mode", "test"))
}

func TestInitFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	Info("file output works", zap.Int("n", 1))
	_ = Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "file output works") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}

func TestUpdateLevel(t *testing.T) {
	cfg := &config.LogConfig{Level: "error", Format: "json", Output: "stdout"}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	if atomLevel.Enabled(zap.InfoLevel) {
		t.Error("info enabled at error level")
	}
	UpdateLevel("debug")
	if !atomLevel.Enabled(zap.DebugLevel) {
		t.Error("debug not enabled after UpdateLevel")
	}
	UpdateLevel("nonsense")
	if !atomLevel.Enabled(zap.InfoLevel) || atomLevel.Enabled(zap.DebugLevel) {
		t.Error("unknown level did not fall back to info")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"", "info"},
		{"verbose", "info"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
