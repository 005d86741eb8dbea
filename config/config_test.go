package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for an explicitly named missing file")
	}

	// Without an explicit path a missing file falls back to defaults.
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("server.port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Type != "memory" {
		t.Errorf("database.type = %s, want memory", cfg.Database.Type)
	}
	if cfg.Gateways.Type != "memory" {
		t.Errorf("gateways.type = %s, want memory", cfg.Gateways.Type)
	}
	if !cfg.Database.Retry.Enabled || cfg.Database.Retry.MaxAttempts != 3 {
		t.Errorf("retry defaults = %+v", cfg.Database.Retry)
	}
	if cfg.Outbox.BatchSize != 50 {
		t.Errorf("outbox.batch_size = %d, want 50", cfg.Outbox.BatchSize)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("app.env = %s, want development", cfg.App.Env)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  env: production
server:
  port: "9090"
database:
  type: mysql
  host: db.internal
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("app.env = %s, want production", cfg.App.Env)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("server.port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database.host = %s, want db.internal", cfg.Database.Host)
	}
	// Untouched keys keep their defaults
	if cfg.Database.Port != "3306" {
		t.Errorf("database.port = %s, want 3306", cfg.Database.Port)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ORDERS_SERVER_PORT", "7070")
	t.Setenv("ORDERS_DATABASE_TYPE", "mysql")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("server.port = %s, want 7070 from environment", cfg.Server.Port)
	}
	if cfg.Database.Type != "mysql" {
		t.Errorf("database.type = %s, want mysql from environment", cfg.Database.Type)
	}
}
