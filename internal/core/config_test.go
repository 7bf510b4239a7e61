package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0600); err != nil {
		t.Fatalf("error writing test config: %v", err)
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Mode != "e-des" {
		t.Errorf("Mode = %s, want e-des", cfg.Mode)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
	if cfg.Speed.Runs != 100000 || cfg.Speed.BufferSize != 4096 {
		t.Errorf("Speed = %+v, want 100000 runs over 4096 bytes", cfg.Speed)
	}
	if cfg.Database.Engine != "sqlite" {
		t.Errorf("Database.Engine = %s, want sqlite", cfg.Database.Engine)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
log_level: debug
mode: des-ecb
workers: 4
speed:
  runs: 10
database:
  engine: postgres
  host: db.internal
`)
	t.Setenv("EDES_SPEED_BUFFER_SIZE", "512")
	t.Setenv("EDES_DATABASE_HOST", "override.internal")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Mode != "des-ecb" || cfg.Workers != 4 {
		t.Errorf("unexpected top level config: %+v", cfg)
	}
	if cfg.Speed.Runs != 10 {
		t.Errorf("Speed.Runs = %d, want 10", cfg.Speed.Runs)
	}
	if cfg.Speed.BufferSize != 512 {
		t.Errorf("Speed.BufferSize = %d, want 512", cfg.Speed.BufferSize)
	}
	if cfg.Database.Host != "override.internal" {
		t.Errorf("Database.Host = %s, want override.internal", cfg.Database.Host)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"zero workers", "workers: 0"},
		{"unknown database", "database:\n  engine: mongo"},
		{"malformed yaml", "mode: [e-des"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.contents)); err == nil {
				t.Errorf("LoadConfig() expected an error")
			}
		})
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.Name = "testdb"
	cfg.Database.Username = "testuser"
	cfg.Database.Password = "testpassword"

	url := cfg.DatabaseURL()
	expected := "host=localhost port=5432 dbname=testdb user=testuser password=testpassword sslmode="
	if url != expected {
		t.Errorf("DatabaseURL() want = %s, got = %s", expected, url)
	}
}

func TestConfig_DatabaseFile(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Filename = "results.db"
	if got, want := cfg.DatabaseFile("/etc/edes"), filepath.Join("/etc/edes", "results.db"); got != want {
		t.Errorf("DatabaseFile() = %s, want %s", got, want)
	}

	cfg.Database.Filename = "/var/lib/edes.db"
	if got := cfg.DatabaseFile("/etc/edes"); got != "/var/lib/edes.db" {
		t.Errorf("DatabaseFile() = %s, want /var/lib/edes.db", got)
	}
}

func TestNewLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "edes.log")
	logger, err := NewLogger(&Config{LogLevel: "warn", LogFilePath: logFile})
	if err != nil {
		t.Fatalf("NewLogger() returned error: %v", err)
	}
	if logger.Level != logrus.WarnLevel {
		t.Errorf("Level = %v, want %v", logger.Level, logrus.WarnLevel)
	}

	logger.Warn("written")
	logger.Info("dropped")
	contents, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("error reading log file: %v", err)
	}
	if got := string(contents); !strings.Contains(got, "written") || strings.Contains(got, "dropped") {
		t.Errorf("unexpected log contents: %q", got)
	}

	if _, err := NewLogger(&Config{LogLevel: "loud"}); err == nil {
		t.Errorf("NewLogger() expected an error for an invalid level")
	}
}
