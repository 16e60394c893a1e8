package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WORKDAY_HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if _, err := os.Stat(filepath.Join(home, "config.toml")); err != nil {
		t.Fatalf("expected config.toml to be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "db")); err != nil {
		t.Fatalf("expected db dir: %v", err)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WORKDAY_HOME", home)

	data := `listen_addr = ":9999"
timezone = "UTC"
reports_output = "/tmp/reports"
log_level = "debug"
`
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9999" || cfg.ReportsOutput != "/tmp/reports" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("Location = %v, %v", loc, err)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v", cfg.SlogLevel())
	}
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WORKDAY_HOME", home)

	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(`timezone = "Mars/Olympus"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
