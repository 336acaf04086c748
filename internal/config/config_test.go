package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/vitals/internal/constants"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.App.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.App.Timezone, constants.DefaultTimezone)
	}
	if cfg.App.HistoryDays != constants.DefaultHistoryDays {
		t.Errorf("HistoryDays = %d, want %d", cfg.App.HistoryDays, constants.DefaultHistoryDays)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Sync.Enabled != true {
		t.Error("sync should default to enabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("app:\n  timezone: America/New_York\nstorage:\n  driver: json\n  path: " + filepath.Join(dir, "vitals.json") + "\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.App.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q", cfg.App.Timezone)
	}
	if cfg.Storage.Driver != "json" {
		t.Errorf("Driver = %q, want json", cfg.Storage.Driver)
	}
	// unset keys still fall back to defaults
	if cfg.App.HistoryDays != constants.DefaultHistoryDays {
		t.Errorf("HistoryDays = %d, want default", cfg.App.HistoryDays)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VITALS_STORAGE_DRIVER", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.Driver != "json" {
		t.Errorf("Driver = %q, want json from env", cfg.Storage.Driver)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x/y.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("absolute path mangled: %q", got)
	}
}
