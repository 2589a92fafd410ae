package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvDebounce, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvState, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SearchDebounce != DefaultDebounce {
		t.Errorf("Expected debounce %v, got %v", DefaultDebounce, cfg.SearchDebounce)
	}
	if cfg.LogFile != "" {
		t.Errorf("Expected no log file, got %q", cfg.LogFile)
	}
	if !strings.HasSuffix(cfg.StatePath, StorageNamespace+".toml") {
		t.Errorf("Expected state path under namespace, got %q", cfg.StatePath)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvDebounce, "250ms")
	t.Setenv(EnvLogFile, "/tmp/pdfscope.log")
	t.Setenv(EnvState, "/tmp/prefs.toml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SearchDebounce != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", cfg.SearchDebounce)
	}
	if cfg.LogFile != "/tmp/pdfscope.log" || cfg.StatePath != "/tmp/prefs.toml" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoad_InvalidDebounce(t *testing.T) {
	for _, v := range []string{"soon", "-1s"} {
		t.Setenv(EnvDebounce, v)
		if _, err := Load(); err == nil {
			t.Errorf("Expected error for %q, got nil", v)
		}
	}
}

func TestLoadPrefs_MissingReturnsDefault(t *testing.T) {
	prefs, err := LoadPrefs(filepath.Join(t.TempDir(), "prefs.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.Version != PrefsVersion || prefs.Scale != 0 {
		t.Errorf("Expected default prefs, got %+v", prefs)
	}
}

func TestSavePrefs_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	if err := SavePrefs(path, &Prefs{Scale: 0.8}); err != nil {
		t.Fatalf("save prefs: %v", err)
	}
	loaded, err := LoadPrefs(path)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if loaded.Scale != 0.8 || loaded.Version != PrefsVersion {
		t.Errorf("Expected scale 0.8 v%d, got %+v", PrefsVersion, loaded)
	}
}

func TestLoadPrefs_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("scale = [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPrefs(path); err == nil {
		t.Error("Expected parse error, got nil")
	}
	if _, err := LoadPrefs(" "); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}
