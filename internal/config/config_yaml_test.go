package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_NoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// Test that Load returns defaults when no config file exists
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.DataDir != filepath.Join(tmpDir, "gitmux") {
		t.Errorf("cfg.DataDir = %q", cfg.DataDir)
	}
	if cfg.Keys.Quit != "ctrl+q" {
		t.Errorf("cfg.Keys.Quit = %q, want %q", cfg.Keys.Quit, "ctrl+q")
	}
	if cfg.Keys.Send != "s" {
		t.Errorf("cfg.Keys.Send = %q, want %q", cfg.Keys.Send, "s")
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	path := writeConfig(t, `command: aider
args: ["--no-auto-commits"]
split_percent: 50
watch: false
log_level: debug
keys:
  send: "y"
  quit: "ctrl+x"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v, want nil", err)
	}

	if cfg.Command != "aider" || len(cfg.Args) != 1 || cfg.Args[0] != "--no-auto-commits" {
		t.Errorf("command = %q %q", cfg.Command, cfg.Args)
	}
	if cfg.SplitPercent != 50 {
		t.Errorf("cfg.SplitPercent = %d, want 50", cfg.SplitPercent)
	}
	if cfg.WatchEnabled() {
		t.Error("watch: false was not applied")
	}
	if cfg.Keys.Send != "y" || cfg.Keys.Quit != "ctrl+x" {
		t.Errorf("keys = %q %q", cfg.Keys.Send, cfg.Keys.Quit)
	}

	// Verify defaults are preserved for unset values
	if cfg.Keys.Commit != "c" {
		t.Errorf("cfg.Keys.Commit = %q, want %q (default)", cfg.Keys.Commit, "c")
	}
	if cfg.RefreshInterval != 2 {
		t.Errorf("cfg.RefreshInterval = %d, want 2 (default)", cfg.RefreshInterval)
	}
	if cfg.DataDir != filepath.Dir(path) {
		t.Errorf("cfg.DataDir = %q, want the config file's directory", cfg.DataDir)
	}
}

func TestLoad_DuplicateKeysError(t *testing.T) {
	path := writeConfig(t, `keys:
  commit: "x"
`)
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile() expected error for duplicate keys, got nil")
	}
	if !strings.Contains(err.Error(), "commit") || !strings.Contains(err.Error(), "toggle_select") {
		t.Errorf("error = %v, want both actions named", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "keys: [unterminated")
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() expected error for invalid yaml, got nil")
	}
}

func TestLoad_OutOfRange(t *testing.T) {
	path := writeConfig(t, "split_percent: 95\n")
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() expected error for split_percent 95, got nil")
	}
}
