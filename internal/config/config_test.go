package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Command != "claude" {
		t.Errorf("Command = %q, want 'claude'", cfg.Command)
	}
	if cfg.RefreshInterval != 2 {
		t.Errorf("RefreshInterval = %d, want 2", cfg.RefreshInterval)
	}
	if cfg.SplitPercent != 60 {
		t.Errorf("SplitPercent = %d, want 60", cfg.SplitPercent)
	}
	if !cfg.WatchEnabled() {
		t.Error("WatchEnabled() = false by default")
	}
	if cfg.Grace() != 1500*time.Millisecond {
		t.Errorf("Grace() = %v, want 1.5s", cfg.Grace())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestDefaultDataDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir := defaultDataDir()
	if dir != "/custom/config/gitmux" {
		t.Errorf("with XDG_CONFIG_HOME: got %q, want '/custom/config/gitmux'", dir)
	}

	// Test without XDG_CONFIG_HOME
	t.Setenv("XDG_CONFIG_HOME", "")
	dir = defaultDataDir()
	if !strings.HasSuffix(dir, ".config/gitmux") {
		t.Errorf("without XDG_CONFIG_HOME: got %q, expected to end with '.config/gitmux'", dir)
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := &Config{DataDir: "/test/data"}

	if got := cfg.ConfigFile(); got != "/test/data/config.yaml" {
		t.Errorf("ConfigFile() = %q", got)
	}
	if got := cfg.LogFile(); got != "/test/data/gitmux.log" {
		t.Errorf("LogFile() = %q", got)
	}
}

func TestEnsureDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "gitmux-test", "data")

	cfg := &Config{
		DataDir: dataDir,
	}

	if err := cfg.EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir() error: %v", err)
	}

	// Directory should exist
	info, err := os.Stat(dataDir)
	if err != nil {
		t.Fatalf("data dir does not exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("data dir is not a directory")
	}

	// Should be idempotent
	if err := cfg.EnsureDataDir(); err != nil {
		t.Errorf("second EnsureDataDir() error: %v", err)
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty command", func(c *Config) { c.Command = "" }},
		{"refresh", func(c *Config) { c.RefreshInterval = -1 }},
		{"split low", func(c *Config) { c.SplitPercent = 10 }},
		{"split high", func(c *Config) { c.SplitPercent = 90 }},
		{"min width", func(c *Config) { c.MinPaneWidth = 2 }},
		{"status ttl", func(c *Config) { c.StatusTTL = -3 }},
		{"grace", func(c *Config) { c.TerminateGrace = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad key", func(c *Config) { c.Keys.Send = "ctrl+!" }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
		}
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{RefreshInterval: 3, StatusTTL: 4, TerminateGrace: 250}
	if cfg.Refresh() != 3*time.Second || cfg.StatusDuration() != 4*time.Second || cfg.Grace() != 250*time.Millisecond {
		t.Errorf("durations = %v %v %v", cfg.Refresh(), cfg.StatusDuration(), cfg.Grace())
	}
}
