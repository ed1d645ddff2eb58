package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abdullathedruid/gitmux/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name    string
		opts    runOptions
		command string
		args    []string
		split   int
		level   string
	}{
		{name: "none", opts: runOptions{}, command: "claude", split: 60, level: "info"},
		{name: "split", opts: runOptions{split: 40}, command: "claude", split: 40, level: "info"},
		{name: "level", opts: runOptions{logLevel: "debug"}, command: "claude", split: 60, level: "debug"},
		{
			name:    "command",
			opts:    runOptions{command: []string{"aider", "--model", "x"}},
			command: "aider",
			args:    []string{"--model", "x"},
			split:   60,
			level:   "info",
		},
	}
	for _, tc := range tests {
		cfg := config.Default()
		if err := applyOverrides(cfg, tc.opts); err != nil {
			t.Fatalf("%s: applyOverrides() error = %v", tc.name, err)
		}
		if cfg.Command != tc.command || strings.Join(cfg.Args, " ") != strings.Join(tc.args, " ") {
			t.Errorf("%s: command = %q %q, want %q %q", tc.name, cfg.Command, cfg.Args, tc.command, tc.args)
		}
		if cfg.SplitPercent != tc.split || cfg.LogLevel != tc.level {
			t.Errorf("%s: split = %d level = %q", tc.name, cfg.SplitPercent, cfg.LogLevel)
		}
	}
}

func TestApplyOverrides_Invalid(t *testing.T) {
	tests := []runOptions{
		{split: 95},
		{logLevel: "loud"},
	}
	for _, opts := range tests {
		if err := applyOverrides(config.Default(), opts); err == nil {
			t.Errorf("applyOverrides(%+v) = nil, want error", opts)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "gitmux ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRootFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"dir", "config", "split", "log-level"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
}
