// Package config handles application configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/abdullathedruid/gitmux/internal/highlight"
	"github.com/abdullathedruid/gitmux/internal/pane"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration. It is not modified once the
// application starts.
type Config struct {
	// DataDir holds the config file and the log.
	DataDir string `yaml:"-"`

	// Command is the program hosted in the left pane.
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`

	// RefreshInterval is how often git status is re-read (in seconds).
	RefreshInterval int `yaml:"refresh_interval"`

	// SplitPercent is the share of the width given to the hosted pane.
	SplitPercent int `yaml:"split_percent"`
	MinPaneWidth int `yaml:"min_pane_width"`

	// StatusTTL is how long status messages stay visible (in seconds).
	StatusTTL int `yaml:"status_ttl"`

	// TerminateGrace is how long the hosted process gets to exit after
	// SIGTERM before it is killed (in milliseconds).
	TerminateGrace int `yaml:"terminate_grace"`

	// Watch enables the filesystem watcher. Nil means the default (on).
	Watch *bool `yaml:"watch"`

	SyntaxTheme string `yaml:"syntax_theme"`
	LogLevel    string `yaml:"log_level"`

	Keys KeyBindings `yaml:"keys"`
}

// KeyBindings holds all configurable keybindings. The context tag lists
// where each binding applies; global bindings apply everywhere, including
// the hosted pane.
type KeyBindings struct {
	Quit        string `yaml:"quit" context:"global"`
	ToggleFocus string `yaml:"toggle_focus" context:"global"`
	CycleSplit  string `yaml:"cycle_split" context:"global"`

	NavDown      string `yaml:"nav_down" context:"status,diff"`
	NavUp        string `yaml:"nav_up" context:"status,diff"`
	ToggleStage  string `yaml:"toggle_stage" context:"status"`
	StageAll     string `yaml:"stage_all" context:"status"`
	OpenDiff     string `yaml:"open_diff" context:"status"`
	Discard      string `yaml:"discard" context:"status"`
	Send         string `yaml:"send" context:"status"`
	SendPrompt   string `yaml:"send_prompt" context:"status"`
	Commit       string `yaml:"commit" context:"status"`
	CommitPush   string `yaml:"commit_push" context:"status"`
	Push         string `yaml:"push" context:"status"`
	Pull         string `yaml:"pull" context:"status"`
	Branches     string `yaml:"branches" context:"status"`
	NewBranch    string `yaml:"new_branch" context:"status"`
	Checkout     string `yaml:"checkout" context:"status"`
	Stash        string `yaml:"stash" context:"status"`
	StashPop     string `yaml:"stash_pop" context:"status"`
	MultiSelect  string `yaml:"multi_select" context:"status"`
	ToggleSelect string `yaml:"toggle_select" context:"status"`
	Refresh      string `yaml:"refresh" context:"status,diff"`

	CloseDiff string `yaml:"close_diff" context:"diff"`
	NextHunk  string `yaml:"next_hunk" context:"diff"`
	PrevHunk  string `yaml:"prev_hunk" context:"diff"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:         defaultDataDir(),
		Command:         "claude",
		RefreshInterval: 2,
		SplitPercent:    pane.DefaultSplit,
		MinPaneWidth:    pane.DefaultMinWidth,
		StatusTTL:       5,
		TerminateGrace:  1500,
		SyntaxTheme:     highlight.DefaultTheme,
		LogLevel:        "info",
		Keys:            DefaultKeyBindings(),
	}
}

// DefaultKeyBindings returns the default keybindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:         "ctrl+q",
		ToggleFocus:  "tab",
		CycleSplit:   "ctrl+\\",
		NavDown:      "j",
		NavUp:        "k",
		ToggleStage:  "space",
		StageAll:     "a",
		OpenDiff:     "enter",
		Discard:      "d",
		Send:         "s",
		SendPrompt:   "S",
		Commit:       "c",
		CommitPush:   "C",
		Push:         "p",
		Pull:         "P",
		Branches:     "b",
		NewBranch:    "B",
		Checkout:     "o",
		Stash:        "z",
		StashPop:     "Z",
		MultiSelect:  "v",
		ToggleSelect: "x",
		Refresh:      "r",
		CloseDiff:    "esc",
		NextHunk:     "J",
		PrevHunk:     "K",
	}
}

// Load loads the config file in the default data directory.
func Load() (*Config, error) {
	cfg := Default()
	return LoadFile(cfg.ConfigFile())
}

// LoadFile loads configuration from path, falling back to defaults when
// the file does not exist.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != cfg.ConfigFile() {
		cfg.DataDir = filepath.Dir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML into a temporary struct to merge with defaults
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, err
	}

	// Merge file config with defaults (file values override defaults)
	mergeConfig(cfg, &fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges file configuration into the default configuration.
// Only non-zero values from file are applied.
func mergeConfig(dst, src *Config) {
	if src.Command != "" {
		dst.Command = src.Command
	}
	if src.Args != nil {
		dst.Args = src.Args
	}
	if src.RefreshInterval != 0 {
		dst.RefreshInterval = src.RefreshInterval
	}
	if src.SplitPercent != 0 {
		dst.SplitPercent = src.SplitPercent
	}
	if src.MinPaneWidth != 0 {
		dst.MinPaneWidth = src.MinPaneWidth
	}
	if src.StatusTTL != 0 {
		dst.StatusTTL = src.StatusTTL
	}
	if src.TerminateGrace != 0 {
		dst.TerminateGrace = src.TerminateGrace
	}
	if src.Watch != nil {
		dst.Watch = src.Watch
	}
	if src.SyntaxTheme != "" {
		dst.SyntaxTheme = src.SyntaxTheme
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}

	mergeKeyBindings(&dst.Keys, &src.Keys)
}

// mergeKeyBindings copies every non-empty binding of src into dst.
func mergeKeyBindings(dst, src *KeyBindings) {
	for _, b := range src.bindings() {
		if b.Key != "" {
			*dst.field(b.Name) = b.Key
		}
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gitmux")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gitmux"
	}
	return filepath.Join(home, ".config", "gitmux")
}

// ConfigFile returns the path to the config file.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// LogFile returns the path to the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "gitmux.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// WatchEnabled reports whether the filesystem watcher should run.
func (c *Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// Refresh is the periodic git refresh interval.
func (c *Config) Refresh() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Second
}

// StatusDuration is how long status messages stay up.
func (c *Config) StatusDuration() time.Duration {
	return time.Duration(c.StatusTTL) * time.Second
}

// Grace is the hosted process's shutdown grace period.
func (c *Config) Grace() time.Duration {
	return time.Duration(c.TerminateGrace) * time.Millisecond
}
