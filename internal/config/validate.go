package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/abdullathedruid/gitmux/internal/pane"
)

// Context names used in the KeyBindings context tags.
const (
	ContextGlobal = "global"
	ContextStatus = "status"
	ContextDiff   = "diff"
)

// Binding is one configured key with the action it triggers.
type Binding struct {
	Name     string // yaml name of the action
	Key      string
	Contexts []string
}

// bindings lists every field of k in declaration order.
func (k *KeyBindings) bindings() []Binding {
	v := reflect.ValueOf(k).Elem()
	t := v.Type()
	out := make([]Binding, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() != reflect.String {
			continue
		}
		out = append(out, Binding{
			Name:     f.Tag.Get("yaml"),
			Key:      v.Field(i).String(),
			Contexts: strings.Split(f.Tag.Get("context"), ","),
		})
	}
	return out
}

// Bindings lists the configured keys in declaration order.
func (k KeyBindings) Bindings() []Binding {
	return k.bindings()
}

// field returns the field whose yaml name is name.
func (k *KeyBindings) field(name string) *string {
	v := reflect.ValueOf(k).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("yaml") == name {
			return v.Field(i).Addr().Interface().(*string)
		}
	}
	panic("config: no key binding " + name)
}

// Validate checks keys and numeric ranges.
func (c *Config) Validate() error {
	if c.Command == "" {
		return fmt.Errorf("command must not be empty")
	}
	if c.RefreshInterval < 1 {
		return fmt.Errorf("refresh_interval must be at least 1 second, got %d", c.RefreshInterval)
	}
	if c.SplitPercent < pane.MinSplit || c.SplitPercent > pane.MaxSplit {
		return fmt.Errorf("split_percent must be between %d and %d, got %d", pane.MinSplit, pane.MaxSplit, c.SplitPercent)
	}
	if c.MinPaneWidth < 4 {
		return fmt.Errorf("min_pane_width must be at least 4, got %d", c.MinPaneWidth)
	}
	if c.StatusTTL < 1 {
		return fmt.Errorf("status_ttl must be at least 1 second, got %d", c.StatusTTL)
	}
	if c.TerminateGrace < 0 {
		return fmt.Errorf("terminate_grace must not be negative, got %d", c.TerminateGrace)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "error":
	default:
		return fmt.Errorf("log_level must be one of trace, debug, info, error, got %q", c.LogLevel)
	}
	return ValidateKeys(&c.Keys)
}

// ValidateKeys checks for invalid key strings and for keys bound twice in
// the same context. Global keys take precedence everywhere, so they clash
// with every other binding and must not be plain characters, which the
// hosted pane needs for typing.
func ValidateKeys(keys *KeyBindings) error {
	// context -> key -> action names
	byContext := map[string]map[string][]string{
		ContextStatus: {},
		ContextDiff:   {},
	}

	for _, b := range keys.bindings() {
		if b.Key == "" {
			continue
		}

		// Validate that the key string can be parsed
		k, err := ParseKey(b.Key)
		if err != nil {
			return fmt.Errorf("invalid key for %s: %w", b.Name, err)
		}
		norm := k.String()

		for _, ctx := range b.Contexts {
			if ctx == ContextGlobal {
				if IsPrintable(k) {
					return fmt.Errorf("global key %q for %s would shadow typing in the hosted pane", b.Key, b.Name)
				}
				for _, m := range byContext {
					m[norm] = append(m[norm], b.Name)
				}
				continue
			}
			m, ok := byContext[ctx]
			if !ok {
				return fmt.Errorf("key binding %s has unknown context %q", b.Name, ctx)
			}
			m[norm] = append(m[norm], b.Name)
		}
	}

	// Check for duplicates
	seen := make(map[string]bool)
	var duplicates []string
	for _, m := range byContext {
		for key, actions := range m {
			if len(actions) < 2 {
				continue
			}
			line := fmt.Sprintf("key %q is used by: %s", key, strings.Join(actions, ", "))
			if !seen[line] {
				seen[line] = true
				duplicates = append(duplicates, line)
			}
		}
	}

	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return fmt.Errorf("duplicate keybindings found:\n  %s", strings.Join(duplicates, "\n  "))
	}

	return nil
}
