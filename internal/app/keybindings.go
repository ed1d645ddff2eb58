package app

import (
	"fmt"

	"github.com/abdullathedruid/gitmux/internal/config"
	"github.com/abdullathedruid/gitmux/internal/input"
	"github.com/abdullathedruid/gitmux/internal/status"
)

var contexts = map[string]input.Context{
	config.ContextGlobal: input.ContextGlobal,
	config.ContextStatus: input.ContextStatus,
	config.ContextDiff:   input.ContextDiff,
}

// actionFor maps a binding's yaml name to its action. Action names and
// binding names are spelled the same.
func actionFor(name string) (input.Action, bool) {
	for a := input.ActNone; a <= input.ActPrevHunk; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return input.ActNone, false
}

// buildKeymap binds every configured key in each of its contexts.
func buildKeymap(keys config.KeyBindings) (*input.Keymap, error) {
	km := input.NewKeymap()
	for _, b := range keys.Bindings() {
		if b.Key == "" {
			continue
		}
		k, err := config.ParseKey(b.Key)
		if err != nil {
			return nil, fmt.Errorf("key for %s: %w", b.Name, err)
		}
		act, ok := actionFor(b.Name)
		if !ok {
			return nil, fmt.Errorf("no action named %s", b.Name)
		}
		for _, name := range b.Contexts {
			ctx, ok := contexts[name]
			if !ok {
				return nil, fmt.Errorf("key binding %s has unknown context %q", b.Name, name)
			}
			km.Bind(ctx, k, act)
		}
	}
	return km, nil
}

type hintSpec struct {
	name  string
	label string
}

// Hints shown in the status bar, per context, in display order.
var (
	hostedHints = []hintSpec{
		{"toggle_focus", "git pane"},
		{"cycle_split", "split"},
		{"quit", "quit"},
	}
	statusHints = []hintSpec{
		{"toggle_stage", "stage"},
		{"open_diff", "diff"},
		{"send", "send"},
		{"send_prompt", "prompt"},
		{"commit", "commit"},
		{"push", "push"},
		{"pull", "pull"},
		{"multi_select", "multi"},
		{"toggle_focus", "hosted"},
		{"quit", "quit"},
	}
	diffHints = []hintSpec{
		{"nav_down", "down"},
		{"nav_up", "up"},
		{"next_hunk", "next hunk"},
		{"prev_hunk", "prev hunk"},
		{"close_diff", "back"},
		{"quit", "quit"},
	}
)

// hintSet holds the formatted hint line for each place keys can go.
type hintSet struct {
	hosted, status, diff string
}

func buildHints(keys config.KeyBindings) hintSet {
	byName := make(map[string]string)
	for _, b := range keys.Bindings() {
		byName[b.Name] = b.Key
	}
	line := func(specs []hintSpec) string {
		hints := make([]status.Hint, 0, len(specs))
		for _, s := range specs {
			hints = append(hints, status.Hint{Key: byName[s.name], Label: s.label})
		}
		return status.FormatHints(hints)
	}
	return hintSet{
		hosted: line(hostedHints),
		status: line(statusHints),
		diff:   line(diffHints),
	}
}

func (h hintSet) For(focus input.Focus, view input.SubView) string {
	switch {
	case focus == input.FocusHosted:
		return h.hosted
	case view == input.ViewDiff:
		return h.diff
	default:
		return h.status
	}
}
