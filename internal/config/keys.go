package config

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abdullathedruid/gitmux/internal/event"
)

// ParseKey parses a key string.
// Supported formats:
//   - Single character, case preserved: "q", "S", "?", "/"
//   - Special keys: "enter", "space", "esc", "tab", "backspace"
//   - Arrow keys: "up", "down", "left", "right"
//   - Ctrl combinations: "ctrl+c", "ctrl+\", "ctrl+space"
//   - Alt combinations: "alt+x"
func ParseKey(s string) (event.Key, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return event.Key{}, fmt.Errorf("empty key string")
	}
	lower := strings.ToLower(trimmed)

	// Check for ctrl combinations
	if char, found := strings.CutPrefix(lower, "ctrl+"); found {
		if char == "space" {
			return event.Ctrl(' '), nil
		}
		if r, ok := singleRune(char); ok && ctrlRunes[r] {
			return event.Ctrl(r), nil
		}
		return event.Key{}, fmt.Errorf("invalid ctrl combination: %s", s)
	}

	if rest, found := cutPrefixFold(trimmed, "alt+"); found {
		k, err := ParseKey(rest)
		if err != nil || k.Alt {
			return event.Key{}, fmt.Errorf("invalid alt combination: %s", s)
		}
		k.Alt = true
		return k, nil
	}

	// Check for special keys (case insensitive)
	if lower == "space" {
		return event.Char(' '), nil
	}
	if code, ok := specialKeyMap[lower]; ok {
		return event.Named(code), nil
	}

	// Single character (preserve original case)
	if r, ok := singleRune(trimmed); ok && unicode.IsPrint(r) {
		return event.Char(r), nil
	}

	return event.Key{}, fmt.Errorf("unknown key: %s", s)
}

// IsPrintable reports whether k types a character.
func IsPrintable(k event.Key) bool {
	return k.Code == event.KeyRune && !k.Alt
}

func singleRune(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

// specialKeyMap maps string names to named keys.
var specialKeyMap = func() map[string]event.KeyCode {
	m := event.KeyNames()
	m["escape"] = event.KeyEsc
	m["return"] = event.KeyEnter
	m["pageup"] = event.KeyPgUp
	m["pagedown"] = event.KeyPgDn
	m["del"] = event.KeyDelete
	m["ins"] = event.KeyInsert
	return m
}()

// ctrlRunes are the characters that combine with ctrl into a key the
// terminal can report.
var ctrlRunes = func() map[rune]bool {
	m := map[rune]bool{'\\': true, ']': true, '_': true}
	for r := 'a'; r <= 'z'; r++ {
		m[r] = true
	}
	return m
}()
