// Package status holds the transient messages and key hints shown in the
// status bar.
package status

import (
	"strings"
	"time"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 5 * time.Second

// Level distinguishes informational messages from failures.
type Level uint8

const (
	LevelInfo Level = iota
	LevelError
)

// Message is one status entry.
type Message struct {
	Text    string
	Level   Level
	Expires time.Time
}

// Board holds the most recent message until it expires or is replaced.
type Board struct {
	ttl time.Duration
	cur Message
	set bool
}

// NewBoard returns a board whose messages live for ttl.
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{ttl: ttl}
}

// Info posts an informational message.
func (b *Board) Info(now time.Time, text string) {
	b.post(now, text, LevelInfo)
}

// Error posts a failure. Errors stay twice as long as other messages.
func (b *Board) Error(now time.Time, text string) {
	b.post(now, text, LevelError)
}

func (b *Board) post(now time.Time, text string, level Level) {
	if text == "" {
		return
	}
	ttl := b.ttl
	if level == LevelError {
		ttl *= 2
	}
	b.cur = Message{Text: text, Level: level, Expires: now.Add(ttl)}
	b.set = true
}

// Current returns the live message, if any.
func (b *Board) Current(now time.Time) (Message, bool) {
	if !b.set || !now.Before(b.cur.Expires) {
		return Message{}, false
	}
	return b.cur, true
}

// Expire drops the message once it has run out. It reports whether the
// board changed, so callers know a redraw is due.
func (b *Board) Expire(now time.Time) bool {
	if b.set && !now.Before(b.cur.Expires) {
		b.set = false
		b.cur = Message{}
		return true
	}
	return false
}

// Clear drops the current message.
func (b *Board) Clear() {
	b.set = false
	b.cur = Message{}
}

// Hint is one entry of the command bar.
type Hint struct {
	Key   string
	Label string
}

// FormatHints renders hints as "key label" pairs separated by two spaces.
// Hints without a key are skipped.
func FormatHints(hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Label)
	}
	return strings.Join(parts, "  ")
}
