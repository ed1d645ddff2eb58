// Package selection tracks which files are picked in the git pane and turns
// them into text for the hosted process.
package selection

import (
	"fmt"
	"strings"

	"github.com/abdullathedruid/gitmux/internal/workspace"
)

// Set is the selected paths plus the multi-select flag.
type Set struct {
	paths map[string]struct{}
	multi bool
}

// New returns an empty single-select set.
func New() *Set {
	return &Set{paths: make(map[string]struct{})}
}

// Multi reports whether selections survive navigation.
func (s *Set) Multi() bool {
	return s.multi
}

// SetMulti switches mode. Leaving multi-select keeps only cursor, which
// may be empty.
func (s *Set) SetMulti(on bool, cursor string) {
	if s.multi == on {
		return
	}
	s.multi = on
	if !on {
		s.Clear()
		if cursor != "" {
			s.paths[cursor] = struct{}{}
		}
	}
}

// Toggle adds or removes path.
func (s *Set) Toggle(path string) {
	if path == "" {
		return
	}
	if _, ok := s.paths[path]; ok {
		delete(s.paths, path)
		return
	}
	s.paths[path] = struct{}{}
}

// Navigate tells the set the cursor moved to path. In single-select mode
// the selection follows the cursor.
func (s *Set) Navigate(path string) {
	if s.multi {
		return
	}
	s.Clear()
	if path != "" {
		s.paths[path] = struct{}{}
	}
}

// Has reports whether path is selected.
func (s *Set) Has(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Len is the number of selected paths.
func (s *Set) Len() int {
	return len(s.paths)
}

// Clear empties the set. The mode is kept.
func (s *Set) Clear() {
	clear(s.paths)
}

// Prune drops paths that are not in snap.
func (s *Set) Prune(snap *workspace.Snapshot) {
	for p := range s.paths {
		if snap.Index(p) < 0 {
			delete(s.paths, p)
		}
	}
}

// Restore re-selects paths still present in snap.
func (s *Set) Restore(paths []string, snap *workspace.Snapshot) {
	for _, p := range paths {
		if snap.Index(p) >= 0 {
			s.paths[p] = struct{}{}
		}
	}
}

// Ordered returns the selected paths in snapshot order. Paths missing from
// snap are left out.
func (s *Set) Ordered(snap *workspace.Snapshot) []string {
	if snap == nil {
		return nil
	}
	out := make([]string, 0, len(s.paths))
	for _, f := range snap.Files {
		if _, ok := s.paths[f.Path]; ok {
			out = append(out, f.Path)
		}
	}
	return out
}

// Compose builds the injected text: one @path token per path separated by
// spaces, then prompt after one space when it is not empty. Nothing is
// appended, so the user submits it.
func Compose(paths []string, prompt string) string {
	var b strings.Builder
	for i, p := range paths {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('@')
		b.WriteString(Escape(p))
	}
	if prompt != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prompt)
	}
	return b.String()
}

// Escape makes path safe to type into a line editor. Spaces, quotes,
// backslashes and shell expansion characters get a backslash. Control
// characters are written as \xNN so they cannot act as keys.
func Escape(path string) string {
	if !needsEscape(path) {
		return path
	}
	var b strings.Builder
	for _, r := range path {
		switch {
		case r == ' ' || r == '\\' || r == '\'' || r == '"' || r == '`' || r == '$':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ' ', c == '\\', c == '\'', c == '"', c == '`', c == '$', c < 0x20, c == 0x7f:
			return true
		}
	}
	return false
}
