package ui

import (
	"testing"

	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/jesseduffield/gocui"
)

func TestEncodeRows(t *testing.T) {
	bold := terminal.Style{Attrs: terminal.AttrBold}
	red := terminal.Style{FG: terminal.Indexed(1), BG: terminal.RGB(1, 2, 3)}
	tests := []struct {
		name string
		rows [][]terminal.Cell
		want string
	}{
		{
			"plain",
			[][]terminal.Cell{{{Rune: 'a', Width: 1}, {Rune: 'b', Width: 1}}},
			"ab",
		},
		{
			"style change and reset",
			[][]terminal.Cell{{{Rune: 'a', Width: 1, Style: bold}, {Rune: 'b', Width: 1}}},
			"\x1b[0;1ma\x1b[0mb",
		},
		{
			"colours",
			[][]terminal.Cell{{{Rune: 'x', Width: 1, Style: red}}},
			"\x1b[0;38;5;1;48;2;1;2;3mx\x1b[0m",
		},
		{
			"wide rune skips continuation",
			[][]terminal.Cell{{{Rune: '日', Width: 2}, {Width: 0}, {Rune: 'z', Width: 1}}},
			"日z",
		},
		{
			"rows joined",
			[][]terminal.Cell{{{Rune: 'a', Width: 1}}, {{Rune: 'b', Width: 1}}},
			"a\nb",
		},
		{
			"hidden text blanked",
			[][]terminal.Cell{{{Rune: 's', Width: 1, Style: terminal.Style{Attrs: terminal.AttrHidden}}}},
			"\x1b[0m \x1b[0m",
		},
	}
	for _, tt := range tests {
		if got := EncodeRows(tt.rows); got != tt.want {
			t.Errorf("%s: EncodeRows() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSGR_Attributes(t *testing.T) {
	st := terminal.Style{Attrs: terminal.AttrUnderline | terminal.AttrReverse | terminal.AttrStrike}
	if got, want := sgr(st), "\x1b[0;4;7;9m"; got != want {
		t.Errorf("sgr() = %q, want %q", got, want)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		key  gocui.Key
		ch   rune
		mod  gocui.Modifier
		want event.Key
	}{
		{"rune", 0, 'q', gocui.ModNone, event.Char('q')},
		{"space", gocui.KeySpace, 0, gocui.ModNone, event.Char(' ')},
		{"enter wins over ctrl+m", gocui.KeyEnter, 0, gocui.ModNone, event.Named(event.KeyEnter)},
		{"tab wins over ctrl+i", gocui.KeyTab, 0, gocui.ModNone, event.Named(event.KeyTab)},
		{"backspace", gocui.KeyBackspace2, 0, gocui.ModNone, event.Named(event.KeyBackspace)},
		{"arrow", gocui.KeyArrowDown, 0, gocui.ModNone, event.Named(event.KeyDown)},
		{"ctrl letter", gocui.KeyCtrlQ, 0, gocui.ModNone, event.Ctrl('q')},
		{"ctrl backslash", gocui.KeyCtrlBackslash, 0, gocui.ModNone, event.Ctrl('\\')},
		{"alt rune", 0, 'x', gocui.ModAlt, event.Key{Code: event.KeyRune, Rune: 'x', Alt: true}},
	}
	for _, tt := range tests {
		got, ok := translate(tt.key, tt.ch, tt.mod)
		if !ok || got != tt.want {
			t.Errorf("%s: translate() = %v, %v, want %v", tt.name, got, ok, tt.want)
		}
	}
}
