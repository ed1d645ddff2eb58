package render

import (
	"strings"

	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/mattn/go-runewidth"
)

// Truncate shortens a string to fit in the given width.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string to the right.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// blankRow returns width empty cells in st.
func blankRow(width int, st terminal.Style) []terminal.Cell {
	row := make([]terminal.Cell, width)
	for i := range row {
		row[i] = terminal.Cell{Rune: ' ', Width: 1, Style: st}
	}
	return row
}

// put writes s into row starting at column x and returns the column after
// the last written cell. Wide runes that do not fit are replaced by a blank.
func put(row []terminal.Cell, x int, s string, st terminal.Style) int {
	for _, r := range s {
		if x >= len(row) {
			break
		}
		if r < 0x20 || r == 0x7f {
			r = ' '
		}
		w := runewidth.RuneWidth(r)
		switch {
		case w == 0:
			continue
		case w == 2 && x+1 >= len(row):
			row[x] = terminal.Cell{Rune: ' ', Width: 1, Style: st}
			return len(row)
		case w == 2:
			row[x] = terminal.Cell{Rune: r, Width: 2, Style: st}
			row[x+1] = terminal.Cell{Width: 0, Style: st}
			x += 2
		default:
			row[x] = terminal.Cell{Rune: r, Width: 1, Style: st}
			x++
		}
	}
	return x
}

// restyle applies fn to the style of every cell in row.
func restyle(row []terminal.Cell, fn func(terminal.Style) terminal.Style) {
	for i := range row {
		row[i].Style = fn(row[i].Style)
	}
}

// RowText returns the text of a cell row.
func RowText(row []terminal.Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.IsContinuation() {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// expandTabs replaces tabs with spaces up to the next multiple of four.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := 4 - col%4
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}
