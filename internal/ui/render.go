package ui

import (
	"strconv"
	"strings"

	"github.com/abdullathedruid/gitmux/internal/terminal"
)

// EncodeRows turns cell rows into ANSI text for a gocui view. Rows are
// separated by newlines and each ends with a reset.
func EncodeRows(rows [][]terminal.Cell) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		encodeRow(&b, row)
	}
	return b.String()
}

func encodeRow(b *strings.Builder, row []terminal.Cell) {
	cur := terminal.Style{}
	for _, c := range row {
		if c.IsContinuation() {
			continue
		}
		if c.Style != cur {
			b.WriteString(sgr(c.Style))
			cur = c.Style
		}
		r := c.Rune
		if r == 0 || c.Style.Attrs.Has(terminal.AttrHidden) {
			r = ' '
		}
		b.WriteRune(r)
	}
	if cur != (terminal.Style{}) {
		b.WriteString("\x1b[0m")
	}
}

// sgr returns the escape sequence that selects st from a reset state.
func sgr(st terminal.Style) string {
	var b strings.Builder
	b.WriteString("\x1b[0")
	for _, a := range []struct {
		attr terminal.Attr
		code string
	}{
		{terminal.AttrBold, "1"},
		{terminal.AttrDim, "2"},
		{terminal.AttrItalic, "3"},
		{terminal.AttrUnderline, "4"},
		{terminal.AttrBlink, "5"},
		{terminal.AttrReverse, "7"},
		{terminal.AttrStrike, "9"},
	} {
		if st.Attrs.Has(a.attr) {
			b.WriteString(";" + a.code)
		}
	}
	color(&b, "38", st.FG)
	color(&b, "48", st.BG)
	b.WriteByte('m')
	return b.String()
}

func color(b *strings.Builder, base string, c terminal.Color) {
	switch c.Kind {
	case terminal.ColorIndexed:
		b.WriteString(";" + base + ";5;" + strconv.Itoa(int(c.Index)))
	case terminal.ColorRGB:
		b.WriteString(";" + base + ";2;" + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B)))
	}
}
