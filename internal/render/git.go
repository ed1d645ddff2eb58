package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abdullathedruid/gitmux/internal/git"
	"github.com/abdullathedruid/gitmux/internal/highlight"
	"github.com/abdullathedruid/gitmux/internal/input"
	"github.com/abdullathedruid/gitmux/internal/pane"
	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/abdullathedruid/gitmux/internal/workspace"
)

// ListHeaderRows is the number of rows above the file list.
const ListHeaderRows = 1

// DiffHeaderRows is the number of rows above the diff body.
const DiffHeaderRows = 1

var (
	styleHeader   = terminal.Style{Attrs: terminal.AttrBold}
	styleDim      = terminal.Style{Attrs: terminal.AttrDim}
	styleErr      = terminal.Style{FG: terminal.Indexed(1)}
	styleCursor   = terminal.Style{Attrs: terminal.AttrReverse}
	styleHunk     = terminal.Style{FG: terminal.Indexed(6)}
	styleGutter   = terminal.Style{FG: terminal.Indexed(8)}
	bgAdded       = terminal.Indexed(22)
	bgRemoved     = terminal.Indexed(52)
	styleSelected = terminal.Style{FG: terminal.Indexed(5), Attrs: terminal.AttrBold}
)

func kindStyle(k git.Kind) terminal.Style {
	switch k {
	case git.KindNew:
		return terminal.Style{FG: terminal.Indexed(2)}
	case git.KindDeleted:
		return terminal.Style{FG: terminal.Indexed(1)}
	case git.KindRenamed, git.KindCopied:
		return terminal.Style{FG: terminal.Indexed(6)}
	case git.KindConflicted:
		return terminal.Style{FG: terminal.Indexed(5), Attrs: terminal.AttrBold}
	case git.KindUntracked:
		return terminal.Style{FG: terminal.Indexed(4)}
	default:
		return terminal.Style{FG: terminal.Indexed(3)}
	}
}

// ListTop is the index of the first file shown when visible rows are
// available and the cursor is on file cursor.
func ListTop(cursor, visible int) int {
	if visible < 1 || cursor < visible {
		return 0
	}
	return cursor - visible + 1
}

// FileAt maps a row inside the git pane to a file index, or -1 when the
// row does not hold a file.
func FileAt(row, cursor, height, files int) int {
	visible := height - ListHeaderRows
	i := row - ListHeaderRows
	if i < 0 || i >= visible {
		return -1
	}
	i += ListTop(cursor, visible)
	if i >= files {
		return -1
	}
	return i
}

// DiffVisible is the number of diff rows shown in a pane of the given
// interior height.
func DiffVisible(height int) int {
	if n := height - DiffHeaderRows; n > 0 {
		return n
	}
	return 0
}

// MaxDiffTop is the largest useful scroll offset for d.
func MaxDiffTop(d git.Diff, height int) int {
	if n := d.Rows() - DiffVisible(height); n > 0 {
		return n
	}
	return 0
}

func gitPane(st State, l pane.Layout) Pane {
	w, h := l.Width(), l.Height()
	rows := make([][]terminal.Cell, h)
	for y := range rows {
		rows[y] = blankRow(w, terminal.Style{})
	}

	p := Pane{Layout: l, Active: st.Focus == input.FocusGit, Rows: rows}
	if st.View == input.ViewDiff {
		p.Title = " " + Truncate("diff: "+st.Diff.Path, w-2) + " "
		drawDiff(st, rows)
	} else {
		p.Title = " git "
		drawList(st, rows)
	}
	return p
}

// BranchLine describes the branch, its upstream distance and the stash
// count.
func BranchLine(s *workspace.Snapshot) string {
	if s == nil || s.Branch == "" {
		return "no branch"
	}
	var b strings.Builder
	b.WriteString(s.Branch)
	if s.Upstream != "" {
		b.WriteString(" → " + s.Upstream)
	}
	if s.Ahead > 0 {
		b.WriteString(" ↑" + strconv.Itoa(s.Ahead))
	}
	if s.Behind > 0 {
		b.WriteString(" ↓" + strconv.Itoa(s.Behind))
	}
	if n := len(s.Stashes); n > 0 {
		fmt.Fprintf(&b, " ≡%d", n)
	}
	return b.String()
}

func drawList(st State, rows [][]terminal.Cell) {
	if len(rows) == 0 {
		return
	}
	header := " " + BranchLine(st.Snapshot)
	if st.Selection != nil && st.Selection.Multi() {
		header += fmt.Sprintf(" [multi %d]", st.Selection.Len())
	}
	put(rows[0], 0, header, styleHeader)

	n := st.Snapshot.Len()
	if n == 0 {
		if len(rows) > ListHeaderRows {
			put(rows[ListHeaderRows], 0, "  working tree clean", styleDim)
		}
		return
	}

	visible := len(rows) - ListHeaderRows
	top := ListTop(st.Cursor, visible)
	for i := 0; i < visible && top+i < n; i++ {
		f, _ := st.Snapshot.At(top + i)
		row := rows[ListHeaderRows+i]
		drawFile(row, f, st.Selection != nil && st.Selection.Has(f.Path))
		if top+i == st.Cursor {
			active := st.Focus == input.FocusGit
			restyle(row, func(s terminal.Style) terminal.Style {
				if active {
					s.Attrs |= styleCursor.Attrs
				} else {
					s.Attrs |= terminal.AttrUnderline
				}
				return s
			})
		}
	}
}

func drawFile(row []terminal.Cell, f git.File, selected bool) {
	x := 0
	if selected {
		x = put(row, x, " ●", styleSelected)
	} else {
		x = put(row, x, "  ", terminal.Style{})
	}
	x = put(row, x, " "+f.Stage.Icon()+" ", terminal.Style{FG: terminal.Indexed(2)})
	x = put(row, x, f.Kind.Letter(), kindStyle(f.Kind))
	name := f.Path
	if f.OrigPath != "" {
		name = f.OrigPath + " → " + f.Path
	}
	put(row, x, " "+Truncate(name, len(row)-x-1), terminal.Style{})
}

// diffRow is one display row of a diff: a hunk header or a line.
type diffRow struct {
	header string
	line   *git.Line
}

func flatten(d git.Diff) []diffRow {
	out := make([]diffRow, 0, d.Rows())
	for hi := range d.Hunks {
		h := &d.Hunks[hi]
		out = append(out, diffRow{header: h.Header})
		for li := range h.Lines {
			out = append(out, diffRow{line: &h.Lines[li]})
		}
	}
	return out
}

func drawDiff(st State, rows [][]terminal.Cell) {
	if len(rows) == 0 {
		return
	}
	ds := st.Diff
	header := " " + ds.Path
	if ds.Loading {
		header += " (loading)"
	}
	put(rows[0], 0, header, styleHeader)
	if len(rows) <= DiffHeaderRows {
		return
	}
	body := rows[DiffHeaderRows:]

	switch {
	case ds.Err != nil:
		put(body[0], 0, " "+ds.Err.Error(), styleErr)
		return
	case ds.Loading && len(ds.Diff.Hunks) == 0:
		return
	case ds.Diff.Binary:
		put(body[0], 0, " binary file not shown", styleDim)
		return
	case len(ds.Diff.Hunks) == 0:
		put(body[0], 0, " no changes", styleDim)
		return
	}

	all := flatten(ds.Diff)
	top := st.DiffTop
	if top > len(all) {
		top = len(all)
	}
	if top < 0 {
		top = 0
	}
	shown := all[top:]
	if len(shown) > len(body) {
		shown = shown[:len(body)]
	}

	var texts []string
	for _, r := range shown {
		if r.line != nil {
			texts = append(texts, expandTabs(r.line.Text))
		}
	}
	styled := highlightLines(st.Highlight, ds.Path, texts)

	ti := 0
	for i, r := range shown {
		row := body[i]
		if r.line == nil {
			put(row, 0, r.header, styleHunk)
			continue
		}
		drawLine(row, *r.line, styled[ti])
		ti++
	}
}

func drawLine(row []terminal.Cell, l git.Line, spans []highlight.Span) {
	gutter := fmt.Sprintf("%4s %4s ", lineNo(l.Old), lineNo(l.New))
	x := put(row, 0, gutter, styleGutter)

	var bg terminal.Color
	sign := " "
	switch l.Kind {
	case git.LineAdded:
		sign, bg = "+", bgAdded
	case git.LineRemoved:
		sign, bg = "-", bgRemoved
	}
	x = put(row, x, sign, terminal.Style{BG: bg, FG: kindColor(l.Kind)})
	for _, sp := range spans {
		s := sp.Style
		if !bg.IsDefault() {
			s.BG = bg
		}
		x = put(row, x, sp.Text, s)
	}
	if !bg.IsDefault() {
		for ; x < len(row); x++ {
			row[x].Style.BG = bg
		}
	}
}

func kindColor(k git.LineKind) terminal.Color {
	switch k {
	case git.LineAdded:
		return terminal.Indexed(2)
	case git.LineRemoved:
		return terminal.Indexed(1)
	}
	return terminal.Color{}
}

func lineNo(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// highlightLines styles texts with h, falling back to plain spans.
func highlightLines(h Highlighter, path string, texts []string) [][]highlight.Span {
	if h != nil && len(texts) > 0 {
		if out := h.Lines(path, texts); len(out) == len(texts) {
			return out
		}
	}
	out := make([][]highlight.Span, len(texts))
	for i, t := range texts {
		out[i] = []highlight.Span{{Text: t}}
	}
	return out
}
