// Package render builds a complete frame from the application state. A frame
// never depends on the previous one.
package render

import (
	"github.com/abdullathedruid/gitmux/internal/highlight"
	"github.com/abdullathedruid/gitmux/internal/input"
	"github.com/abdullathedruid/gitmux/internal/pane"
	"github.com/abdullathedruid/gitmux/internal/selection"
	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/abdullathedruid/gitmux/internal/workspace"
	"github.com/mattn/go-runewidth"
)

// Highlighter colours source lines for the diff view.
type Highlighter interface {
	Lines(hint string, lines []string) [][]highlight.Span
}

// State is everything a frame is built from.
type State struct {
	Width, Height int
	Split         int
	MinWidth      int

	Focus input.Focus
	View  input.SubView

	Screen *terminal.Screen
	Title  string
	Exited string // exit description once the hosted process is gone

	Snapshot  *workspace.Snapshot
	Cursor    int
	Selection *selection.Set
	Diff      workspace.DiffState
	DiffTop   int
	Highlight Highlighter

	Prompt *input.Prompt
	Bar    Bar
}

// Bar is the content of the status bar.
type Bar struct {
	Message string
	Error   bool
	Busy    string
	Hints   string
}

// Pane is one framed region. Rows holds exactly Height() rows of Width()
// cells.
type Pane struct {
	Layout pane.Layout
	Title  string
	Active bool
	Rows   [][]terminal.Cell
}

// PromptBox is the modal line editor drawn over the panes.
type PromptBox struct {
	Layout pane.Layout
	Title  string
	Row    []terminal.Cell
}

// CursorTarget says which region shows the terminal cursor.
type CursorTarget uint8

const (
	CursorHidden CursorTarget = iota
	CursorHosted
	CursorPrompt
)

// Cursor is relative to the interior of its target.
type Cursor struct {
	Target CursorTarget
	X, Y   int
}

// Frame is one full screen.
type Frame struct {
	Width, Height int
	Hosted        Pane
	Git           Pane
	Status        []terminal.Cell
	StatusLayout  pane.Layout
	Prompt        *PromptBox
	Cursor        Cursor
}

// Build lays out and draws every region from st.
func Build(st State) Frame {
	l := pane.Split(st.Width, st.Height, st.Split, st.MinWidth)
	f := Frame{
		Width:        st.Width,
		Height:       st.Height,
		Hosted:       hostedPane(st, l.Hosted),
		Git:          gitPane(st, l.Git),
		Status:       statusRow(st, l.Status.X1-l.Status.X0+1),
		StatusLayout: l.Status,
	}

	switch {
	case st.Prompt != nil:
		box, x := promptBox(st)
		f.Prompt = &box
		f.Cursor = Cursor{Target: CursorPrompt, X: x}
	case st.Focus == input.FocusHosted && st.Exited == "" && st.Screen != nil && st.Screen.CursorVisible():
		x, y := st.Screen.Cursor()
		if x < f.Hosted.Layout.Width() && y < f.Hosted.Layout.Height() {
			f.Cursor = Cursor{Target: CursorHosted, X: x, Y: y}
		}
	}
	return f
}

func hostedPane(st State, l pane.Layout) Pane {
	w, h := l.Width(), l.Height()
	rows := make([][]terminal.Cell, h)
	var src [][]terminal.Cell
	if st.Screen != nil {
		src = st.Screen.Rows()
	}
	for y := range rows {
		rows[y] = blankRow(w, terminal.Style{})
		if y >= len(src) {
			continue
		}
		n := copy(rows[y], src[y])
		// A wide rune cut by the right edge loses its trailing half.
		if n > 0 && rows[y][n-1].Width == 2 && n == w && len(src[y]) > w {
			rows[y][n-1] = terminal.Blank(rows[y][n-1].Style)
		}
	}

	title := st.Title
	if title == "" {
		title = "hosted"
	}
	if st.Exited != "" {
		title += " [exited: " + st.Exited + "]"
	}
	return Pane{
		Layout: l,
		Title:  " " + Truncate(title, w-2) + " ",
		Active: st.Focus == input.FocusHosted,
		Rows:   rows,
	}
}

var (
	styleBar    = terminal.Style{FG: terminal.Indexed(0), BG: terminal.Indexed(7)}
	styleBusy   = terminal.Style{FG: terminal.Indexed(0), BG: terminal.Indexed(3), Attrs: terminal.AttrBold}
	styleBarErr = terminal.Style{FG: terminal.Indexed(1), BG: terminal.Indexed(7), Attrs: terminal.AttrBold}
)

func statusRow(st State, width int) []terminal.Cell {
	row := blankRow(width, styleBar)

	mode := terminal.Style{FG: terminal.Indexed(0), BG: terminal.Indexed(2), Attrs: terminal.AttrBold}
	if st.Focus == input.FocusGit {
		mode.BG = terminal.Indexed(4)
		mode.FG = terminal.Indexed(15)
	}
	x := put(row, 0, " "+st.Focus.String()+" ", mode)
	x = put(row, x, " ", styleBar)

	if st.Bar.Busy != "" {
		x = put(row, x, " ⟳ "+st.Bar.Busy+" ", styleBusy)
		x = put(row, x, " ", styleBar)
	}

	right := ""
	if st.Exited != "" {
		right = " [exited: " + st.Exited + "] "
	}
	avail := width - x - runewidth.StringWidth(right)

	switch {
	case st.Bar.Message != "" && st.Bar.Error:
		put(row, x, Truncate(st.Bar.Message, avail), styleBarErr)
	case st.Bar.Message != "":
		put(row, x, Truncate(st.Bar.Message, avail), styleBar)
	default:
		put(row, x, Truncate(st.Bar.Hints, avail), styleBar)
	}
	if right != "" && avail > 0 {
		put(row, width-runewidth.StringWidth(right), right, styleBarErr)
	}
	return row
}

// promptWidth is the preferred width of the prompt box.
const promptWidth = 64

func promptBox(st State) (PromptBox, int) {
	width := promptWidth
	if width > st.Width-4 {
		width = st.Width - 4
	}
	x0, y0, x1, y1 := pane.ModalDimensions(st.Width, st.Height, width, 2)
	l := pane.Layout{X0: x0, Y0: y0, X1: x1, Y1: y1}
	w := l.Width()

	text := []rune(st.Prompt.Text())
	cur := st.Prompt.Cursor()
	// Scroll so the cursor stays inside the box.
	start := 0
	for runewidth.StringWidth(string(text[start:cur])) > w-1 {
		start++
	}
	row := blankRow(w, terminal.Style{})
	put(row, 0, string(text[start:]), terminal.Style{})
	return PromptBox{
		Layout: l,
		Title:  " " + Truncate(st.Prompt.Title(), w-2) + " ",
		Row:    row,
	}, runewidth.StringWidth(string(text[start:cur]))
}
