package terminal

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 8

// cursorState is what DECSC saves and DECRC restores.
type cursorState struct {
	x, y   int
	pen    Style
	origin bool
	wrap   bool
}

// Screen is the grid the emulator draws into. It is not safe for
// concurrent use; the owner serializes access.
type Screen struct {
	cols, rows int

	grid  [][]Cell
	other [][]Cell // inactive buffer while the alternate screen is toggled
	alt   bool

	x, y        int
	wrapPending bool
	pen         Style

	top, bottom int // scroll region, inclusive

	saved    cursorState
	altSaved cursorState

	autowrap      bool
	origin        bool
	insert        bool
	cursorVisible bool
	appCursor     bool
	bracketed     bool
}

// NewScreen returns a blank screen of the given size.
func NewScreen(cols, rows int) *Screen {
	cols, rows = clampSize(cols, rows)
	s := &Screen{cols: cols, rows: rows}
	s.reset()
	return s
}

func clampSize(cols, rows int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func newGrid(cols, rows int) [][]Cell {
	g := make([][]Cell, rows)
	for y := range g {
		g[y] = blankRow(cols, Style{})
	}
	return g
}

func blankRow(cols int, st Style) []Cell {
	row := make([]Cell, cols)
	for x := range row {
		row[x] = Blank(st)
	}
	return row
}

func (s *Screen) reset() {
	s.grid = newGrid(s.cols, s.rows)
	s.other = newGrid(s.cols, s.rows)
	s.alt = false
	s.x, s.y = 0, 0
	s.wrapPending = false
	s.pen = Style{}
	s.top, s.bottom = 0, s.rows-1
	s.saved = cursorState{wrap: true}
	s.altSaved = cursorState{wrap: true}
	s.autowrap = true
	s.origin = false
	s.insert = false
	s.cursorVisible = true
	s.appCursor = false
	s.bracketed = false
}

// Size returns the grid dimensions.
func (s *Screen) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Cursor returns the cursor position.
func (s *Screen) Cursor() (x, y int) {
	return s.x, s.y
}

// CursorVisible reports whether DECTCEM is set.
func (s *Screen) CursorVisible() bool {
	return s.cursorVisible
}

// AltScreen reports whether the alternate buffer is active.
func (s *Screen) AltScreen() bool {
	return s.alt
}

// AppCursorKeys reports whether DECCKM is set.
func (s *Screen) AppCursorKeys() bool {
	return s.appCursor
}

// BracketedPaste reports whether mode 2004 is set.
func (s *Screen) BracketedPaste() bool {
	return s.bracketed
}

// ScrollRegion returns the inclusive scroll region rows.
func (s *Screen) ScrollRegion() (top, bottom int) {
	return s.top, s.bottom
}

// Pen returns the style applied to newly written cells.
func (s *Screen) Pen() Style {
	return s.pen
}

// Cell returns the cell at x, y or a blank cell when out of range.
func (s *Screen) Cell(x, y int) Cell {
	if x < 0 || x >= s.cols || y < 0 || y >= s.rows {
		return Blank(Style{})
	}
	return s.grid[y][x]
}

// Row returns a copy of row y.
func (s *Screen) Row(y int) []Cell {
	if y < 0 || y >= s.rows {
		return nil
	}
	row := make([]Cell, s.cols)
	copy(row, s.grid[y])
	return row
}

// Rows returns a deep copy of the visible grid.
func (s *Screen) Rows() [][]Cell {
	out := make([][]Cell, s.rows)
	for y := range out {
		out[y] = s.Row(y)
	}
	return out
}

// RowText returns row y as text with trailing blanks removed.
func (s *Screen) RowText(y int) string {
	if y < 0 || y >= s.rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range s.grid[y] {
		if c.IsContinuation() {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Text returns all rows joined by newlines.
func (s *Screen) Text() string {
	lines := make([]string, s.rows)
	for y := range lines {
		lines[y] = s.RowText(y)
	}
	return strings.Join(lines, "\n")
}

// Put writes r at the cursor and advances it, wrapping at the right margin
// when autowrap is set.
func (s *Screen) Put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if w > 2 {
		w = 2
	}
	if s.wrapPending && s.autowrap {
		s.x = 0
		s.lineFeed()
	}
	s.wrapPending = false

	if w == 2 && s.x == s.cols-1 {
		if !s.autowrap || s.cols < 2 {
			return
		}
		s.grid[s.y][s.x] = Blank(s.pen)
		s.x = 0
		s.lineFeed()
	}

	row := s.grid[s.y]
	if s.insert {
		copy(row[s.x+w:], row[s.x:])
	}
	s.clearWide(s.x)
	if w == 2 {
		s.clearWide(s.x + 1)
	}
	row[s.x] = Cell{Rune: r, Width: uint8(w), Style: s.pen}
	if w == 2 {
		row[s.x+1] = Cell{Width: 0, Style: s.pen}
	}

	if s.x+w >= s.cols {
		s.x = s.cols - 1
		s.wrapPending = s.autowrap
		return
	}
	s.x += w
}

// clearWide blanks the other half of a wide rune overlapping column x.
func (s *Screen) clearWide(x int) {
	row := s.grid[s.y]
	if x < 0 || x >= s.cols {
		return
	}
	c := row[x]
	if c.Width == 2 && x+1 < s.cols {
		row[x+1] = Blank(c.Style)
	}
	if c.IsContinuation() && x > 0 {
		row[x-1] = Blank(row[x-1].Style)
	}
}

// LineFeed moves down one row, scrolling at the bottom of the region.
func (s *Screen) LineFeed() {
	s.wrapPending = false
	s.lineFeed()
}

func (s *Screen) lineFeed() {
	switch {
	case s.y == s.bottom:
		s.scrollUp(s.top, s.bottom, 1)
	case s.y < s.rows-1:
		s.y++
	}
}

// ReverseIndex moves up one row, scrolling at the top of the region.
func (s *Screen) ReverseIndex() {
	s.wrapPending = false
	switch {
	case s.y == s.top:
		s.scrollDown(s.top, s.bottom, 1)
	case s.y > 0:
		s.y--
	}
}

// CarriageReturn moves to column zero.
func (s *Screen) CarriageReturn() {
	s.x = 0
	s.wrapPending = false
}

// Backspace moves one column left.
func (s *Screen) Backspace() {
	if s.x > 0 {
		s.x--
	}
	s.wrapPending = false
}

// Tab advances to the next tab stop.
func (s *Screen) Tab(n int) {
	for ; n > 0; n-- {
		next := (s.x/tabWidth + 1) * tabWidth
		if next >= s.cols {
			next = s.cols - 1
		}
		s.x = next
	}
	s.wrapPending = false
}

// BackTab moves to the previous tab stop.
func (s *Screen) BackTab(n int) {
	for ; n > 0 && s.x > 0; n-- {
		s.x = (s.x - 1) / tabWidth * tabWidth
	}
	s.wrapPending = false
}

// MoveTo places the cursor at x, y. In origin mode y is relative to the
// scroll region.
func (s *Screen) MoveTo(x, y int) {
	if s.origin {
		y += s.top
		s.y = clamp(y, s.top, s.bottom)
	} else {
		s.y = clamp(y, 0, s.rows-1)
	}
	s.x = clamp(x, 0, s.cols-1)
	s.wrapPending = false
}

// MoveColumn sets the cursor column.
func (s *Screen) MoveColumn(x int) {
	s.x = clamp(x, 0, s.cols-1)
	s.wrapPending = false
}

// MoveRow sets the cursor row, honoring origin mode.
func (s *Screen) MoveRow(y int) {
	x := s.x
	s.MoveTo(x, y)
}

// MoveBy moves the cursor relative to its position. Vertical movement stops
// at the scroll region margins when the cursor starts inside them.
func (s *Screen) MoveBy(dx, dy int) {
	s.x = clamp(s.x+dx, 0, s.cols-1)
	lo, hi := 0, s.rows-1
	if s.y >= s.top && s.y <= s.bottom {
		lo, hi = s.top, s.bottom
	}
	s.y = clamp(s.y+dy, lo, hi)
	s.wrapPending = false
}

// CursorRow returns the cursor row as CUP would address it.
func (s *Screen) CursorRow() int {
	if s.origin {
		return s.y - s.top
	}
	return s.y
}

// EraseDisplay implements ED: 0 below, 1 above, 2 and 3 everything.
func (s *Screen) EraseDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseRow(s.y, s.x, s.cols)
		for y := s.y + 1; y < s.rows; y++ {
			s.eraseRow(y, 0, s.cols)
		}
	case 1:
		for y := 0; y < s.y; y++ {
			s.eraseRow(y, 0, s.cols)
		}
		s.eraseRow(s.y, 0, s.x+1)
	case 2, 3:
		for y := 0; y < s.rows; y++ {
			s.eraseRow(y, 0, s.cols)
		}
	}
	s.wrapPending = false
}

// EraseLine implements EL: 0 right, 1 left, 2 whole line.
func (s *Screen) EraseLine(mode int) {
	switch mode {
	case 0:
		s.eraseRow(s.y, s.x, s.cols)
	case 1:
		s.eraseRow(s.y, 0, s.x+1)
	case 2:
		s.eraseRow(s.y, 0, s.cols)
	}
	s.wrapPending = false
}

// EraseChars blanks n cells from the cursor without moving it.
func (s *Screen) EraseChars(n int) {
	s.eraseRow(s.y, s.x, s.x+n)
	s.wrapPending = false
}

func (s *Screen) eraseRow(y, from, to int) {
	from = clamp(from, 0, s.cols)
	to = clamp(to, 0, s.cols)
	row := s.grid[y]
	for x := from; x < to; x++ {
		row[x] = Blank(s.pen)
	}
}

// InsertChars shifts the rest of the line right by n blanks.
func (s *Screen) InsertChars(n int) {
	row := s.grid[s.y]
	n = clamp(n, 0, s.cols-s.x)
	copy(row[s.x+n:], row[s.x:])
	for x := s.x; x < s.x+n; x++ {
		row[x] = Blank(s.pen)
	}
	s.wrapPending = false
}

// DeleteChars removes n cells at the cursor, pulling the line left.
func (s *Screen) DeleteChars(n int) {
	row := s.grid[s.y]
	n = clamp(n, 0, s.cols-s.x)
	copy(row[s.x:], row[s.x+n:])
	for x := s.cols - n; x < s.cols; x++ {
		row[x] = Blank(s.pen)
	}
	s.wrapPending = false
}

// InsertLines inserts n blank lines at the cursor inside the scroll region.
func (s *Screen) InsertLines(n int) {
	if s.y < s.top || s.y > s.bottom {
		return
	}
	s.scrollDown(s.y, s.bottom, n)
	s.x = 0
	s.wrapPending = false
}

// DeleteLines removes n lines at the cursor inside the scroll region.
func (s *Screen) DeleteLines(n int) {
	if s.y < s.top || s.y > s.bottom {
		return
	}
	s.scrollUp(s.y, s.bottom, n)
	s.x = 0
	s.wrapPending = false
}

// ScrollUp scrolls the region up by n lines.
func (s *Screen) ScrollUp(n int) {
	s.scrollUp(s.top, s.bottom, n)
}

// ScrollDown scrolls the region down by n lines.
func (s *Screen) ScrollDown(n int) {
	s.scrollDown(s.top, s.bottom, n)
}

func (s *Screen) scrollUp(top, bottom, n int) {
	span := bottom - top + 1
	n = clamp(n, 0, span)
	if n == 0 {
		return
	}
	copy(s.grid[top:bottom+1], s.grid[top+n:bottom+1])
	for y := bottom - n + 1; y <= bottom; y++ {
		s.grid[y] = blankRow(s.cols, s.pen)
	}
}

func (s *Screen) scrollDown(top, bottom, n int) {
	span := bottom - top + 1
	n = clamp(n, 0, span)
	if n == 0 {
		return
	}
	copy(s.grid[top+n:bottom+1], s.grid[top:bottom+1-n])
	for y := top; y < top+n; y++ {
		s.grid[y] = blankRow(s.cols, s.pen)
	}
}

// SetScrollRegion sets the inclusive region and homes the cursor. Regions
// smaller than two lines are ignored.
func (s *Screen) SetScrollRegion(top, bottom int) {
	top = clamp(top, 0, s.rows-1)
	bottom = clamp(bottom, 0, s.rows-1)
	if top >= bottom {
		return
	}
	s.top, s.bottom = top, bottom
	s.MoveTo(0, 0)
}

// SetPen replaces the current rendition.
func (s *Screen) SetPen(st Style) {
	s.pen = st
}

// SaveCursor implements DECSC.
func (s *Screen) SaveCursor() {
	st := cursorState{x: s.x, y: s.y, pen: s.pen, origin: s.origin, wrap: s.autowrap}
	if s.alt {
		s.altSaved = st
		return
	}
	s.saved = st
}

// RestoreCursor implements DECRC.
func (s *Screen) RestoreCursor() {
	st := s.saved
	if s.alt {
		st = s.altSaved
	}
	s.x = clamp(st.x, 0, s.cols-1)
	s.y = clamp(st.y, 0, s.rows-1)
	s.pen = st.pen
	s.origin = st.origin
	s.autowrap = st.wrap
	s.wrapPending = false
}

// SetAltScreen switches buffers. clear blanks the alternate buffer on
// entry; saveCursor brackets the switch with DECSC/DECRC (mode 1049).
func (s *Screen) SetAltScreen(on, clear, saveCursor bool) {
	if on == s.alt {
		return
	}
	if on {
		if saveCursor {
			s.SaveCursor()
		}
		s.grid, s.other = s.other, s.grid
		s.alt = true
		if clear {
			for y := range s.grid {
				s.grid[y] = blankRow(s.cols, Style{})
			}
		}
		return
	}
	if clear {
		for y := range s.grid {
			s.grid[y] = blankRow(s.cols, Style{})
		}
	}
	s.grid, s.other = s.other, s.grid
	s.alt = false
	if saveCursor {
		s.RestoreCursor()
	}
}

// SetMode toggles DEC private and ANSI modes the screen tracks.
func (s *Screen) SetMode(mode int, private, on bool) {
	if !private {
		if mode == 4 {
			s.insert = on
		}
		return
	}
	switch mode {
	case 1:
		s.appCursor = on
	case 6:
		s.origin = on
		s.MoveTo(0, 0)
	case 7:
		s.autowrap = on
		if !on {
			s.wrapPending = false
		}
	case 25:
		s.cursorVisible = on
	case 47:
		s.SetAltScreen(on, false, false)
	case 1047:
		s.SetAltScreen(on, !on, false)
	case 1048:
		if on {
			s.SaveCursor()
		} else {
			s.RestoreCursor()
		}
	case 1049:
		s.SetAltScreen(on, on, true)
	case 2004:
		s.bracketed = on
	}
}

// Reset implements RIS.
func (s *Screen) Reset() {
	s.reset()
}

// Resize changes the grid size. Content in the overlapping region is kept;
// new cells are blank. Resizing to the current size does nothing.
func (s *Screen) Resize(cols, rows int) bool {
	cols, rows = clampSize(cols, rows)
	if cols == s.cols && rows == s.rows {
		return false
	}
	s.grid = resizeGrid(s.grid, cols, rows)
	s.other = resizeGrid(s.other, cols, rows)
	s.cols, s.rows = cols, rows
	s.top, s.bottom = 0, rows-1
	s.x = clamp(s.x, 0, cols-1)
	s.y = clamp(s.y, 0, rows-1)
	s.saved.x = clamp(s.saved.x, 0, cols-1)
	s.saved.y = clamp(s.saved.y, 0, rows-1)
	s.altSaved.x = clamp(s.altSaved.x, 0, cols-1)
	s.altSaved.y = clamp(s.altSaved.y, 0, rows-1)
	s.wrapPending = false
	return true
}

func resizeGrid(old [][]Cell, cols, rows int) [][]Cell {
	g := newGrid(cols, rows)
	for y := 0; y < rows && y < len(old); y++ {
		n := copy(g[y], old[y])
		// a wide rune cut in half at the new margin
		if n > 0 && g[y][n-1].Width == 2 && n == cols {
			g[y][n-1] = Blank(g[y][n-1].Style)
		}
	}
	return g
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
