// Package terminal implements the VT-style emulator that turns the hosted
// process's output into a grid of styled cells.
package terminal

// Emulator couples a Screen with the Parser that drives it.
type Emulator struct {
	screen *Screen
	parser *Parser
}

// New returns an emulator with a blank cols x rows screen.
func New(cols, rows int) *Emulator {
	s := NewScreen(cols, rows)
	return &Emulator{screen: s, parser: NewParser(s)}
}

// Write feeds process output into the state machine.
func (e *Emulator) Write(p []byte) (int, error) {
	return e.parser.Write(p)
}

// Resize changes the grid size, reporting whether anything changed.
func (e *Emulator) Resize(cols, rows int) bool {
	return e.screen.Resize(cols, rows)
}

// Screen exposes the grid for rendering.
func (e *Emulator) Screen() *Screen {
	return e.screen
}

// Title returns the window title set by the hosted process.
func (e *Emulator) Title() string {
	return e.parser.Title()
}

// TakeReplies drains answers to terminal queries.
func (e *Emulator) TakeReplies() []byte {
	return e.parser.TakeReplies()
}

// State returns the parser state. Anything other than StateGround means
// a sequence is split across writes.
func (e *Emulator) State() State {
	return e.parser.State()
}
