// Package event defines the values that flow from producers to the main
// loop and the ordered channel that carries them.
package event

import (
	"time"

	"github.com/abdullathedruid/gitmux/internal/process"
	"github.com/abdullathedruid/gitmux/internal/workspace"
)

// Event is one of the types in this package.
type Event interface {
	event()
}

// ProcessOutput is a chunk read from the hosted process's PTY.
type ProcessOutput struct {
	Data []byte
}

// ProcessExited is emitted once after the reader ends and the child is reaped.
type ProcessExited struct {
	Exit process.Exit
}

// WriteFailed reports a write-queue entry that could not be written.
type WriteFailed struct {
	Err error
	// Paths is set when the entry was an injection built from a selection.
	Paths []string
}

// Key is a decoded key press.
type Key struct {
	Code KeyCode
	Rune rune // set for KeyRune and KeyCtrl
	Alt  bool
}

// Region identifies where a mouse event landed.
type Region uint8

const (
	RegionNone Region = iota
	RegionHosted
	RegionGit
	RegionStatus
)

// Button is a mouse action.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonWheelUp
	ButtonWheelDown
)

// Mouse is a mouse event in pane-relative coordinates.
type Mouse struct {
	Region Region
	Button Button
	X, Y   int
}

// Resize carries the new outer terminal size.
type Resize struct {
	Cols, Rows int
}

// Tick is the periodic refresh timer.
type Tick struct {
	At time.Time
}

// GitRefreshResult is the outcome of a git refresh or mutating operation.
type GitRefreshResult struct {
	workspace.Result
}

// DiffLoaded is the outcome of a lazy diff fetch.
type DiffLoaded struct {
	workspace.DiffResult
}

// WorktreeChanged is emitted by the filesystem watcher.
type WorktreeChanged struct {
	Path string
}

// RendererClosed is emitted when the renderer's loop ends on its own.
type RendererClosed struct {
	Err error
}

func (ProcessOutput) event()    {}
func (ProcessExited) event()    {}
func (WriteFailed) event()      {}
func (Key) event()              {}
func (Mouse) event()            {}
func (Resize) event()           {}
func (Tick) event()             {}
func (GitRefreshResult) event() {}
func (DiffLoaded) event()       {}
func (WorktreeChanged) event()  {}
func (RendererClosed) event()   {}
