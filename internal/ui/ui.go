// Package ui draws frames with gocui and turns terminal input into events.
package ui

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/abdullathedruid/gitmux/internal/render"
	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
)

const (
	viewHosted = "hosted"
	viewGit    = "git"
	viewStatus = "status-bar"
	viewPrompt = "prompt"
)

var (
	heavyFrame = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
	lightFrame = []rune{'─', '│', '┌', '┐', '└', '┘'}
)

// GUI is the gocui front end. Draw may be called from any goroutine; the
// most recent frame is drawn on gocui's next layout pass.
type GUI struct {
	g    *gocui.Gui
	emit func(event.Event) bool

	mu    sync.Mutex
	frame render.Frame

	pending atomic.Bool

	// touched only from gocui's loop
	lastW, lastH int
}

// New initializes the terminal.
func New() (*GUI, error) {
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode: gocui.OutputTrue,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing GUI: %w", err)
	}
	g.Mouse = true
	return &GUI{g: g}, nil
}

// Size returns the terminal size in cells.
func (u *GUI) Size() (int, int) {
	return u.g.Size()
}

// Run installs the layout and input handlers and blocks in gocui's main
// loop until Stop is called or the terminal fails. Input is reported
// through emit.
func (u *GUI) Run(emit func(event.Event) bool) error {
	u.emit = emit
	u.g.SetManagerFunc(u.layout)
	if err := u.bindMouse(); err != nil {
		return fmt.Errorf("setting up mouse bindings: %w", err)
	}
	if err := u.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) && err.Error() != "quit" {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}

// Draw schedules f for display.
func (u *GUI) Draw(f render.Frame) {
	u.mu.Lock()
	u.frame = f
	u.mu.Unlock()
	if u.pending.CompareAndSwap(false, true) {
		u.g.Update(func(*gocui.Gui) error { return nil })
	}
}

// Stop makes Run return.
func (u *GUI) Stop() {
	u.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
}

// Close restores the terminal.
func (u *GUI) Close() {
	u.g.Close()
}

func (u *GUI) bindMouse() error {
	regions := []struct {
		view   string
		region event.Region
	}{
		{viewHosted, event.RegionHosted},
		{viewGit, event.RegionGit},
		{viewStatus, event.RegionStatus},
	}
	buttons := []struct {
		key    gocui.Key
		button event.Button
	}{
		{gocui.MouseLeft, event.ButtonLeft},
		{gocui.MouseWheelUp, event.ButtonWheelUp},
		{gocui.MouseWheelDown, event.ButtonWheelDown},
	}
	for _, r := range regions {
		for _, b := range buttons {
			region, button := r.region, b.button
			if err := u.g.SetKeybinding(r.view, b.key, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
				x, y := v.Cursor()
				u.emit(event.Mouse{Region: region, Button: button, X: x, Y: y})
				return nil
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// editor receives every key because all views are editable and no key
// bindings are registered.
func (u *GUI) editor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	k, ok := translate(key, ch, mod)
	if !ok {
		return true
	}
	u.emit(k)
	return true
}

// layout is the gocui manager function. It draws the latest frame.
func (u *GUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxX != u.lastW || maxY != u.lastH {
		u.lastW, u.lastH = maxX, maxY
		u.emit(event.Resize{Cols: maxX, Rows: maxY})
	}

	u.pending.Store(false)
	u.mu.Lock()
	f := u.frame
	u.mu.Unlock()
	if f.Width == 0 || f.Height == 0 {
		return nil
	}

	if err := u.drawPane(g, viewHosted, f.Hosted); err != nil {
		return err
	}
	if err := u.drawPane(g, viewGit, f.Git); err != nil {
		return err
	}

	sl := f.StatusLayout
	sv, err := g.SetView(viewStatus, sl.X0, sl.Y0, sl.X1, sl.Y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) && err.Error() != "unknown view" {
		return err
	}
	sv.Frame = false
	u.configure(sv)
	sv.Clear()
	fmt.Fprint(sv, EncodeRows([][]terminal.Cell{f.Status}))

	current := viewGit
	if f.Prompt != nil {
		pl := f.Prompt.Layout
		pv, err := g.SetView(viewPrompt, pl.X0, pl.Y0, pl.X1, pl.Y1, 0)
		if err != nil && !errors.Is(err, gocui.ErrUnknownView) && err.Error() != "unknown view" {
			return err
		}
		pv.Title = f.Prompt.Title
		pv.Frame = true
		pv.FrameRunes = heavyFrame
		pv.FrameColor = gocui.ColorYellow
		pv.TitleColor = gocui.ColorYellow
		u.configure(pv)
		pv.Clear()
		fmt.Fprint(pv, EncodeRows([][]terminal.Cell{f.Prompt.Row}))
		if _, err := g.SetViewOnTop(viewPrompt); err != nil {
			return err
		}
		current = viewPrompt
	} else {
		_ = g.DeleteView(viewPrompt)
		if f.Hosted.Active {
			current = viewHosted
		}
	}

	cv, err := g.SetCurrentView(current)
	if err != nil {
		return err
	}
	g.Cursor = f.Cursor.Target != render.CursorHidden
	if g.Cursor {
		cv.SetCursor(f.Cursor.X, f.Cursor.Y)
	}
	return nil
}

func (u *GUI) drawPane(g *gocui.Gui, name string, p render.Pane) error {
	l := p.Layout
	v, err := g.SetView(name, l.X0, l.Y0, l.X1, l.Y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) && err.Error() != "unknown view" {
		return err
	}
	ConfigurePaneView(v, p)
	u.configure(v)
	v.Clear()
	fmt.Fprint(v, EncodeRows(p.Rows))
	return nil
}

// configure routes the view's keys to the editor.
func (u *GUI) configure(v *gocui.View) {
	v.Wrap = false
	v.Autoscroll = false
	v.Editable = true
	v.Editor = gocui.EditorFunc(u.editor)
}

// ConfigurePaneView sets up a pane's frame. The focused pane gets a heavy
// green frame.
func ConfigurePaneView(v *gocui.View, p render.Pane) {
	v.Title = p.Title
	v.Frame = true
	if p.Active {
		v.FrameRunes = heavyFrame
		v.FrameColor = gocui.ColorGreen
		v.TitleColor = gocui.ColorGreen
	} else {
		v.FrameRunes = lightFrame
		v.FrameColor = gocui.ColorDefault
		v.TitleColor = gocui.ColorDefault
	}
}
