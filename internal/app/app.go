// Package app runs the main loop. It owns every piece of domain state and
// is the only code that mutates it; other goroutines reach it through
// events.
package app

import (
	"context"
	"time"

	"github.com/abdullathedruid/gitmux/internal/config"
	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/abdullathedruid/gitmux/internal/git"
	"github.com/abdullathedruid/gitmux/internal/input"
	"github.com/abdullathedruid/gitmux/internal/pane"
	"github.com/abdullathedruid/gitmux/internal/render"
	"github.com/abdullathedruid/gitmux/internal/selection"
	"github.com/abdullathedruid/gitmux/internal/status"
	"github.com/abdullathedruid/gitmux/internal/terminal"
	"github.com/abdullathedruid/gitmux/internal/workspace"
	"github.com/go-errors/errors"
	"pkt.systems/pslog"
)

// Renderer displays frames. *ui.GUI implements it.
type Renderer interface {
	Size() (int, int)
	Draw(f render.Frame)
	Stop()
}

// Hosted is the hosted process's input side. *session.Session implements it.
type Hosted interface {
	Write(data []byte) error
	Inject(text string, paths []string) error
	Resize(cols, rows int) error
	Terminate(grace time.Duration) error
	Exited() bool
}

// Workspace runs git work in the background. *workspace.Dispatcher
// implements it.
type Workspace interface {
	Submit(req workspace.Request)
	FetchDiff(id uint64, f git.File)
}

// Options wires an App to its collaborators.
type Options struct {
	Config    *config.Config
	Renderer  Renderer
	Hosted    Hosted
	Workspace Workspace
	Highlight render.Highlighter

	// Title is shown on the hosted pane until the process sets one.
	Title string

	// Cancel stops the background producers on quit.
	Cancel context.CancelFunc

	// Now defaults to time.Now.
	Now func() time.Time
}

// App is the reactor.
type App struct {
	cfg       *config.Config
	renderer  Renderer
	hosted    Hosted
	git       Workspace
	highlight render.Highlighter
	cancel    context.CancelFunc
	now       func() time.Time
	log       pslog.Logger

	router *input.Router
	hints  hintSet

	emu   *terminal.Emulator
	title string
	exit  string // set once the hosted process is gone

	model  *workspace.Model
	sel    *selection.Set
	board  *status.Board
	prompt *input.Prompt

	focus      input.Focus
	view       input.SubView
	split      int
	cursor     int
	cursorPath string
	diffTop    int

	width, height int
	quitting      bool
}

// New builds the app. The emulator starts at the hosted pane's interior
// size for the renderer's current size.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Config == nil || opts.Renderer == nil || opts.Hosted == nil || opts.Workspace == nil {
		return nil, errors.New("app: missing collaborator")
	}
	keys, err := buildKeymap(opts.Config.Keys)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cancel := opts.Cancel
	if cancel == nil {
		cancel = func() {}
	}

	a := &App{
		cfg:       opts.Config,
		renderer:  opts.Renderer,
		hosted:    opts.Hosted,
		git:       opts.Workspace,
		highlight: opts.Highlight,
		cancel:    cancel,
		now:       now,
		log:       pslog.Ctx(ctx).With("component", "app"),
		router:    input.NewRouter(keys),
		hints:     buildHints(opts.Config.Keys),
		title:     opts.Title,
		model:     workspace.NewModel(),
		sel:       selection.New(),
		board:     status.NewBoard(opts.Config.StatusDuration()),
		focus:     input.FocusHosted,
		view:      input.ViewStatus,
		split:     pane.ClampSplit(opts.Config.SplitPercent),
	}
	a.width, a.height = opts.Renderer.Size()
	cols, rows := HostedSize(opts.Config, a.split, a.width, a.height)
	a.emu = terminal.New(cols, rows)
	return a, nil
}

// HostedSize is the hosted pane's interior for an outer terminal of
// width by height.
func HostedSize(cfg *config.Config, split, width, height int) (int, int) {
	l := pane.Split(width, height, split, cfg.MinPaneWidth)
	return l.Hosted.Width(), l.Hosted.Height()
}

// Start requests the first snapshot and draws the initial frame.
func (a *App) Start() {
	a.submit(workspace.OpRefresh, "", "")
	a.render()
}

// Run starts the app and consumes events until quit, the channel closing
// or ctx ending. Every event is handled completely and then drawn once.
func (a *App) Run(ctx context.Context, events <-chan event.Event) error {
	a.Start()
	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return nil
		case ev, ok := <-events:
			if !ok {
				a.shutdown()
				return nil
			}
			a.Handle(ev)
			if a.quitting {
				a.shutdown()
				return nil
			}
			a.render()
		}
	}
}

// shutdown stops input, then the producers, then the hosted process.
func (a *App) shutdown() {
	a.log.Info("shutting down")
	a.renderer.Stop()
	a.cancel()
	if err := a.hosted.Terminate(a.cfg.Grace()); err != nil {
		a.log.Error("terminating hosted process", "err", err)
	}
	a.log.Info("shutdown complete")
}

// Handle applies one event to the state.
func (a *App) Handle(ev event.Event) {
	switch e := ev.(type) {
	case event.ProcessOutput:
		a.processOutput(e.Data)
	case event.ProcessExited:
		a.processExited(e)
	case event.WriteFailed:
		a.writeFailed(e)
	case event.Key:
		a.do(a.router.Key(a.routeState(), e))
	case event.Mouse:
		a.do(a.router.Mouse(a.routeState(), e))
	case event.Resize:
		a.resize(e.Cols, e.Rows)
	case event.Tick:
		a.tick()
	case event.GitRefreshResult:
		a.applyResult(e.Result)
	case event.DiffLoaded:
		a.applyDiff(e.DiffResult)
	case event.WorktreeChanged:
		a.refresh()
	case event.RendererClosed:
		if e.Err != nil {
			a.log.Error("renderer stopped", "err", e.Err)
		}
		a.quitting = true
	}
}

func (a *App) routeState() input.State {
	return input.State{
		Focus:     a.focus,
		View:      a.view,
		Prompt:    a.prompt != nil,
		AppCursor: a.emu.Screen().AppCursorKeys(),
	}
}

func (a *App) processOutput(data []byte) {
	if a.exit != "" {
		return
	}
	a.emu.Write(data)
	if replies := a.emu.TakeReplies(); len(replies) > 0 {
		if err := a.hosted.Write(replies); err != nil {
			a.log.Debug("terminal reply dropped", "err", err)
		}
	}
	if t := a.emu.Title(); t != "" {
		a.title = t
	}
}

func (a *App) processExited(e event.ProcessExited) {
	a.exit = e.Exit.String()
	if e.Exit.Clean() {
		a.board.Info(a.now(), "Hosted process exited")
	} else {
		a.board.Error(a.now(), "Hosted process ended: "+a.exit)
	}
	a.log.Info("hosted process gone", "reason", a.exit)
}

func (a *App) writeFailed(e event.WriteFailed) {
	a.log.Error("write to hosted process failed", "err", e.Err, "paths", len(e.Paths))
	if len(e.Paths) > 0 {
		a.sel.Restore(e.Paths, a.model.Snapshot())
		a.board.Error(a.now(), "Send failed: "+e.Err.Error())
		return
	}
	a.board.Error(a.now(), "Write failed: "+e.Err.Error())
}

// resize records the outer size and fits the emulator and the hosted
// process to the new pane.
func (a *App) resize(cols, rows int) {
	a.width, a.height = cols, rows
	a.fitHosted()
}

func (a *App) fitHosted() {
	cols, rows := HostedSize(a.cfg, a.split, a.width, a.height)
	if !a.emu.Resize(cols, rows) {
		return
	}
	a.log.Debug("hosted pane resized", "cols", cols, "rows", rows)
	if err := a.hosted.Resize(cols, rows); err != nil {
		a.log.Error("resizing hosted process", "err", err)
	}
}

func (a *App) tick() {
	a.board.Expire(a.now())
	a.refresh()
}

// refresh asks for a new snapshot unless one is already on its way.
func (a *App) refresh() {
	if a.model.RefreshPending() {
		return
	}
	a.submit(workspace.OpRefresh, "", "")
}

func (a *App) submit(op workspace.Op, path, arg string) {
	req := a.model.Request(op, path, arg)
	a.log.Debug("git request", "op", op.String(), "request", req.ID)
	a.git.Submit(req)
}

func (a *App) applyResult(res workspace.Result) {
	out := a.model.Apply(res)
	switch {
	case out.Stale:
		a.log.Debug("stale snapshot dropped", "request", res.ID, "applied", a.model.LastApplied())
	case out.Applied:
		a.sel.Prune(a.model.Snapshot())
		a.followCursor()
		if req, ok := a.model.ReloadDiff(); ok {
			a.fetchDiff(req)
		}
	}

	if out.Failed {
		a.board.Error(a.now(), out.Message)
	} else if out.Message != "" {
		a.board.Info(a.now(), out.Message)
	}
}

// followCursor keeps the cursor on the same file across snapshots, or as
// close to its old position as the new list allows.
func (a *App) followCursor() {
	snap := a.model.Snapshot()
	if i := snap.Index(a.cursorPath); i >= 0 {
		a.cursor = i
	} else if a.cursor >= snap.Len() {
		a.cursor = snap.Len() - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	f, _ := snap.At(a.cursor)
	a.cursorPath = f.Path
}

func (a *App) fetchDiff(req workspace.Request) {
	f, ok := a.model.Snapshot().File(req.Path)
	if !ok {
		// Gone from the worktree; show it as it was opened.
		f = git.File{Path: req.Path}
	}
	a.git.FetchDiff(req.ID, f)
}

func (a *App) applyDiff(res workspace.DiffResult) {
	if !a.model.ApplyDiff(res) {
		return
	}
	a.clampDiffTop()
}

func (a *App) gitHeight() int {
	return pane.Split(a.width, a.height, a.split, a.cfg.MinPaneWidth).Git.Height()
}

func (a *App) clampDiffTop() {
	maxTop := render.MaxDiffTop(a.model.Diff().Diff, a.gitHeight())
	a.diffTop = min(max(a.diffTop, 0), maxTop)
}

// State is what the next frame is built from.
func (a *App) State() render.State {
	now := a.now()
	st := render.State{
		Width:     a.width,
		Height:    a.height,
		Split:     a.split,
		MinWidth:  a.cfg.MinPaneWidth,
		Focus:     a.focus,
		View:      a.view,
		Screen:    a.emu.Screen(),
		Title:     a.title,
		Exited:    a.exit,
		Snapshot:  a.model.Snapshot(),
		Cursor:    a.cursor,
		Selection: a.sel,
		Diff:      a.model.Diff(),
		DiffTop:   a.diffTop,
		Highlight: a.highlight,
		Prompt:    a.prompt,
	}
	if msg, ok := a.board.Current(now); ok {
		st.Bar.Message = msg.Text
		st.Bar.Error = msg.Level == status.LevelError
	}
	if op, ok := a.model.Busy(); ok {
		st.Bar.Busy = op.String()
	}
	st.Bar.Hints = a.hints.For(a.focus, a.view)
	return st
}

func (a *App) render() {
	a.renderer.Draw(render.Build(a.State()))
}
