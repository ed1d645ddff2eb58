package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/abdullathedruid/gitmux/internal/app"
	"github.com/abdullathedruid/gitmux/internal/config"
	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/abdullathedruid/gitmux/internal/git"
	"github.com/abdullathedruid/gitmux/internal/highlight"
	"github.com/abdullathedruid/gitmux/internal/logx"
	"github.com/abdullathedruid/gitmux/internal/pane"
	"github.com/abdullathedruid/gitmux/internal/process"
	"github.com/abdullathedruid/gitmux/internal/session"
	"github.com/abdullathedruid/gitmux/internal/ui"
	"github.com/abdullathedruid/gitmux/internal/watch"
	"github.com/abdullathedruid/gitmux/internal/workspace"
	"pkt.systems/pslog"
)

type runOptions struct {
	dir        string
	configPath string
	split      int
	logLevel   string
	command    []string // overrides the configured command when set
}

// loadConfig reads the config file and applies the command line on top.
func loadConfig(opts runOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, opts runOptions) error {
	if opts.split != 0 {
		cfg.SplitPercent = opts.split
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if len(opts.command) > 0 {
		cfg.Command = opts.command[0]
		cfg.Args = opts.command[1:]
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// run wires the producers, the hosted process and the renderer to the
// main loop and blocks until it returns.
func run(ctx context.Context, opts runOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	root, err := git.FindRepoRoot(opts.dir)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.dir, err)
	}

	logger, closer := logx.Open(cfg.LogFile(), cfg.LogLevel)
	defer closer.Close()
	logger = logx.WithRepo(logger, root)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	logger.Info("starting", "command", cfg.Command, "args", strings.Join(cfg.Args, " "))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := event.NewBus(event.DefaultBufferSize)
	emit := bus.Emitter(ctx)

	gui, err := ui.New()
	if err != nil {
		return err
	}
	defer gui.Close()

	width, height := gui.Size()
	cols, rows := app.HostedSize(cfg, pane.ClampSplit(cfg.SplitPercent), width, height)
	sess, err := session.Start(ctx, session.Options{
		Command: cfg.Command,
		Args:    cfg.Args,
		Dir:     root,
		Cols:    cols,
		Rows:    rows,
	}, emit)
	if err != nil {
		return err
	}
	defer sess.Close()

	client := git.New(root)
	dispatcher := workspace.NewDispatcher(ctx, client,
		func(res workspace.Result) { emit(event.GitRefreshResult{Result: res}) },
		func(res workspace.DiffResult) { emit(event.DiffLoaded{DiffResult: res}) },
	)

	a, err := app.New(ctx, app.Options{
		Config:    cfg,
		Renderer:  gui,
		Hosted:    sess,
		Workspace: dispatcher,
		Highlight: highlight.New(cfg.SyntaxTheme),
		Title:     process.CommandName(cfg.Command),
		Cancel:    cancel,
	})
	if err != nil {
		return err
	}

	go event.Ticker(ctx, bus, cfg.Refresh())
	if cfg.WatchEnabled() {
		startWatcher(ctx, client, root, emit)
	}

	guiDone := make(chan struct{})
	go func() {
		defer close(guiDone)
		err := gui.Run(emit)
		emit(event.RendererClosed{Err: err})
	}()

	runErr := a.Run(ctx, bus.Events())
	<-guiDone
	logger.Info("stopped")
	return runErr
}

// startWatcher runs the filesystem watcher until ctx ends. A worktree that
// cannot be watched still refreshes on every tick.
func startWatcher(ctx context.Context, client *git.Client, root string, emit func(event.Event) bool) {
	logger := pslog.Ctx(ctx).With("component", "watch")
	gitDir, err := client.GitDir(ctx)
	if err != nil {
		logger.Error("finding git directory", "err", err)
	}
	w, err := watch.New(root, gitDir, watch.DefaultDebounce)
	if err != nil {
		logger.Error("watcher disabled", "err", err)
		return
	}
	go func() {
		defer w.Close()
		w.Run(ctx, emit)
	}()
}
