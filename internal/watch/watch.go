// Package watch reports worktree changes so the git pane can refresh
// before the next tick.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/fsnotify/fsnotify"
	"pkt.systems/pslog"
)

const (
	// DefaultDebounce groups bursts of changes into one refresh.
	DefaultDebounce = 300 * time.Millisecond
	// maxDirs caps the number of watched directories in large trees.
	maxDirs = 4096
)

// gitFiles are the files in the git directory whose changes matter.
var gitFiles = map[string]bool{
	"index":      true,
	"HEAD":       true,
	"ORIG_HEAD":  true,
	"FETCH_HEAD": true,
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".worktrees":   true,
}

// Watcher watches a worktree and its git directory.
type Watcher struct {
	w        *fsnotify.Watcher
	root     string
	gitDir   string
	debounce time.Duration
	dirs     int
}

// New watches every directory under root plus gitDir itself.
func New(root, gitDir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{w: fw, root: root, gitDir: gitDir, debounce: debounce}

	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	if gitDir != "" {
		if err := fw.Add(gitDir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped; the root must be readable.
			if path == dir {
				return err
			}
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if w.dirs >= maxDirs {
			return filepath.SkipAll
		}
		if err := w.w.Add(path); err != nil {
			return nil
		}
		w.dirs++
		return nil
	})
}

// relevant reports whether a change to name should trigger a refresh.
func (w *Watcher) relevant(name string) bool {
	if w.gitDir != "" && filepath.Dir(name) == w.gitDir {
		return gitFiles[filepath.Base(name)]
	}
	rel, err := filepath.Rel(w.root, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if skipDirs[part] {
			return false
		}
	}
	return true
}

// Run forwards debounced changes to emit until ctx ends or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context, emit func(event.Event) bool) {
	log := pslog.Ctx(ctx).With("component", "watch")
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && w.relevant(ev.Name) {
					_ = w.addTree(ev.Name)
				}
			}
			if ev.Op == fsnotify.Chmod || !w.relevant(ev.Name) {
				continue
			}
			pending = ev.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}

		case <-timerC:
			timer, timerC = nil, nil
			if !emit(event.WorktreeChanged{Path: pending}) {
				return
			}

		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			log.Debug("watch error", "err", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
