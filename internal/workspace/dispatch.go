package workspace

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abdullathedruid/gitmux/internal/git"
	"pkt.systems/pslog"
)

const (
	localTimeout  = 30 * time.Second
	remoteTimeout = 5 * time.Minute
)

// Dispatcher runs each request on its own goroutine and reports through
// callbacks. It never touches a Model.
type Dispatcher struct {
	ctx      context.Context
	git      Collaborator
	onResult func(Result)
	onDiff   func(DiffResult)
	wg       sync.WaitGroup
}

// NewDispatcher returns a dispatcher whose workers stop when ctx ends.
func NewDispatcher(ctx context.Context, g Collaborator, onResult func(Result), onDiff func(DiffResult)) *Dispatcher {
	return &Dispatcher{ctx: ctx, git: g, onResult: onResult, onDiff: onDiff}
}

// Submit starts req in the background.
func (d *Dispatcher) Submit(req Request) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.onResult(d.run(req))
	}()
}

// FetchDiff loads the diff of f for the request id.
func (d *Dispatcher) FetchDiff(id uint64, f git.File) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(d.ctx, localTimeout)
		defer cancel()
		diff, err := d.git.Diff(ctx, f)
		if err != nil {
			pslog.Ctx(d.ctx).Warn("diff failed", "path", f.Path, "err", err)
		}
		d.onDiff(DiffResult{ID: id, Path: f.Path, Diff: diff, Err: err})
	}()
}

// Wait blocks until every worker has reported.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(req Request) Result {
	log := pslog.Ctx(d.ctx).With("op", req.Op.String(), "request", req.ID)
	timeout := localTimeout
	switch req.Op {
	case OpPush, OpPull, OpCommitPush:
		timeout = remoteTimeout
	}
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()

	res := Result{ID: req.ID, Op: req.Op}
	msg, err := d.do(ctx, req)
	// A failed push after a successful commit still changed the repository.
	if err != nil && (req.Op != OpCommitPush || msg == "") {
		log.Warn("git operation failed", "err", err)
		res.Err = err
		return res
	}
	res.Message = msg
	res.Err = err

	snap, serr := d.snapshot(ctx, req.ID)
	if serr != nil {
		log.Warn("git refresh failed", "err", serr)
		if res.Err == nil {
			res.Err = serr
		}
		return res
	}
	res.Snapshot = snap
	log.Debug("git operation done")
	return res
}

// do performs the operation and returns the success message.
func (d *Dispatcher) do(ctx context.Context, req Request) (string, error) {
	g := d.git
	switch req.Op {
	case OpRefresh:
		return "", nil
	case OpStage:
		return "Staged " + req.Path, g.Stage(ctx, req.Path)
	case OpUnstage:
		return "Unstaged " + req.Path, g.Unstage(ctx, req.Path)
	case OpStageAll:
		return "Staged all changes", g.StageAll(ctx)
	case OpDiscard:
		return "Discarded " + req.Path, g.Discard(ctx, req.Path)
	case OpCommit:
		summary, err := g.Commit(ctx, req.Arg)
		if summary == "" {
			summary = "Committed"
		}
		return summary, err
	case OpCommitPush:
		if _, err := g.Commit(ctx, req.Arg); err != nil {
			return "", err
		}
		if err := g.Push(ctx); err != nil {
			return "Committed but push failed: " + err.Error(), err
		}
		return "Committed & pushed", nil
	case OpPush:
		return "Pushed", g.Push(ctx)
	case OpPull:
		summary, err := g.Pull(ctx)
		if summary == "" {
			summary = "Pulled"
		}
		return summary, err
	case OpStash:
		return "Stashed changes", ignoreSummary(g.Stash(ctx))
	case OpStashPop:
		return "Popped stash", g.StashPop(ctx)
	case OpBranches:
		branches, err := g.Branches(ctx)
		return formatBranches(branches), err
	case OpCreateBranch:
		return "Created branch " + req.Arg, g.CreateBranch(ctx, req.Arg)
	case OpCheckout:
		return "Switched to " + req.Arg, g.Checkout(ctx, req.Arg)
	}
	return "", fmt.Errorf("unknown op %d", req.Op)
}

func (d *Dispatcher) snapshot(ctx context.Context, id uint64) (*Snapshot, error) {
	st, err := d.git.Status(ctx)
	if err != nil {
		return nil, err
	}
	stashes, err := d.git.Stashes(ctx)
	if err != nil {
		return nil, err
	}
	return newSnapshot(id, st, stashes), nil
}

func ignoreSummary(_ string, err error) error {
	return err
}

func formatBranches(branches []git.Branch) string {
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		if b.Current {
			names = append(names, "*"+b.Name)
		} else {
			names = append(names, b.Name)
		}
	}
	return "Branches: " + strings.Join(names, ", ")
}
