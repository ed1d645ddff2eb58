package workspace

import (
	"context"

	"github.com/abdullathedruid/gitmux/internal/git"
)

// Collaborator is the git plumbing the workspace drives. *git.Client
// implements it.
type Collaborator interface {
	Status(ctx context.Context) (git.Status, error)
	Stashes(ctx context.Context) ([]git.Stash, error)
	Diff(ctx context.Context, f git.File) (git.Diff, error)
	Stage(ctx context.Context, path string) error
	Unstage(ctx context.Context, path string) error
	StageAll(ctx context.Context) error
	Discard(ctx context.Context, path string) error
	Commit(ctx context.Context, msg string) (string, error)
	Push(ctx context.Context) error
	Pull(ctx context.Context) (string, error)
	Stash(ctx context.Context) (string, error)
	StashPop(ctx context.Context) error
	Branches(ctx context.Context) ([]git.Branch, error)
	CreateBranch(ctx context.Context, name string) error
	Checkout(ctx context.Context, name string) error
}

// Op is a background git operation.
type Op uint8

const (
	OpRefresh Op = iota
	OpStage
	OpUnstage
	OpStageAll
	OpDiscard
	OpCommit
	OpCommitPush
	OpPush
	OpPull
	OpStash
	OpStashPop
	OpBranches
	OpCreateBranch
	OpCheckout
)

var opNames = [...]string{
	OpRefresh:      "refresh",
	OpStage:        "stage",
	OpUnstage:      "unstage",
	OpStageAll:     "stage all",
	OpDiscard:      "discard",
	OpCommit:       "commit",
	OpCommitPush:   "commit & push",
	OpPush:         "push",
	OpPull:         "pull",
	OpStash:        "stash",
	OpStashPop:     "stash pop",
	OpBranches:     "branches",
	OpCreateBranch: "new branch",
	OpCheckout:     "checkout",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Busy reports whether the op shows a pending indicator. Background
// refreshes and branch listing are quiet.
func (o Op) Busy() bool {
	return o != OpRefresh && o != OpBranches
}

// Request is one operation to run. Path is the file for per-file ops and
// Arg the message or branch name.
type Request struct {
	ID   uint64
	Op   Op
	Path string
	Arg  string
}

// Result is the outcome of a Request. Snapshot is the repository state
// read after the operation; it is nil when the operation failed before
// changing anything.
type Result struct {
	ID       uint64
	Op       Op
	Snapshot *Snapshot
	Err      error
	Message  string
}

// DiffResult is the outcome of a diff fetch.
type DiffResult struct {
	ID   uint64
	Path string
	Diff git.Diff
	Err  error
}
