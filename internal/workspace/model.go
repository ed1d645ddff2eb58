package workspace

import "github.com/abdullathedruid/gitmux/internal/git"

// Model is the git state owned by the main loop. It is not safe for
// concurrent use.
type Model struct {
	snap    *Snapshot
	nextID  uint64
	applied uint64
	pending map[uint64]Op

	diff DiffState
}

// DiffState is the diff view's content.
type DiffState struct {
	Path    string
	ID      uint64 // request the view is waiting for or showing
	Loading bool
	Diff    git.Diff
	Err     error
}

// Outcome says what Apply did with a Result.
type Outcome struct {
	Applied bool // the snapshot was replaced
	Stale   bool // the snapshot was older than the current one
	Failed  bool
	Message string
}

// NewModel returns a model with an empty snapshot.
func NewModel() *Model {
	return &Model{
		snap:    &Snapshot{},
		pending: make(map[uint64]Op),
	}
}

// Snapshot is the current snapshot. It is never nil.
func (m *Model) Snapshot() *Snapshot {
	return m.snap
}

// LastApplied is the id of the current snapshot.
func (m *Model) LastApplied() uint64 {
	return m.applied
}

// Request allocates the next request id and marks it pending.
func (m *Model) Request(op Op, path, arg string) Request {
	m.nextID++
	m.pending[m.nextID] = op
	return Request{ID: m.nextID, Op: op, Path: path, Arg: arg}
}

// RefreshPending reports whether a plain refresh is still in flight.
func (m *Model) RefreshPending() bool {
	for _, op := range m.pending {
		if op == OpRefresh {
			return true
		}
	}
	return false
}

// Busy returns the newest pending operation that shows an indicator.
func (m *Model) Busy() (Op, bool) {
	var id uint64
	var busy Op
	for rid, op := range m.pending {
		if op.Busy() && rid > id {
			id, busy = rid, op
		}
	}
	return busy, id != 0
}

// Apply folds res into the model. The snapshot is replaced only when res
// carries one at least as new as the current snapshot; an older one is
// dropped. The operation's own outcome is reported either way.
func (m *Model) Apply(res Result) Outcome {
	delete(m.pending, res.ID)

	var out Outcome
	if res.Snapshot != nil {
		if res.ID < m.applied {
			out.Stale = true
		} else {
			m.snap = res.Snapshot
			m.applied = res.ID
			out.Applied = true
		}
	}

	out.Message = res.Message
	if res.Err != nil {
		out.Failed = true
		if out.Message == "" {
			out.Message = res.Err.Error()
		}
	}
	return out
}

// OpenDiff starts showing the diff of path and returns the fetch request.
func (m *Model) OpenDiff(path string) Request {
	m.nextID++
	m.diff = DiffState{Path: path, ID: m.nextID, Loading: true}
	return Request{ID: m.nextID, Path: path}
}

// ReloadDiff asks for fresh content of the open diff, keeping the old
// content visible until it arrives. ok is false when no diff is open.
func (m *Model) ReloadDiff() (Request, bool) {
	if m.diff.Path == "" {
		return Request{}, false
	}
	m.nextID++
	m.diff.ID = m.nextID
	return Request{ID: m.nextID, Path: m.diff.Path}, true
}

// CloseDiff stops showing a diff. Results still in flight are ignored.
func (m *Model) CloseDiff() {
	m.diff = DiffState{}
}

// Diff is the diff view's state.
func (m *Model) Diff() DiffState {
	return m.diff
}

// ApplyDiff stores res if it answers the latest fetch for the open diff.
func (m *Model) ApplyDiff(res DiffResult) bool {
	if m.diff.Path == "" || res.Path != m.diff.Path || res.ID != m.diff.ID {
		return false
	}
	m.diff.Loading = false
	m.diff.Err = res.Err
	if res.Err == nil {
		m.diff.Diff = res.Diff
	}
	return true
}
