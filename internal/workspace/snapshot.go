// Package workspace holds the git state shown in the git pane and runs git
// operations in the background.
package workspace

import "github.com/abdullathedruid/gitmux/internal/git"

// Snapshot is one complete reading of the repository. It is never
// modified after it is built; a refresh replaces it.
type Snapshot struct {
	ID       uint64 // request that produced it
	Branch   string
	Upstream string
	Ahead    int
	Behind   int
	Stashes  []git.Stash
	Files    []git.File
}

func newSnapshot(id uint64, st git.Status, stashes []git.Stash) *Snapshot {
	return &Snapshot{
		ID:       id,
		Branch:   st.Branch,
		Upstream: st.Upstream,
		Ahead:    st.Ahead,
		Behind:   st.Behind,
		Stashes:  stashes,
		Files:    st.Files,
	}
}

// Len is the number of files.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Files)
}

// Index returns the position of path, or -1.
func (s *Snapshot) Index(path string) int {
	if s == nil {
		return -1
	}
	for i, f := range s.Files {
		if f.Path == path {
			return i
		}
	}
	return -1
}

// File returns the entry for path.
func (s *Snapshot) File(path string) (git.File, bool) {
	i := s.Index(path)
	if i < 0 {
		return git.File{}, false
	}
	return s.Files[i], true
}

// At returns the file at position i.
func (s *Snapshot) At(i int) (git.File, bool) {
	if s == nil || i < 0 || i >= len(s.Files) {
		return git.File{}, false
	}
	return s.Files[i], true
}
