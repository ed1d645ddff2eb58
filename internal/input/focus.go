// Package input maps key and mouse events to actions based on which pane
// has focus and what the git pane is showing.
package input

// Focus is the pane that receives keys.
type Focus int

const (
	// FocusHosted sends keys to the hosted process.
	FocusHosted Focus = iota
	// FocusGit drives the git pane.
	FocusGit
)

// String returns the human-readable focus name.
func (f Focus) String() string {
	switch f {
	case FocusHosted:
		return "HOSTED"
	case FocusGit:
		return "GIT"
	default:
		return "UNKNOWN"
	}
}

// Toggle returns the other pane.
func (f Focus) Toggle() Focus {
	if f == FocusHosted {
		return FocusGit
	}
	return FocusHosted
}

// SubView is what the git pane shows.
type SubView int

const (
	// ViewStatus is the changed-file list.
	ViewStatus SubView = iota
	// ViewDiff is the diff of one file.
	ViewDiff
)

func (v SubView) String() string {
	if v == ViewDiff {
		return "DIFF"
	}
	return "STATUS"
}
