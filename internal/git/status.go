package git

import (
	"context"
	"strconv"
	"strings"
)

// Kind is what happened to a file, independent of whether it is staged.
type Kind uint8

const (
	KindModified Kind = iota
	KindNew
	KindDeleted
	KindRenamed
	KindCopied
	KindTypechange
	KindConflicted
	KindUntracked
)

// Letter is the one-character code shown in the file list.
func (k Kind) Letter() string {
	switch k {
	case KindNew:
		return "A"
	case KindDeleted:
		return "D"
	case KindRenamed:
		return "R"
	case KindCopied:
		return "C"
	case KindTypechange:
		return "T"
	case KindConflicted:
		return "U"
	case KindUntracked:
		return "?"
	default:
		return "M"
	}
}

// StageState says where a file's changes live.
type StageState uint8

const (
	Unstaged StageState = iota
	Staged
	Partial // changes in both the index and the worktree
)

// Icon is the marker shown next to a file.
func (s StageState) Icon() string {
	switch s {
	case Staged:
		return "✓"
	case Partial:
		return "±"
	default:
		return " "
	}
}

// FileStatus is the coarse classification files are grouped by.
type FileStatus uint8

const (
	StatusModified FileStatus = iota
	StatusStaged
	StatusUntracked
	StatusDeleted
	StatusRenamed
)

func (s FileStatus) String() string {
	switch s {
	case StatusStaged:
		return "staged"
	case StatusUntracked:
		return "untracked"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	default:
		return "modified"
	}
}

// File is one changed path in the worktree.
type File struct {
	Path     string
	OrigPath string // source of a rename or copy
	Kind     Kind
	Stage    StageState
	X, Y     byte // porcelain index and worktree codes
}

// Status classifies f. Renames and deletions win over the stage state so
// the list keeps showing what happened to the file.
func (f File) Status() FileStatus {
	switch {
	case f.Kind == KindUntracked:
		return StatusUntracked
	case f.Kind == KindRenamed:
		return StatusRenamed
	case f.Kind == KindDeleted:
		return StatusDeleted
	case f.Stage == Staged:
		return StatusStaged
	default:
		return StatusModified
	}
}

// Status is the parsed output of git status.
type Status struct {
	Branch   string
	Upstream string
	Ahead    int
	Behind   int
	Files    []File
}

// Status reads the branch header and changed files.
func (c *Client) Status(ctx context.Context) (Status, error) {
	out, err := c.run(ctx, "status", "--porcelain=v2", "--branch", "--untracked-files=all", "-z")
	if err != nil {
		return Status{}, err
	}
	return parseStatus(out), nil
}

// parseStatus parses NUL-separated porcelain v2 output.
func parseStatus(out string) Status {
	var st Status
	records := strings.Split(out, "\x00")
	for i := 0; i < len(records); i++ {
		rec := records[i]
		if rec == "" {
			continue
		}
		switch rec[0] {
		case '#':
			parseHeader(&st, rec)
		case '1':
			// 1 XY sub mH mI mW hH hI path
			parts := strings.SplitN(rec, " ", 9)
			if len(parts) == 9 {
				st.Files = append(st.Files, changed(parts[1], parts[8], ""))
			}
		case '2':
			// 2 XY sub mH mI mW hH hI Xscore path, then origPath in the next record
			parts := strings.SplitN(rec, " ", 10)
			if len(parts) == 10 {
				orig := ""
				if i+1 < len(records) {
					i++
					orig = records[i]
				}
				st.Files = append(st.Files, changed(parts[1], parts[9], orig))
			}
		case 'u':
			// u XY sub m1 m2 m3 mW h1 h2 h3 path
			parts := strings.SplitN(rec, " ", 11)
			if len(parts) == 11 {
				f := changed(parts[1], parts[10], "")
				f.Kind = KindConflicted
				f.Stage = Unstaged
				st.Files = append(st.Files, f)
			}
		case '?':
			st.Files = append(st.Files, File{Path: rec[2:], Kind: KindUntracked, X: '?', Y: '?'})
		}
	}
	return st
}

func parseHeader(st *Status, rec string) {
	fields := strings.Fields(rec)
	if len(fields) < 3 {
		return
	}
	switch fields[1] {
	case "branch.head":
		st.Branch = fields[2]
		if st.Branch == "(detached)" {
			st.Branch = "HEAD"
		}
	case "branch.upstream":
		st.Upstream = fields[2]
	case "branch.ab":
		if len(fields) == 4 {
			st.Ahead, _ = strconv.Atoi(strings.TrimPrefix(fields[2], "+"))
			st.Behind, _ = strconv.Atoi(strings.TrimPrefix(fields[3], "-"))
		}
	}
}

func changed(xy, path, orig string) File {
	f := File{Path: path, OrigPath: orig}
	if len(xy) == 2 {
		f.X, f.Y = xy[0], xy[1]
	}

	inIndex := f.X != '.' && f.X != 0
	inTree := f.Y != '.' && f.Y != 0
	switch {
	case inIndex && inTree:
		f.Stage = Partial
	case inIndex:
		f.Stage = Staged
	default:
		f.Stage = Unstaged
	}

	code := f.Y
	if inIndex {
		code = f.X
	}
	f.Kind = kindOf(code)
	return f
}

func kindOf(code byte) Kind {
	switch code {
	case 'A':
		return KindNew
	case 'D':
		return KindDeleted
	case 'R':
		return KindRenamed
	case 'C':
		return KindCopied
	case 'T':
		return KindTypechange
	case 'U':
		return KindConflicted
	default:
		return KindModified
	}
}
