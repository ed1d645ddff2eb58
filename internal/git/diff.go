package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// maxUntrackedSize bounds how much of a new file is read to build its diff.
const maxUntrackedSize = 1 << 20

// LineKind tags a diff line.
type LineKind uint8

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Line is one line of a hunk. Old and New are 1-based line numbers, zero
// when the line does not exist on that side.
type Line struct {
	Kind LineKind
	Text string
	Old  int
	New  int
}

// Hunk is one contiguous change region.
type Hunk struct {
	Header   string
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// Diff is the parsed diff of one file.
type Diff struct {
	Path   string
	Binary bool
	Hunks  []Hunk
}

// Rows is the number of display rows: one per hunk header plus its lines.
func (d Diff) Rows() int {
	n := 0
	for _, h := range d.Hunks {
		n += 1 + len(h.Lines)
	}
	return n
}

// HunkRows returns the display row of every hunk header.
func (d Diff) HunkRows() []int {
	rows := make([]int, 0, len(d.Hunks))
	n := 0
	for _, h := range d.Hunks {
		rows = append(rows, n)
		n += 1 + len(h.Lines)
	}
	return rows
}

// Diff returns the changes of f. Staged files diff the index against HEAD,
// partially staged files diff the worktree against HEAD, everything else
// the worktree against the index. Untracked files are diffed against
// nothing.
func (c *Client) Diff(ctx context.Context, f File) (Diff, error) {
	if f.Kind == KindUntracked {
		return c.untrackedDiff(f.Path)
	}

	args := []string{"diff", "--no-color", "--no-ext-diff"}
	switch f.Stage {
	case Staged:
		args = append(args, "--cached")
	case Partial:
		args = append(args, "HEAD")
	}
	args = append(args, "--", f.Path)
	if f.OrigPath != "" && f.Stage != Unstaged {
		args = append(args, f.OrigPath)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return Diff{}, err
	}
	d := parseDiff(out)
	d.Path = f.Path
	return d, nil
}

// parseDiff parses unified diff output for a single file.
func parseDiff(out string) Diff {
	var d Diff
	var cur *Hunk
	var oldN, newN int

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			h, ok := parseHunkHeader(line)
			if !ok {
				cur = nil
				continue
			}
			d.Hunks = append(d.Hunks, h)
			cur = &d.Hunks[len(d.Hunks)-1]
			oldN, newN = h.OldStart, h.NewStart
		case strings.HasPrefix(line, "Binary files "):
			d.Binary = true
		case cur == nil:
			// file header: diff --git, index, ---, +++
		case strings.HasPrefix(line, "+"):
			cur.Lines = append(cur.Lines, Line{Kind: LineAdded, Text: line[1:], New: newN})
			newN++
		case strings.HasPrefix(line, "-"):
			cur.Lines = append(cur.Lines, Line{Kind: LineRemoved, Text: line[1:], Old: oldN})
			oldN++
		case strings.HasPrefix(line, " "):
			cur.Lines = append(cur.Lines, Line{Kind: LineContext, Text: line[1:], Old: oldN, New: newN})
			oldN++
			newN++
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file"
		}
	}
	return d
}

// parseHunkHeader parses "@@ -a,b +c,d @@ section".
func parseHunkHeader(line string) (Hunk, bool) {
	h := Hunk{Header: line}
	rest := strings.TrimPrefix(line, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return h, false
	}
	ranges := strings.Fields(rest[:end])
	if len(ranges) != 2 || !strings.HasPrefix(ranges[0], "-") || !strings.HasPrefix(ranges[1], "+") {
		return h, false
	}
	var ok1, ok2 bool
	h.OldStart, h.OldLines, ok1 = parseRange(ranges[0][1:])
	h.NewStart, h.NewLines, ok2 = parseRange(ranges[1][1:])
	return h, ok1 && ok2
}

func parseRange(s string) (start, count int, ok bool) {
	count = 1
	if i := strings.IndexByte(s, ','); i >= 0 {
		n, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return 0, 0, false
		}
		count = n
		s = s[:i]
	}
	start, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, false
	}
	return start, count, true
}

// untrackedDiff builds an all-added diff for a file git does not know yet.
func (c *Client) untrackedDiff(path string) (Diff, error) {
	d := Diff{Path: path}
	full := filepath.Join(c.dir, path)

	info, err := os.Stat(full)
	if err != nil {
		return d, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > maxUntrackedSize {
		d.Binary = true
		return d, nil
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return d, fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.IndexByte(content, 0) >= 0 {
		d.Binary = true
		return d, nil
	}

	text := string(content)
	edits := myers.ComputeEdits(span.URIFromPath(path), "", text)
	unified := gotextdiff.ToUnified("/dev/null", "b/"+path, "", edits)
	for _, uh := range unified.Hunks {
		h := Hunk{OldStart: 0, NewStart: 1}
		n := 1
		for _, ul := range uh.Lines {
			if ul.Kind != gotextdiff.Insert {
				continue
			}
			h.Lines = append(h.Lines, Line{
				Kind: LineAdded,
				Text: strings.TrimSuffix(ul.Content, "\n"),
				New:  n,
			})
			n++
		}
		h.NewLines = len(h.Lines)
		h.Header = fmt.Sprintf("@@ -0,0 +1,%d @@", h.NewLines)
		d.Hunks = append(d.Hunks, h)
	}
	return d, nil
}
