package git

import (
	"context"
	"strings"
)

// Stash is one entry of the stash list.
type Stash struct {
	Ref     string // stash@{N}
	Message string
}

// Branch is a local branch.
type Branch struct {
	Name    string
	Current bool
}

// Stage adds path to the index.
func (c *Client) Stage(ctx context.Context, path string) error {
	_, err := c.run(ctx, "add", "--", path)
	return err
}

// Unstage resets path in the index to HEAD. On an unborn branch this
// removes it from the index.
func (c *Client) Unstage(ctx context.Context, path string) error {
	_, err := c.run(ctx, "reset", "-q", "--", path)
	return err
}

// StageAll stages every change, including untracked files.
func (c *Client) StageAll(ctx context.Context) error {
	_, err := c.run(ctx, "add", "-A")
	return err
}

// Discard restores path in the worktree from the index.
func (c *Client) Discard(ctx context.Context, path string) error {
	_, err := c.run(ctx, "checkout", "--", path)
	return err
}

// Commit records the index with msg and returns git's summary line.
func (c *Client) Commit(ctx context.Context, msg string) (string, error) {
	out, err := c.run(ctx, "commit", "-m", msg)
	return firstLine(out), err
}

// Push pushes the current branch to its upstream.
func (c *Client) Push(ctx context.Context) error {
	_, err := c.run(ctx, "push")
	return err
}

// Pull fetches and integrates the upstream.
func (c *Client) Pull(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "pull")
	return firstLine(out), err
}

// Stash saves worktree and index changes.
func (c *Client) Stash(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "stash")
	return firstLine(out), err
}

// StashPop applies and drops the newest stash.
func (c *Client) StashPop(ctx context.Context) error {
	_, err := c.run(ctx, "stash", "pop")
	return err
}

// Stashes lists the stash, newest first.
func (c *Client) Stashes(ctx context.Context) ([]Stash, error) {
	out, err := c.run(ctx, "stash", "list", "--format=%gd%x00%s")
	if err != nil {
		return nil, err
	}
	return parseStashes(out), nil
}

func parseStashes(out string) []Stash {
	var stashes []Stash
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		ref, msg, _ := strings.Cut(line, "\x00")
		stashes = append(stashes, Stash{Ref: ref, Message: msg})
	}
	return stashes
}

// Branches lists local branches.
func (c *Client) Branches(ctx context.Context) ([]Branch, error) {
	out, err := c.run(ctx, "branch", "--format=%(HEAD)%00%(refname:short)")
	if err != nil {
		return nil, err
	}
	return parseBranches(out), nil
}

func parseBranches(out string) []Branch {
	var branches []Branch
	for _, line := range strings.Split(out, "\n") {
		head, name, ok := strings.Cut(line, "\x00")
		if !ok || name == "" {
			continue
		}
		branches = append(branches, Branch{Name: name, Current: head == "*"})
	}
	return branches
}

// CreateBranch creates name at HEAD and switches to it.
func (c *Client) CreateBranch(ctx context.Context, name string) error {
	_, err := c.run(ctx, "checkout", "-b", name)
	return err
}

// Checkout switches to an existing branch.
func (c *Client) Checkout(ctx context.Context, name string) error {
	_, err := c.run(ctx, "checkout", name)
	return err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
