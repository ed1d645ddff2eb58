// Package git runs the git CLI against one worktree and parses its output.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"
)

// ErrNotRepository is returned when a directory is not inside a worktree.
var ErrNotRepository = errors.New("not a git repository")

// OpError is a failed git invocation.
type OpError struct {
	Op     string // git subcommand, e.g. "commit"
	Err    error
	Stderr string
}

func (e *OpError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("git %s: %v", e.Op, e.Err)
	}
	// The last stderr line is usually the one that explains the failure.
	if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	return fmt.Sprintf("git %s: %s", e.Op, msg)
}

func (e *OpError) Unwrap() error { return e.Err }

// Client runs git in a fixed worktree.
type Client struct {
	dir string
	bin string
}

// New returns a client for the worktree at dir.
func New(dir string) *Client {
	return &Client{dir: dir, bin: "git"}
}

// Dir is the worktree root the client runs in.
func (c *Client) Dir() string {
	return c.dir
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.bin, append([]string{"-C", c.dir}, args...)...)
	// No tty is attached, so credential prompts would hang forever.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_OPTIONAL_LOCKS=0", "LC_ALL=C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &OpError{Op: args[0], Err: err, Stderr: stderr.String()}
	}
	return stdout.String(), nil
}

// FindRepoRoot returns the top of the worktree containing path.
func FindRepoRoot(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}

	cmd := exec.Command("git", "-C", absPath, "rev-parse", "--show-toplevel")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", ErrNotRepository
	}

	root := strings.TrimSpace(stdout.String())
	if root == "" {
		return "", ErrNotRepository
	}
	return filepath.Clean(root), nil
}

// GitDir returns the absolute git directory of the worktree.
func (c *Client) GitDir(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ShortenPath shortens a path for display by replacing home dir with ~.
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}

	if path == home || strings.HasPrefix(path, home+"/") {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
