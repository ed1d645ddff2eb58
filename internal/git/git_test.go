package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// newRepo creates a repository with one committed file.
func newRepo(t *testing.T) *Client {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q", "-b", "main"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
		{"config", "commit.gpgsign", "false"},
	} {
		if out, err := exec.Command("git", append([]string{"-C", dir}, args...)...).CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v: %s", args, err, out)
		}
	}
	write(t, dir, "a.txt", "alpha\n")
	c := New(dir)
	ctx := context.Background()
	if err := c.Stage(ctx, "a.txt"); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if _, err := c.Commit(ctx, "initial"); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return c
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func fileStatus(t *testing.T, c *Client, path string) (File, bool) {
	t.Helper()
	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	for _, f := range st.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

func TestClient_StageUnstageRoundTrip(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	write(t, c.Dir(), "a.txt", "alpha\nbeta\n")
	write(t, c.Dir(), "b.txt", "new\n")

	for _, path := range []string{"a.txt", "b.txt"} {
		before, ok := fileStatus(t, c, path)
		if !ok {
			t.Fatalf("%s missing from status", path)
		}
		if err := c.Stage(ctx, path); err != nil {
			t.Fatalf("Stage(%q) error = %v", path, err)
		}
		staged, _ := fileStatus(t, c, path)
		if staged.Status() != StatusStaged {
			t.Errorf("after Stage(%q) status = %v, want staged", path, staged.Status())
		}
		if err := c.Unstage(ctx, path); err != nil {
			t.Fatalf("Unstage(%q) error = %v", path, err)
		}
		after, _ := fileStatus(t, c, path)
		if after.Status() != before.Status() || after.Stage != before.Stage {
			t.Errorf("%s after round trip = %v/%v, want %v/%v", path, after.Status(), after.Stage, before.Status(), before.Stage)
		}
	}
}

func TestClient_StatusAndDiff(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	write(t, c.Dir(), "a.txt", "alpha\nbeta\n")

	st, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if st.Branch != "main" {
		t.Errorf("Branch = %q, want main", st.Branch)
	}
	if len(st.Files) != 1 {
		t.Fatalf("got %d files, want 1", len(st.Files))
	}

	d, err := c.Diff(ctx, st.Files[0])
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if len(d.Hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(d.Hunks))
	}
	var added []string
	for _, l := range d.Hunks[0].Lines {
		if l.Kind == LineAdded {
			added = append(added, l.Text)
		}
	}
	if len(added) != 1 || added[0] != "beta" {
		t.Errorf("added lines = %q, want [beta]", added)
	}
}

func TestClient_CommitEmptyMessageFails(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	write(t, c.Dir(), "a.txt", "changed\n")
	if err := c.Stage(ctx, "a.txt"); err != nil {
		t.Fatal(err)
	}

	_, err := c.Commit(ctx, "")
	if err == nil {
		t.Fatal("Commit(\"\") error = nil")
	}
	if _, ok := err.(*OpError); !ok {
		t.Errorf("Commit(\"\") error type = %T, want *OpError", err)
	}
}

func TestClient_Branches(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	if err := c.CreateBranch(ctx, "feature"); err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}
	branches, err := c.Branches(ctx)
	if err != nil {
		t.Fatalf("Branches() error = %v", err)
	}
	current := ""
	for _, b := range branches {
		if b.Current {
			current = b.Name
		}
	}
	if current != "feature" {
		t.Errorf("current branch = %q, want feature", current)
	}
	if err := c.Checkout(ctx, "main"); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if err := c.Checkout(ctx, "does-not-exist"); err == nil {
		t.Error("Checkout(missing) error = nil")
	}
}

func TestClient_StashRoundTrip(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	write(t, c.Dir(), "a.txt", "dirty\n")

	if _, err := c.Stash(ctx); err != nil {
		t.Fatalf("Stash() error = %v", err)
	}
	stashes, err := c.Stashes(ctx)
	if err != nil {
		t.Fatalf("Stashes() error = %v", err)
	}
	if len(stashes) != 1 || stashes[0].Ref != "stash@{0}" {
		t.Errorf("Stashes() = %+v", stashes)
	}
	if _, ok := fileStatus(t, c, "a.txt"); ok {
		t.Error("a.txt still dirty after Stash()")
	}
	if err := c.StashPop(ctx); err != nil {
		t.Fatalf("StashPop() error = %v", err)
	}
	if _, ok := fileStatus(t, c, "a.txt"); !ok {
		t.Error("a.txt clean after StashPop()")
	}
}

func TestClient_Discard(t *testing.T) {
	c := newRepo(t)
	write(t, c.Dir(), "a.txt", "oops\n")
	if err := c.Discard(context.Background(), "a.txt"); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(c.Dir(), "a.txt"))
	if string(data) != "alpha\n" {
		t.Errorf("a.txt = %q after Discard, want %q", data, "alpha\n")
	}
}

func TestFindRepoRoot(t *testing.T) {
	c := newRepo(t)
	sub := filepath.Join(c.Dir(), "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	root, err := FindRepoRoot(sub)
	if err != nil {
		t.Fatalf("FindRepoRoot() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(c.Dir())
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("FindRepoRoot(%q) = %q, want %q", sub, got, want)
	}

	if _, err := FindRepoRoot(t.TempDir()); err != ErrNotRepository {
		t.Errorf("FindRepoRoot(non-repo) error = %v, want ErrNotRepository", err)
	}
}
