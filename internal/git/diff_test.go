package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var sampleDiff = strings.Join([]string{
	"diff --git a/main.go b/main.go",
	"index 83db48f..bf269f4 100644",
	"--- a/main.go",
	"+++ b/main.go",
	"@@ -1,4 +1,5 @@ package main",
	" package main",
	`-import "fmt"`,
	"+import (",
	"+\t\"fmt\"",
	"+)",
	" ",
	" func main() {",
	"@@ -10 +11,0 @@ func helper() {",
	"-\treturn",
	`\ No newline at end of file`,
	"",
}, "\n")

func TestParseDiff(t *testing.T) {
	d := parseDiff(sampleDiff)
	if len(d.Hunks) != 2 {
		t.Fatalf("got %d hunks, want 2", len(d.Hunks))
	}

	h := d.Hunks[0]
	if h.OldStart != 1 || h.OldLines != 4 || h.NewStart != 1 || h.NewLines != 5 {
		t.Errorf("hunk 0 ranges = -%d,%d +%d,%d", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
	want := []Line{
		{Kind: LineContext, Text: "package main", Old: 1, New: 1},
		{Kind: LineRemoved, Text: `import "fmt"`, Old: 2},
		{Kind: LineAdded, Text: "import (", New: 2},
		{Kind: LineAdded, Text: "\t\"fmt\"", New: 3},
		{Kind: LineAdded, Text: ")", New: 4},
		{Kind: LineContext, Text: "", Old: 3, New: 5},
		{Kind: LineContext, Text: "func main() {", Old: 4, New: 6},
	}
	if len(h.Lines) != len(want) {
		t.Fatalf("hunk 0 has %d lines, want %d", len(h.Lines), len(want))
	}
	for i := range want {
		if h.Lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, h.Lines[i], want[i])
		}
	}

	h = d.Hunks[1]
	if h.OldStart != 10 || h.OldLines != 1 || h.NewStart != 11 || h.NewLines != 0 {
		t.Errorf("hunk 1 ranges = -%d,%d +%d,%d", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
	if len(h.Lines) != 1 || h.Lines[0].Old != 10 {
		t.Errorf("hunk 1 lines = %+v", h.Lines)
	}

	if got := d.Rows(); got != 10 {
		t.Errorf("Rows() = %d, want 10", got)
	}
	rows := d.HunkRows()
	if len(rows) != 2 || rows[0] != 0 || rows[1] != 8 {
		t.Errorf("HunkRows() = %v, want [0 8]", rows)
	}
}

func TestParseDiff_Binary(t *testing.T) {
	d := parseDiff("diff --git a/x.png b/x.png\nBinary files a/x.png and b/x.png differ\n")
	if !d.Binary {
		t.Error("Binary = false, want true")
	}
	if len(d.Hunks) != 0 {
		t.Errorf("got %d hunks, want 0", len(d.Hunks))
	}
}

func TestParseHunkHeader(t *testing.T) {
	tests := []struct {
		line           string
		ok             bool
		os, ol, ns, nl int
	}{
		{"@@ -1,3 +1,4 @@", true, 1, 3, 1, 4},
		{"@@ -5 +5 @@ func x()", true, 5, 1, 5, 1},
		{"@@ -0,0 +1,2 @@", true, 0, 0, 1, 2},
		{"@@ garbage", false, 0, 0, 0, 0},
		{"@@ -a,b +c,d @@", false, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		h, ok := parseHunkHeader(tt.line)
		if ok != tt.ok {
			t.Errorf("parseHunkHeader(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if h.OldStart != tt.os || h.OldLines != tt.ol || h.NewStart != tt.ns || h.NewLines != tt.nl {
			t.Errorf("parseHunkHeader(%q) = -%d,%d +%d,%d", tt.line, h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		}
	}
}

func TestUntrackedDiff(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := New(dir).untrackedDiff("new.txt")
	if err != nil {
		t.Fatalf("untrackedDiff() error = %v", err)
	}
	if len(d.Hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(d.Hunks))
	}
	h := d.Hunks[0]
	if h.Header != "@@ -0,0 +1,3 @@" {
		t.Errorf("Header = %q", h.Header)
	}
	for i, text := range []string{"one", "two", "three"} {
		l := h.Lines[i]
		if l.Kind != LineAdded || l.Text != text || l.New != i+1 {
			t.Errorf("line %d = %+v, want added %q at %d", i, l, text, i+1)
		}
	}
}

func TestUntrackedDiff_Binary(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blob"), []byte{0x89, 'P', 0, 1}, 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := New(dir).untrackedDiff("blob")
	if err != nil {
		t.Fatalf("untrackedDiff() error = %v", err)
	}
	if !d.Binary {
		t.Error("Binary = false, want true")
	}
}

func TestUntrackedDiff_Missing(t *testing.T) {
	if _, err := New(t.TempDir()).untrackedDiff("nope"); err == nil {
		t.Error("untrackedDiff(missing) error = nil")
	}
}
