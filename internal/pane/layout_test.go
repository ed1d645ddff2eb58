package pane

import "testing"

func TestSplit_Default(t *testing.T) {
	l := Split(100, 50, 60, 20)

	if l.Hosted.X0 != 0 || l.Hosted.Y0 != 0 || l.Hosted.X1 != 59 || l.Hosted.Y1 != 47 {
		t.Errorf("unexpected hosted layout: %+v", l.Hosted)
	}
	if l.Git.X0 != 60 || l.Git.Y0 != 0 || l.Git.X1 != 99 || l.Git.Y1 != 47 {
		t.Errorf("unexpected git layout: %+v", l.Git)
	}
	if l.Status.Y0 != 48 || l.Status.Y1 != 50 || l.Status.X1 != 99 {
		t.Errorf("unexpected status layout: %+v", l.Status)
	}
	if l.Hosted.Width() != 58 || l.Hosted.Height() != 46 {
		t.Errorf("hosted interior = %dx%d, want 58x46", l.Hosted.Width(), l.Hosted.Height())
	}
}

func TestSplit_Clamped(t *testing.T) {
	tests := []struct {
		percent int
		want    int
	}{
		{5, 20},
		{20, 20},
		{95, 80},
		{60, 60},
	}
	for _, tt := range tests {
		l := Split(100, 40, tt.percent, 0)
		if got := l.Hosted.X1 + 1; got != tt.want {
			t.Errorf("Split(percent=%d) hosted width = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestSplit_MinWidth(t *testing.T) {
	l := Split(60, 30, 80, 20)
	if l.Git.X1-l.Git.X0+1 != 20 {
		t.Errorf("git pane width = %d, want 20", l.Git.X1-l.Git.X0+1)
	}

	// Too narrow to honor the minimum; the ratio still applies.
	l = Split(30, 30, 60, 20)
	if l.Hosted.X1 != 17 {
		t.Errorf("narrow hosted layout: %+v", l.Hosted)
	}
}

func TestSplit_PanesDoNotOverlap(t *testing.T) {
	for _, p := range []int{20, 40, 60, 80} {
		l := Split(120, 40, p, 20)
		if l.Hosted.X1+1 != l.Git.X0 {
			t.Errorf("split %d: hosted ends at %d, git starts at %d", p, l.Hosted.X1, l.Git.X0)
		}
	}
}

func TestCycleSplit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{40, 60},
		{60, 80},
		{80, 40},
		{20, 40},
		{70, 80},
	}
	for _, tt := range tests {
		if got := CycleSplit(tt.in); got != tt.want {
			t.Errorf("CycleSplit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLayout_Contains(t *testing.T) {
	l := Layout{X0: 10, Y0: 0, X1: 20, Y1: 5}
	if !l.Contains(10, 0) || !l.Contains(20, 5) {
		t.Error("Contains() excludes border cells")
	}
	if l.Contains(9, 3) || l.Contains(21, 3) || l.Contains(15, 6) {
		t.Error("Contains() includes outside cells")
	}
}
