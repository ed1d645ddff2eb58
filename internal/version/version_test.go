package version

import "testing"

func TestString(t *testing.T) {
	oldSHA, oldDate := GitSHA, Date
	t.Cleanup(func() { GitSHA, Date = oldSHA, oldDate })

	tests := []struct {
		sha, date, want string
	}{
		{"dev", "", "gitmux dev"},
		{"abc1234", "2026-01-02", "gitmux abc1234 (2026-01-02)"},
	}
	for _, tt := range tests {
		GitSHA, Date = tt.sha, tt.date
		if got := String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := Short(); got != tt.sha {
			t.Errorf("Short() = %q, want %q", got, tt.sha)
		}
	}
}
