package process

import (
	"os/exec"
	"testing"
	"time"
)

func TestCommandName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/usr/local/bin/node", "node"},
		{"/bin/zsh", "zsh"},
		{"claude", "claude"},
		{"node /path/to/script.js", "node"},
		{"/usr/bin/python3 -m http.server", "python3"},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		got := CommandName(tt.input)
		if got != tt.want {
			t.Errorf("CommandName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func run(t *testing.T, script string) Exit {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	cmd := exec.Command("sh", "-c", script)
	err := cmd.Run()
	return Describe(cmd.ProcessState, err)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		script    string
		wantClean bool
		wantCode  int
		wantText  string
	}{
		{"exit 0", true, 0, "exited"},
		{"exit 3", false, 3, "exit status 3"},
		{"kill -9 $$", false, -1, "signal: killed"},
	}

	for _, tt := range tests {
		got := run(t, tt.script)
		if got.Clean() != tt.wantClean {
			t.Errorf("Describe(%q).Clean() = %v, want %v", tt.script, got.Clean(), tt.wantClean)
		}
		if got.Code != tt.wantCode {
			t.Errorf("Describe(%q).Code = %d, want %d", tt.script, got.Code, tt.wantCode)
		}
		if got.String() != tt.wantText {
			t.Errorf("Describe(%q).String() = %q, want %q", tt.script, got.String(), tt.wantText)
		}
	}
}

func TestDescribe_NoState(t *testing.T) {
	got := Describe(nil, nil)
	if got.Clean() {
		t.Error("Describe(nil, nil).Clean() = true, want false")
	}
	if got.Err != ErrNotStarted {
		t.Errorf("Describe(nil, nil).Err = %v, want ErrNotStarted", got.Err)
	}
}

func TestTerminate(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()

	start := time.Now()
	if err := Terminate(cmd.Process, done, 2*time.Second); err != nil {
		t.Fatalf("Terminate() error = %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Terminate took too long")
	}
	if got := Describe(cmd.ProcessState, nil); got.Signal == "" {
		t.Errorf("exit = %v, want signalled", got)
	}
}

func TestTerminate_EscalatesToKill(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	cmd := exec.Command("sh", "-c", "trap '' TERM; while :; do sleep 1; done")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()
	time.Sleep(100 * time.Millisecond)

	if err := Terminate(cmd.Process, done, 200*time.Millisecond); err != nil {
		t.Fatalf("Terminate() error = %v", err)
	}
	if got := Describe(cmd.ProcessState, nil); got.Signal != "killed" {
		t.Errorf("signal = %q, want %q", got.Signal, "killed")
	}
}

func TestTerminate_NilProcess(t *testing.T) {
	if err := Terminate(nil, nil, time.Second); err != ErrNotStarted {
		t.Errorf("Terminate(nil) = %v, want ErrNotStarted", err)
	}
}
