package session

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/abdullathedruid/gitmux/internal/event"
)

type collector struct {
	ch chan event.Event
}

func newCollector() *collector {
	return &collector{ch: make(chan event.Event, 1024)}
}

func (c *collector) emit(ev event.Event) bool {
	c.ch <- ev
	return true
}

// until reads events until ProcessExited or the timeout, returning the
// output seen and the exit event.
func (c *collector) until(t *testing.T, timeout time.Duration) ([]byte, *event.ProcessExited) {
	t.Helper()
	var out bytes.Buffer
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-c.ch:
			switch ev := ev.(type) {
			case event.ProcessOutput:
				out.Write(ev.Data)
			case event.ProcessExited:
				return out.Bytes(), &ev
			}
		case <-deadline:
			return out.Bytes(), nil
		}
	}
}

func start(t *testing.T, c *collector, script string) *Session {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	s, err := Start(context.Background(), Options{Command: "sh", Args: []string{"-c", script}, Cols: 40, Rows: 10}, c.emit)
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestSession_OutputThenExit(t *testing.T) {
	c := newCollector()
	start(t, c, "printf hello; exit 3")

	out, exit := c.until(t, 5*time.Second)
	if exit == nil {
		t.Fatal("no ProcessExited event")
	}
	if !bytes.Contains(out, []byte("hello")) {
		t.Errorf("output = %q, want it to contain hello", out)
	}
	if exit.Exit.Clean() || exit.Exit.Code != 3 {
		t.Errorf("exit = %+v, want status 3", exit.Exit)
	}
}

func TestSession_InjectReachesProcess(t *testing.T) {
	c := newCollector()
	s := start(t, c, "read line; echo got:$line")

	if err := s.Write([]byte("ab")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Inject("@x @y\n", []string{"x", "y"}); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	out, exit := c.until(t, 5*time.Second)
	if exit == nil {
		t.Fatal("no ProcessExited event")
	}
	if !bytes.Contains(out, []byte("got:ab@x @y")) {
		t.Errorf("output = %q, want keystrokes then injection in order", out)
	}
}

func TestSession_WriteAfterExit(t *testing.T) {
	c := newCollector()
	s := start(t, c, "exit 0")
	if _, exit := c.until(t, 5*time.Second); exit == nil {
		t.Fatal("no ProcessExited event")
	}

	if err := s.Write([]byte("x")); err != ErrExited {
		t.Errorf("Write() after exit = %v, want ErrExited", err)
	}
	if err := s.Inject("@a", []string{"a"}); err != ErrExited {
		t.Errorf("Inject() after exit = %v, want ErrExited", err)
	}
	if err := s.Resize(100, 30); err != nil {
		t.Errorf("Resize() after exit = %v, want nil", err)
	}
}

func TestSession_Terminate(t *testing.T) {
	c := newCollector()
	s := start(t, c, "sleep 30")

	if err := s.Terminate(2 * time.Second); err != nil {
		t.Fatalf("Terminate() error = %v", err)
	}
	if !s.Exited() {
		t.Error("Exited() = false after Terminate")
	}
	_, exit := c.until(t, 5*time.Second)
	if exit == nil {
		t.Fatal("no ProcessExited event")
	}
	if exit.Exit.Clean() {
		t.Errorf("exit = %v, want abnormal", exit.Exit)
	}
}

func TestSession_Resize(t *testing.T) {
	c := newCollector()
	s := start(t, c, "sleep 1; stty size")
	if err := s.Resize(100, 30); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	out, _ := c.until(t, 5*time.Second)
	if !bytes.Contains(out, []byte("30 100")) {
		t.Errorf("stty size = %q, want 30 100", out)
	}
}

func TestStart_NoCommand(t *testing.T) {
	if _, err := Start(context.Background(), Options{}, newCollector().emit); err == nil {
		t.Error("Start() with no command error = nil")
	}
}
