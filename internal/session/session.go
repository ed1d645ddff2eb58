// Package session runs the hosted program on a pseudo-terminal. One
// goroutine reads its output and one writes queued input, so chunks and
// writes each keep their order.
package session

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abdullathedruid/gitmux/internal/event"
	"github.com/abdullathedruid/gitmux/internal/process"
	"github.com/creack/pty"
	"github.com/go-errors/errors"
	"pkt.systems/pslog"
)

var (
	// ErrExited is returned when writing to a process that has ended.
	ErrExited = errors.New("hosted process has exited")
	// ErrQueueFull is returned when the write queue cannot take more input.
	ErrQueueFull = errors.New("write queue full")
)

const (
	// DefaultQueueSize is the write queue capacity.
	DefaultQueueSize = 256
	readBufferSize   = 32 * 1024
	// drainTimeout bounds how long exit waits for buffered output when a
	// grandchild keeps the terminal open.
	drainTimeout = 500 * time.Millisecond
)

// Options configures Start.
type Options struct {
	Command   string
	Args      []string
	Dir       string
	Cols      int
	Rows      int
	QueueSize int
}

type entry struct {
	data  []byte
	paths []string // set for injected selections
}

// Session is a running hosted process.
type Session struct {
	cmd   *exec.Cmd
	pty   *os.File
	emit  func(event.Event) bool
	log   pslog.Logger
	queue chan entry

	exited     atomic.Bool
	done       chan struct{} // closed once the child is reaped
	readerDone chan struct{}
	exit       process.Exit
	closeOnce  sync.Once
}

// Start spawns the program and begins streaming. emit receives
// ProcessOutput, ProcessExited and WriteFailed events; it may block.
func Start(ctx context.Context, opts Options, emit func(event.Event) bool) (*Session, error) {
	if opts.Command == "" {
		return nil, errors.New("no command to run")
	}
	if opts.Cols < 1 {
		opts.Cols = 80
	}
	if opts.Rows < 1 {
		opts.Rows = 24
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = DefaultQueueSize
	}

	cmd := exec.Command(opts.Command, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(opts.Rows),
		Cols: uint16(opts.Cols),
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", opts.Command, err)
	}

	s := &Session{
		cmd:        cmd,
		pty:        f,
		emit:       emit,
		log:        pslog.Ctx(ctx).With("component", "session", "pid", cmd.Process.Pid),
		queue:      make(chan entry, opts.QueueSize),
		done:       make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	s.log.Info("hosted process started", "command", opts.Command, "cols", opts.Cols, "rows", opts.Rows)

	go s.reap()
	go s.read()
	go s.write(ctx)
	go s.reportExit()
	return s, nil
}

func (s *Session) reap() {
	err := s.cmd.Wait()
	s.exit = process.Describe(s.cmd.ProcessState, err)
	s.exited.Store(true)
	close(s.done)
}

func (s *Session) read() {
	defer close(s.readerDone)
	buf := make([]byte, readBufferSize)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			if !s.emit(event.ProcessOutput{Data: data}) {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// reportExit emits ProcessExited after the child is reaped and its
// remaining output has been read.
func (s *Session) reportExit() {
	<-s.done
	select {
	case <-s.readerDone:
	case <-time.After(drainTimeout):
	}
	if s.exit.Clean() {
		s.log.Info("hosted process exited")
	} else {
		s.log.Warn("hosted process exited", "reason", s.exit.String())
	}
	s.emit(event.ProcessExited{Exit: s.exit})
}

func (s *Session) write(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			s.failQueued()
			return
		case e := <-s.queue:
			if _, err := s.pty.Write(e.data); err != nil {
				s.log.Warn("write to hosted process failed", "err", err, "bytes", len(e.data))
				s.emit(event.WriteFailed{Err: err, Paths: e.paths})
			}
		}
	}
}

func (s *Session) failQueued() {
	for {
		select {
		case e := <-s.queue:
			s.emit(event.WriteFailed{Err: ErrExited, Paths: e.paths})
		default:
			return
		}
	}
}

func (s *Session) enqueue(e entry) error {
	if s.exited.Load() {
		return ErrExited
	}
	select {
	case s.queue <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Write queues keystrokes.
func (s *Session) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return s.enqueue(entry{data: append([]byte(nil), data...)})
}

// Inject queues text as one entry so it reaches the process in a single
// write, after anything already queued. paths are reported back if the
// write fails.
func (s *Session) Inject(text string, paths []string) error {
	if text == "" {
		return nil
	}
	return s.enqueue(entry{data: []byte(text), paths: paths})
}

// Resize tells the process its terminal changed size.
func (s *Session) Resize(cols, rows int) error {
	if s.exited.Load() {
		return nil
	}
	if err := pty.Setsize(s.pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	return nil
}

// Exited reports whether the child has been reaped.
func (s *Session) Exited() bool {
	return s.exited.Load()
}

// Done is closed once the child has been reaped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Pid is the child's process id.
func (s *Session) Pid() int {
	return s.cmd.Process.Pid
}

// Terminate asks the child to stop, kills it after grace, then releases
// the terminal.
func (s *Session) Terminate(grace time.Duration) error {
	err := process.Terminate(s.cmd.Process, s.done, grace)
	s.Close()
	return err
}

// Close releases the terminal without waiting for the child.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.pty.Close()
	})
}
