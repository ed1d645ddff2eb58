// Package process describes how the hosted child ended and stops it.
package process

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/go-errors/errors"
)

// ErrNotStarted is returned when terminating a process that never ran.
var ErrNotStarted = errors.New("process not started")

// Exit describes a finished process.
type Exit struct {
	Code   int    // exit status, -1 when killed by a signal
	Signal string // signal name when killed by a signal
	Err    error  // wait error that is not an exit status
}

// Clean reports whether the process exited with status zero.
func (e Exit) Clean() bool {
	return e.Err == nil && e.Signal == "" && e.Code == 0
}

// String returns a short human-readable reason.
func (e Exit) String() string {
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case e.Signal != "":
		return "signal: " + e.Signal
	case e.Code == 0:
		return "exited"
	default:
		return fmt.Sprintf("exit status %d", e.Code)
	}
}

// Describe classifies the result of cmd.Wait.
func Describe(state *os.ProcessState, waitErr error) Exit {
	if state == nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			state = exitErr.ProcessState
		} else if waitErr != nil {
			return Exit{Code: -1, Err: waitErr}
		} else {
			return Exit{Code: -1, Err: ErrNotStarted}
		}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Exit{Code: -1, Signal: ws.Signal().String()}
	}
	return Exit{Code: state.ExitCode()}
}

// Terminate sends SIGTERM, waits up to grace for done to close, then sends
// SIGKILL. done must close when the process has been reaped.
func Terminate(p *os.Process, done <-chan struct{}, grace time.Duration) error {
	if p == nil {
		return ErrNotStarted
	}
	select {
	case <-done:
		return nil
	default:
	}

	if err := p.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return fmt.Errorf("sigterm: %w", err)
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
	}

	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("sigkill: %w", err)
	}
	<-done
	return nil
}

// CommandName extracts the program name from a command line.
// Handles paths like "/usr/local/bin/node" -> "node"
func CommandName(cmdLine string) string {
	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return ""
	}

	cmd := parts[0]
	if idx := strings.LastIndex(cmd, "/"); idx >= 0 {
		cmd = cmd[idx+1:]
	}

	return cmd
}
