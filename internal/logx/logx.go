// Package logx builds the application logger and annotates it.
package logx

import (
	"context"
	"io"
	"os"
	"strings"

	"pkt.systems/pslog"
)

// New returns a structured logger writing to w at the named level.
// Unknown levels log at info.
func New(w io.Writer, level string) pslog.Logger {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
	}
	switch strings.ToLower(level) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		opts.MinLevel = pslog.InfoLevel
	}
	return pslog.NewWithOptions(w, opts)
}

// Open appends to the log file at path. The terminal belongs to the UI, so
// when the file cannot be opened the logger discards everything.
func Open(path, level string) (pslog.Logger, io.Closer) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return New(io.Discard, level), io.NopCloser(nil)
	}
	return New(f, level), f
}

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithRepo annotates the logger with the repository root when known.
func WithRepo(log pslog.Logger, root string) pslog.Logger {
	if root != "" {
		log = log.With("repo", root)
	}
	return log
}

// WithOp annotates the logger with a workspace operation and its request id.
func WithOp(log pslog.Logger, op string, id uint64) pslog.Logger {
	if op != "" {
		log = log.With("op", op)
	}
	if id != 0 {
		log = log.With("req", id)
	}
	return log
}
