package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
)

// Options describes where one rkm invocation logs.
type Options struct {
	// Level is the console level chosen by -v, -q or RKM_DEBUG.
	Level slog.Level
	// Format is the console format from --log-format.
	Format Format
	// Output is the console writer, normally stderr.
	Output io.Writer
	// File, from --log-file, receives JSON records as well.
	File string
}

// fileLevel is the level of the --log-file sink. It never drops below Info
// so -q still leaves an audit trail of rewrites and backups.
func fileLevel(console slog.Level) slog.Level {
	return min(console, slog.LevelInfo)
}

// Setup builds the logger for one invocation. The returned function closes
// the log file, if one was opened, and is always safe to call.
func Setup(o Options) (*slog.Logger, func() error, error) {
	output := o.Output
	if output == nil {
		output = os.Stderr
	}
	console := New(Config{Level: o.Level, Format: o.Format, Output: output})
	if o.File == "" {
		return console, func() error { return nil }, nil
	}

	f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening log file %s", o.File)
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: fileLevel(o.Level)})
	return slog.New(NewMultiHandler(console.Handler(), file)), f.Close, nil
}

// MultiHandler sends each record to every handler enabled for its level.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler fans out to handlers in order.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range h.handlers {
		if sub.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle gives every handler its own clone of r. Errors from all handlers
// are combined.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs error
	for _, sub := range h.handlers {
		if !sub.Enabled(ctx, r.Level) {
			continue
		}
		errs = errors.CombineErrors(errs, sub.Handle(ctx, r.Clone()))
	}
	return errs
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(sub slog.Handler) slog.Handler { return sub.WithAttrs(attrs) })
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.each(func(sub slog.Handler) slog.Handler { return sub.WithGroup(name) })
}

func (h *MultiHandler) each(fn func(slog.Handler) slog.Handler) *MultiHandler {
	out := make([]slog.Handler, len(h.handlers))
	for i, sub := range h.handlers {
		out[i] = fn(sub)
	}
	return &MultiHandler{handlers: out}
}
