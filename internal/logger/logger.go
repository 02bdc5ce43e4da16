// Package logger provides the process-wide structured logger for invoicesort.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	current *slog.Logger
	level   = new(slog.LevelVar)
	mu      sync.RWMutex
)

func init() {
	current = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Options configures the logger.
type Options struct {
	Debug  bool      // log at debug level
	Quiet  bool      // only errors; wins over Debug
	JSON   bool      // JSON lines instead of logfmt-style text
	Output io.Writer // default: stderr
}

// Init replaces the process logger according to opts.
func Init(opts Options) {
	switch {
	case opts.Quiet:
		level.Set(slog.LevelError)
	case opts.Debug:
		level.Set(slog.LevelDebug)
	default:
		level.Set(slog.LevelInfo)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(out, handlerOpts)
	} else {
		h = slog.NewTextHandler(out, handlerOpts)
	}

	mu.Lock()
	current = slog.New(h)
	mu.Unlock()
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Enabled reports whether messages at l would be written.
func Enabled(l slog.Level) bool {
	return l >= level.Level()
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { get().Error(msg, args...) }

// ErrorContext logs at error level with ctx.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	get().ErrorContext(ctx, msg, args...)
}

// With returns a child logger carrying args.
func With(args ...any) *slog.Logger {
	return get().With(args...)
}
