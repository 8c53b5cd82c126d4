package wordnet

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with dictionary-specific helpers so that
// load and write events carry consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON lines to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// LogFile records one parsed or emitted dictionary file.
func (l *Logger) LogFile(ctx context.Context, op, file string, lines int) {
	l.DebugContext(ctx, op,
		slog.String("file", file),
		slog.Int("lines", lines),
	)
}

// LogDone records the end of a load or write.
func (l *Logger) LogDone(ctx context.Context, op string, synsets, lemmas int, elapsed time.Duration) {
	l.InfoContext(ctx, op,
		slog.Int("synsets", synsets),
		slog.Int("lemmas", lemmas),
		slog.Duration("elapsed", elapsed),
	)
}
