package meshgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with meshgo-specific context. This provides
// structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithEdge adds an edge ID field to the logger.
func (l *Logger) WithEdge(e int) *Logger {
	return &Logger{Logger: l.Logger.With("edge", e)}
}

// WithFace adds a face ID field to the logger.
func (l *Logger) WithFace(f int) *Logger {
	return &Logger{Logger: l.Logger.With("face", f)}
}

// WithVertex adds a vertex ID field to the logger.
func (l *Logger) WithVertex(v int) *Logger {
	return &Logger{Logger: l.Logger.With("vertex", v)}
}

// LogMutation logs a topology mutation.
func (l *Logger) LogMutation(op string, edge int, err error) {
	if err != nil {
		l.Error("mutation failed",
			"op", op,
			"edge", edge,
			"error", err,
		)
	} else {
		l.Debug("mutation applied",
			"op", op,
			"edge", edge,
		)
	}
}

// LogAssembly logs an operator assembly.
func (l *Logger) LogAssembly(operator string, rows, cols int, err error) {
	if err != nil {
		l.Error("assembly failed",
			"operator", operator,
			"error", err,
		)
	} else {
		l.Debug("assembly completed",
			"operator", operator,
			"rows", rows,
			"cols", cols,
		)
	}
}

// LogDegenerateFaces logs the faces that fell below the area threshold
// during assembly. Degeneracy is a warning, not a failure.
func (l *Logger) LogDegenerateFaces(faces []int) {
	if len(faces) == 0 {
		return
	}
	l.Warn("degenerate faces tolerated",
		"count", len(faces),
		"faces", faces,
	)
}
