package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Logger is a structured logger for gengui components
type Logger struct {
	*slog.Logger
}

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level  slog.Level
	Format string // text | json
	Output io.Writer
}

// NewLogger creates a new structured logger
func NewLogger(component string, opts LoggerOptions) *Logger {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	handlerOpts := &slog.HandlerOptions{
		Level: opts.Level,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "gengui"),
	)

	return &Logger{Logger: logger}
}

// Nop returns a logger that drops everything.
func Nop() *Logger {
	return NewLogger("nop", LoggerOptions{Level: slog.LevelError + 1})
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown names map
// to info.
func ParseLevel(name string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// WithContext returns a logger carrying the trace and span ids of the
// active span, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return l
	}
	return &Logger{
		Logger: l.Logger.With(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		),
	}
}

// WithSession returns a logger with session-specific fields
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("session_id", sessionID),
		),
	}
}

// WithDocument returns a logger tagged with the source document path.
func (l *Logger) WithDocument(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("document", path),
		),
	}
}

// WidgetCreated logs a materialized widget
func (l *Logger) WidgetCreated(kind, name, parent string, row, column int) {
	l.Debug("widget created",
		slog.String("kind", kind),
		slog.String("name", name),
		slog.String("parent", parent),
		slog.Int("row", row),
		slog.Int("column", column),
	)
}

// BuildCompleted logs the end of a tree build
func (l *Logger) BuildCompleted(widgets int, durationMS float64) {
	l.Info("build completed",
		slog.Int("widgets", widgets),
		slog.Float64("duration_ms", durationMS),
	)
}

// BuildFailed logs an aborted tree build
func (l *Logger) BuildFailed(widgets int, err error) {
	l.Error("build failed",
		slog.Int("widgets_before_failure", widgets),
		slog.String("error", err.Error()),
	)
}

// LookupMissed logs a name that resolved to nothing
func (l *Logger) LookupMissed(name string) {
	l.Warn("widget lookup missed",
		slog.String("name", name),
	)
}

// DocumentReloaded logs a watch-triggered rebuild
func (l *Logger) DocumentReloaded(path string, err error) {
	if err != nil {
		l.Warn("document reload failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Info("document reloaded", slog.String("path", path))
}
