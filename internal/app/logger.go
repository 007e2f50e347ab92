package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// SlogLogger backs Logger with a structured handler. The component becomes an
// attribute so log lines can be filtered per subsystem.
type SlogLogger struct{ L *slog.Logger }

// NewSlogLogger writes text records to w at level and above.
func NewSlogLogger(w io.Writer, level slog.Level) SlogLogger {
	return SlogLogger{L: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (l SlogLogger) Infof(component string, format string, args ...interface{}) {
	l.log(slog.LevelInfo, component, format, args...)
}

func (l SlogLogger) Errorf(component string, format string, args ...interface{}) {
	l.log(slog.LevelError, component, format, args...)
}

func (l SlogLogger) log(level slog.Level, component, format string, args ...interface{}) {
	if l.L == nil || !l.L.Enabled(context.Background(), level) {
		return
	}
	l.L.Log(context.Background(), level, fmt.Sprintf(format, args...), "component", component)
}

// Slog returns the structured logger for packages that take one directly.
func (l SlogLogger) Slog() *slog.Logger {
	if l.L == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.L
}
