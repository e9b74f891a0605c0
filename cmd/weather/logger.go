package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Logger writes messages for the user, separate from command output
type Logger interface {
	Print(context.Context, ...any)
	Printf(context.Context, string, ...any)
	Debugf(context.Context, string, ...any)
	Slog() *slog.Logger
}

type logger struct {
	*slog.Logger
}

var _ Logger = (*logger)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewLogger returns a text logger, which includes debug messages when
// debug is true
func NewLogger(w io.Writer, debug bool) Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return &logger{slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (l *logger) Print(ctx context.Context, args ...any) {
	l.InfoContext(ctx, fmt.Sprint(args...))
}

func (l *logger) Printf(ctx context.Context, format string, args ...any) {
	l.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *logger) Debugf(ctx context.Context, format string, args ...any) {
	l.DebugContext(ctx, fmt.Sprintf(format, args...))
}

func (l *logger) Slog() *slog.Logger {
	return l.Logger
}
