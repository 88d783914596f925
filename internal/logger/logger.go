package logger

import (
	"context"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the logging interface shared by every component.
// Context-first so call sites line up with the rest of the codebase.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

type implLogger struct {
	logger *charmlog.Logger
}

// New creates a Logger writing to stderr at the given level.
// Unknown levels fall back to info.
func New(level string) Logger {
	lvl, err := charmlog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = charmlog.InfoLevel
	}

	return &implLogger{
		logger: charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			Level:           lvl,
			ReportTimestamp: true,
		}),
	}
}

// NewQuiet creates a Logger that only reports errors.
// Used by the TUI so log lines don't fight the interactive view.
func NewQuiet() Logger {
	return New("error")
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Errorf(msg, args...)
}
