// Package logger provides the logging port used across dbshell. The execution
// engine receives a Logger at construction instead of touching process-wide
// state; front-ends may attach additional sinks (the graphical shell mirrors
// log lines into its log pane through a logrus hook).
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Ctx is the structured context attached to a log line.
type Ctx map[string]any

// Logger is the logging interface consumed by the rest of the module.
type Logger interface {
	Error(msg string, ctx ...Ctx)
	Warn(msg string, ctx ...Ctx)
	Info(msg string, ctx ...Ctx)
	Debug(msg string, ctx ...Ctx)

	// AddContext returns a sub-logger with the provided context added to
	// every line.
	AddContext(ctx Ctx) Logger

	// AddHook attaches an extra sink to the underlying logger.
	AddHook(hook logrus.Hook)
}

// New returns a Logger writing human-readable lines to w. verbose raises the
// level to info, debug to debug; otherwise only warnings and errors come out.
func New(w io.Writer, verbose bool, debug bool) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.InfoLevel)
	}
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return newWrapper(l, l)
}

// Discard returns a Logger that drops everything. Meant for tests and for
// callers that configure logging later.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return newWrapper(l, l)
}
