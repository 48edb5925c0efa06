package logger

import (
	"github.com/sirupsen/logrus"
)

// ctxLogger returns a logger target with all provided ctx applied.
func (lw *logWrapper) ctxLogger(ctx ...Ctx) logrus.FieldLogger {
	target := lw.target
	for _, c := range ctx {
		target = target.WithFields(logrus.Fields(c))
	}

	return target
}

func newWrapper(root *logrus.Logger, target logrus.FieldLogger) Logger {
	return &logWrapper{root: root, target: target}
}

type logWrapper struct {
	root   *logrus.Logger
	target logrus.FieldLogger
}

// Error logs an error level message.
func (lw *logWrapper) Error(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Error(msg)
}

// Warn logs a warning level message.
func (lw *logWrapper) Warn(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Warn(msg)
}

// Info logs an info level message.
func (lw *logWrapper) Info(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Info(msg)
}

// Debug logs a debug level message.
func (lw *logWrapper) Debug(msg string, ctx ...Ctx) {
	lw.ctxLogger(ctx...).Debug(msg)
}

// AddContext returns a sub-logger with the provided context added.
func (lw *logWrapper) AddContext(ctx Ctx) Logger {
	return &logWrapper{root: lw.root, target: lw.ctxLogger(ctx)}
}

// AddHook attaches an extra sink to the root logger; sub-loggers created via
// AddContext share it.
func (lw *logWrapper) AddHook(hook logrus.Hook) {
	lw.root.AddHook(hook)
}
