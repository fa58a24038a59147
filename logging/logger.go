// Package logging defines the logger contract injected into the SDK and its
// collaborators, plus the zap-backed default implementation.
package logging

import "go.uber.org/zap"

// Logger is the minimal structured logging surface. Keys and values
// alternate in keysAndValues.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// zapLogger adapts a *zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZap wraps a zap logger. Passing nil yields a no-op logger.
func NewZap(l *zap.Logger) Logger {
	if l == nil {
		return Nop()
	}
	return &zapLogger{sugar: l.Sugar()}
}

func (l *zapLogger) Debug(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...any) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// nopLogger discards everything.
type nopLogger struct{}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
