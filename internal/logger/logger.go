package logger

import (
	"errors"
	"fmt"
	"log/slog"
)

// Logger wraps slog with package/function scoping. Err/Error return the
// logged error so call sites can log and propagate in one expression.
type Logger struct {
	logger *slog.Logger
}

func New(pkg string) Logger {
	return Logger{logger: slog.Default().With("package", pkg)}
}

func (l Logger) Function(name string) Logger {
	return Logger{logger: l.logger.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{logger: l.logger.With("file", name)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Err logs the message with the underlying error and returns the wrapped error.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.logger.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Er logs like Err but is for call sites that do not propagate the error.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, append(args, "error", err)...)
}

// Error logs the message and returns a new error built from it.
func (l Logger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return errors.New(msg)
}

func (l Logger) ErrMsg(msg string, args ...any) error {
	return l.Error(msg, args...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
