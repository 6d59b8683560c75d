// Package log provides the logger used throughout the emulator. The
// default implementation is backed by logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Level is the minimum level a logger emits.
type Level = logrus.Level

const (
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

// ParseLevel converts a level name ("debug", "info", ...) to a Level.
func ParseLevel(name string) (Level, error) {
	return logrus.ParseLevel(name)
}

type logger struct {
	*logrus.Entry
}

// New returns a logger writing plain text lines to stderr, at the info
// level.
func New() Logger {
	return NewWithOutput(nil, InfoLevel)
}

// NewWithOutput returns a logger writing to w at the given level. A nil
// w keeps logrus' default output.
func NewWithOutput(w io.Writer, level Level) Logger {
	l := logrus.New()
	if w != nil {
		l.SetOutput(w)
	}
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{Entry: logrus.NewEntry(l)}
}

// WithComponent returns a logger tagging every line with the name of
// the component that emitted it. Loggers not created by this package
// are returned unchanged.
func WithComponent(l Logger, name string) Logger {
	if lg, ok := l.(*logger); ok {
		return &logger{Entry: lg.WithField("component", name)}
	}
	return l
}
