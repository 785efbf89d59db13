// Package observability provides logging and telemetry hooks.
package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger provides structured logging hooks.
type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// LogrusLogger logs JSON lines through a dedicated logrus instance.
type LogrusLogger struct {
	l *logrus.Logger
}

// NewLogrusLogger constructs a LogrusLogger writing to w at the given
// level. Unknown levels fall back to info.
func NewLogrusLogger(w io.Writer, level string) *LogrusLogger {
	if w == nil {
		w = os.Stdout
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return &LogrusLogger{l: l}
}

// Info logs an info message.
func (s *LogrusLogger) Info(msg string, fields map[string]any) {
	if s == nil || s.l == nil {
		return
	}
	s.l.WithFields(logrus.Fields(fields)).Info(msg)
}

// Error logs an error message.
func (s *LogrusLogger) Error(msg string, fields map[string]any) {
	if s == nil || s.l == nil {
		return
	}
	s.l.WithFields(logrus.Fields(fields)).Error(msg)
}

// NopLogger discards all messages.
type NopLogger struct{}

// Info discards the message.
func (NopLogger) Info(msg string, fields map[string]any) {}

// Error discards the message.
func (NopLogger) Error(msg string, fields map[string]any) {}
