// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Adapts the core Logger interface to logrus fields, levels and formatters

package structured

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger implements interfaces.Logger on top of a logrus.Logger
type Logger struct {
	log *logrus.Logger
}

// Options configures a Logger
type Options struct {
	// Level is debug, info, warn or error. Unknown values fall back to info.
	Level string

	// Format is text or json
	Format string

	// Output defaults to stderr
	Output io.Writer
}

// New creates a logrus-backed logger
func New(opts Options) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	}

	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lg := &Logger{log: l}
	lg.SetLevel(opts.Level)
	return lg
}

// NewDiscard returns a logger that drops everything, for tests and quiet CLIs
func NewDiscard() *Logger {
	return New(Options{Output: io.Discard})
}

// SetLevel changes the level at runtime. Unknown values select info.
func (l *Logger) SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.log.SetLevel(lvl)
}

// Level returns the current level name
func (l *Logger) Level() string {
	return l.log.GetLevel().String()
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry(fields).Error(msg)
}

func (l *Logger) entry(fields map[string]interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return logrus.NewEntry(l.log)
	}
	return l.log.WithFields(logrus.Fields(fields))
}
