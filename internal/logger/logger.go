package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gerunddev/mindbridge/convert"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return New(w)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConvertStarted logs the start of a conversion run
func (l *Logger) ConvertStarted(file string) {
	l.Info("conversion started",
		"file", file)
}

// ConvertCompleted logs the completion of a conversion run
func (l *Logger) ConvertCompleted(file string, nodes, diagnostics int, duration time.Duration) {
	l.Info("conversion completed",
		"file", file,
		"nodes", nodes,
		"diagnostics", diagnostics,
		"duration", duration.Round(time.Millisecond))
}

// Diagnostic logs one recoverable finding from a degraded run
func (l *Logger) Diagnostic(file string, d convert.Diagnostic) {
	l.Warn("diagnostic",
		"file", file,
		"path", d.Path,
		"tag", d.Tag,
		"msg", d.Message)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConversionError logs a fatal conversion failure
func (l *Logger) ConversionError(file string, err error) {
	l.Error("conversion failed",
		"file", file,
		"error", err)
}

// RegistryBuilt logs the size of the descriptor catalog in use
func (l *Logger) RegistryBuilt(kinds int) {
	l.Debug("registry built",
		"kinds", kinds)
}

// FileWritten logs a successful write
func (l *Logger) FileWritten(file string, bytes int) {
	l.Info("file written",
		"file", file,
		"bytes", bytes)
}
