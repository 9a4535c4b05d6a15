package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is a custom logger type
type Logger struct {
	file   *os.File
	logger *log.Logger
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{logger: log.New(w, "", log.LstdFlags)}
}

// NewFileLogger creates a logger appending to the file at filePath.
func NewFileLogger(filePath string) (*Logger, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		file:   file,
		logger: log.New(file, "", log.LstdFlags),
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLogger(io.Discard)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.output("INFO: ", msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.output("WARN: ", msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.output("ERROR: ", msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.output("INFO: ", fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.output("WARN: ", fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.output("ERROR: ", fmt.Sprintf(format, args...))
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// output must not call SetPrefix: one Logger is shared by all requests.
func (l *Logger) output(prefix, msg string) {
	if l == nil {
		return
	}
	l.logger.Print(prefix + msg)
}
