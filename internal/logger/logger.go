// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package logger provides the application's structured log, written as JSON
// lines to a state-directory file and optionally mirrored to stderr.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// TODO: Consider log rotation once app.log growth becomes a problem

var defaultLogger *slog.Logger

// Options controls the log level and where records go.
type Options struct {
	Level  slog.Level
	Stderr bool // Mirror records to stderr in addition to the log file
}

// ParseLevel maps "debug", "info", "warn" or "error" (any case) to a slog level.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// getLogFilePath determines the path for the application log file under XDG_STATE_HOME.
func getLogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, "verse-notes", "app.log"), nil
}

// openLogFile creates the log directory if needed and opens the log for appending.
func openLogFile() (*os.File, string, error) {
	logFilePath, err := getLogFilePath()
	if err != nil {
		return nil, "", err
	}

	// 0750: user rwx, group rx, others ---
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
		return nil, logFilePath, fmt.Errorf("creating log directory: %w", err)
	}

	// 0640: user rw, group r, others ---
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, logFilePath, fmt.Errorf("opening log file: %w", err)
	}
	return file, logFilePath, nil
}

// InitLogger configures the default logger. It should be called once, before
// the REPL or any command starts. If the log file cannot be opened the logger
// falls back to stderr so records are not lost.
func InitLogger(opts Options) {
	var writers []io.Writer

	// The file handle stays open for the life of the process; the OS closes it on exit.
	file, path, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled (%s): %v\n", path, err)
		opts.Stderr = true
	} else {
		writers = append(writers, file)
	}

	if opts.Stderr {
		writers = append(writers, os.Stderr)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: opts.Level})
	defaultLogger = slog.New(handler)

	Debug("Logging configured", "file", path, "stderr", opts.Stderr, "level", opts.Level.String())
}

// SetLogger replaces the default logger instance, e.g. to capture records in tests.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// checkLogger ensures a logger exists before use. Code paths that run before
// InitLogger (and tests) get warnings and errors on stderr only.
func checkLogger() {
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	checkLogger()
	defaultLogger.Info(msg, args...)
}

// Infof logs a formatted informational message.
// Prefer Info with key-value pairs.
func Infof(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Error logs an error message.
func Error(msg string, args ...any) {
	checkLogger()
	defaultLogger.Error(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	checkLogger()
	defaultLogger.Debug(msg, args...)
}

// Debugf logs a formatted debug message.
func Debugf(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	checkLogger()
	defaultLogger.Warn(msg, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}
