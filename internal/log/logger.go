// Package log builds the logger used by goxdo. Logs are written to the
// console and, optionally, to a log file.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable which overrides the log level.
const EnvLevel = "GOXDO_LOG_LEVEL"

// Logger wraps a charmbracelet logger together with the log file it writes
// to, if any.
type Logger struct {
	*log.Logger
	logFile *os.File
}

// ParseLevel converts a level name into a log level. An empty name is the
// info level; "warning" is accepted as an alias for "warn".
func ParseLevel(name string) (log.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(normalized)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// New creates a Logger at the given level writing to console, and to the file
// at filePath if it is not empty. The file is truncated. The GOXDO_LOG_LEVEL
// environment variable takes precedence over level.
func New(level string, filePath string, console io.Writer) (*Logger, error) {
	if env, ok := os.LookupEnv(EnvLevel); ok && env != "" {
		level = env
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	writer := console
	var logFile *os.File
	if filePath != "" {
		logFile, err = os.OpenFile(filePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writer = io.MultiWriter(console, logFile)
	}
	logger := log.NewWithOptions(writer, log.Options{
		Level:           lvl,
		ReportTimestamp: logFile != nil,
		Prefix:          "goxdo",
	})
	return &Logger{Logger: logger, logFile: logFile}, nil
}

// Discard returns a Logger which drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Close closes the log file, if there is one.
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	return err
}
