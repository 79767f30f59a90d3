package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileLogger builds the process logger writing JSON lines to logPath and
// human-readable output to stderr. The caller owns closing the returned file.
func FileLogger(level logrus.Level, logPath string) (*os.File, *logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	fileLogger := logrus.New()
	fileLogger.SetOutput(io.MultiWriter(f, os.Stderr))
	fileLogger.SetLevel(level)
	fileLogger.SetFormatter(&logrus.JSONFormatter{})
	return f, fileLogger, nil
}

// ConsoleLogger is used by CLIs and tests that have no log file.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}
