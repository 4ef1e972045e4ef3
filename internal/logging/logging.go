// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Config selects the level, format and destination of log output.
type Config struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // "text" or "json"
	File   string `mapstructure:"file"`   // empty means stderr
}

// DefaultConfig logs warnings and above as text to stderr.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "text"}
}

// New creates a logger for cfg. The returned closer releases the log file,
// if one was opened.
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	}

	if cfg.File == "" {
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Discard returns a logger that drops everything, for screens that own the
// terminal.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// SetLevel changes the level of logger, ignoring unknown names.
func SetLevel(logger *logrus.Logger, name string) bool {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return false
	}
	logger.SetLevel(level)
	return true
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
