package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// NewLogger builds a logrus logger from the [log] section, writing to out.
func NewLogger(cfg LogConfig, out io.Writer) (*logrus.Logger, error) {
	level := defaultLogLevel
	if cfg.Level != nil && strings.TrimSpace(*cfg.Level) != "" {
		level = *cfg.Level
	}
	format := defaultLogFormat
	if cfg.Format != nil && strings.TrimSpace(*cfg.Format) != "" {
		format = strings.ToLower(*cfg.Format)
	}

	logger := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(parsed)
	switch format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	logger.SetOutput(out)
	return logger, nil
}

// LogFilePath returns the configured log file or the XDG default.
func LogFilePath(cfg LogConfig) string {
	if cfg.File != nil && strings.TrimSpace(*cfg.File) != "" {
		return *cfg.File
	}
	return DefaultLogPath()
}

// OpenLogFile opens path for appending, creating parent directories.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
