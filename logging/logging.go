package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"aceguard-demo/config"
)

// New builds a logrus logger according to configuration.
// It supports writing to stdout/stderr plus optional file output.
// Multiple outputs are combined via io.MultiWriter.
func New(cfg config.LoggingConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	if err := Configure(logger, cfg); err != nil {
		return nil, err
	}
	return logger, nil
}

// Init configures the standard logrus logger and routes the std log package through it
func Init(cfg config.LoggingConfig) error {
	logger := logrus.StandardLogger()
	if err := Configure(logger, cfg); err != nil {
		return err
	}
	log.SetOutput(logger.Writer())
	log.SetFlags(0)
	return nil
}

// Configure applies level, format and outputs to an existing logger
func Configure(logger *logrus.Logger, cfg config.LoggingConfig) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var writers []io.Writer

	switch cfg.Output {
	case "", "stdout":
		writers = append(writers, os.Stdout)
	case "stderr":
		writers = append(writers, os.Stderr)
	case "file":
		// no console writer when file only
	default:
		return fmt.Errorf("unsupported log output %q", cfg.Output)
	}

	logFilePath := cfg.File
	if logFilePath == "" && cfg.Output == "file" {
		// default path under ./logs/aceguard-YYYYMMDD.log
		logFilePath = filepath.Join("logs", fmt.Sprintf("aceguard-%s.log", time.Now().Format("20060102")))
	}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
	}

	logger.SetOutput(io.MultiWriter(writers...))
	return nil
}
