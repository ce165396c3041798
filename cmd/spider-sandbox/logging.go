package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "wallwalker.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a file logger in debug mode and a discarding one otherwise
// The terminal belongs to the renderer, so nothing is ever logged to stdout or stderr
// A log file past maxLogSize is rotated to a timestamped name first
func setupLogging(debug bool) (*log.Logger, *os.File) {
	if !debug {
		logger := log.New(io.Discard)
		log.SetDefault(logger)
		return logger, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return log.New(io.Discard), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("wallwalker-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return log.New(io.Discard), nil
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "wallwalker",
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
	})
	log.SetDefault(logger)
	logger.Info("logging started", "pid", os.Getpid())
	return logger, f
}
