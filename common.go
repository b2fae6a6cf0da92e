// ABOUTME: Shared setup code for CLI and watch modes
// ABOUTME: Provides logger construction, the optional debug log file, and small string helpers

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setupLogging builds the run logger. Logs go to stderr at info level, or
// debug with verbose. A debug log file receives the same lines at debug level
// and forces debug level on stderr too. The returned cleanup closes the file.
func setupLogging(verbose bool, debugLogPath string) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	if debugLogPath == "" {
		return newLogger(os.Stderr, level), func() {}, nil
	}

	f, err := os.Create(debugLogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create debug log file: %w", err)
	}

	if isTTY(os.Stderr) {
		fmt.Fprintf(os.Stderr, "Debug logging enabled: %s\n", debugLogPath)
	}

	logger := newLogger(io.MultiWriter(os.Stderr, f), log.DebugLevel)

	return logger, func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close debug log", "err", err)
		}
	}, nil
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}

// truncate shortens string to maxLen, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
