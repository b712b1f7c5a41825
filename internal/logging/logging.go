// Package logging sets up the application log file.
//
// The TUI owns the terminal, so log output goes to a file under the XDG
// state directory instead of stderr. The level is controlled by the
// MONTAGE_LOG environment variable ("debug", "info", "warn", "error");
// unset defaults to info.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

const logFileName = "montage/montage.log"

// Setup opens the log file and installs a configured logger as the package
// default. The returned closer flushes and closes the file.
func Setup() (func() error, error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := newLogger(f, levelFromEnv())
	log.SetDefault(logger)
	return f.Close, nil
}

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w *os.File, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func levelFromEnv() log.Level {
	switch strings.ToLower(os.Getenv("MONTAGE_LOG")) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
