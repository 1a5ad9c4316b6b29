package output

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger is the global styled logger for templator.
// All diagnostic output goes through this logger and lands on stderr.
var (
	logger   *log.Logger
	loggerMu sync.Mutex
	logLevel = log.InfoLevel

	// Quiet suppresses all log output (-q flag).
	Quiet bool
)

// Init initializes the global logger with the given settings.
// Call this once at startup (typically from the root command).
func Init(debug bool, quiet bool) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	Quiet = quiet
	if debug {
		logLevel = log.DebugLevel
	} else {
		logLevel = log.InfoLevel
	}
	logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           logLevel,
	})
	if NoColor() {
		l.SetStyles(plainStyles())
	}
	return l
}

// getLogger returns the global logger, initializing with defaults if needed.
func getLogger() *log.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = newLogger(os.Stderr)
	}
	return logger
}

// Info prints an informational message.
func Info(msg string, keyvals ...interface{}) {
	if Quiet {
		return
	}
	getLogger().Info(msg, keyvals...)
}

// Warn prints a warning message.
func Warn(msg string, keyvals ...interface{}) {
	if Quiet {
		return
	}
	getLogger().Warn(msg, keyvals...)
}

// Error prints an error message.
func Error(msg string, keyvals ...interface{}) {
	if Quiet {
		return
	}
	getLogger().Error(msg, keyvals...)
}

// Debug prints a debug message (only visible with --debug flag).
func Debug(msg string, keyvals ...interface{}) {
	if Quiet {
		return
	}
	getLogger().Debug(msg, keyvals...)
}

// Success prints a success message with a checkmark prefix.
func Success(msg string, keyvals ...interface{}) {
	if Quiet {
		return
	}
	if NoColor() {
		getLogger().Info("[OK] "+msg, keyvals...)
	} else {
		getLogger().Info("✅ "+msg, keyvals...)
	}
}
