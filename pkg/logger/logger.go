// pkg/logger/logger.go

package logger

import (
	"os"
	"path/filepath"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// L returns the process-wide logger, or nil before initialization.
func L() *zap.Logger {
	return log
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.Logger) {
	log = l
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// GetLogger returns the logger, initializing a fallback if needed.
func GetLogger() *zap.Logger {
	if log == nil {
		InitFallback()
	}
	return log
}

// ParseLogLevel maps a LOG_LEVEL string onto a zap level, defaulting to Info.
func ParseLogLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// PlatformLogPaths lists candidate log file locations, most preferred first.
func PlatformLogPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"/var/log/cyberMonkey/metis.log",
		filepath.Join(home, ".local", "state", "metis", "metis.log"),
		filepath.Join(os.TempDir(), "metis.log"),
	}
}

// FindWritableLogPath returns the first log path whose directory can be created
// and whose file can be opened for appending.
func FindWritableLogPath() (string, error) {
	var lastErr error
	for _, path := range PlatformLogPaths() {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			lastErr = err
			continue
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			lastErr = err
			continue
		}
		f.Close()
		return path, nil
	}
	return "", lastErr
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// SafeSync flushes buffered log entries, swallowing the EBADF noise that
// stdout syncing produces on some platforms.
func SafeSync() {
	defer func() { _ = recover() }()
	Sync()
}
