package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/config"
	"github.com/osse101/FreeLunch_Go/internal/logger"
)

// SetupLogger installs the process-wide logger for service. With LOG_DIR set, output also goes
// to a timestamped file in that directory and older files past the retention count are removed.
// The returned file is nil without LOG_DIR; otherwise the caller must close it.
func SetupLogger(cfg *config.Config, service string) (*os.File, error) {
	var (
		out     io.Writer = os.Stdout
		logFile *os.File
	)

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir, service, LogFileRetentionCount)

		name := fmt.Sprintf(LogFileNamePattern, service, time.Now().Format(LogFileTimestampFormat))
		f, err := os.OpenFile(filepath.Join(cfg.LogDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, service, cfg.Version, cfg.Environment, false), out)

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStarting, "service", service, "environment", cfg.Environment, "version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"bnet_region", cfg.BNetRegion,
		"bnet_locale", cfg.BNetLocale)

	return logFile, nil
}

// cleanupLogs keeps the newest keep log files of service. Names embed a sortable timestamp,
// and os.ReadDir returns entries sorted by name.
func cleanupLogs(logDir, service string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, service+"_") && strings.HasSuffix(name, LogFileExtension) {
			logFiles = append(logFiles, name)
		}
	}

	for i := 0; i < len(logFiles)-keep; i++ {
		if err := os.Remove(filepath.Join(logDir, logFiles[i])); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", logFiles[i], "error", err)
		}
	}
}

// CheckEnvironment fails on a missing or outdated .env schema and logs non-fatal warnings
func CheckEnvironment() error {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(LogMsgEnvironmentWarning, "warning", w)
	}
	return nil
}
