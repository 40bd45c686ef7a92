package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/config"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// SetupLogger installs the default logger. With LOG_DIR set it also writes a
// timestamped session file there and prunes old sessions. The returned file
// is nil when logging to stdout only; otherwise the caller closes it.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	addSource := cfg.LogSource || cfg.Environment == logger.EnvironmentDev
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)

	var (
		out     io.Writer = os.Stdout
		logFile *os.File
	)
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(logCfg, out)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "file", logFile != nil)
	slog.Info(LogMsgStartingHabitQuest,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"store", cfg.StoreDriver)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"config_dir", cfg.ConfigDir,
		"timezone", cfg.Timezone,
		"save_debounce", cfg.SaveDebounce,
		"reset_every", cfg.ResetEvery,
		"auth_enabled", cfg.APIKey != "")

	return logFile, nil
}

// cleanupLogs deletes the oldest session files so that keep remain
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	// timestamped names sort chronologically
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
