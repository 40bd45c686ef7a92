package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept when a new session starts
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingHabitQuest  = "Starting HabitQuest"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

const (
	LogMsgStoreOpened      = "Document store opened"
	LogMsgCatalogLoaded    = "Catalog loaded"
	LogMsgConfigWarning    = "Configuration warning"
	ErrMsgFailedOpenStore  = "failed to open document store"
	ErrMsgFailedMigrate    = "failed to migrate database"
	ErrMsgFailedLoadConfig = "failed to load catalog"
	ErrMsgInvalidTimezone  = "invalid timezone"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgStreamSubscriberRegistered = "Event stream subscriber registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed = "Period reset worker shutdown failed"
	LogMsgFlushingDocuments    = "Flushing pending document saves..."
	LogMsgAdapterCloseFailed   = "Document adapter close failed"
	LogMsgStoppingEventStreams = "Closing event streams"
	LogMsgClosingStore         = "Closing document store"
	LogMsgStoreCloseFailed     = "Document store close failed"
)
