package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames; service name then timestamp
	LogFileNamePattern = "%s_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept beside the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting FreeLunch"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	LogMsgEnvironmentWarning  = "Environment warning"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Wiring
// =============================================================================

const (
	ErrMsgConnectDatabase = "failed to connect to database"
	ErrMsgLoadRefdata     = "failed to load reference data"
	LogMsgRefdataLoaded   = "Reference data loaded"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown         = "Shutting down..."
	LogMsgStopped              = "Stopped"
	LogMsgServerForcedShutdown = "Ops server forced to shutdown"
	LogMsgPoolForcedShutdown   = "Worker pool forced to shutdown, in-flight jobs abandoned"
)
