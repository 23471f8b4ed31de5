package config

// Log levels accepted in LOG_LEVEL. Critical maps onto slog's error level
// and warning onto slog's warn level.
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log sinks. Console writes to stderr so stdout stays free for CLI output.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation bounds for the file sink, in megabytes, files and days.
const (
	MinLogFileSizeMB  = 1
	MaxLogFileSizeMB  = 100
	MinLogFileBackups = 1
	MaxLogFileBackups = 10
	MinLogFileAgeDays = 1
	MaxLogFileAgeDays = 365
)
