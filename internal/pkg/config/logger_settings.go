package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LoggerSettings selects the log level and sink shared by the REST server and the CLI.
// Rotation fields only apply to the file sink.
type LoggerSettings struct {
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" validate:"required,oneof=info debug error warning critical"`
	LogType    string `yaml:"log_type" env:"LOG_TYPE" env-default:"console" validate:"required,oneof=console file"`
	FilePath   string `yaml:"file_path" env:"LOG_FILE_PATH"`
	MaxSize    int    `yaml:"max_size" env:"LOG_MAX_SIZE"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS"`
	MaxAge     int    `yaml:"max_age" env:"LOG_MAX_AGE"`
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	if s.LogType != LogTypeFile {
		return nil
	}
	switch {
	case s.FilePath == "":
		return fmt.Errorf("file path is required for file logger")
	case !inRange(s.MaxSize, MinLogFileSizeMB, MaxLogFileSizeMB):
		return fmt.Errorf("max size must be between %d and %d MB", MinLogFileSizeMB, MaxLogFileSizeMB)
	case !inRange(s.MaxBackups, MinLogFileBackups, MaxLogFileBackups):
		return fmt.Errorf("max backups must be between %d and %d", MinLogFileBackups, MaxLogFileBackups)
	case !inRange(s.MaxAge, MinLogFileAgeDays, MaxLogFileAgeDays):
		return fmt.Errorf("max age must be between %d and %d days", MinLogFileAgeDays, MaxLogFileAgeDays)
	}
	return nil
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
