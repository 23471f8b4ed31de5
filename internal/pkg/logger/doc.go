// Package logger provides the slog backed Logger used across the signer.
//
// Console loggers write text records to stderr so that command output on
// stdout stays machine readable. File loggers write JSON records through a
// rotating lumberjack writer.
package logger
