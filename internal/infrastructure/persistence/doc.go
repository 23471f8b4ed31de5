// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to store signature audit records in
// SQLite or PostgreSQL. Key material is never persisted.
package persistence
