package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Database type constants
const (
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
)

// DatabaseSettings holds the connection settings of the signature audit store.
// An empty Type disables the audit store.
type DatabaseSettings struct {
	Type string `yaml:"type" env:"DB_TYPE" validate:"required,oneof=sqlite postgres"`
	DSN  string `yaml:"dsn" env:"DB_DSN" validate:"required"`
	Name string `yaml:"name" env:"DB_NAME"`
}

// Enabled reports whether an audit store is configured
func (s *DatabaseSettings) Enabled() bool {
	return s.Type != ""
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}
