package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// RestConfig holds the settings of the REST API server
type RestConfig struct {
	Port     string           `yaml:"port" env:"PORT" env-default:"8080" validate:"required,numeric"`
	Logger   LoggerSettings   `yaml:"logger"`
	Database DatabaseSettings `yaml:"database"`
	Signing  SigningSettings  `yaml:"signing"`
}

// Validate checks the nested settings. Database settings are only checked when the audit store is enabled.
func (c *RestConfig) Validate() error {
	if err := validator.New().Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("validation failed for port: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if c.Database.Enabled() {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	return c.Signing.Validate()
}

// InitializeRestConfig loads the configuration file at path, applies environment overrides and validates the result.
// A .env file in the working directory is loaded first when present.
func InitializeRestConfig(path string) (*RestConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg RestConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// CLIConfig holds the settings of the command line tool. It is read from the environment only.
type CLIConfig struct {
	Logger  LoggerSettings
	Signing SigningSettings
}

// InitializeCLIConfig reads the command line settings from the environment and validates them.
func InitializeCLIConfig() (*CLIConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg CLIConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Logger.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Signing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
