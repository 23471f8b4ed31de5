// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file, overridden by environment variables
// (optionally seeded from a .env file) and validated before use.
package config
