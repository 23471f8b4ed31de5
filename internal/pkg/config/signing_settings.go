package config

import (
	"fmt"

	"github.com/MGTheTrain/request-signer/internal/pkg/validators"
)

// Canonical mode constants
const (
	CanonicalModeMinify = "minify"
	CanonicalModeJCS    = "jcs"
)

// SigningSettings holds the canonicalization and key generation defaults
type SigningSettings struct {
	CanonicalMode string `yaml:"canonical_mode" env:"SIGNER_CANONICAL_MODE" env-default:"minify" validate:"required,oneof=minify jcs"`
	ModulusBits   int    `yaml:"modulus_bits" env:"SIGNER_MODULUS_BITS" env-default:"2048" validate:"required,rsa_modulus"`
}

// Validate checks that all fields in SigningSettings are valid
func (s *SigningSettings) Validate() error {
	if err := validators.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for SigningSettings: %w", err)
	}
	return nil
}
