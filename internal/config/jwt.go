package config

import (
	"fmt"
	"os"
)

// JWTConfig holds configuration for validating bearer tokens issued by the
// external auth provider.
type JWTConfig struct {
	Secret   string
	Issuer   string // optional; checked when set
	Audience string // optional; checked when set
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ISSUER and JWT_AUDIENCE.
func NewJWTConfig() (*JWTConfig, error) {
	config := &JWTConfig{
		Secret:   os.Getenv("JWT_SECRET"),
		Issuer:   os.Getenv("JWT_ISSUER"),
		Audience: os.Getenv("JWT_AUDIENCE"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if len(c.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes, got: %d", len(c.Secret))
	}
	return nil
}
