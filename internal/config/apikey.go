package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyConfig holds bcrypt hashes of the service API keys accepted by the server.
type APIKeyConfig struct {
	Hashes     []string
	BcryptCost int
}

// NewAPIKeyConfig creates an API key configuration from environment variables.
// It reads API_KEY_HASHES (comma-separated bcrypt hashes) and BCRYPT_COST (default: 12).
func NewAPIKeyConfig() (*APIKeyConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12" // default
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &APIKeyConfig{BcryptCost: cost}
	for _, h := range strings.Split(os.Getenv("API_KEY_HASHES"), ",") {
		if h = strings.TrimSpace(h); h != "" {
			config.Hashes = append(config.Hashes, h)
		}
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *APIKeyConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// Enabled reports whether any API key is configured
func (c *APIKeyConfig) Enabled() bool {
	return len(c.Hashes) > 0
}

// HashAPIKey hashes a key for storage in API_KEY_HASHES.
func (c *APIKeyConfig) HashAPIKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("api key is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether key matches any configured hash.
func (c *APIKeyConfig) Verify(key string) bool {
	if key == "" {
		return false
	}
	for _, h := range c.Hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(key)) == nil {
			return true
		}
	}
	return false
}
