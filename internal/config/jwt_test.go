package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_Valid(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("JWT_ISSUER", "https://auth.example.com")
	t.Setenv("JWT_AUDIENCE", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://auth.example.com", cfg.Issuer)
	assert.Empty(t, cfg.Audience)
}

func TestNewJWTConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr string
	}{
		{name: "missing", secret: "", wantErr: "JWT_SECRET is required"},
		{name: "too short", secret: "short", wantErr: "at least 32 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			cfg, err := NewJWTConfig()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAPIKeyConfig_HashAndVerify(t *testing.T) {
	cfg := &APIKeyConfig{BcryptCost: 10}
	hash, err := cfg.HashAPIKey("studio-key")
	require.NoError(t, err)

	cfg.Hashes = []string{hash}
	assert.True(t, cfg.Enabled())
	assert.True(t, cfg.Verify("studio-key"))
	assert.False(t, cfg.Verify("other-key"))
	assert.False(t, cfg.Verify(""))
}

func TestNewAPIKeyConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("API_KEY_HASHES", " $2a$10$abc , ,$2a$10$def")

	cfg, err := NewAPIKeyConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"$2a$10$abc", "$2a$10$def"}, cfg.Hashes)
}

func TestNewAPIKeyConfig_InvalidCost(t *testing.T) {
	for _, cost := range []string{"abc", "4", "20"} {
		t.Setenv("BCRYPT_COST", cost)
		_, err := NewAPIKeyConfig()
		assert.Error(t, err, cost)
	}
}
