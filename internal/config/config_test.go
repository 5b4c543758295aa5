// filepath: internal/config/config_test.go
package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		hasError bool
	}{
		{"8MB", 8 * 1024 * 1024, false},
		{"512KB", 512 * 1024, false},
		{"1GB", 1 * 1024 * 1024 * 1024, false},
		{"100", 100, false},
		{" 4 MB ", 4194304, false},
		{"8mb", 8388608, false},
		{"invalid", 0, true},
		{"10XB", 0, true},
		{"-10MB", 0, true},
	}

	for _, tc := range tests {
		val, err := parseSize(tc.input)
		if tc.hasError {
			assert.Error(t, err, "Expected error for input: %s", tc.input)
		} else {
			assert.NoError(t, err, "Unexpected error for input: %s", tc.input)
			assert.Equal(t, tc.expected, val, "Mismatch for input: %s", tc.input)
		}
	}
}

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, cfg.ParseAndValidate())

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, int64(64<<20), cfg.MaxUploadSizeBytes)
		assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
		assert.Equal(t, ConflictSuffix, cfg.Storage.OnConflict)
		assert.Equal(t, NewsBackendJSON, cfg.News.Backend)
		assert.Equal(t, time.Hour, cfg.HousekeepingInterval)
	})

	t.Run("Invalid Size", func(t *testing.T) {
		cfg := &Config{Server: ServerConfig{MaxUploadSize: "NotASize"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid max_upload_size")
	})

	t.Run("Invalid Conflict Policy", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{OnConflict: "rename"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid on_conflict")
	})

	t.Run("Invalid News Backend", func(t *testing.T) {
		cfg := &Config{News: NewsConfig{Backend: "postgres"}}
		assert.Error(t, cfg.ParseAndValidate())
	})

	t.Run("Negative Token TTL", func(t *testing.T) {
		cfg := &Config{Auth: AuthConfig{TokenTTL: "-1h"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token_ttl")
	})
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := &Config{
		Server: ServerConfig{Port: 9000},
		Auth:   AuthConfig{PasswordHash: "$2a$10$hash", Secret: "s3cret"},
	}
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, loaded.Server.Port)
	assert.Equal(t, "$2a$10$hash", loaded.Auth.PasswordHash)
	assert.True(t, loaded.AuthConfigured())
}

func TestAuthConfigured(t *testing.T) {
	assert.False(t, (&Config{}).AuthConfigured())
	assert.False(t, (&Config{Auth: AuthConfig{PasswordHash: "x"}}).AuthConfigured())
	assert.True(t, (&Config{Auth: AuthConfig{PasswordHash: "x", Secret: "y"}}).AuthConfigured())
}
