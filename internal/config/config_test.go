package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.StateDir)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("BACKEND_URL", "http://localhost:9090")
	t.Setenv("BACKEND_API_KEY", "test-key")
	t.Setenv("LOCALE", "es")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:9090", cfg.BackendURL)
	assert.Equal(t, "test-key", cfg.BackendAPIKey)
	assert.Equal(t, "es", cfg.Locale)
}

func TestLoadStubDefaults(t *testing.T) {
	cfg, err := LoadStub()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.JWTSecret)
}
