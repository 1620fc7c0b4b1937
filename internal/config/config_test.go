package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/storefront/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.RetryCount)
	assert.Equal(t, ".storefront-session.json", cfg.Session.FilePath)
	assert.Equal(t, "pharmacy> ", cfg.Shell.Prompt)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://pharmacy.example.com/api")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_RETRY_COUNT", "1")
	t.Setenv("SESSION_FILE_PATH", "/tmp/session.json")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pharmacy.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.RetryCount)
	assert.Equal(t, "/tmp/session.json", cfg.Session.FilePath)
}
