package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanto12/google-search/config"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("GOOGLE_CSE_ID", "cx")
}

func TestLoad_MissingCredentialsIsFatal(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_CSE_ID", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)
	t.Setenv("CRAWL_WORKERS", "")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "")
	t.Setenv("SEARCH_PAGE_DELAY", "")
	t.Setenv("USER_AGENT", "")
	t.Setenv("LOG_DIR", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "cx", cfg.SearchEngineID)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Second, cfg.SearchDelay)
	assert.Equal(t, config.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, "logs", cfg.LogDir)
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("CRAWL_WORKERS", "8")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "3")
	t.Setenv("SEARCH_PAGE_DELAY", "250ms")
	t.Setenv("USER_AGENT", "CustomAgent/2.0")
	t.Setenv("LOG_DIR", "/tmp/crawl-logs")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDelay)
	assert.Equal(t, "CustomAgent/2.0", cfg.UserAgent)
	assert.Equal(t, "/tmp/crawl-logs", cfg.LogDir)
}

func TestLoad_InvalidValues(t *testing.T) {
	setCredentials(t)

	t.Run("workers", func(t *testing.T) {
		t.Setenv("CRAWL_WORKERS", "zero")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Setenv("FETCH_TIMEOUT_SECONDS", "-1")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("delay", func(t *testing.T) {
		t.Setenv("SEARCH_PAGE_DELAY", "soon")
		_, err := config.Load()
		assert.Error(t, err)
	})
}
