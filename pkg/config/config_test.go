package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_GeminiConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("GOOGLE_GEMINI_API_KEY", "test-key")
	os.Setenv("GOOGLE_GEMINI_MODEL", "gemini-2.5-pro")
	os.Setenv("GEMINI_FILE_POLL_INTERVAL", "2s")
	defer func() {
		os.Unsetenv("GOOGLE_GEMINI_API_KEY")
		os.Unsetenv("GOOGLE_GEMINI_MODEL")
		os.Unsetenv("GEMINI_FILE_POLL_INTERVAL")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify Gemini config
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 2*time.Second, cfg.Gemini.PollInterval)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("GOOGLE_GEMINI_MODEL")
	os.Unsetenv("DIGITALOCEAN_GRADIENT_BASE_URL")
	os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://api.digitalocean.com", cfg.Gradient.BaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Gemini.PollTimeout)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "virtuali_gob",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=virtuali_gob sslmode=require",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}
