package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("GROQ_API_KEY", "test-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GroqAPIKey)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.GroqAPIBase)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.ModelName)
	assert.Equal(t, "reviews.db", cfg.DatabasePath)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigMissingAPIKey(t *testing.T) {
	viper.Reset()
	t.Setenv("GROQ_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestLoadConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("MODEL_NAME", "llama-3.1-8b-instant")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.ModelName)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	viper.Reset()
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
}
