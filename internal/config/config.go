// Package config loads the application's configuration once at startup.
// The resulting Config struct is passed by reference into every component
// constructor; no business logic reads the environment after this point.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/mpetrov/code-critic/internal/logger"
)

// Config holds the application's configuration values.
type Config struct {
	ServerPort     string
	GroqAPIKey     string
	GroqAPIBase    string
	ModelName      string
	DatabasePath   string
	RequestTimeout time.Duration
	Logging        logger.Config
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("GROQ_API_BASE", "https://api.groq.com/openai/v1")
	viper.SetDefault("MODEL_NAME", "llama-3.3-70b-versatile")
	viper.SetDefault("DATABASE_PATH", "reviews.db")
	viper.SetDefault("REQUEST_TIMEOUT", "2m")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", "error", err)
		}
	}

	if viper.GetString("GROQ_API_KEY") == "" {
		return nil, fmt.Errorf("GROQ_API_KEY must be set")
	}

	timeout := viper.GetDuration("REQUEST_TIMEOUT")
	if timeout <= 0 {
		slog.Warn("invalid request timeout, defaulting to 2m", "provided", viper.GetString("REQUEST_TIMEOUT"))
		timeout = 2 * time.Minute
	}

	return &Config{
		ServerPort:     viper.GetString("SERVER_PORT"),
		GroqAPIKey:     viper.GetString("GROQ_API_KEY"),
		GroqAPIBase:    viper.GetString("GROQ_API_BASE"),
		ModelName:      viper.GetString("MODEL_NAME"),
		DatabasePath:   viper.GetString("DATABASE_PATH"),
		RequestTimeout: timeout,
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
	}, nil
}
