package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naseer2426/rekog/internal/rekog"
)

// Config holds process settings read from the environment.
type Config struct {
	Port string

	DatabaseURL string

	// DataDir holds reference images and the reference manifest.
	DataDir       string
	FetchTimeout  time.Duration
	MaxImageBytes int
	MaxPixels     int

	TelegramBotToken string

	LogLevel logrus.Level
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataDir:          getEnv("REKOG_DATA_DIR", "data"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	var err error
	if cfg.FetchTimeout, err = getEnvDuration("REKOG_FETCH_TIMEOUT", rekog.DefaultFetchTimeout); err != nil {
		return nil, err
	}
	if cfg.MaxImageBytes, err = getEnvInt("REKOG_MAX_IMAGE_BYTES", rekog.DefaultMaxImageBytes); err != nil {
		return nil, err
	}
	if cfg.MaxPixels, err = getEnvInt("REKOG_MAX_PIXELS", rekog.DefaultMaxPixels); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("REKOG_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("REKOG_MAX_IMAGE_BYTES must be positive, got %d", c.MaxImageBytes)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("REKOG_MAX_PIXELS must be positive, got %d", c.MaxPixels)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
