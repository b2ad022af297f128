package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	Env                string `mapstructure:"ENV"`
	TokenFile          string `mapstructure:"TOKEN_FILE"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("ENV", "development")
	v.SetDefault("TOKEN_FILE", defaultTokenFile())
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 0)
	v.SetDefault("LOG_LEVEL", "info")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_BASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("TOKEN_FILE")
	v.BindEnv("HTTP_TIMEOUT_SECONDS")
	v.BindEnv("LOG_LEVEL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HTTPTimeout returns the configured request timeout. Zero means the
// transport's default behavior, no explicit timeout is set.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Validate checks that the configuration is usable before any command runs.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("ENV must be \"development\" or \"production\", got %q", c.Env)
	}
	if c.TokenFile == "" {
		return fmt.Errorf("TOKEN_FILE is required")
	}
	if c.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be >= 0, got %d", c.HTTPTimeoutSeconds)
	}
	return nil
}

// defaultTokenFile is ~/.healthdesk/token, falling back to a relative path
// when the home directory cannot be resolved.
func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healthdesk-token"
	}
	return filepath.Join(home, ".healthdesk", "token")
}
