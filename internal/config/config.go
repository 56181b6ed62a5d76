package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// Values are read from app.env in the given directory and overridden by
// environment variables of the same name.
type Config struct {
	DBDriver        string        `mapstructure:"DB_DRIVER"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	GinMode         string        `mapstructure:"GIN_MODE"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogConsole      bool          `mapstructure:"LOG_CONSOLE"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"DB_DRIVER":        "postgres",
	"DB_SOURCE":        "",
	"SERVER_ADDRESS":   ":8080",
	"GIN_MODE":         "release",
	"LOG_LEVEL":        "info",
	"LOG_CONSOLE":      false,
	"SHUTDOWN_TIMEOUT": "10s",
}

// LoadConfig reads configuration from path/app.env and the environment.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c Config) Validate() error {
	var errs []string

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver))
	}
	if c.DBSource == "" {
		errs = append(errs, "DB_SOURCE is required")
	}
	if c.ServerAddress == "" {
		errs = append(errs, "SERVER_ADDRESS is required")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
