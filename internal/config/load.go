package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one; secrets and the
	// database URL must come from the environment or a config file.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.rate_limit_rps", 10.0)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_entries", 4096)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables with the LANGPORTAL_ prefix override files,
	// e.g. LANGPORTAL_DATABASE_URL, LANGPORTAL_SERVER_PORT.
	v.SetEnvPrefix("LANGPORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind explicitly so AutomaticEnv sees nested keys that have no
	// default and are absent from the config file.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.rate_limit_rps",
		"server.rate_limit_burst",
		"database.url",
		"cache.ttl_seconds",
		"cache.max_entries",
		"auth.jwt_secret",
		"admin.reset_confirm_token",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
