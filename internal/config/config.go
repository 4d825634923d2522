package config

import (
	"fmt"
	"os"
	"strconv"

	"bootcompare/internal"
	"bootcompare/internal/errors"
)

// Config represents the CLI configuration
type Config struct {
	Bootstrap BootstrapConfig
	Log       LogConfig
}

// BootstrapConfig holds resampling settings
type BootstrapConfig struct {
	Simulations int
	Seed        uint64 // 0 means seed from runtime entropy
	Workers     int
	Alpha       float64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	bootstrapConfig, err := loadBootstrapConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load bootstrap configuration")
	}

	logConfig, err := loadLogConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load log configuration")
	}

	config := &Config{
		Bootstrap: *bootstrapConfig,
		Log:       *logConfig,
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadBootstrapConfig() (*BootstrapConfig, error) {
	seed := uint64(0)
	if value := os.Getenv("BOOTSTRAP_SEED"); value != "" {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("BOOTSTRAP_SEED must be an unsigned integer, got %q", value))
		}
		seed = parsed
	}

	simulations, err := getEnvIntOrDefault("BOOTSTRAP_SIMULATIONS", 10000)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvIntOrDefault("BOOTSTRAP_WORKERS", 1)
	if err != nil {
		return nil, err
	}
	alpha, err := getEnvFloatOrDefault("BOOTSTRAP_ALPHA", 0.05)
	if err != nil {
		return nil, err
	}

	return &BootstrapConfig{
		Simulations: simulations,
		Seed:        seed,
		Workers:     workers,
		Alpha:       alpha,
	}, nil
}

func loadLogConfig() (*LogConfig, error) {
	value := getEnvOrDefault("LOG_LEVEL", "INFO")
	level, ok := internal.ParseLogLevel(value)
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL %q is not one of ERROR, WARN, INFO, DEBUG, TRACE", value))
	}
	return &LogConfig{Level: level}, nil
}

// Validate checks ranges; flags may have overridden loaded values
func (c *Config) Validate() error {
	if c.Bootstrap.Simulations < 1 {
		return errors.ConfigInvalid("simulations must be at least 1")
	}
	if c.Bootstrap.Workers < 1 {
		return errors.ConfigInvalid("workers must be at least 1")
	}
	if c.Bootstrap.Alpha <= 0 || c.Bootstrap.Alpha >= 1 {
		return errors.ConfigInvalid("alpha must be in (0, 1)")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Malformed values are rejected rather than replaced by the default
func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return floatValue, nil
}
