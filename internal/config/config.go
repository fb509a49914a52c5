package config

import (
	"os"
	"strconv"

	errs "crossval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	CV       CVConfig
	Data     DataConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// CVConfig holds cross-validation defaults
type CVConfig struct {
	Folds       int
	Seed        int64
	Parallelism int
}

// DataConfig holds data source settings
type DataConfig struct {
	File      string
	HasHeader bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Server:   loadServerConfig(),
		CV:       loadCVConfig(),
		Data:     loadDataConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errs.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadCVConfig() CVConfig {
	return CVConfig{
		Folds:       getEnvIntOrDefault("CV_FOLDS", 5),
		Seed:        getEnvInt64OrDefault("CV_SEED", 0),
		Parallelism: getEnvIntOrDefault("CV_PARALLELISM", 1),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		File:      getEnvOrDefault("DATA_FILE", ""),
		HasHeader: getEnvBoolOrDefault("DATA_HAS_HEADER", true),
	}
}

func validateConfig(config *Config) error {
	if config.CV.Folds < 2 {
		return errs.ConfigInvalid("CV_FOLDS must be at least 2")
	}
	if config.CV.Parallelism < 1 {
		return errs.ConfigInvalid("CV_PARALLELISM must be at least 1")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
