// Package config provides configuration management for VPN Composer.
// It handles loading, saving, and managing application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yllada/vpn-composer/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// LogLevel sets the minimum log level: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
	// EnableFileLog enables logging to a rotated file in addition to stdout.
	EnableFileLog bool `yaml:"enable_file_log"`
	// DataDir overrides the database/preferences location. Empty means
	// the default data directory.
	DataDir string `yaml:"data_dir,omitempty"`
	// DefaultProviderID pre-selects a provider for server listings.
	DefaultProviderID string `yaml:"default_provider_id,omitempty"`
	// ShareNewProfiles marks newly created profiles for remote sharing.
	ShareNewProfiles bool `yaml:"share_new_profiles"`
}

// DefaultConfig returns the default configuration.
// These are sensible defaults for most users.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		EnableFileLog:    true,
		ShareNewProfiles: false,
	}
}

// Load loads the configuration from the config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	// If it doesn't exist, return default configuration
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, common.WrapError(err, common.ErrConfigLoad.Error())
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	var config Config
	if err := decoder.Decode(&config); err != nil {
		return nil, common.WrapError(err, common.ErrConfigLoad.Error())
	}

	config.validate()
	return &config, nil
}

// validate verifies that configuration values are valid, falling back to
// defaults for invalid ones.
func (c *Config) validate() {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
}

// Level converts the configured log level to a common.LogLevel.
func (c *Config) Level() common.LogLevel {
	switch c.LogLevel {
	case "debug":
		return common.LevelDebug
	case "warn":
		return common.LevelWarn
	case "error":
		return common.LevelError
	default:
		return common.LevelInfo
	}
}

// Save saves the configuration to the file
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return common.WrapError(err, common.ErrConfigSave.Error())
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return common.WrapError(err, common.ErrConfigSave.Error())
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return common.WrapError(err, common.ErrConfigSave.Error())
	}

	return nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
