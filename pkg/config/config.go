// Package config loads and saves wst's runtime configuration: the
// cascade's shape and the HTTP server's bind address.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is wst's on-disk configuration.
type Config struct {
	Bind    string  `yaml:"bind"`
	Port    int     `yaml:"port"`
	Cascade Cascade `yaml:"cascade"`
	Logging Logging `yaml:"logging"`
}

// Cascade configures the working-set tree's tier geometry.
type Cascade struct {
	MinDegree   int `yaml:"min_degree"`
	ScaleFactor int `yaml:"scale_factor"`
	BaseHeight  int `yaml:"base_height"`
	NumTrees    int `yaml:"num_trees"`
}

// Logging configures the ambient log output.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns wst's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind: "127.0.0.1",
		Port: 8080,
		Cascade: Cascade{
			MinDegree:   2,
			ScaleFactor: 2,
			BaseHeight:  2,
			NumTrees:    4,
		},
		Logging: Logging{Level: "info"},
	}
}

// LoadConfig loads configuration from the given path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the given path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./wst.yaml"
	}
	return filepath.Join(homeDir, ".config", "wst", "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
