// Package config resolves the remote store endpoint and API key.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the remote store connection settings.
type Config struct {
	StoreURL string `yaml:"store_url,omitempty"`
	StoreKey string `yaml:"store_key,omitempty"`
}

// DefaultPath returns the config file path: ~/.config/pv/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pv", "config.yaml"), nil
}

// Load resolves settings from the config file, a .env file in the
// working directory, and the process environment, in rising priority.
// A missing config file is fine; commands that need the endpoint
// report its absence when they run.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	// Populates the environment; explicit env vars still win below.
	_ = godotenv.Load()

	if v := os.Getenv("PV_STORE_URL"); v != "" {
		cfg.StoreURL = v
	}
	if v := os.Getenv("PV_STORE_KEY"); v != "" {
		cfg.StoreKey = v
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
