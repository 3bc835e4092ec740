package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

// CacheConfig configures the redis read cache in front of ledger queries.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// TTL returns the configured entry lifetime.
func (c *CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// LoadCacheConfig loads cache configuration from a YAML file.
func LoadCacheConfig(path string) (*CacheConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path of config file: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", absPath, err)
	}

	var cfg CacheConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
	}
	return &cfg, nil
}
