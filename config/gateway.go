package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// GatewayConfig configures the HTTP surface of the gateway.
type GatewayConfig struct {
	ListenAddr     string   `yaml:"listen_addr"`
	Mode           string   `yaml:"mode"` // "dev" or "prod"
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
}

// DefaultGatewayConfig is used when no gateway config file is present.
func DefaultGatewayConfig() *GatewayConfig {
	return &GatewayConfig{
		ListenAddr:     ":8080",
		Mode:           "dev",
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes: 10 * 1024 * 1024,
	}
}

// LoadGatewayConfig loads gateway configuration from a YAML file.
func LoadGatewayConfig(path string) (*GatewayConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path of config file: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", absPath, err)
	}

	cfg := DefaultGatewayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
	}
	return cfg, nil
}
