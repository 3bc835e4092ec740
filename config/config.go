package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the complete gateway-side configuration. The contract itself is
// configured by nothing but the channel it is committed to.
type Config struct {
	Gateway *GatewayConfig
	Fabric  *FabricConfig
	Cache   *CacheConfig
}

// LoadConfig loads every configuration file present in a directory. Missing
// files leave their section nil so callers can fall back to defaults.
func LoadConfig(configDir string) (*Config, error) {
	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path of config directory: %w", err)
	}

	cfg := &Config{}

	gatewayPath := filepath.Join(absDir, "gateway.defaults.yml")
	if _, err := os.Stat(gatewayPath); err == nil {
		gatewayCfg, err := LoadGatewayConfig(gatewayPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load gateway config: %w", err)
		}
		cfg.Gateway = gatewayCfg
	}

	fabricPath := filepath.Join(absDir, "fabric.defaults.yml")
	if _, err := os.Stat(fabricPath); err == nil {
		fabricCfg, err := LoadFabricConfig(fabricPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load fabric config: %w", err)
		}
		cfg.Fabric = fabricCfg
	}

	cachePath := filepath.Join(absDir, "cache.defaults.yml")
	if _, err := os.Stat(cachePath); err == nil {
		cacheCfg, err := LoadCacheConfig(cachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load cache config: %w", err)
		}
		cfg.Cache = cacheCfg
	}

	return cfg, nil
}
