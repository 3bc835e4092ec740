package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// FabricConfig holds everything needed to reach the peer's gateway service
// and sign transactions as one organization.
type FabricConfig struct {
	MSPID         string `yaml:"msp_id"`
	CertPath      string `yaml:"cert_path"`
	KeyPath       string `yaml:"key_path"`
	TLSCertPath   string `yaml:"tls_cert_path"`
	PeerEndpoint  string `yaml:"peer_endpoint"`
	GatewayPeer   string `yaml:"gateway_peer"` // serverNameOverride for TLS
	ChannelName   string `yaml:"channel_name"`
	ChaincodeName string `yaml:"chaincode_name"`
}

// LoadFabricConfig loads fabric connection configuration from a YAML file.
func LoadFabricConfig(path string) (*FabricConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path of config file: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", absPath, err)
	}

	var cfg FabricConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
	}
	if cfg.ChannelName == "" {
		cfg.ChannelName = "ricechannel"
	}
	if cfg.ChaincodeName == "" {
		cfg.ChaincodeName = "ricetrace"
	}
	return &cfg, nil
}
