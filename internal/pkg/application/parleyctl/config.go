package parleyctl

import (
	"io"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

type APIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Retries  uint   `yaml:"retries"`
}

type GatewayConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

type SpaceConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	Gateway GatewayConfig `yaml:"gateway"`
	Spaces  []SpaceConfig `yaml:"spaces"`
}

// GatewayEndpoint returns the configured websocket endpoint, or one derived
// from the API endpoint when the gateway section leaves it out.
func (cfg *Config) GatewayEndpoint() string {
	if !cfg.Gateway.Enabled {
		return ""
	}

	if cfg.Gateway.Endpoint != "" {
		return cfg.Gateway.Endpoint
	}

	endpoint := strings.Replace(cfg.API.Endpoint, "https://", "wss://", 1)
	endpoint = strings.Replace(endpoint, "http://", "ws://", 1)
	return strings.TrimSuffix(endpoint, "/") + "/gateway"
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)

	return cfg, err
}
