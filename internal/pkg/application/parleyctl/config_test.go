package parleyctl

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestLoadConfig(t *testing.T) {
	is, config := setupConfigTest(t)

	is.Equal(config.API.Endpoint, "http://lolcathost:1234")
	is.Equal(config.API.Retries, uint(3))
}

func TestLoadSpaces(t *testing.T) {
	is, config := setupConfigTest(t)

	is.Equal(len(config.Spaces), 2) // should find two configured spaces
	is.Equal(config.Spaces[0].ID, "100")
	is.Equal(config.Spaces[1].Name, "offtopic")
}

func TestGatewayEndpointOverride(t *testing.T) {
	is, config := setupConfigTest(t)

	is.Equal(config.GatewayEndpoint(), "ws://lolcathost:5678")
}

func TestGatewayEndpointDerivedFromAPI(t *testing.T) {
	is, config := setupConfigTest(t)
	config.Gateway.Endpoint = ""

	is.Equal(config.GatewayEndpoint(), "ws://lolcathost:1234/gateway")
}

func TestGatewayEndpointEmptyWhenDisabled(t *testing.T) {
	is, config := setupConfigTest(t)
	config.Gateway.Enabled = false

	is.Equal(config.GatewayEndpoint(), "")
}

func setupConfigTest(t *testing.T) (*is.I, *Config) {
	is := is.New(t)
	cfgData := bytes.NewBuffer([]byte(configFile))
	config, err := LoadConfiguration(cfgData)
	is.NoErr(err)

	return is, config
}

var configFile string = `
api:
  endpoint: http://lolcathost:1234
  retries: 3
gateway:
  enabled: true
  endpoint: ws://lolcathost:5678
spaces:
  - id: "100"
    name: general
  - id: "200"
    name: offtopic
`
