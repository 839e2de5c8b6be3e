package params

import (
	"encoding/json"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/anyswap/eosio-client/common"
	"github.com/anyswap/eosio-client/log"
)

var (
	clientConfig      *Config
	loadConfigStarter sync.Once
)

// Config is the toml file layout.
type Config struct {
	Identifier string
	Gateway    *GatewayConfig
	Chain      *ChainConfig
}

// GatewayConfig lists API endpoints, tried in order.
type GatewayConfig struct {
	APIAddress []string
}

// ChainConfig names the target chain and token contract.
type ChainConfig struct {
	ChainID       string
	TokenContract string
	Expiry        uint32 `toml:",omitempty" json:",omitempty"`
}

// GetConfig gets the loaded config.
func GetConfig() *Config {
	return clientConfig
}

// SetConfig sets the config directly, for tests.
func SetConfig(config *Config) {
	clientConfig = config
}

// GetIdentifier gets the configured identifier.
func GetIdentifier() string {
	return GetConfig().Identifier
}

// LoadConfig loads the toml config file once and checks it.
func LoadConfig(configFile string) *Config {
	loadConfigStarter.Do(func() {
		if configFile == "" {
			log.Fatalf("LoadConfig error: no config file specified")
		}
		if !common.FileExist(configFile) {
			log.Fatalf("LoadConfig error: config file %v not exist", configFile)
		}
		config := &Config{}
		if _, err := toml.DecodeFile(configFile, &config); err != nil {
			log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
		}
		SetConfig(config)

		bs, _ := json.MarshalIndent(config, "", "  ")
		log.Printf("LoadConfig finished. %v", string(bs))
		if err := CheckConfig(); err != nil {
			log.Fatalf("Check config failed. %v", err)
		}
		log.Info("Check config success", "configFile", configFile)
	})
	return clientConfig
}
