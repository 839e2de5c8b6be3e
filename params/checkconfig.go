package params

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"

	"github.com/anyswap/eosio-client/chain"
)

// CheckConfig checks the loaded config for completeness.
func CheckConfig() (err error) {
	config := GetConfig()
	if config.Identifier == "" {
		return errors.New("must config non empty 'Identifier'")
	}
	if config.Gateway == nil {
		return errors.New("must config 'Gateway'")
	}
	if err = config.Gateway.CheckConfig(); err != nil {
		return err
	}
	if config.Chain == nil {
		return errors.New("must config 'Chain'")
	}
	return config.Chain.CheckConfig()
}

// CheckConfig checks the gateway endpoints.
func (c *GatewayConfig) CheckConfig() error {
	if len(c.APIAddress) == 0 {
		return errors.New("must config 'Gateway.APIAddress'")
	}
	for _, addr := range c.APIAddress {
		if _, err := url.Parse(addr); err != nil {
			return fmt.Errorf("wrong gateway address '%v': %w", addr, err)
		}
	}
	return nil
}

// CheckConfig checks the chain id and token contract.
func (c *ChainConfig) CheckConfig() error {
	raw, err := hex.DecodeString(c.ChainID)
	if err != nil || len(raw) != 32 {
		return fmt.Errorf("wrong 'Chain.ChainID' '%v', want 32 hex bytes", c.ChainID)
	}
	if _, err := chain.NewName(c.TokenContract); err != nil {
		return fmt.Errorf("wrong 'Chain.TokenContract' '%v': %w", c.TokenContract, err)
	}
	return nil
}
