// Package eos orchestrates transaction building, signing and
// submission against an EOSIO style chain through its HTTP gateways.
package eos

import (
	"errors"
	"sync"

	"github.com/anyswap/eosio-client/abi"
	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/client"
	"github.com/anyswap/eosio-client/common"
	"github.com/anyswap/eosio-client/log"
)

var (
	// ErrNoGateway means no API gateway answered the request.
	ErrNoGateway = errors.New("all gateways failed")
	// ErrMsgHashMismatch means a recomputed signing digest differs.
	ErrMsgHashMismatch = errors.New("message hash mismatch")
	// ErrWrongSignature means a signature does not recover the signer.
	ErrWrongSignature = errors.New("wrong signature")
	// ErrTxExpired means the transaction expiry already passed.
	ErrTxExpired = errors.New("transaction expired")
)

// ChainConfig identifies the target chain and the token contract the
// bridge transfers through.
type ChainConfig struct {
	ChainID       common.Hash
	TokenContract chain.Name
	ExpirySeconds uint32
}

// GatewayConfig lists the API endpoints tried in order.
type GatewayConfig struct {
	APIAddress []string
}

// Bridge couples chain and gateway config with API clients and a
// cached contract ABI registry.
type Bridge struct {
	ChainConfig   *ChainConfig
	GatewayConfig *GatewayConfig

	clients []*client.Client

	abiMu    sync.Mutex
	abiCache map[chain.Name]*abi.Registry
}

// NewBridge builds a bridge from its configs. ExpirySeconds falls back
// to 300 when unset.
func NewBridge(chainCfg *ChainConfig, gatewayCfg *GatewayConfig) *Bridge {
	if chainCfg.ExpirySeconds == 0 {
		chainCfg.ExpirySeconds = 300
	}
	clients := make([]*client.Client, 0, len(gatewayCfg.APIAddress))
	for _, addr := range gatewayCfg.APIAddress {
		clients = append(clients, client.NewClient(addr))
	}
	return &Bridge{
		ChainConfig:   chainCfg,
		GatewayConfig: gatewayCfg,
		clients:       clients,
		abiCache:      make(map[chain.Name]*abi.Registry),
	}
}

// forEachClient tries fn against each gateway until one succeeds.
// Node-side errors (APIError) abort immediately: every gateway would
// answer the same.
func (b *Bridge) forEachClient(fn func(*client.Client) error) error {
	var lastErr error
	for _, c := range b.clients {
		err := fn(c)
		if err == nil {
			return nil
		}
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return err
		}
		log.Warn("gateway request failed", "url", c.URL(), "err", err)
		lastErr = err
	}
	if lastErr != nil {
		return lastErr
	}
	return ErrNoGateway
}

// GetInfo fetches chain head state from the first answering gateway.
func (b *Bridge) GetInfo() (*client.InfoResp, error) {
	var out *client.InfoResp
	err := b.forEachClient(func(c *client.Client) (err error) {
		out, err = c.GetInfo()
		return err
	})
	return out, err
}

// GetBlock fetches one block by number or id.
func (b *Bridge) GetBlock(numOrID string) (*client.BlockResp, error) {
	var out *client.BlockResp
	err := b.forEachClient(func(c *client.Client) (err error) {
		out, err = c.GetBlock(numOrID)
		return err
	})
	return out, err
}

// GetBalance queries token balances of an account on the configured
// token contract.
func (b *Bridge) GetBalance(account chain.Name, symbol string) ([]chain.Asset, error) {
	var out []chain.Asset
	err := b.forEachClient(func(c *client.Client) (err error) {
		out, err = c.GetCurrencyBalance(account, b.ChainConfig.TokenContract, symbol)
		return err
	})
	return out, err
}

// GetContractRegistry fetches and caches the ABI registry of a
// contract account.
func (b *Bridge) GetContractRegistry(contract chain.Name) (*abi.Registry, error) {
	b.abiMu.Lock()
	if reg, ok := b.abiCache[contract]; ok {
		b.abiMu.Unlock()
		return reg, nil
	}
	b.abiMu.Unlock()

	var doc *abi.ABI
	err := b.forEachClient(func(c *client.Client) (err error) {
		doc, err = c.GetABI(contract)
		return err
	})
	if err != nil {
		return nil, err
	}
	reg, err := abi.NewRegistry(doc)
	if err != nil {
		return nil, err
	}
	b.abiMu.Lock()
	b.abiCache[contract] = reg
	b.abiMu.Unlock()
	return reg, nil
}
