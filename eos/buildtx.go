package eos

import (
	"fmt"
	"strconv"
	"time"

	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/client"
	"github.com/anyswap/eosio-client/log"
)

// lastIrreversible picks the TAPOS reference block. Signing against
// the LIB means a microfork can never orphan the reference.
func (b *Bridge) lastIrreversible() (*client.BlockResp, error) {
	info, err := b.GetInfo()
	if err != nil {
		return nil, err
	}
	return b.GetBlock(strconv.FormatUint(uint64(info.LastIrreversibleBlockNum), 10))
}

// BuildTransaction assembles a transaction from prepared actions,
// filling expiration and the TAPOS fields from chain state.
func (b *Bridge) BuildTransaction(actions ...*chain.Action) (*chain.Transaction, error) {
	refBlock, err := b.lastIrreversible()
	if err != nil {
		return nil, err
	}
	tx := &chain.Transaction{Actions: actions}
	tx.SetExpiration(time.Duration(b.ChainConfig.ExpirySeconds) * time.Second)
	if err := tx.SetRefBlock(refBlock.ID); err != nil {
		return nil, err
	}
	log.Debug("built transaction",
		"actions", len(actions),
		"refblocknum", tx.RefBlockNum,
		"expiration", tx.Expiration.String())
	return tx, nil
}

// BuildTransfer builds a single-action token transfer on the
// configured token contract, authorized by from@active.
func (b *Bridge) BuildTransfer(from, to chain.Name, quantity chain.Asset, memo string) (*chain.Transaction, error) {
	contract := b.ChainConfig.TokenContract
	reg, err := b.GetContractRegistry(contract)
	if err != nil {
		return nil, err
	}
	transfer, err := chain.NewName("transfer")
	if err != nil {
		return nil, err
	}
	active, err := chain.NewName("active")
	if err != nil {
		return nil, err
	}
	auth := []chain.PermissionLevel{{Actor: from, Permission: active}}
	act, err := reg.NewAction(contract, transfer, auth, map[string]interface{}{
		"from":     from.String(),
		"to":       to.String(),
		"quantity": quantity.String(),
		"memo":     memo,
	})
	if err != nil {
		return nil, fmt.Errorf("encode transfer: %w", err)
	}
	return b.BuildTransaction(act)
}
