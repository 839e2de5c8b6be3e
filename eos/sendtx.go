package eos

import (
	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/client"
	"github.com/anyswap/eosio-client/log"
)

// SendTransaction packs and pushes a signed transaction, returning the
// transaction id reported by the node.
func (b *Bridge) SendTransaction(stx *chain.SignedTransaction, compression chain.CompressionType) (string, error) {
	packed, err := stx.Pack(compression)
	if err != nil {
		return "", err
	}
	var resp *client.PushTransactionResp
	err = b.forEachClient(func(c *client.Client) (err error) {
		resp, err = c.PushTransaction(packed)
		return err
	})
	if err != nil {
		log.Info("send transaction failed", "err", err)
		return "", err
	}
	log.Info("sent transaction", "txid", resp.TransactionID)
	return resp.TransactionID, nil
}
