package eos

import (
	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/common"
	"github.com/anyswap/eosio-client/crypto"
	"github.com/anyswap/eosio-client/log"
)

// MsgHash computes the signing digest of a transaction under the
// configured chain id.
func (b *Bridge) MsgHash(tx *chain.Transaction) (common.Hash, error) {
	packed, err := tx.Pack()
	if err != nil {
		return common.Hash{}, err
	}
	return chain.SigningDigest(b.ChainConfig.ChainID, packed, nil), nil
}

// SignTransactionWithPrivateKey signs a transaction with a K1 private
// key given in WIF or PVT_K1 form.
func (b *Bridge) SignTransactionWithPrivateKey(tx *chain.Transaction, privKey string) (*chain.SignedTransaction, error) {
	key, err := crypto.NewPrivateKey(privKey)
	if err != nil {
		return nil, err
	}
	stx := chain.NewSignedTransaction(tx)
	digest, err := stx.SigningDigest(b.ChainConfig.ChainID)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(digest.Bytes())
	if err != nil {
		return nil, err
	}
	if !sig.IsCanonical() {
		log.Warn("produced non-canonical signature", "digest", digest.String())
	}
	stx.Signatures = append(stx.Signatures, sig)
	txid, err := tx.ID()
	if err != nil {
		return nil, err
	}
	signer, err := key.PublicKey()
	if err != nil {
		return nil, err
	}
	log.Info("signed transaction", "txid", txid.String(), "signer", signer.String())
	return stx, nil
}
