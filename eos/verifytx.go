package eos

import (
	"time"

	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/common"
	"github.com/anyswap/eosio-client/crypto"
)

// VerifyMsgHash checks that the signed transaction's digest matches
// the expected hash under the configured chain id.
func (b *Bridge) VerifyMsgHash(stx *chain.SignedTransaction, expected common.Hash) error {
	digest, err := stx.SigningDigest(b.ChainConfig.ChainID)
	if err != nil {
		return err
	}
	if digest != expected {
		return ErrMsgHashMismatch
	}
	return nil
}

// VerifyTransaction checks expiry and that every signature recovers
// the given signer key.
func (b *Bridge) VerifyTransaction(stx *chain.SignedTransaction, signer crypto.PublicKey) error {
	if stx.Expiration.Time().Before(time.Now()) {
		return ErrTxExpired
	}
	digest, err := stx.SigningDigest(b.ChainConfig.ChainID)
	if err != nil {
		return err
	}
	if len(stx.Signatures) == 0 {
		return ErrWrongSignature
	}
	for _, sig := range stx.Signatures {
		recovered, err := sig.RecoverPublicKey(digest.Bytes())
		if err != nil {
			return err
		}
		if !recovered.Equals(signer) {
			return ErrWrongSignature
		}
	}
	return nil
}
