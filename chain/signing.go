package chain

import (
	"github.com/anyswap/eosio-client/common"
)

// SigningDigest computes the digest signatures are made over:
// sha256(chain id || packed transaction || context free data digest).
// The context free data digest is the sha256 of the concatenated blobs,
// or 32 zero bytes when there are none.
func SigningDigest(chainID common.Hash, packedTrx []byte, contextFreeData []common.HexBytes) common.Hash {
	var cfdHash common.Hash
	if len(contextFreeData) > 0 {
		blobs := make([][]byte, len(contextFreeData))
		for i, blob := range contextFreeData {
			blobs[i] = blob
		}
		cfdHash = common.Sha256Hash(blobs...)
	}
	return common.Sha256Hash(chainID.Bytes(), packedTrx, cfdHash.Bytes())
}

// SigningDigest packs the signed transaction and computes its digest.
func (stx *SignedTransaction) SigningDigest(chainID common.Hash) (common.Hash, error) {
	packed, err := stx.Transaction.Pack()
	if err != nil {
		return common.Hash{}, err
	}
	return SigningDigest(chainID, packed, stx.ContextFreeData), nil
}
