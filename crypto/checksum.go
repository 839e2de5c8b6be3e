package crypto

import (
	"crypto/sha256"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/ripemd160"
)

// ripemd160Checksum is the 4 byte checksum of the legacy and modern
// textual key forms. The modern typed form salts the digest with the
// curve name so a key string cannot be replayed under another curve.
func ripemd160Checksum(data []byte, salt string) []byte {
	h := ripemd160.New()
	h.Write(data)
	if salt != "" {
		h.Write([]byte(salt))
	}
	return h.Sum(nil)[:4]
}

// doubleSha256Checksum is the 4 byte WIF checksum (two sha256 rounds).
func doubleSha256Checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// encodeBase58Ripemd appends the salted ripemd160 checksum and base58
// encodes payload.
func encodeBase58Ripemd(payload []byte, salt string) string {
	return base58.Encode(append(append([]byte{}, payload...), ripemd160Checksum(payload, salt)...))
}

// decodeBase58Ripemd base58 decodes s and verifies the salted ripemd160
// checksum, returning the bare payload.
func decodeBase58Ripemd(s, salt string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return nil, ErrInvalidBase58
	}
	if len(decoded) <= 4 {
		return nil, ErrInvalidKeyLength
	}
	payload, checksum := decoded[:len(decoded)-4], decoded[len(decoded)-4:]
	want := ripemd160Checksum(payload, salt)
	for i := range want {
		if checksum[i] != want[i] {
			return nil, ErrChecksumMismatch
		}
	}
	return payload, nil
}
