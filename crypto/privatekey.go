package crypto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
)

// PrivateKey is a curve-tagged private key scalar.
type PrivateKey struct {
	Curve   CurveType
	Content []byte
}

// NewRandomPrivateKey generates a fresh K1 key.
func NewRandomPrivateKey() (PrivateKey, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{Curve: CurveK1, Content: key.Serialize()}, nil
}

// NewPrivateKey parses either the legacy WIF form or the modern typed
// "PVT_<curve>_..." form.
func NewPrivateKey(s string) (PrivateKey, error) {
	if strings.HasPrefix(s, "PVT_") {
		rest := s[len("PVT_"):]
		under := strings.IndexByte(rest, '_')
		if under < 0 {
			return PrivateKey{}, ErrInvalidKeyFormat
		}
		curve, err := CurveFromName(rest[:under])
		if err != nil {
			return PrivateKey{}, err
		}
		if curve == CurveWA {
			// WebAuthn private keys never leave the authenticator
			return PrivateKey{}, ErrUnsupportedCurve
		}
		payload, err := decodeBase58Ripemd(rest[under+1:], curve.String())
		if err != nil {
			return PrivateKey{}, err
		}
		if len(payload) != privateKeyDataSize {
			return PrivateKey{}, ErrInvalidKeyLength
		}
		return PrivateKey{Curve: curve, Content: payload}, nil
	}
	return privateKeyFromWIF(s)
}

// privateKeyFromWIF decodes the legacy base58check form: a version
// byte, the 32 byte scalar and a double-sha256 checksum. WIF carries
// no curve tag and is always K1.
func privateKeyFromWIF(s string) (PrivateKey, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return PrivateKey{}, ErrInvalidBase58
	}
	if len(decoded) != 1+privateKeyDataSize+4 {
		return PrivateKey{}, ErrInvalidKeyLength
	}
	if decoded[0] != wifVersionByte {
		return PrivateKey{}, ErrInvalidKeyFormat
	}
	payload, checksum := decoded[:len(decoded)-4], decoded[len(decoded)-4:]
	want := doubleSha256Checksum(payload)
	for i := range want {
		if checksum[i] != want[i] {
			return PrivateKey{}, ErrChecksumMismatch
		}
	}
	return PrivateKey{Curve: CurveK1, Content: append([]byte{}, payload[1:]...)}, nil
}

// String returns the WIF form for K1 keys and the typed form otherwise.
func (p PrivateKey) String() string {
	if p.Curve == CurveK1 {
		payload := append([]byte{wifVersionByte}, p.Content...)
		return base58.Encode(append(payload, doubleSha256Checksum(payload)...))
	}
	return p.StringTyped()
}

// StringTyped always returns the modern "PVT_<curve>_..." form.
func (p PrivateKey) StringTyped() string {
	return fmt.Sprintf("PVT_%s_%s", p.Curve, encodeBase58Ripemd(p.Content, p.Curve.String()))
}

// PublicKey derives the matching public key. Only K1 derivation is
// supported; R1 material is parse/serialize only.
func (p PrivateKey) PublicKey() (PublicKey, error) {
	if p.Curve != CurveK1 {
		return PublicKey{}, ErrUnsupportedCurve
	}
	_, pub := btcec.PrivKeyFromBytes(btcec.S256(), p.Content)
	return PublicKey{Curve: CurveK1, Content: pub.SerializeCompressed()}, nil
}

// Sign produces a recoverable signature over a 32 byte digest.
// The digest is signed as-is; hashing is the caller's concern.
func (p PrivateKey) Sign(digest []byte) (Signature, error) {
	if p.Curve != CurveK1 {
		return Signature{}, ErrUnsupportedCurve
	}
	if len(digest) != 32 {
		return Signature{}, fmt.Errorf("digest must be 32 bytes, got %v", len(digest))
	}
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), p.Content)
	sig, err := btcec.SignCompact(btcec.S256(), key, digest, true)
	if err != nil {
		return Signature{}, err
	}
	return Signature{Curve: CurveK1, Content: sig}, nil
}

// MarshalJSON implements json.Marshaler.
func (p PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PrivateKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewPrivateKey(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
