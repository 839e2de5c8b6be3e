package crypto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"
)

// Signature is curve-tagged signature material. For K1 and R1 the
// content is the 65 byte compact form: recovery byte, r, s. For WA it
// additionally carries the length-prefixed authenticator data and
// client data JSON the authenticator produced.
type Signature struct {
	Curve   CurveType
	Content []byte
}

// NewSignature parses the typed "SIG_<curve>_..." form. Signatures
// have no legacy textual form.
func NewSignature(s string) (Signature, error) {
	if !strings.HasPrefix(s, "SIG_") {
		return Signature{}, ErrInvalidKeyFormat
	}
	rest := s[len("SIG_"):]
	under := strings.IndexByte(rest, '_')
	if under < 0 {
		return Signature{}, ErrInvalidKeyFormat
	}
	curve, err := CurveFromName(rest[:under])
	if err != nil {
		return Signature{}, err
	}
	payload, err := decodeBase58Ripemd(rest[under+1:], curve.String())
	if err != nil {
		return Signature{}, err
	}
	return SignatureFromContent(curve, payload)
}

// SignatureFromContent validates raw payload bytes for a curve.
func SignatureFromContent(curve CurveType, content []byte) (Signature, error) {
	switch curve {
	case CurveK1, CurveR1:
		if len(content) != signatureDataSize {
			return Signature{}, ErrInvalidSignature
		}
	case CurveWA:
		if _, err := waSignatureSize(content); err != nil {
			return Signature{}, err
		}
	default:
		return Signature{}, ErrUnknownCurveType
	}
	return Signature{Curve: curve, Content: append([]byte{}, content...)}, nil
}

// String returns the typed "SIG_<curve>_..." form.
func (s Signature) String() string {
	return fmt.Sprintf("SIG_%s_%s", s.Curve, encodeBase58Ripemd(s.Content, s.Curve.String()))
}

// Equals compares curve and content.
func (s Signature) Equals(o Signature) bool {
	return s.Curve == o.Curve && bytes.Equal(s.Content, o.Content)
}

// RecoverPublicKey recovers the signing key from a 32 byte digest.
// Only K1 signatures are recoverable.
func (s Signature) RecoverPublicKey(digest []byte) (PublicKey, error) {
	if s.Curve != CurveK1 {
		return PublicKey{}, ErrUnsupportedCurve
	}
	pub, compressed, err := btcec.RecoverCompact(btcec.S256(), s.Content, digest)
	if err != nil || !compressed {
		return PublicKey{}, ErrRecoverFailed
	}
	return PublicKey{Curve: CurveK1, Content: pub.SerializeCompressed()}, nil
}

// Verify recovers the signer and compares it to expected.
func (s Signature) Verify(digest []byte, expected PublicKey) bool {
	recovered, err := s.RecoverPublicKey(digest)
	if err != nil {
		return false
	}
	return recovered.Equals(expected)
}

// IsCanonical reports whether a compact K1 signature satisfies the
// canonical form nodes demand before accepting a transaction.
func (s Signature) IsCanonical() bool {
	if s.Curve != CurveK1 || len(s.Content) != signatureDataSize {
		return false
	}
	d := s.Content
	return d[1]&0x80 == 0 &&
		!(d[1] == 0 && d[2]&0x80 == 0) &&
		d[33]&0x80 == 0 &&
		!(d[33] == 0 && d[34]&0x80 == 0)
}

// MarshalJSON implements json.Marshaler.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := NewSignature(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SignaturePayloadSize reports how many of the bytes in data the
// payload for curve occupies.
func SignaturePayloadSize(curve CurveType, data []byte) (int, error) {
	switch curve {
	case CurveK1, CurveR1:
		if len(data) < signatureDataSize {
			return 0, ErrInvalidSignature
		}
		return signatureDataSize, nil
	case CurveWA:
		return waSignatureSize(data)
	default:
		return 0, ErrUnknownCurveType
	}
}

// waSignatureSize walks compact signature + var-uint length prefixed
// authenticator data + var-uint length prefixed client data JSON.
func waSignatureSize(data []byte) (int, error) {
	n := signatureDataSize
	for field := 0; field < 2; field++ {
		if len(data) < n {
			return 0, ErrInvalidWAPayload
		}
		fieldLen, vn, err := readVarUint(data[n:])
		if err != nil {
			return 0, ErrInvalidWAPayload
		}
		n += vn + int(fieldLen)
	}
	if len(data) < n {
		return 0, ErrInvalidWAPayload
	}
	return n, nil
}

// MakeWASignatureContent assembles the WA payload from its parts.
func MakeWASignatureContent(compactSig, authData, clientJSON []byte) ([]byte, error) {
	if len(compactSig) != signatureDataSize {
		return nil, ErrInvalidSignature
	}
	content := append([]byte{}, compactSig...)
	content = appendVarUint(content, uint64(len(authData)))
	content = append(content, authData...)
	content = appendVarUint(content, uint64(len(clientJSON)))
	return append(content, clientJSON...), nil
}
