package crypto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PublicKey is a curve-tagged public key. For K1 and R1 the content is
// the 33 byte compressed curve point. For WA it is the full structured
// payload: compressed point, presence byte, then the length-prefixed
// relying party id.
type PublicKey struct {
	Curve   CurveType
	Content []byte
}

// NewPublicKey parses either the legacy "EOS..." form or the modern
// typed "PUB_<curve>_..." form.
func NewPublicKey(s string) (PublicKey, error) {
	switch {
	case strings.HasPrefix(s, "PUB_"):
		rest := s[len("PUB_"):]
		under := strings.IndexByte(rest, '_')
		if under < 0 {
			return PublicKey{}, ErrInvalidKeyFormat
		}
		curve, err := CurveFromName(rest[:under])
		if err != nil {
			return PublicKey{}, err
		}
		payload, err := decodeBase58Ripemd(rest[under+1:], curve.String())
		if err != nil {
			return PublicKey{}, err
		}
		return newPublicKeyChecked(curve, payload)
	case strings.HasPrefix(s, legacyPublicKeyPrefix):
		// legacy form carries no curve tag and is always K1;
		// its checksum is unsalted
		payload, err := decodeBase58Ripemd(s[len(legacyPublicKeyPrefix):], "")
		if err != nil {
			return PublicKey{}, err
		}
		return newPublicKeyChecked(CurveK1, payload)
	default:
		return PublicKey{}, ErrInvalidKeyFormat
	}
}

// PublicKeyFromContent validates raw payload bytes for a curve.
func PublicKeyFromContent(curve CurveType, content []byte) (PublicKey, error) {
	return newPublicKeyChecked(curve, content)
}

func newPublicKeyChecked(curve CurveType, content []byte) (PublicKey, error) {
	switch curve {
	case CurveK1, CurveR1:
		if len(content) != publicKeyDataSize {
			return PublicKey{}, ErrInvalidKeyLength
		}
	case CurveWA:
		if _, err := waPublicKeySize(content); err != nil {
			return PublicKey{}, err
		}
	default:
		return PublicKey{}, ErrUnknownCurveType
	}
	return PublicKey{Curve: curve, Content: append([]byte{}, content...)}, nil
}

// String returns the legacy form for K1 keys and the typed form for
// all other curves, matching what nodes emit by default.
func (p PublicKey) String() string {
	if p.Curve == CurveK1 {
		return legacyPublicKeyPrefix + encodeBase58Ripemd(p.Content, "")
	}
	return p.StringTyped()
}

// StringTyped always returns the modern "PUB_<curve>_..." form.
func (p PublicKey) StringTyped() string {
	return fmt.Sprintf("PUB_%s_%s", p.Curve, encodeBase58Ripemd(p.Content, p.Curve.String()))
}

// Equals compares curve and content.
func (p PublicKey) Equals(o PublicKey) bool {
	return p.Curve == o.Curve && bytes.Equal(p.Content, o.Content)
}

// MarshalJSON implements json.Marshaler.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewPublicKey(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PublicKeyPayloadSize reports how many of the bytes in data the
// payload for curve occupies. Fixed 33 for K1/R1; WA payloads size
// themselves by their internal length prefix.
func PublicKeyPayloadSize(curve CurveType, data []byte) (int, error) {
	switch curve {
	case CurveK1, CurveR1:
		if len(data) < publicKeyDataSize {
			return 0, ErrInvalidKeyLength
		}
		return publicKeyDataSize, nil
	case CurveWA:
		return waPublicKeySize(data)
	default:
		return 0, ErrUnknownCurveType
	}
}

// waPublicKeySize walks compressed point + user presence byte +
// var-uint length prefixed relying party id.
func waPublicKeySize(data []byte) (int, error) {
	n := publicKeyDataSize + 1
	if len(data) < n {
		return 0, ErrInvalidWAPayload
	}
	rpidLen, vn, err := readVarUint(data[n:])
	if err != nil {
		return 0, ErrInvalidWAPayload
	}
	n += vn + int(rpidLen)
	if len(data) < n {
		return 0, ErrInvalidWAPayload
	}
	return n, nil
}

// readVarUint decodes an unsigned LEB128 value from the head of data,
// returning the value and the number of bytes consumed.
func readVarUint(data []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i := 0; i < len(data); i++ {
		b := data[i]
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
		if shift > 63 {
			break
		}
	}
	return 0, 0, ErrInvalidWAPayload
}

// appendVarUint encodes v as unsigned LEB128 onto dst.
func appendVarUint(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// MakeWAPublicKeyContent assembles the WA payload from its parts.
func MakeWAPublicKeyContent(compressedPoint []byte, userPresence byte, rpid string) ([]byte, error) {
	if len(compressedPoint) != publicKeyDataSize {
		return nil, ErrInvalidKeyLength
	}
	content := append([]byte{}, compressedPoint...)
	content = append(content, userPresence)
	content = appendVarUint(content, uint64(len(rpid)))
	return append(content, rpid...), nil
}
