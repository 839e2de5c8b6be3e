package crypto

// CurveType tags which signature scheme key or signature material
// belongs to. The byte value is the wire discriminant.
type CurveType byte

const (
	CurveK1 CurveType = 0 // secp256k1
	CurveR1 CurveType = 1 // secp256r1 (NIST P-256)
	CurveWA CurveType = 2 // WebAuthn wrapped secp256r1
)

const (
	// compressed curve point length for K1 and R1 keys
	publicKeyDataSize = 33
	// recovery id byte plus r and s for K1 and R1 signatures
	signatureDataSize = 65
	// raw scalar length of private keys
	privateKeyDataSize = 32

	legacyPublicKeyPrefix = "EOS"
	wifVersionByte        = 0x80
)

var curveNames = map[CurveType]string{
	CurveK1: "K1",
	CurveR1: "R1",
	CurveWA: "WA",
}

// String returns the curve name used in typed textual encodings.
func (c CurveType) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return "??"
}

// CurveFromName maps a textual curve name to its tag.
func CurveFromName(s string) (CurveType, error) {
	for c, name := range curveNames {
		if name == s {
			return c, nil
		}
	}
	return 0, ErrUnknownCurveType
}
