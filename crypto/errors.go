package crypto

import (
	"errors"
)

// common errors
var (
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrInvalidBase58    = errors.New("invalid base58 string")
	ErrUnknownCurveType = errors.New("unknown curve type")
	ErrInvalidKeyFormat = errors.New("invalid key string format")
	ErrInvalidKeyLength = errors.New("invalid key material length")
	ErrInvalidSignature = errors.New("invalid signature material")
	ErrUnsupportedCurve = errors.New("operation not supported for this curve type")
	ErrRecoverFailed    = errors.New("public key recovery failed")
	ErrInvalidWAPayload = errors.New("invalid webauthn payload")
)
