package chain

import (
	"errors"
)

// common errors
var (
	ErrUnexpectedEOF    = errors.New("unexpected end of data")
	ErrVarIntOverflow   = errors.New("varint overflows 32 bit unsigned integer")
	ErrNameTooLong      = errors.New("name string is longer than 13 characters")
	ErrInvalidNameChar  = errors.New("invalid character in name string")
	ErrInvalidSymbol    = errors.New("invalid symbol code")
	ErrPrecisionTooBig  = errors.New("symbol precision exceeds 16")
	ErrInvalidAsset     = errors.New("invalid asset string")
	ErrAmountOverflow   = errors.New("asset amount overflows 64 bit integer")
	ErrInvalidTimestamp = errors.New("invalid timestamp string")
	ErrInvalidChecksum  = errors.New("invalid checksum hex string")
)
