package chain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxSymbolPrecision is the largest representable decimal precision.
const MaxSymbolPrecision = 16

// SymbolCode is a currency code of 1 to 7 characters from [A-Z0-9]
// starting with a letter, packed into the low 7 bytes of a uint64.
type SymbolCode uint64

// NewSymbolCode validates and packs a currency code string.
func NewSymbolCode(s string) (SymbolCode, error) {
	if !isValidSymbolCode(s) {
		return 0, ErrInvalidSymbol
	}
	var v uint64
	for i := len(s) - 1; i >= 0; i-- {
		v = v<<8 | uint64(s[i])
	}
	return SymbolCode(v), nil
}

func isValidSymbolCode(s string) bool {
	if len(s) < 1 || len(s) > 7 {
		return false
	}
	if !(s[0] >= 'A' && s[0] <= 'Z') {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// String unpacks the code characters, stopping at the first zero byte.
func (sc SymbolCode) String() string {
	var sb strings.Builder
	v := uint64(sc)
	for v != 0 {
		sb.WriteByte(byte(v & 0xff))
		v >>= 8
	}
	return sb.String()
}

// Marshal writes the code as a little-endian uint64.
func (sc SymbolCode) Marshal(e *Encoder) error {
	e.WriteUint64(uint64(sc))
	return nil
}

// Unmarshal reads the code from a little-endian uint64.
func (sc *SymbolCode) Unmarshal(d *Decoder) error {
	v, err := d.ReadUint64()
	if err != nil {
		return err
	}
	*sc = SymbolCode(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (sc SymbolCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(sc.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (sc *SymbolCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewSymbolCode(s)
	if err != nil {
		return err
	}
	*sc = parsed
	return nil
}

// Symbol is a currency denomination: a code plus the number of decimal
// places amounts of it carry. The packed form has the precision in the
// low byte and the right-zero-padded ASCII code in the upper 7 bytes.
type Symbol struct {
	Precision uint8
	Code      SymbolCode
}

// NewSymbol builds a symbol from a code string and precision.
func NewSymbol(code string, precision uint8) (Symbol, error) {
	if precision > MaxSymbolPrecision {
		return Symbol{}, ErrPrecisionTooBig
	}
	sc, err := NewSymbolCode(code)
	if err != nil {
		return Symbol{}, err
	}
	return Symbol{Precision: precision, Code: sc}, nil
}

// ParseSymbol parses the "4,EOS" textual form.
func ParseSymbol(s string) (Symbol, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	precision, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	return NewSymbol(parts[1], uint8(precision))
}

// SymbolFromUint64 unpacks the binary symbol word.
func SymbolFromUint64(v uint64) Symbol {
	return Symbol{Precision: uint8(v & 0xff), Code: SymbolCode(v >> 8)}
}

// Uint64 packs precision and code into the binary symbol word.
func (s Symbol) Uint64() uint64 {
	return uint64(s.Code)<<8 | uint64(s.Precision)
}

// String returns the "4,EOS" textual form.
func (s Symbol) String() string {
	return strconv.FormatUint(uint64(s.Precision), 10) + "," + s.Code.String()
}

// Marshal writes the packed symbol word little-endian.
func (s Symbol) Marshal(e *Encoder) error {
	e.WriteUint64(s.Uint64())
	return nil
}

// Unmarshal reads the packed symbol word.
func (s *Symbol) Unmarshal(d *Decoder) error {
	v, err := d.ReadUint64()
	if err != nil {
		return err
	}
	*s = SymbolFromUint64(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSymbol(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
