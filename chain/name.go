package chain

import (
	"encoding/json"
	"strings"
)

// nameAlphabet is the 32 symbol base32 alphabet of account names.
// Index in this string is the 5 bit value of the character.
const nameAlphabet = ".12345abcdefghijklmnopqrstuvwxyz"

// Name is an account, action, permission or table identifier packed
// into 64 bits. The string form is at most 13 characters; the 13th
// character only carries 4 bits and is therefore restricted to the
// first 16 alphabet symbols.
type Name uint64

// NewName converts a name string to its numeric form.
func NewName(s string) (Name, error) {
	v, err := StringToName(s)
	if err != nil {
		return 0, err
	}
	return Name(v), nil
}

// NameFromUint64 wraps a raw numeric name.
func NameFromUint64(v uint64) Name {
	return Name(v)
}

// Uint64 returns the packed numeric value.
func (n Name) Uint64() uint64 {
	return uint64(n)
}

// String returns the textual form with trailing filler dots removed.
func (n Name) String() string {
	return NameToString(uint64(n))
}

// IsEmpty returns true for the zero name.
func (n Name) IsEmpty() bool {
	return n == 0
}

// Marshal writes the name as a little-endian uint64.
func (n Name) Marshal(e *Encoder) error {
	e.WriteUint64(uint64(n))
	return nil
}

// Unmarshal reads the name from a little-endian uint64.
func (n *Name) Unmarshal(d *Decoder) error {
	v, err := d.ReadUint64()
	if err != nil {
		return err
	}
	*n = Name(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Name) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func charToSymbol(c byte) (uint64, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 6, true
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 1, true
	case c == '.':
		return 0, true
	default:
		return 0, false
	}
}

// StringToName packs a name string into 64 bits. Each of the first 12
// characters contributes 5 bits from the high end of the word; a 13th
// character contributes only its low 4 bits.
func StringToName(s string) (uint64, error) {
	if len(s) > 13 {
		return 0, ErrNameTooLong
	}
	var value uint64
	for i := 0; i < len(s); i++ {
		c, ok := charToSymbol(s[i])
		if !ok {
			return 0, ErrInvalidNameChar
		}
		if i < 12 {
			value |= (c & 0x1f) << uint(64-5*(i+1))
		} else {
			if c > 0x0f {
				return 0, ErrInvalidNameChar
			}
			value |= c
		}
	}
	return value, nil
}

// NameToString unpacks a 64 bit name into its textual form.
func NameToString(value uint64) string {
	var out [13]byte
	tmp := value
	for i := 0; i <= 12; i++ {
		var c byte
		if i == 0 {
			c = nameAlphabet[tmp&0x0f]
			tmp >>= 4
		} else {
			c = nameAlphabet[tmp&0x1f]
			tmp >>= 5
		}
		out[12-i] = c
	}
	return strings.TrimRight(string(out[:]), ".")
}
