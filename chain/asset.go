package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Asset is a fixed-point amount of a currency. The numeric amount is
// the value scaled by 10^precision of its symbol.
type Asset struct {
	Amount int64
	Symbol Symbol
}

// NewAsset builds an asset from a raw scaled amount and symbol.
func NewAsset(amount int64, symbol Symbol) Asset {
	return Asset{Amount: amount, Symbol: symbol}
}

// ParseAsset parses the "1.0000 EOS" textual form. The number of
// digits after the decimal point determines the symbol precision.
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAsset, s)
	}
	amountStr, code := parts[0], parts[1]

	var precision int
	if dot := strings.IndexByte(amountStr, '.'); dot >= 0 {
		precision = len(amountStr) - dot - 1
		if precision == 0 {
			return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAsset, s)
		}
		amountStr = amountStr[:dot] + amountStr[dot+1:]
	}
	if precision > MaxSymbolPrecision {
		return Asset{}, ErrPrecisionTooBig
	}

	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Asset{}, ErrAmountOverflow
		}
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAsset, s)
	}

	symbol, err := NewSymbol(code, uint8(precision))
	if err != nil {
		return Asset{}, err
	}
	return Asset{Amount: amount, Symbol: symbol}, nil
}

// String renders the amount to exactly the symbol's precision followed
// by a space and the currency code.
func (a Asset) String() string {
	var sb strings.Builder
	amount := a.Amount
	if amount < 0 {
		sb.WriteByte('-')
	}
	p := int(a.Symbol.Precision)
	digits := strconv.FormatUint(absInt64(amount), 10)
	if p == 0 {
		sb.WriteString(digits)
	} else {
		if len(digits) <= p {
			digits = strings.Repeat("0", p-len(digits)+1) + digits
		}
		sb.WriteString(digits[:len(digits)-p])
		sb.WriteByte('.')
		sb.WriteString(digits[len(digits)-p:])
	}
	sb.WriteByte(' ')
	sb.WriteString(a.Symbol.Code.String())
	return sb.String()
}

// Value returns the amount as a float divided out by the precision.
// Intended for display only, not for exact arithmetic.
func (a Asset) Value() float64 {
	return float64(a.Amount) / math.Pow10(int(a.Symbol.Precision))
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// Marshal writes the signed amount then the packed symbol word.
func (a Asset) Marshal(e *Encoder) error {
	e.WriteInt64(a.Amount)
	return a.Symbol.Marshal(e)
}

// Unmarshal reads the signed amount then the packed symbol word.
// Decoding never changes the symbol precision.
func (a *Asset) Unmarshal(d *Decoder) error {
	amount, err := d.ReadInt64()
	if err != nil {
		return err
	}
	a.Amount = amount
	return a.Symbol.Unmarshal(d)
}

// MarshalJSON implements json.Marshaler.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ExtendedAsset is an asset together with the contract that issues it.
type ExtendedAsset struct {
	Quantity Asset `json:"quantity"`
	Contract Name  `json:"contract"`
}

// Marshal writes the asset then the issuing contract name.
func (ea ExtendedAsset) Marshal(e *Encoder) error {
	if err := ea.Quantity.Marshal(e); err != nil {
		return err
	}
	return ea.Contract.Marshal(e)
}

// Unmarshal reads the asset then the issuing contract name.
func (ea *ExtendedAsset) Unmarshal(d *Decoder) error {
	if err := ea.Quantity.Unmarshal(d); err != nil {
		return err
	}
	return ea.Contract.Unmarshal(d)
}
