package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolCode(t *testing.T) {
	sc, err := NewSymbolCode("EOS")
	assert.Nil(t, err)
	assert.Equal(t, SymbolCode(0x534f45), sc)
	assert.Equal(t, "EOS", sc.String())

	sc, err = NewSymbolCode("JUNGLE")
	assert.Nil(t, err)
	assert.Equal(t, SymbolCode(0x454c474e554a), sc)

	for _, bad := range []string{"", "eos", "1EOS", "TOOLONGS", "EO-S"} {
		_, err := NewSymbolCode(bad)
		assert.True(t, errors.Is(err, ErrInvalidSymbol), "code %q", bad)
	}
}

func TestSymbolPacking(t *testing.T) {
	s, err := ParseSymbol("4,EOS")
	assert.Nil(t, err)
	assert.Equal(t, uint8(4), s.Precision)
	assert.Equal(t, uint64(0x534f4504), s.Uint64())
	assert.Equal(t, "4,EOS", s.String())
	assert.Equal(t, s, SymbolFromUint64(s.Uint64()))

	_, err = ParseSymbol("17,EOS")
	assert.True(t, errors.Is(err, ErrPrecisionTooBig))
	_, err = ParseSymbol("EOS")
	assert.True(t, errors.Is(err, ErrInvalidSymbol))
	_, err = ParseSymbol("x,EOS")
	assert.True(t, errors.Is(err, ErrInvalidSymbol))
}

type assetTest struct {
	str       string
	amount    int64
	precision uint8
	code      string
}

var assetTests = []assetTest{
	{"1.0000 EOS", 10000, 4, "EOS"},
	{"100200.0000 JUNGLE", 1002000000, 4, "JUNGLE"},
	{"0.001 TST", 1, 3, "TST"},
	{"-5.00 ABC", -500, 2, "ABC"},
	{"42 NODEC", 42, 0, "NODEC"},
	{"-0.0001 EOS", -1, 4, "EOS"},
}

func TestParseAsset(t *testing.T) {
	for _, test := range assetTests {
		a, err := ParseAsset(test.str)
		if err != nil {
			t.Fatalf("asset %q: %v", test.str, err)
		}
		if a.Amount != test.amount {
			t.Errorf("asset %q: amount %v, want %v", test.str, a.Amount, test.amount)
		}
		if a.Symbol.Precision != test.precision {
			t.Errorf("asset %q: precision %v, want %v", test.str, a.Symbol.Precision, test.precision)
		}
		if a.Symbol.Code.String() != test.code {
			t.Errorf("asset %q: code %v, want %v", test.str, a.Symbol.Code, test.code)
		}
		// rendering is the exact inverse
		if have := a.String(); have != test.str {
			t.Errorf("asset %q: renders as %q", test.str, have)
		}
	}
}

func TestParseAssetErrors(t *testing.T) {
	for _, bad := range []string{"", "1.0000", "1.0000EOS", "1.0000 eos", "1. EOS", "x.0000 EOS"} {
		_, err := ParseAsset(bad)
		assert.NotNil(t, err, "asset %q", bad)
	}
	_, err := ParseAsset("0.00000000000000001 EOS")
	assert.True(t, errors.Is(err, ErrPrecisionTooBig))
	_, err = ParseAsset("92233720368547758.08 EOS")
	assert.True(t, errors.Is(err, ErrAmountOverflow))
}

func TestAssetCodec(t *testing.T) {
	a, err := ParseAsset("1.0000 EOS")
	assert.Nil(t, err)

	e := NewEncoder()
	assert.Nil(t, a.Marshal(e))
	assert.Equal(t, []byte{
		0x10, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x04, 0x45, 0x4f, 0x53, 0x00, 0x00, 0x00, 0x00,
	}, e.Bytes())

	var back Asset
	assert.Nil(t, back.Unmarshal(NewDecoder(e.Bytes())))
	assert.Equal(t, a, back)
	assert.InDelta(t, 1.0, back.Value(), 1e-9)
}

func TestExtendedAssetCodec(t *testing.T) {
	contract, _ := NewName("eosio.token")
	quantity, _ := ParseAsset("-2.5000 EOS")
	ea := ExtendedAsset{Quantity: quantity, Contract: contract}

	e := NewEncoder()
	assert.Nil(t, ea.Marshal(e))

	var back ExtendedAsset
	assert.Nil(t, back.Unmarshal(NewDecoder(e.Bytes())))
	assert.Equal(t, ea, back)
}
