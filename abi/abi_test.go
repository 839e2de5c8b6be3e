package abi

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyswap/eosio-client/chain"
)

const tokenABIJSON = `{
	"version": "eosio::abi/1.1",
	"types": [
		{"new_type_name": "account_name", "type": "name"}
	],
	"structs": [
		{
			"name": "transfer",
			"base": "",
			"fields": [
				{"name": "from", "type": "account_name"},
				{"name": "to", "type": "account_name"},
				{"name": "quantity", "type": "asset"},
				{"name": "memo", "type": "string"}
			]
		},
		{
			"name": "account",
			"base": "",
			"fields": [
				{"name": "balance", "type": "asset"}
			]
		}
	],
	"actions": [
		{"name": "transfer", "type": "transfer", "ricardian_contract": ""}
	],
	"tables": [
		{"name": "accounts", "index_type": "i64", "key_names": [], "key_types": [], "type": "account"}
	]
}`

// packed arguments of transfer(alice, bob, "1.0000 EOS", "hi")
const packedTransferArgs = "0000000000855c340000000000000e3d102700000000000004454f5300000000026869"

func mustRegistry(t *testing.T, abiJSON string) *Registry {
	t.Helper()
	doc, err := ParseJSON([]byte(abiJSON))
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	reg, err := NewRegistry(doc)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func mustName(t *testing.T, s string) chain.Name {
	t.Helper()
	n, err := chain.NewName(s)
	if err != nil {
		t.Fatalf("name %q: %v", s, err)
	}
	return n
}

func TestEncodeTokenTransfer(t *testing.T) {
	reg := mustRegistry(t, tokenABIJSON)
	args := map[string]interface{}{
		"from":     "alice",
		"to":       "bob",
		"quantity": "1.0000 EOS",
		"memo":     "hi",
	}

	data, err := reg.EncodeAction(mustName(t, "transfer"), args)
	assert.NoError(t, err)
	assert.Equal(t, packedTransferArgs, hex.EncodeToString(data))

	// the action wrapper carries the same payload
	auth := []chain.PermissionLevel{{Actor: mustName(t, "alice"), Permission: mustName(t, "active")}}
	act, err := reg.NewAction(mustName(t, "eosio.token"), mustName(t, "transfer"), auth, args)
	assert.NoError(t, err)
	assert.Equal(t, "eosio.token", act.Account.String())
	assert.Equal(t, "transfer", act.Name.String())
	assert.Equal(t, packedTransferArgs, hex.EncodeToString(act.Data))
}

func TestDecodeTokenTransfer(t *testing.T) {
	reg := mustRegistry(t, tokenABIJSON)
	data, _ := hex.DecodeString(packedTransferArgs)

	v, err := reg.DecodeAction(mustName(t, "transfer"), data)
	assert.NoError(t, err)
	obj, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("decoded value is %T, want object", v)
	}
	assert.Equal(t, "alice", obj["from"])
	assert.Equal(t, "bob", obj["to"])
	assert.Equal(t, "1.0000 EOS", obj["quantity"])
	assert.Equal(t, "hi", obj["memo"])

	// trailing garbage must not be silently ignored
	_, err = reg.DecodeAction(mustName(t, "transfer"), append(data, 0x00))
	assert.True(t, errors.Is(err, ErrSizeMismatch))
}

func TestEncodeMissingField(t *testing.T) {
	reg := mustRegistry(t, tokenABIJSON)
	_, err := reg.EncodeAction(mustName(t, "transfer"), map[string]interface{}{
		"from": "alice",
		"to":   "bob",
		"memo": "hi",
	})
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestTableRowCodec(t *testing.T) {
	reg := mustRegistry(t, tokenABIJSON)
	row := map[string]interface{}{"balance": "12.3456 EOS"}

	data, err := reg.EncodeTableRow(mustName(t, "accounts"), row)
	assert.NoError(t, err)

	back, err := reg.DecodeTableRow(mustName(t, "accounts"), data)
	assert.NoError(t, err)
	assert.Equal(t, row, back)

	_, err = reg.EncodeTableRow(mustName(t, "nosuchtable"), row)
	assert.True(t, errors.Is(err, ErrUnknownTable))
	_, err = reg.EncodeAction(mustName(t, "nosuchaction"), row)
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

var valueCodecTests = []struct {
	typeName string
	value    interface{}
	hexData  string
}{
	{"bool", true, "01"},
	{"uint16", 4660, "3412"},
	{"varuint32", 300, "ac02"},
	{"varint32", -1, "01"},
	{"name", "eosio", "0000000000ea3055"},
	{"string", "hi", "026869"},
	{"symbol", "4,EOS", "04454f5300000000"},
	{"asset", "1.0000 EOS", "102700000000000004454f5300000000"},
	{"time_point_sec", "2026-01-01T00:00:00", "00b95569"},
	{"int128", "-1", "ffffffffffffffffffffffffffffffff"},
	{"uint128", "18446744073709551616", "00000000000000000100000000000000"},
	{"uint8[]", []interface{}{1, 2, 3}, "03010203"},
	{"checksum160", "ff00000000000000000000000000000000000000", "ff00000000000000000000000000000000000000"},
}

func TestEncodeValue(t *testing.T) {
	reg := mustRegistry(t, `{"version":"eosio::abi/1.1"}`)
	for _, test := range valueCodecTests {
		data, err := reg.EncodeValue(test.typeName, test.value)
		if err != nil {
			t.Errorf("encode %v %v failed: %v", test.typeName, test.value, err)
			continue
		}
		if hex.EncodeToString(data) != test.hexData {
			t.Errorf("encode %v %v: got %v want %v", test.typeName, test.value, hex.EncodeToString(data), test.hexData)
		}
	}
}

func TestDecodeInt128(t *testing.T) {
	reg := mustRegistry(t, `{"version":"eosio::abi/1.1"}`)

	allOnes, _ := hex.DecodeString("ffffffffffffffffffffffffffffffff")
	v, err := reg.DecodeValue("int128", allOnes)
	assert.NoError(t, err)
	assert.Equal(t, "-1", v)

	v, err = reg.DecodeValue("uint128", allOnes)
	assert.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", v)

	_, err = reg.EncodeValue("uint128", "-1")
	assert.True(t, errors.Is(err, ErrBadValue))
	_, err = reg.EncodeValue("int128", "170141183460469231731687303715884105728")
	assert.True(t, errors.Is(err, ErrBadValue))
}

func TestStructInheritance(t *testing.T) {
	reg := mustRegistry(t, `{
		"version": "eosio::abi/1.1",
		"structs": [
			{"name": "header", "base": "", "fields": [{"name": "id", "type": "uint8"}]},
			{"name": "row", "base": "header", "fields": [{"name": "value", "type": "uint8"}]}
		]
	}`)

	data, err := reg.EncodeValue("row", map[string]interface{}{"id": 1, "value": 2})
	assert.NoError(t, err)
	assert.Equal(t, "0102", hex.EncodeToString(data))

	v, err := reg.DecodeValue("row", data)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": uint8(1), "value": uint8(2)}, v)
}

func TestVariantCodec(t *testing.T) {
	reg := mustRegistry(t, `{
		"version": "eosio::abi/1.1",
		"variants": [{"name": "choice", "types": ["uint8", "string"]}]
	}`)

	data, err := reg.EncodeValue("choice", []interface{}{"string", "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "01026869", hex.EncodeToString(data))

	v, err := reg.DecodeValue("choice", data)
	assert.NoError(t, err)
	assert.Equal(t, []interface{}{"string", "hi"}, v)

	_, err = reg.EncodeValue("choice", []interface{}{"int64", int64(7)})
	assert.True(t, errors.Is(err, ErrVariantTag))

	_, err = reg.DecodeValue("choice", []byte{0x02, 0x00})
	assert.True(t, errors.Is(err, ErrVariantTag))
}

func TestOptionalCodec(t *testing.T) {
	reg := mustRegistry(t, `{"version":"eosio::abi/1.1"}`)

	data, err := reg.EncodeValue("string?", nil)
	assert.NoError(t, err)
	assert.Equal(t, "00", hex.EncodeToString(data))

	data, err = reg.EncodeValue("string?", "hi")
	assert.NoError(t, err)
	assert.Equal(t, "01026869", hex.EncodeToString(data))

	v, err := reg.DecodeValue("string?", data)
	assert.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = reg.DecodeValue("string?", []byte{0x00})
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = reg.DecodeValue("string?", []byte{0x02})
	assert.True(t, errors.Is(err, ErrOptionalFlag))
}

func TestBinaryExtensions(t *testing.T) {
	reg := mustRegistry(t, `{
		"version": "eosio::abi/1.1",
		"structs": [
			{
				"name": "row",
				"base": "",
				"fields": [
					{"name": "id", "type": "uint64"},
					{"name": "note", "type": "string$"},
					{"name": "flag", "type": "bool$"}
				]
			}
		]
	}`)

	// old writers stop before the extension tail; absent fields decode
	// to type defaults
	short, _ := hex.DecodeString("0100000000000000")
	v, err := reg.DecodeValue("row", short)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"id":   uint64(1),
		"note": "",
		"flag": false,
	}, v)

	partial, _ := hex.DecodeString("0100000000000000026869")
	v, err = reg.DecodeValue("row", partial)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"id":   uint64(1),
		"note": "hi",
		"flag": false,
	}, v)

	// encoding stops at the first absent extension
	data, err := reg.EncodeValue("row", map[string]interface{}{"id": 1})
	assert.NoError(t, err)
	assert.Equal(t, "0100000000000000", hex.EncodeToString(data))

	data, err = reg.EncodeValue("row", map[string]interface{}{"id": 1, "note": "hi", "flag": true})
	assert.NoError(t, err)
	assert.Equal(t, "010000000000000002686901", hex.EncodeToString(data))

	// a present extension after an absent one cannot be represented
	_, err = reg.EncodeValue("row", map[string]interface{}{"id": 1, "flag": true})
	assert.True(t, errors.Is(err, ErrExtensionOrder))
}

func TestExtensionDefaultsReencode(t *testing.T) {
	reg := mustRegistry(t, `{
		"version": "eosio::abi/1.1",
		"structs": [
			{
				"name": "row",
				"base": "",
				"fields": [
					{"name": "id", "type": "uint8"},
					{"name": "quantity", "type": "asset$"},
					{"name": "sym", "type": "symbol$"},
					{"name": "code", "type": "symbol_code$"}
				]
			}
		]
	}`)

	// the zero defaults filled for absent extensions render with empty
	// symbol codes; they must still encode, as the zero wire words
	v, err := reg.DecodeValue("row", []byte{0x07})
	assert.NoError(t, err)

	data, err := reg.EncodeValue("row", v)
	assert.NoError(t, err)
	assert.Equal(t, "07"+strings.Repeat("00", 32), hex.EncodeToString(data))
}

func TestRegistryRejectsCycles(t *testing.T) {
	doc, err := ParseJSON([]byte(`{
		"version": "eosio::abi/1.1",
		"types": [
			{"new_type_name": "a", "type": "b"},
			{"new_type_name": "b", "type": "a"}
		],
		"structs": [
			{"name": "row", "base": "", "fields": [{"name": "x", "type": "a"}]}
		]
	}`))
	assert.NoError(t, err)
	_, err = NewRegistry(doc)
	assert.True(t, errors.Is(err, ErrCyclicDefinition))

	doc, err = ParseJSON([]byte(`{
		"version": "eosio::abi/1.1",
		"structs": [
			{"name": "x", "base": "y", "fields": []},
			{"name": "y", "base": "x", "fields": []}
		]
	}`))
	assert.NoError(t, err)
	_, err = NewRegistry(doc)
	assert.True(t, errors.Is(err, ErrCyclicDefinition))
}

func TestRegistryRejectsUnknownTypes(t *testing.T) {
	doc, err := ParseJSON([]byte(`{
		"version": "eosio::abi/1.1",
		"structs": [
			{"name": "row", "base": "", "fields": [{"name": "x", "type": "wat"}]}
		]
	}`))
	assert.NoError(t, err)
	_, err = NewRegistry(doc)
	assert.True(t, errors.Is(err, ErrUnknownType))

	reg := mustRegistry(t, `{"version":"eosio::abi/1.1"}`)
	_, err = reg.EncodeValue("nope", 1)
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestABIDefBinaryRoundTrip(t *testing.T) {
	doc, err := ParseJSON([]byte(tokenABIJSON))
	assert.NoError(t, err)

	packed, err := EncodeABI(doc)
	assert.NoError(t, err)

	back, err := DecodeABI(packed)
	assert.NoError(t, err)
	assert.Equal(t, doc.Version, back.Version)
	assert.Equal(t, doc.Types, back.Types)
	assert.Equal(t, doc.Structs, back.Structs)
	assert.Equal(t, doc.Actions, back.Actions)
	assert.Equal(t, doc.Tables, back.Tables)

	// packing the decoded document reproduces the bytes exactly
	repacked, err := EncodeABI(back)
	assert.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(packed), hex.EncodeToString(repacked))
}
