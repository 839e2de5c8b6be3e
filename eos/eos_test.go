package eos

import (
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/common"
	"github.com/anyswap/eosio-client/crypto"
)

const (
	testChainIDHex = "2a02a0053e5a8cf73a56ba0fda11e4d92e0238a4a2aa74fccf46d5a910746840"

	testWIF       = "5JmLoeJhqQaDGJ9YZvm82cFSwgqDG8x3nz1HZkN8c951u3AsP4F"
	testPubLegacy = "EOS8YPBGxcP3SBKNdUw3A3gEaHumJQGjYUtG4CNKbPqMFLQkicpJh"
	otherPub      = "EOS6xPYDUfjdvkHJZQFgaTH9ALb4ki4xDEbpHjQqD6bMQ8YUMLtoo"
)

func testBridge(t *testing.T, gateways ...string) *Bridge {
	t.Helper()
	chainID, err := common.HexToHash(testChainIDHex)
	if err != nil {
		t.Fatalf("chain id: %v", err)
	}
	contract, err := chain.NewName("eosio.token")
	if err != nil {
		t.Fatalf("contract name: %v", err)
	}
	return NewBridge(
		&ChainConfig{ChainID: chainID, TokenContract: contract},
		&GatewayConfig{APIAddress: gateways},
	)
}

func testTx(t *testing.T, expiry time.Duration) *chain.Transaction {
	t.Helper()
	from, _ := chain.NewName("alice")
	active, _ := chain.NewName("active")
	account, _ := chain.NewName("eosio.token")
	name, _ := chain.NewName("transfer")
	auth := []chain.PermissionLevel{{Actor: from, Permission: active}}
	tx := &chain.Transaction{
		Actions: []*chain.Action{chain.NewAction(account, name, auth, []byte{0x01, 0x02})},
	}
	tx.SetExpiration(expiry)
	tx.RefBlockNum = 0x1234
	tx.RefBlockPrefix = 0xaabbccdd
	return tx
}

var validAddressTests = []struct {
	address string
	valid   bool
}{
	{"alice", true},
	{"eosio.token", true},
	{"teamgreymass", true},
	{"a", true},
	{"12345abcdefg", true},
	{"", false},
	{"toolongaccountname", false},
	{"UpperCase", false},
	{"has space", false},
	{"bad6name", false},
	{"alice.", false}, // same packed value as "alice", reject the alias
	{"a..b", true},
}

func TestIsValidAddress(t *testing.T) {
	b := testBridge(t)
	for _, test := range validAddressTests {
		if b.IsValidAddress(test.address) != test.valid {
			t.Errorf("IsValidAddress(%q): got %v want %v", test.address, !test.valid, test.valid)
		}
	}
}

func TestEqualAddress(t *testing.T) {
	b := testBridge(t)
	assert.True(t, b.EqualAddress("alice", "alice"))
	assert.True(t, b.EqualAddress("alice", "alice."))
	assert.False(t, b.EqualAddress("alice", "bob"))
	assert.False(t, b.EqualAddress("alice", "not valid"))
}

func TestSignAndVerifyTransaction(t *testing.T) {
	b := testBridge(t)
	tx := testTx(t, time.Hour)

	stx, err := b.SignTransactionWithPrivateKey(tx, testWIF)
	assert.NoError(t, err)
	assert.Len(t, stx.Signatures, 1)

	expected, err := b.MsgHash(tx)
	assert.NoError(t, err)
	assert.NoError(t, b.VerifyMsgHash(stx, expected))
	assert.True(t, errors.Is(b.VerifyMsgHash(stx, common.Hash{}), ErrMsgHashMismatch))

	signer, err := crypto.NewPublicKey(testPubLegacy)
	assert.NoError(t, err)
	assert.NoError(t, b.VerifyTransaction(stx, signer))

	wrongSigner, err := crypto.NewPublicKey(otherPub)
	assert.NoError(t, err)
	assert.True(t, errors.Is(b.VerifyTransaction(stx, wrongSigner), ErrWrongSignature))
}

// corecorecore transfers 0.0042 EOS to teamgreymass with memo "lunch",
// expiring 2026-01-01T00:00:00, ref block (0x1234, 0xaabbccdd), signed
// with testWIF. Signing is deterministic, so the whole pipeline from
// packing through the rendered signature pins to fixed values.
const (
	scenarioPackedTx = "00b955693412ddccbbaa000000000100a6823403ea3055000000572d3ccdcd01a02e45ea52a42e4500000000a8ed323226a02e45ea52a42e4580b1915e5d268dca2a0000000000000004454f5300000000056c756e636800"
	scenarioDigest   = "18fb6af00158807f322710f8ebb82196abf801863c6c8159126d300865703bd4"
	scenarioSig      = "SIG_K1_JxYvoE8abHshsaJsgJn7DwdXdykiwSs5y5erZBUFnxAAsD8ghvqp28C4j1AjWiboFMUAFSHnr52yZzG6KuiWmeXhCYhzSd"
)

func TestSignTransactionFixture(t *testing.T) {
	b := testBridge(t)

	token, _ := chain.NewName("eosio.token")
	transfer, _ := chain.NewName("transfer")
	from, _ := chain.NewName("corecorecore")
	to, _ := chain.NewName("teamgreymass")
	active, _ := chain.NewName("active")
	quantity, err := chain.ParseAsset("0.0042 EOS")
	assert.NoError(t, err)

	e := chain.NewEncoder()
	assert.NoError(t, from.Marshal(e))
	assert.NoError(t, to.Marshal(e))
	assert.NoError(t, quantity.Marshal(e))
	e.WriteString("lunch")

	auth := []chain.PermissionLevel{{Actor: from, Permission: active}}
	tx := &chain.Transaction{
		Actions: []*chain.Action{chain.NewAction(token, transfer, auth, e.Bytes())},
	}
	tx.Expiration = chain.TimePointSec(1767225600)
	tx.RefBlockNum = 0x1234
	tx.RefBlockPrefix = 0xaabbccdd

	packed, err := tx.Pack()
	assert.NoError(t, err)
	assert.Equal(t, scenarioPackedTx, hex.EncodeToString(packed))

	digest, err := b.MsgHash(tx)
	assert.NoError(t, err)
	assert.Equal(t, scenarioDigest, digest.String())

	stx, err := b.SignTransactionWithPrivateKey(tx, testWIF)
	assert.NoError(t, err)
	if assert.Len(t, stx.Signatures, 1) {
		assert.Equal(t, scenarioSig, stx.Signatures[0].String())
		assert.True(t, stx.Signatures[0].IsCanonical())
	}
}

func TestVerifyTransactionExpired(t *testing.T) {
	b := testBridge(t)
	tx := testTx(t, -time.Hour)
	stx, err := b.SignTransactionWithPrivateKey(tx, testWIF)
	assert.NoError(t, err)
	assert.True(t, errors.Is(b.VerifyTransaction(stx, crypto.PublicKey{}), ErrTxExpired))
}

func TestVerifyTransactionUnsigned(t *testing.T) {
	b := testBridge(t)
	stx := chain.NewSignedTransaction(testTx(t, time.Hour))
	signer, err := crypto.NewPublicKey(testPubLegacy)
	assert.NoError(t, err)
	assert.True(t, errors.Is(b.VerifyTransaction(stx, signer), ErrWrongSignature))
}

func TestNoGateway(t *testing.T) {
	b := testBridge(t)
	_, err := b.GetInfo()
	assert.True(t, errors.Is(err, ErrNoGateway))
}

func TestGatewayFailover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chain_id": "` + testChainIDHex + `", "head_block_num": 7}`))
	}))
	defer server.Close()

	// first gateway is unreachable, the second answers
	b := testBridge(t, "http://127.0.0.1:1", server.URL)
	info, err := b.GetInfo()
	assert.NoError(t, err)
	assert.Equal(t, uint32(7), info.HeadBlockNum)
}

func TestAccountExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chain/get_account", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{
			"code": 500,
			"message": "Internal Service Error",
			"error": {"code": 0, "name": "account_query_exception", "what": "account not found", "details": []}
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	b := testBridge(t, server.URL)
	missing, _ := chain.NewName("missing")
	exists, err := b.AccountExists(missing)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestBuildTransfer(t *testing.T) {
	blockID := "000002ae00000000000000000000000000000000000000000000000000000000"

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chain/get_info", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"chain_id": "` + testChainIDHex + `",
			"head_block_num": 1000,
			"last_irreversible_block_num": 686
		}`))
	})
	mux.HandleFunc("/v1/chain/get_block", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"timestamp": "2026-01-01T00:00:00.000",
			"id": "` + blockID + `",
			"block_num": 686
		}`))
	})
	mux.HandleFunc("/v1/chain/get_abi", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"account_name": "eosio.token",
			"abi": {
				"version": "eosio::abi/1.1",
				"structs": [
					{"name": "transfer", "base": "", "fields": [
						{"name": "from", "type": "name"},
						{"name": "to", "type": "name"},
						{"name": "quantity", "type": "asset"},
						{"name": "memo", "type": "string"}
					]}
				],
				"actions": [{"name": "transfer", "type": "transfer", "ricardian_contract": ""}]
			}
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	b := testBridge(t, server.URL)
	from, _ := chain.NewName("alice")
	to, _ := chain.NewName("bob")
	quantity, err := chain.ParseAsset("1.0000 EOS")
	assert.NoError(t, err)

	tx, err := b.BuildTransfer(from, to, quantity, "hi")
	assert.NoError(t, err)
	if assert.Len(t, tx.Actions, 1) {
		assert.Equal(t, "eosio.token", tx.Actions[0].Account.String())
		assert.Equal(t, "transfer", tx.Actions[0].Name.String())
		assert.Equal(t,
			"0000000000855c340000000000000e3d102700000000000004454f5300000000026869",
			tx.Actions[0].Data.String())
	}
	// TAPOS out of block id 000002ae...: num from the head 4 bytes,
	// prefix from bytes 8..12
	assert.Equal(t, uint16(0x02ae), tx.RefBlockNum)
	assert.Equal(t, uint32(0), tx.RefBlockPrefix)
	assert.True(t, tx.Expiration.Time().After(time.Now()))

	// the registry is cached after the first fetch
	assert.Len(t, b.abiCache, 1)
}
