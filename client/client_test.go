package client

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyswap/eosio-client/chain"
)

const testChainID = "2a02a0053e5a8cf73a56ba0fda11e4d92e0238a4a2aa74fccf46d5a910746840"

func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, handler := range handlers {
		mux.HandleFunc(path, handler)
	}
	return httptest.NewServer(mux)
}

func TestNewClientTrimsURL(t *testing.T) {
	c := NewClient("http://localhost:8888///")
	assert.Equal(t, "http://localhost:8888", c.URL())
}

func TestGetInfo(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_info": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{
				"server_version": "deadbeef",
				"chain_id": "` + testChainID + `",
				"head_block_num": 1000,
				"last_irreversible_block_num": 670,
				"last_irreversible_block_id": "000002ae0000000000000000000000000000000000000000000000000000aabb",
				"head_block_time": "2026-01-01T00:00:00.000",
				"head_block_producer": "eosio"
			}`))
		},
	})
	defer server.Close()

	info, err := NewClient(server.URL).GetInfo()
	assert.NoError(t, err)
	assert.Equal(t, testChainID, info.ChainID.String())
	assert.Equal(t, uint32(1000), info.HeadBlockNum)
	assert.Equal(t, uint32(670), info.LastIrreversibleBlockNum)
	assert.Equal(t, "eosio", info.HeadBlockProducer)
}

func TestGetBlock(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_block": func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			var req map[string]string
			assert.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "670", req["block_num_or_id"])
			w.Write([]byte(`{
				"timestamp": "2026-01-01T00:00:00.000",
				"producer": "eosio",
				"id": "000002ae0000000000000000000000000000000000000000000000000000aabb",
				"block_num": 670,
				"ref_block_prefix": 12345
			}`))
		},
	})
	defer server.Close()

	block, err := NewClient(server.URL).GetBlock("670")
	assert.NoError(t, err)
	assert.Equal(t, uint32(670), block.BlockNum)
	assert.Equal(t, uint32(12345), block.RefBlockPrefix)
	assert.Equal(t, "000002ae0000000000000000000000000000000000000000000000000000aabb", block.ID.String())
}

func TestGetCurrencyBalance(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_currency_balance": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`["1.0000 EOS", "0.5000 JUNGLE"]`))
		},
	})
	defer server.Close()

	account, _ := chain.NewName("alice")
	contract, _ := chain.NewName("eosio.token")
	balances, err := NewClient(server.URL).GetCurrencyBalance(account, contract, "")
	assert.NoError(t, err)
	if assert.Len(t, balances, 2) {
		assert.Equal(t, "1.0000 EOS", balances[0].String())
		assert.Equal(t, "0.5000 JUNGLE", balances[1].String())
	}
}

func TestGetRawABI(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_raw_abi": func(w http.ResponseWriter, r *http.Request) {
			// base64 of 0xdeadbeef
			w.Write([]byte(`{"account_name": "eosio.token", "abi": "3q2+7w=="}`))
		},
	})
	defer server.Close()

	account, _ := chain.NewName("eosio.token")
	resp, err := NewClient(server.URL).GetRawABI(account)
	assert.NoError(t, err)
	assert.Equal(t, "eosio.token", resp.AccountName.String())
	assert.Equal(t, "deadbeef", hex.EncodeToString(resp.ABI))
}

func TestGetABIMissing(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_abi": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"account_name": "alice"}`))
		},
	})
	defer server.Close()

	account, _ := chain.NewName("alice")
	_, err := NewClient(server.URL).GetABI(account)
	assert.True(t, errors.Is(err, ErrNoABI))
}

func TestPushTransaction(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/push_transaction": func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			var req map[string]interface{}
			assert.NoError(t, json.Unmarshal(body, &req))
			assert.Contains(t, req, "packed_trx")
			w.Write([]byte(`{"transaction_id": "0123abcd", "processed": {}}`))
		},
	})
	defer server.Close()

	packed, err := chain.NewSignedTransaction(new(chain.Transaction)).Pack(chain.CompressionNone)
	assert.NoError(t, err)
	resp, err := NewClient(server.URL).PushTransaction(packed)
	assert.NoError(t, err)
	assert.Equal(t, "0123abcd", resp.TransactionID)
}

func TestAPIErrorEnvelope(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_account": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{
				"code": 500,
				"message": "Internal Service Error",
				"error": {
					"code": 3010001,
					"name": "name_query_exception",
					"what": "Name Query Exception",
					"details": [
						{"message": "Failed to retrieve account", "file": "chain_plugin.cpp", "line_number": 1234, "method": "get_account"}
					]
				}
			}`))
		},
	})
	defer server.Close()

	account, _ := chain.NewName("missing")
	_, err := NewClient(server.URL).GetAccount(account)
	if err == nil {
		t.Fatal("expected an api error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	assert.Equal(t, 500, apiErr.Code)
	assert.Equal(t, 3010001, apiErr.Err.Code)
	assert.Equal(t, "name_query_exception", apiErr.Err.Name)
	assert.Contains(t, apiErr.Error(), "Failed to retrieve account")
	assert.True(t, IsAPIErrorName(err, "name_query_exception"))
	assert.False(t, IsAPIErrorName(err, "tx_duplicate"))
}

func TestAPIErrorUnparseableBody(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_info": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream gone"))
		},
	})
	defer server.Close()

	_, err := NewClient(server.URL).GetInfo()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	assert.Equal(t, http.StatusBadGateway, apiErr.Code)
}

func TestGetTableRows(t *testing.T) {
	server := newTestServer(t, map[string]http.HandlerFunc{
		"/v1/chain/get_table_rows": func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			var req TableRowsReq
			assert.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "eosio.token", req.Code)
			assert.True(t, req.JSON)
			w.Write([]byte(`{"rows": [{"balance": "1.0000 EOS"}], "more": false}`))
		},
	})
	defer server.Close()

	resp, err := NewClient(server.URL).GetTableRows(&TableRowsReq{
		Code:  "eosio.token",
		Scope: "alice",
		Table: "accounts",
		JSON:  true,
	})
	assert.NoError(t, err)
	assert.False(t, resp.More)
	if assert.Len(t, resp.Rows, 1) {
		var row map[string]string
		assert.NoError(t, json.Unmarshal(resp.Rows[0], &row))
		assert.Equal(t, "1.0000 EOS", row["balance"])
	}
}
