// Package client talks to a nodeos style HTTP API (the v1/chain
// endpoints a transaction builder needs).
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/anyswap/eosio-client/abi"
	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/log"
)

const defaultTimeout = 20 * time.Second

// Client posts JSON requests against a single API gateway.
type Client struct {
	url  string
	rest *resty.Client
}

// NewClient builds a client for the given gateway base URL, eg.
// "https://eos.greymass.com".
func NewClient(url string) *Client {
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}
	return &Client{
		url:  url,
		rest: resty.New().SetTimeout(defaultTimeout),
	}
}

// URL returns the gateway base URL.
func (c *Client) URL() string {
	return c.url
}

func (c *Client) post(path string, req, result interface{}) error {
	r := c.rest.R()
	if req != nil {
		r = r.SetHeader("Content-Type", "application/json").SetBody(req)
	}
	resp, err := r.Post(c.url + path)
	if err != nil {
		log.Warn("api request error", "url", c.url, "path", path, "err", err)
		return err
	}
	if resp.StatusCode() >= 300 {
		apiErr := new(APIError)
		if jsonErr := json.Unmarshal(resp.Body(), apiErr); jsonErr != nil || apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode()
			apiErr.Message = resp.Status()
		}
		return apiErr
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(resp.Body(), result)
}

// GetInfo calls get_info.
func (c *Client) GetInfo() (*InfoResp, error) {
	out := new(InfoResp)
	if err := c.post("/v1/chain/get_info", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBlock calls get_block with a block number or id.
func (c *Client) GetBlock(numOrID string) (*BlockResp, error) {
	out := new(BlockResp)
	req := map[string]string{"block_num_or_id": numOrID}
	if err := c.post("/v1/chain/get_block", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAccount calls get_account.
func (c *Client) GetAccount(account chain.Name) (*AccountResp, error) {
	out := new(AccountResp)
	req := map[string]string{"account_name": account.String()}
	if err := c.post("/v1/chain/get_account", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetABI calls get_abi and parses the contract interface document.
func (c *Client) GetABI(account chain.Name) (*abi.ABI, error) {
	var out struct {
		AccountName chain.Name      `json:"account_name"`
		ABI         json.RawMessage `json:"abi"`
	}
	req := map[string]string{"account_name": account.String()}
	if err := c.post("/v1/chain/get_abi", req, &out); err != nil {
		return nil, err
	}
	if len(out.ABI) == 0 || string(out.ABI) == "null" {
		return nil, fmt.Errorf("%w: %v", ErrNoABI, account)
	}
	return abi.ParseJSON(out.ABI)
}

// GetRawABI calls get_raw_abi. The returned document is the binary
// abi_def form, decodable with abi.DecodeABI.
func (c *Client) GetRawABI(account chain.Name) (*RawABIResp, error) {
	out := new(RawABIResp)
	req := map[string]string{"account_name": account.String()}
	if err := c.post("/v1/chain/get_raw_abi", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTableRows calls get_table_rows.
func (c *Client) GetTableRows(req *TableRowsReq) (*TableRowsResp, error) {
	out := new(TableRowsResp)
	if err := c.post("/v1/chain/get_table_rows", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCurrencyBalance calls get_currency_balance. Each entry is an
// asset string like "1.0000 EOS". Symbol may be empty for all symbols.
func (c *Client) GetCurrencyBalance(account chain.Name, contract chain.Name, symbol string) ([]chain.Asset, error) {
	req := map[string]string{
		"account": account.String(),
		"code":    contract.String(),
	}
	if symbol != "" {
		req["symbol"] = symbol
	}
	var raw []string
	if err := c.post("/v1/chain/get_currency_balance", req, &raw); err != nil {
		return nil, err
	}
	balances := make([]chain.Asset, 0, len(raw))
	for _, s := range raw {
		a, err := chain.ParseAsset(s)
		if err != nil {
			return nil, err
		}
		balances = append(balances, a)
	}
	return balances, nil
}

// GetRequiredKeys calls get_required_keys.
func (c *Client) GetRequiredKeys(trx *chain.Transaction, available []string) (*RequiredKeysResp, error) {
	out := new(RequiredKeysResp)
	req := &RequiredKeysReq{Transaction: trx, AvailableKeys: available}
	if err := c.post("/v1/chain/get_required_keys", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PushTransaction calls push_transaction with a packed transaction.
func (c *Client) PushTransaction(packed *chain.PackedTransaction) (*PushTransactionResp, error) {
	out := new(PushTransactionResp)
	if err := c.post("/v1/chain/push_transaction", packed, out); err != nil {
		return nil, err
	}
	return out, nil
}
