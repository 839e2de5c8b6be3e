package client

import (
	"encoding/base64"
	"encoding/json"

	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/common"
)

// InfoResp is the get_info response.
type InfoResp struct {
	ServerVersion            string             `json:"server_version"`
	ChainID                  common.Hash        `json:"chain_id"`
	HeadBlockNum             uint32             `json:"head_block_num"`
	LastIrreversibleBlockNum uint32             `json:"last_irreversible_block_num"`
	LastIrreversibleBlockID  common.HexBytes    `json:"last_irreversible_block_id"`
	HeadBlockID              common.HexBytes    `json:"head_block_id"`
	HeadBlockTime            chain.TimePointSec `json:"head_block_time"`
	HeadBlockProducer        string             `json:"head_block_producer"`
	VirtualBlockCPULimit     uint64             `json:"virtual_block_cpu_limit"`
	VirtualBlockNetLimit     uint64             `json:"virtual_block_net_limit"`
	BlockCPULimit            uint64             `json:"block_cpu_limit"`
	BlockNetLimit            uint64             `json:"block_net_limit"`
	ServerVersionString      string             `json:"server_version_string"`
}

// BlockResp is the subset of get_block used for TAPOS fields.
type BlockResp struct {
	Timestamp      chain.BlockTimestamp `json:"timestamp"`
	Producer       string               `json:"producer"`
	Confirmed      uint16               `json:"confirmed"`
	Previous       common.HexBytes      `json:"previous"`
	ID             common.HexBytes      `json:"id"`
	BlockNum       uint32               `json:"block_num"`
	RefBlockPrefix uint32               `json:"ref_block_prefix"`
}

// AccountResp is the subset of get_account this client consumes.
type AccountResp struct {
	AccountName       chain.Name          `json:"account_name"`
	HeadBlockNum      uint32              `json:"head_block_num"`
	Created           chain.TimePointSec  `json:"created"`
	Privileged        bool                `json:"privileged"`
	RAMQuota          int64               `json:"ram_quota"`
	RAMUsage          int64               `json:"ram_usage"`
	NetWeight         int64               `json:"net_weight"`
	CPUWeight         int64               `json:"cpu_weight"`
	Permissions       []AccountPermission `json:"permissions"`
	CoreLiquidBalance string              `json:"core_liquid_balance,omitempty"`
}

// AccountPermission describes one authority entry of get_account.
type AccountPermission struct {
	PermName     string          `json:"perm_name"`
	Parent       string          `json:"parent"`
	RequiredAuth json.RawMessage `json:"required_auth"`
}

// RawABIResp is the get_raw_abi response. ABI carries the binary
// abi_def document base64 encoded.
type RawABIResp struct {
	AccountName chain.Name  `json:"account_name"`
	CodeHash    common.Hash `json:"code_hash"`
	ABIHash     common.Hash `json:"abi_hash"`
	ABI         Base64Bytes `json:"abi"`
}

// Base64Bytes is a byte slice carried as base64 in node JSON.
type Base64Bytes []byte

// MarshalJSON implements json.Marshaler.
func (b Base64Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Base64Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// TableRowsReq is the get_table_rows request body.
type TableRowsReq struct {
	Code          string `json:"code"`
	Scope         string `json:"scope"`
	Table         string `json:"table"`
	LowerBound    string `json:"lower_bound,omitempty"`
	UpperBound    string `json:"upper_bound,omitempty"`
	Limit         uint32 `json:"limit,omitempty"`
	KeyType       string `json:"key_type,omitempty"`
	IndexPosition string `json:"index_position,omitempty"`
	JSON          bool   `json:"json"`
	Reverse       bool   `json:"reverse,omitempty"`
}

// TableRowsResp carries rows either as JSON objects or packed hex,
// depending on the request's JSON flag.
type TableRowsResp struct {
	Rows    []json.RawMessage `json:"rows"`
	More    bool              `json:"more"`
	NextKey string            `json:"next_key,omitempty"`
}

// RequiredKeysReq is the get_required_keys request body.
type RequiredKeysReq struct {
	Transaction   *chain.Transaction `json:"transaction"`
	AvailableKeys []string           `json:"available_keys"`
}

// RequiredKeysResp is the get_required_keys response.
type RequiredKeysResp struct {
	RequiredKeys []string `json:"required_keys"`
}

// PushTransactionResp is the push_transaction response. Processed is
// kept raw, callers only need the id and error envelope.
type PushTransactionResp struct {
	TransactionID string          `json:"transaction_id"`
	Processed     json.RawMessage `json:"processed"`
}
