package chain

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/anyswap/eosio-client/common"
	"github.com/anyswap/eosio-client/crypto"
)

// Extension is an opaque (type, data) pair used for forward compatible
// protocol growth in transactions and blocks.
type Extension struct {
	Type uint16          `json:"type"`
	Data common.HexBytes `json:"data"`
}

func (ex Extension) Marshal(e *Encoder) error {
	e.WriteUint16(ex.Type)
	e.WriteBytes(ex.Data)
	return nil
}

func (ex *Extension) Unmarshal(d *Decoder) error {
	t, err := d.ReadUint16()
	if err != nil {
		return err
	}
	ex.Type = t
	data, err := d.ReadBytes()
	if err != nil {
		return err
	}
	ex.Data = data
	return nil
}

// TransactionHeader carries expiration and the TAPOS reference block
// fields plus resource limits.
type TransactionHeader struct {
	Expiration       TimePointSec `json:"expiration"`
	RefBlockNum      uint16       `json:"ref_block_num"`
	RefBlockPrefix   uint32       `json:"ref_block_prefix"`
	MaxNetUsageWords uint32       `json:"max_net_usage_words"`
	MaxCPUUsageMS    uint8        `json:"max_cpu_usage_ms"`
	DelaySec         uint32       `json:"delay_sec"`
}

func (h *TransactionHeader) Marshal(e *Encoder) error {
	if err := h.Expiration.Marshal(e); err != nil {
		return err
	}
	e.WriteUint16(h.RefBlockNum)
	e.WriteUint32(h.RefBlockPrefix)
	e.WriteVarUint32(h.MaxNetUsageWords)
	e.WriteUint8(h.MaxCPUUsageMS)
	e.WriteVarUint32(h.DelaySec)
	return nil
}

func (h *TransactionHeader) Unmarshal(d *Decoder) error {
	if err := h.Expiration.Unmarshal(d); err != nil {
		return err
	}
	var err error
	if h.RefBlockNum, err = d.ReadUint16(); err != nil {
		return err
	}
	if h.RefBlockPrefix, err = d.ReadUint32(); err != nil {
		return err
	}
	if h.MaxNetUsageWords, err = d.ReadVarUint32(); err != nil {
		return err
	}
	if h.MaxCPUUsageMS, err = d.ReadUint8(); err != nil {
		return err
	}
	h.DelaySec, err = d.ReadVarUint32()
	return err
}

// SetExpiration sets the expiry a duration from now, truncated to
// whole seconds.
func (h *TransactionHeader) SetExpiration(in time.Duration) {
	h.Expiration = TimePointSecFromTime(time.Now().Add(in))
}

// SetRefBlock fills the TAPOS fields from a 32 byte block id: the low
// 16 bits of the big-endian block number at the head of the id, and
// the little-endian word at offset 8.
func (h *TransactionHeader) SetRefBlock(blockID []byte) error {
	if len(blockID) != 32 {
		return fmt.Errorf("block id must be 32 bytes, got %v", len(blockID))
	}
	h.RefBlockNum = uint16(binary.BigEndian.Uint32(blockID[:4]))
	h.RefBlockPrefix = binary.LittleEndian.Uint32(blockID[8:12])
	return nil
}

// Transaction is a signable unit of chain state change: the header,
// then both action lists, then extensions, each list var-uint count
// prefixed.
type Transaction struct {
	TransactionHeader
	ContextFreeActions []*Action   `json:"context_free_actions"`
	Actions            []*Action   `json:"actions"`
	Extensions         []Extension `json:"transaction_extensions"`
}

func (tx *Transaction) Marshal(e *Encoder) error {
	if err := tx.TransactionHeader.Marshal(e); err != nil {
		return err
	}
	if err := marshalActions(e, tx.ContextFreeActions); err != nil {
		return err
	}
	if err := marshalActions(e, tx.Actions); err != nil {
		return err
	}
	e.WriteVarUint32(uint32(len(tx.Extensions)))
	for i := range tx.Extensions {
		if err := tx.Extensions[i].Marshal(e); err != nil {
			return err
		}
	}
	return nil
}

func marshalActions(e *Encoder, actions []*Action) error {
	e.WriteVarUint32(uint32(len(actions)))
	for _, act := range actions {
		if err := act.Marshal(e); err != nil {
			return err
		}
	}
	return nil
}

func (tx *Transaction) Unmarshal(d *Decoder) error {
	if err := tx.TransactionHeader.Unmarshal(d); err != nil {
		return err
	}
	var err error
	if tx.ContextFreeActions, err = unmarshalActions(d); err != nil {
		return err
	}
	if tx.Actions, err = unmarshalActions(d); err != nil {
		return err
	}
	count, err := d.ReadVarUint32()
	if err != nil {
		return err
	}
	// type word plus an empty data prefix is the smallest extension
	if uint64(d.Remaining()) < uint64(count)*3 {
		return ErrUnexpectedEOF
	}
	tx.Extensions = make([]Extension, count)
	for i := range tx.Extensions {
		if err := tx.Extensions[i].Unmarshal(d); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalActions(d *Decoder) ([]*Action, error) {
	count, err := d.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	// two names plus two empty list prefixes is the smallest action
	if uint64(d.Remaining()) < uint64(count)*18 {
		return nil, ErrUnexpectedEOF
	}
	actions := make([]*Action, count)
	for i := range actions {
		actions[i] = new(Action)
		if err := actions[i].Unmarshal(d); err != nil {
			return nil, err
		}
	}
	return actions, nil
}

// Pack returns the canonical binary form of the transaction.
func (tx *Transaction) Pack() ([]byte, error) {
	e := NewEncoder()
	if err := tx.Marshal(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// ID is the transaction id: the sha256 of the packed transaction,
// signatures excluded.
func (tx *Transaction) ID() (common.Hash, error) {
	packed, err := tx.Pack()
	if err != nil {
		return common.Hash{}, err
	}
	return common.Sha256Hash(packed), nil
}

// SignedTransaction couples a transaction with the signatures over it
// and any context free data blobs.
type SignedTransaction struct {
	*Transaction
	Signatures      []crypto.Signature `json:"signatures"`
	ContextFreeData []common.HexBytes  `json:"context_free_data"`
}

// NewSignedTransaction wraps tx with empty signature lists.
func NewSignedTransaction(tx *Transaction) *SignedTransaction {
	return &SignedTransaction{Transaction: tx}
}

// CompressionType selects how a packed transaction is compressed.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0
	CompressionZlib CompressionType = 1
)

func (c CompressionType) String() string {
	if c == CompressionZlib {
		return "zlib"
	}
	return "none"
}

// PackedTransaction is the wire/JSON shape push_transaction consumes.
type PackedTransaction struct {
	Signatures      []crypto.Signature `json:"signatures"`
	Compression     string             `json:"compression"`
	PackedCFD       common.HexBytes    `json:"packed_context_free_data"`
	PackedTrx       common.HexBytes    `json:"packed_trx"`
}

// Pack serializes and optionally compresses the signed transaction.
func (stx *SignedTransaction) Pack(compression CompressionType) (*PackedTransaction, error) {
	rawTrx, err := stx.Transaction.Pack()
	if err != nil {
		return nil, err
	}
	var rawCFD []byte
	if len(stx.ContextFreeData) > 0 {
		e := NewEncoder()
		e.WriteVarUint32(uint32(len(stx.ContextFreeData)))
		for _, blob := range stx.ContextFreeData {
			e.WriteBytes(blob)
		}
		rawCFD = e.Bytes()
	}
	if compression == CompressionZlib {
		if rawTrx, err = zlibCompress(rawTrx); err != nil {
			return nil, err
		}
		if len(rawCFD) > 0 {
			if rawCFD, err = zlibCompress(rawCFD); err != nil {
				return nil, err
			}
		}
	}
	return &PackedTransaction{
		Signatures:  stx.Signatures,
		Compression: compression.String(),
		PackedCFD:   rawCFD,
		PackedTrx:   rawTrx,
	}, nil
}

// Unpack reverses Pack, decompressing when necessary.
func (ptx *PackedTransaction) Unpack() (*SignedTransaction, error) {
	rawTrx := []byte(ptx.PackedTrx)
	rawCFD := []byte(ptx.PackedCFD)
	if ptx.Compression == CompressionZlib.String() {
		var err error
		if rawTrx, err = zlibDecompress(rawTrx); err != nil {
			return nil, err
		}
		if len(rawCFD) > 0 {
			if rawCFD, err = zlibDecompress(rawCFD); err != nil {
				return nil, err
			}
		}
	}
	tx := new(Transaction)
	if err := tx.Unmarshal(NewDecoder(rawTrx)); err != nil {
		return nil, err
	}
	stx := &SignedTransaction{Transaction: tx, Signatures: ptx.Signatures}
	if len(rawCFD) > 0 {
		d := NewDecoder(rawCFD)
		count, err := d.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		if uint64(d.Remaining()) < uint64(count) {
			return nil, ErrUnexpectedEOF
		}
		stx.ContextFreeData = make([]common.HexBytes, count)
		for i := range stx.ContextFreeData {
			blob, err := d.ReadBytes()
			if err != nil {
				return nil, err
			}
			stx.ContextFreeData[i] = blob
		}
	}
	return stx, nil
}

func zlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zlibDecompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()
	out, err := ioutil.ReadAll(r)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return out, nil
}
