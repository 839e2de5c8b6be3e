// Package abi implements the contract interface description driven
// codec: given an ABI document it resolves type name expressions into
// encode/decode plans and converts dynamically typed values to and
// from the canonical binary wire form.
package abi

import (
	"encoding/json"

	"github.com/anyswap/eosio-client/chain"
)

// TypeDef aliases an existing type under a new name.
type TypeDef struct {
	NewTypeName string `json:"new_type_name"`
	Type        string `json:"type"`
}

// Field is one named, typed struct member.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// StructDef describes a structured type, optionally inheriting the
// fields of a base struct which encode before its own.
type StructDef struct {
	Name   string  `json:"name"`
	Base   string  `json:"base"`
	Fields []Field `json:"fields"`
}

// ActionDef binds an action name to the struct type of its arguments.
type ActionDef struct {
	Name              chain.Name `json:"name"`
	Type              string     `json:"type"`
	RicardianContract string     `json:"ricardian_contract"`
}

// TableDef binds a table name to its row type and index description.
type TableDef struct {
	Name      chain.Name `json:"name"`
	IndexType string     `json:"index_type"`
	KeyNames  []string   `json:"key_names"`
	KeyTypes  []string   `json:"key_types"`
	Type      string     `json:"type"`
}

// ClausePair is a named ricardian clause body.
type ClausePair struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// ErrorMessage maps a contract error code to human readable text.
type ErrorMessage struct {
	ErrorCode uint64 `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// VariantDef is a tagged union over an ordered list of member types.
type VariantDef struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// ABI is the contract interface document as served by get_abi or
// embedded in a set_abi action.
type ABI struct {
	Version          string            `json:"version"`
	Types            []TypeDef         `json:"types"`
	Structs          []StructDef       `json:"structs"`
	Actions          []ActionDef       `json:"actions"`
	Tables           []TableDef        `json:"tables"`
	RicardianClauses []ClausePair      `json:"ricardian_clauses"`
	ErrorMessages    []ErrorMessage    `json:"error_messages"`
	Extensions       []chain.Extension `json:"abi_extensions"`
	Variants         []VariantDef      `json:"variants,omitempty"`
}

// ParseJSON decodes an ABI JSON document.
func ParseJSON(data []byte) (*ABI, error) {
	abi := new(ABI)
	if err := json.Unmarshal(data, abi); err != nil {
		return nil, err
	}
	return abi, nil
}

// Marshal writes the abi_def binary form. Variants entered the format
// as a binary extension and are only written when present.
func (a *ABI) Marshal(e *chain.Encoder) error {
	e.WriteString(a.Version)

	e.WriteVarUint32(uint32(len(a.Types)))
	for _, t := range a.Types {
		e.WriteString(t.NewTypeName)
		e.WriteString(t.Type)
	}

	e.WriteVarUint32(uint32(len(a.Structs)))
	for _, s := range a.Structs {
		e.WriteString(s.Name)
		e.WriteString(s.Base)
		e.WriteVarUint32(uint32(len(s.Fields)))
		for _, f := range s.Fields {
			e.WriteString(f.Name)
			e.WriteString(f.Type)
		}
	}

	e.WriteVarUint32(uint32(len(a.Actions)))
	for _, act := range a.Actions {
		if err := act.Name.Marshal(e); err != nil {
			return err
		}
		e.WriteString(act.Type)
		e.WriteString(act.RicardianContract)
	}

	e.WriteVarUint32(uint32(len(a.Tables)))
	for _, tbl := range a.Tables {
		if err := tbl.Name.Marshal(e); err != nil {
			return err
		}
		e.WriteString(tbl.IndexType)
		e.WriteVarUint32(uint32(len(tbl.KeyNames)))
		for _, k := range tbl.KeyNames {
			e.WriteString(k)
		}
		e.WriteVarUint32(uint32(len(tbl.KeyTypes)))
		for _, k := range tbl.KeyTypes {
			e.WriteString(k)
		}
		e.WriteString(tbl.Type)
	}

	e.WriteVarUint32(uint32(len(a.RicardianClauses)))
	for _, c := range a.RicardianClauses {
		e.WriteString(c.ID)
		e.WriteString(c.Body)
	}

	e.WriteVarUint32(uint32(len(a.ErrorMessages)))
	for _, m := range a.ErrorMessages {
		e.WriteUint64(m.ErrorCode)
		e.WriteString(m.ErrorMsg)
	}

	e.WriteVarUint32(uint32(len(a.Extensions)))
	for i := range a.Extensions {
		if err := a.Extensions[i].Marshal(e); err != nil {
			return err
		}
	}

	if len(a.Variants) > 0 {
		e.WriteVarUint32(uint32(len(a.Variants)))
		for _, v := range a.Variants {
			e.WriteString(v.Name)
			e.WriteVarUint32(uint32(len(v.Types)))
			for _, t := range v.Types {
				e.WriteString(t)
			}
		}
	}
	return nil
}

// Unmarshal reads the abi_def binary form.
// nolint:gocyclo // sequential field reads
func (a *ABI) Unmarshal(d *chain.Decoder) error {
	var err error
	if a.Version, err = d.ReadString(); err != nil {
		return err
	}

	count, err := d.ReadVarUint32()
	if err != nil {
		return err
	}
	a.Types = make([]TypeDef, count)
	for i := range a.Types {
		if a.Types[i].NewTypeName, err = d.ReadString(); err != nil {
			return err
		}
		if a.Types[i].Type, err = d.ReadString(); err != nil {
			return err
		}
	}

	if count, err = d.ReadVarUint32(); err != nil {
		return err
	}
	a.Structs = make([]StructDef, count)
	for i := range a.Structs {
		s := &a.Structs[i]
		if s.Name, err = d.ReadString(); err != nil {
			return err
		}
		if s.Base, err = d.ReadString(); err != nil {
			return err
		}
		fieldCount, err := d.ReadVarUint32()
		if err != nil {
			return err
		}
		s.Fields = make([]Field, fieldCount)
		for j := range s.Fields {
			if s.Fields[j].Name, err = d.ReadString(); err != nil {
				return err
			}
			if s.Fields[j].Type, err = d.ReadString(); err != nil {
				return err
			}
		}
	}

	if count, err = d.ReadVarUint32(); err != nil {
		return err
	}
	a.Actions = make([]ActionDef, count)
	for i := range a.Actions {
		act := &a.Actions[i]
		if err = act.Name.Unmarshal(d); err != nil {
			return err
		}
		if act.Type, err = d.ReadString(); err != nil {
			return err
		}
		if act.RicardianContract, err = d.ReadString(); err != nil {
			return err
		}
	}

	if count, err = d.ReadVarUint32(); err != nil {
		return err
	}
	a.Tables = make([]TableDef, count)
	for i := range a.Tables {
		tbl := &a.Tables[i]
		if err = tbl.Name.Unmarshal(d); err != nil {
			return err
		}
		if tbl.IndexType, err = d.ReadString(); err != nil {
			return err
		}
		keyCount, err := d.ReadVarUint32()
		if err != nil {
			return err
		}
		tbl.KeyNames = make([]string, keyCount)
		for j := range tbl.KeyNames {
			if tbl.KeyNames[j], err = d.ReadString(); err != nil {
				return err
			}
		}
		if keyCount, err = d.ReadVarUint32(); err != nil {
			return err
		}
		tbl.KeyTypes = make([]string, keyCount)
		for j := range tbl.KeyTypes {
			if tbl.KeyTypes[j], err = d.ReadString(); err != nil {
				return err
			}
		}
		if tbl.Type, err = d.ReadString(); err != nil {
			return err
		}
	}

	if count, err = d.ReadVarUint32(); err != nil {
		return err
	}
	a.RicardianClauses = make([]ClausePair, count)
	for i := range a.RicardianClauses {
		if a.RicardianClauses[i].ID, err = d.ReadString(); err != nil {
			return err
		}
		if a.RicardianClauses[i].Body, err = d.ReadString(); err != nil {
			return err
		}
	}

	if count, err = d.ReadVarUint32(); err != nil {
		return err
	}
	a.ErrorMessages = make([]ErrorMessage, count)
	for i := range a.ErrorMessages {
		if a.ErrorMessages[i].ErrorCode, err = d.ReadUint64(); err != nil {
			return err
		}
		if a.ErrorMessages[i].ErrorMsg, err = d.ReadString(); err != nil {
			return err
		}
	}

	if count, err = d.ReadVarUint32(); err != nil {
		return err
	}
	a.Extensions = make([]chain.Extension, count)
	for i := range a.Extensions {
		if err = a.Extensions[i].Unmarshal(d); err != nil {
			return err
		}
	}

	// variants are a binary extension at the tail
	if d.Remaining() == 0 {
		return nil
	}
	if count, err = d.ReadVarUint32(); err != nil {
		return err
	}
	a.Variants = make([]VariantDef, count)
	for i := range a.Variants {
		v := &a.Variants[i]
		if v.Name, err = d.ReadString(); err != nil {
			return err
		}
		typeCount, err := d.ReadVarUint32()
		if err != nil {
			return err
		}
		v.Types = make([]string, typeCount)
		for j := range v.Types {
			if v.Types[j], err = d.ReadString(); err != nil {
				return err
			}
		}
	}
	return nil
}

// EncodeABI packs an ABI document to its binary form.
func EncodeABI(a *ABI) ([]byte, error) {
	e := chain.NewEncoder()
	if err := a.Marshal(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DecodeABI unpacks a binary abi_def, as returned by get_raw_abi.
func DecodeABI(data []byte) (*ABI, error) {
	a := new(ABI)
	if err := a.Unmarshal(chain.NewDecoder(data)); err != nil {
		return nil, err
	}
	return a, nil
}
