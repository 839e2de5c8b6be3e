package abi

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/anyswap/eosio-client/chain"
)

// DecodeValue deserializes binary data as the given type expression
// and returns a JSON-ish value tree. Trailing bytes are an error.
func (r *Registry) DecodeValue(typeName string, data []byte) (interface{}, error) {
	t, err := r.ResolveType(typeName)
	if err != nil {
		return nil, err
	}
	d := chain.NewDecoder(data)
	v, err := r.decodeType(d, t)
	if err != nil {
		return nil, err
	}
	if d.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %v trailing bytes after %v", ErrSizeMismatch, d.Remaining(), typeName)
	}
	return v, nil
}

// DecodeAction deserializes action arguments per the struct type bound
// to the action name.
func (r *Registry) DecodeAction(name chain.Name, data []byte) (interface{}, error) {
	typeName, err := r.ActionType(name)
	if err != nil {
		return nil, err
	}
	return r.DecodeValue(typeName, data)
}

// DecodeTableRow deserializes a table row per the struct type bound to
// the table name.
func (r *Registry) DecodeTableRow(table chain.Name, data []byte) (interface{}, error) {
	typeName, err := r.TableType(table)
	if err != nil {
		return nil, err
	}
	return r.DecodeValue(typeName, data)
}

func (r *Registry) decodeType(d *chain.Decoder, t *Type) (interface{}, error) {
	switch t.Kind {
	case KindExtension:
		// exhausted input means the extension tail was never written
		if d.Remaining() == 0 {
			return r.defaultValue(t.Elem)
		}
		return r.decodeType(d, t.Elem)
	case KindOptional:
		flag, err := d.ReadUint8()
		if err != nil {
			return nil, err
		}
		switch flag {
		case 0:
			return nil, nil
		case 1:
			return r.decodeType(d, t.Elem)
		default:
			return nil, fmt.Errorf("%w: %#x", ErrOptionalFlag, flag)
		}
	case KindArray:
		count, err := d.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		items := make([]interface{}, 0, minCap(count, d.Remaining()))
		for i := uint32(0); i < count; i++ {
			item, err := r.decodeType(d, t.Elem)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case KindStruct:
		return r.decodeStruct(d, t)
	case KindVariant:
		return r.decodeVariant(d, t)
	default:
		return r.decodeBuiltin(d, t)
	}
}

func (r *Registry) decodeStruct(d *chain.Decoder, t *Type) (interface{}, error) {
	fields, err := r.fieldsOf(t)
	if err != nil {
		return nil, err
	}
	obj := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		fv, err := r.decodeType(d, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %v: %w", f.Name, err)
		}
		obj[f.Name] = fv
	}
	return obj, nil
}

func (r *Registry) decodeVariant(d *chain.Decoder, t *Type) (interface{}, error) {
	tag, err := d.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	if tag >= uint32(len(t.Variant.Types)) {
		return nil, fmt.Errorf("%w: %v of %v in %v", ErrVariantTag, tag, len(t.Variant.Types), t.Name)
	}
	memberName := t.Variant.Types[tag]
	memberType, err := r.ResolveType(memberName)
	if err != nil {
		return nil, err
	}
	v, err := r.decodeType(d, memberType)
	if err != nil {
		return nil, err
	}
	return []interface{}{memberName, v}, nil
}

// nolint:gocyclo // one arm per builtin
func (r *Registry) decodeBuiltin(d *chain.Decoder, t *Type) (interface{}, error) {
	switch t.Builtin {
	case BuiltinBool:
		return d.ReadBool()
	case BuiltinInt8:
		return d.ReadInt8()
	case BuiltinUint8:
		return d.ReadUint8()
	case BuiltinInt16:
		return d.ReadInt16()
	case BuiltinUint16:
		return d.ReadUint16()
	case BuiltinInt32:
		return d.ReadInt32()
	case BuiltinUint32:
		return d.ReadUint32()
	case BuiltinInt64:
		return d.ReadInt64()
	case BuiltinUint64:
		return d.ReadUint64()
	case BuiltinInt128, BuiltinUint128:
		return decodeInt128(d, t)
	case BuiltinVarInt32:
		return d.ReadVarInt32()
	case BuiltinVarUint32:
		return d.ReadVarUint32()
	case BuiltinFloat32:
		return d.ReadFloat32()
	case BuiltinFloat64:
		return d.ReadFloat64()
	case BuiltinFloat128:
		return decodeFixedHex(d, 16)
	case BuiltinTimePoint:
		var tp chain.TimePoint
		if err := tp.Unmarshal(d); err != nil {
			return nil, err
		}
		return tp.String(), nil
	case BuiltinTimePointSec:
		var tp chain.TimePointSec
		if err := tp.Unmarshal(d); err != nil {
			return nil, err
		}
		return tp.String(), nil
	case BuiltinBlockTimestamp:
		var bt chain.BlockTimestamp
		if err := bt.Unmarshal(d); err != nil {
			return nil, err
		}
		return bt.String(), nil
	case BuiltinName:
		var n chain.Name
		if err := n.Unmarshal(d); err != nil {
			return nil, err
		}
		return n.String(), nil
	case BuiltinBytes:
		b, err := d.ReadBytes()
		if err != nil {
			return nil, err
		}
		return hex.EncodeToString(b), nil
	case BuiltinString:
		return d.ReadString()
	case BuiltinChecksum160:
		return decodeFixedHex(d, 20)
	case BuiltinChecksum256:
		return decodeFixedHex(d, 32)
	case BuiltinChecksum512:
		return decodeFixedHex(d, 64)
	case BuiltinPublicKey:
		pk, err := chain.ReadPublicKey(d)
		if err != nil {
			return nil, err
		}
		return pk.String(), nil
	case BuiltinSignature:
		sig, err := chain.ReadSignature(d)
		if err != nil {
			return nil, err
		}
		return sig.String(), nil
	case BuiltinSymbol:
		var s chain.Symbol
		if err := s.Unmarshal(d); err != nil {
			return nil, err
		}
		return s.String(), nil
	case BuiltinSymbolCode:
		var sc chain.SymbolCode
		if err := sc.Unmarshal(d); err != nil {
			return nil, err
		}
		return sc.String(), nil
	case BuiltinAsset:
		var a chain.Asset
		if err := a.Unmarshal(d); err != nil {
			return nil, err
		}
		return a.String(), nil
	case BuiltinExtendedAsset:
		var ea chain.ExtendedAsset
		if err := ea.Unmarshal(d); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"quantity": ea.Quantity.String(),
			"contract": ea.Contract.String(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t.Name)
	}
}

// decodeInt128 reads 16 little-endian bytes and renders them as a
// decimal string, signed via two's complement for int128.
func decodeInt128(d *chain.Decoder, t *Type) (interface{}, error) {
	raw, err := d.ReadRaw(16)
	if err != nil {
		return nil, err
	}
	be := make([]byte, 16)
	for i, b := range raw {
		be[15-i] = b
	}
	n := new(big.Int).SetBytes(be)
	if t.Builtin == BuiltinInt128 && n.Cmp(int128Bound) >= 0 {
		n = new(big.Int).Sub(n, uint128Bound)
	}
	return n.String(), nil
}

func decodeFixedHex(d *chain.Decoder, width int) (interface{}, error) {
	raw, err := d.ReadRaw(width)
	if err != nil {
		return nil, err
	}
	return hex.EncodeToString(raw), nil
}

// defaultValue synthesizes the zero value for a binary-extension field
// whose bytes are absent from the stream.
func (r *Registry) defaultValue(t *Type) (interface{}, error) {
	switch t.Kind {
	case KindOptional:
		return nil, nil
	case KindArray:
		return []interface{}{}, nil
	case KindExtension:
		return r.defaultValue(t.Elem)
	case KindStruct:
		fields, err := r.fieldsOf(t)
		if err != nil {
			return nil, err
		}
		obj := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			fv, err := r.defaultValue(f.Type)
			if err != nil {
				return nil, err
			}
			obj[f.Name] = fv
		}
		return obj, nil
	case KindVariant:
		if len(t.Variant.Types) == 0 {
			return nil, fmt.Errorf("%w: empty variant %v", ErrBadValue, t.Name)
		}
		memberName := t.Variant.Types[0]
		memberType, err := r.ResolveType(memberName)
		if err != nil {
			return nil, err
		}
		v, err := r.defaultValue(memberType)
		if err != nil {
			return nil, err
		}
		return []interface{}{memberName, v}, nil
	default:
		return defaultBuiltin(t), nil
	}
}

func defaultBuiltin(t *Type) interface{} {
	switch t.Builtin {
	case BuiltinBool:
		return false
	case BuiltinInt8:
		return int8(0)
	case BuiltinUint8:
		return uint8(0)
	case BuiltinInt16:
		return int16(0)
	case BuiltinUint16:
		return uint16(0)
	case BuiltinInt32:
		return int32(0)
	case BuiltinUint32:
		return uint32(0)
	case BuiltinInt64:
		return int64(0)
	case BuiltinUint64:
		return uint64(0)
	case BuiltinInt128, BuiltinUint128:
		return "0"
	case BuiltinVarInt32:
		return int32(0)
	case BuiltinVarUint32:
		return uint32(0)
	case BuiltinFloat32:
		return float32(0)
	case BuiltinFloat64:
		return float64(0)
	case BuiltinFloat128:
		return zeroHex(16)
	case BuiltinTimePoint:
		return chain.TimePoint(0).String()
	case BuiltinTimePointSec:
		return chain.TimePointSec(0).String()
	case BuiltinBlockTimestamp:
		return chain.BlockTimestamp(0).String()
	case BuiltinName:
		return ""
	case BuiltinBytes, BuiltinString:
		return ""
	case BuiltinChecksum160:
		return zeroHex(20)
	case BuiltinChecksum256:
		return zeroHex(32)
	case BuiltinChecksum512:
		return zeroHex(64)
	case BuiltinSymbol:
		return "0," // precision 0, empty code
	case BuiltinSymbolCode:
		return ""
	case BuiltinAsset:
		return "0 "
	default:
		return nil
	}
}

func zeroHex(width int) string {
	return hex.EncodeToString(make([]byte, width))
}

// minCap bounds a wire-supplied element count by the bytes left, so a
// hostile count cannot drive a huge allocation.
func minCap(count uint32, remaining int) int {
	if int(count) < remaining {
		return int(count)
	}
	return remaining
}
