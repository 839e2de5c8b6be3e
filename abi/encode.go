package abi

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/crypto"
)

// EncodeValue serializes a dynamically typed value as the given type
// expression. Values are JSON-ish trees: map[string]interface{} for
// structs, []interface{} for arrays and variants, scalars for the rest.
func (r *Registry) EncodeValue(typeName string, v interface{}) ([]byte, error) {
	t, err := r.ResolveType(typeName)
	if err != nil {
		return nil, err
	}
	e := chain.NewEncoder()
	if err := r.encodeType(e, t, v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodeAction serializes action arguments per the struct type bound
// to the action name.
func (r *Registry) EncodeAction(name chain.Name, v interface{}) ([]byte, error) {
	typeName, err := r.ActionType(name)
	if err != nil {
		return nil, err
	}
	return r.EncodeValue(typeName, v)
}

// NewAction builds a chain.Action whose data payload is the value
// serialized per the struct type bound to the action name.
func (r *Registry) NewAction(account, name chain.Name, auth []chain.PermissionLevel, v interface{}) (*chain.Action, error) {
	data, err := r.EncodeAction(name, v)
	if err != nil {
		return nil, err
	}
	return chain.NewAction(account, name, auth, data), nil
}

// EncodeTableRow serializes a table row per the struct type bound to
// the table name.
func (r *Registry) EncodeTableRow(table chain.Name, v interface{}) ([]byte, error) {
	typeName, err := r.TableType(table)
	if err != nil {
		return nil, err
	}
	return r.EncodeValue(typeName, v)
}

func (r *Registry) encodeType(e *chain.Encoder, t *Type, v interface{}) error {
	switch t.Kind {
	case KindExtension:
		// an absent extension value writes nothing at all
		if v == nil {
			return nil
		}
		return r.encodeType(e, t.Elem, v)
	case KindOptional:
		if v == nil {
			e.WriteBool(false)
			return nil
		}
		e.WriteBool(true)
		return r.encodeType(e, t.Elem, v)
	case KindArray:
		if v == nil {
			e.WriteVarUint32(0)
			return nil
		}
		items, ok := v.([]interface{})
		if !ok {
			return fmt.Errorf("%w: %v wants an array", ErrBadValue, t.Name)
		}
		e.WriteVarUint32(uint32(len(items)))
		for _, item := range items {
			if err := r.encodeType(e, t.Elem, item); err != nil {
				return err
			}
		}
		return nil
	case KindStruct:
		return r.encodeStruct(e, t, v)
	case KindVariant:
		return r.encodeVariant(e, t, v)
	default:
		return r.encodeBuiltin(e, t, v)
	}
}

func (r *Registry) encodeStruct(e *chain.Encoder, t *Type, v interface{}) error {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: %v wants an object", ErrBadValue, t.Name)
	}
	fields, err := r.fieldsOf(t)
	if err != nil {
		return err
	}
	extStopped := false
	for _, f := range fields {
		fv, present := obj[f.Name]
		if f.Type.Kind == KindExtension {
			if !present || fv == nil {
				extStopped = true
				continue
			}
			if extStopped {
				return fmt.Errorf("%w: field %v", ErrExtensionOrder, f.Name)
			}
		} else if !present {
			return fmt.Errorf("%w: %v.%v", ErrMissingField, t.Name, f.Name)
		}
		if err := r.encodeType(e, f.Type, fv); err != nil {
			return fmt.Errorf("field %v: %w", f.Name, err)
		}
	}
	return nil
}

// encodeVariant expects the ["type_name", value] pair convention.
func (r *Registry) encodeVariant(e *chain.Encoder, t *Type, v interface{}) error {
	pair, ok := v.([]interface{})
	if !ok || len(pair) != 2 {
		return fmt.Errorf("%w: %v wants [type, value]", ErrBadValue, t.Name)
	}
	memberName, ok := pair[0].(string)
	if !ok {
		return fmt.Errorf("%w: %v wants [type, value]", ErrBadValue, t.Name)
	}
	for i, member := range t.Variant.Types {
		if member == memberName {
			e.WriteVarUint32(uint32(i))
			memberType, err := r.ResolveType(member)
			if err != nil {
				return err
			}
			return r.encodeType(e, memberType, pair[1])
		}
	}
	return fmt.Errorf("%w: %v is not a member of %v", ErrVariantTag, memberName, t.Name)
}

// nolint:gocyclo // one arm per builtin
func (r *Registry) encodeBuiltin(e *chain.Encoder, t *Type, v interface{}) error {
	switch t.Builtin {
	case BuiltinBool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: %v wants a bool", ErrBadValue, t.Name)
		}
		e.WriteBool(b)
	case BuiltinInt8:
		i, err := toInt64(v, math.MinInt8, math.MaxInt8)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteInt8(int8(i))
	case BuiltinUint8:
		u, err := toUint64(v, math.MaxUint8)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteUint8(uint8(u))
	case BuiltinInt16:
		i, err := toInt64(v, math.MinInt16, math.MaxInt16)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteInt16(int16(i))
	case BuiltinUint16:
		u, err := toUint64(v, math.MaxUint16)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteUint16(uint16(u))
	case BuiltinInt32:
		i, err := toInt64(v, math.MinInt32, math.MaxInt32)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteInt32(int32(i))
	case BuiltinUint32:
		u, err := toUint64(v, math.MaxUint32)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteUint32(uint32(u))
	case BuiltinInt64:
		i, err := toInt64(v, math.MinInt64, math.MaxInt64)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteInt64(i)
	case BuiltinUint64:
		u, err := toUint64(v, math.MaxUint64)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteUint64(u)
	case BuiltinInt128, BuiltinUint128:
		return encodeInt128(e, t, v)
	case BuiltinVarInt32:
		i, err := toInt64(v, math.MinInt32, math.MaxInt32)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteVarInt32(int32(i))
	case BuiltinVarUint32:
		u, err := toUint64(v, math.MaxUint32)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteVarUint32(uint32(u))
	case BuiltinFloat32:
		f, err := toFloat64(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteFloat32(float32(f))
	case BuiltinFloat64:
		f, err := toFloat64(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteFloat64(f)
	case BuiltinFloat128:
		return encodeFixedHex(e, t, v, 16)
	case BuiltinTimePoint:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a timestamp string", ErrBadValue, t.Name)
		}
		parsed, err := parseTimeString(s)
		if err != nil {
			return err
		}
		return chain.TimePointFromTime(parsed).Marshal(e)
	case BuiltinTimePointSec:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a timestamp string", ErrBadValue, t.Name)
		}
		parsed, err := parseTimeString(s)
		if err != nil {
			return err
		}
		return chain.TimePointSecFromTime(parsed).Marshal(e)
	case BuiltinBlockTimestamp:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a timestamp string", ErrBadValue, t.Name)
		}
		parsed, err := parseTimeString(s)
		if err != nil {
			return err
		}
		return chain.BlockTimestampFromTime(parsed).Marshal(e)
	case BuiltinName:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a name string", ErrBadValue, t.Name)
		}
		n, err := chain.NewName(s)
		if err != nil {
			return err
		}
		return n.Marshal(e)
	case BuiltinBytes:
		b, err := toBytes(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t.Name, err)
		}
		e.WriteBytes(b)
	case BuiltinString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a string", ErrBadValue, t.Name)
		}
		e.WriteString(s)
	case BuiltinChecksum160:
		return encodeFixedHex(e, t, v, 20)
	case BuiltinChecksum256:
		return encodeFixedHex(e, t, v, 32)
	case BuiltinChecksum512:
		return encodeFixedHex(e, t, v, 64)
	case BuiltinPublicKey:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a public key string", ErrBadValue, t.Name)
		}
		pk, err := crypto.NewPublicKey(s)
		if err != nil {
			return err
		}
		return chain.WritePublicKey(e, pk)
	case BuiltinSignature:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a signature string", ErrBadValue, t.Name)
		}
		sig, err := crypto.NewSignature(s)
		if err != nil {
			return err
		}
		return chain.WriteSignature(e, sig)
	case BuiltinSymbol:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a symbol string", ErrBadValue, t.Name)
		}
		// the all-zero symbol word renders with an empty code, which
		// ParseSymbol rejects; accept it back so decoded values always
		// re-encode
		if s == (chain.Symbol{}).String() {
			return chain.Symbol{}.Marshal(e)
		}
		sym, err := chain.ParseSymbol(s)
		if err != nil {
			return err
		}
		return sym.Marshal(e)
	case BuiltinSymbolCode:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a symbol code string", ErrBadValue, t.Name)
		}
		if s == "" {
			return chain.SymbolCode(0).Marshal(e)
		}
		sc, err := chain.NewSymbolCode(s)
		if err != nil {
			return err
		}
		return sc.Marshal(e)
	case BuiltinAsset:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %v wants an asset string", ErrBadValue, t.Name)
		}
		if s == (chain.Asset{}).String() {
			return chain.Asset{}.Marshal(e)
		}
		a, err := chain.ParseAsset(s)
		if err != nil {
			return err
		}
		return a.Marshal(e)
	case BuiltinExtendedAsset:
		obj, ok := v.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: %v wants an object", ErrBadValue, t.Name)
		}
		quantity, ok := obj["quantity"].(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a quantity", ErrBadValue, t.Name)
		}
		contract, ok := obj["contract"].(string)
		if !ok {
			return fmt.Errorf("%w: %v wants a contract", ErrBadValue, t.Name)
		}
		a, err := chain.ParseAsset(quantity)
		if err != nil {
			return err
		}
		n, err := chain.NewName(contract)
		if err != nil {
			return err
		}
		return chain.ExtendedAsset{Quantity: a, Contract: n}.Marshal(e)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownType, t.Name)
	}
	return nil
}

var int128Bound = new(big.Int).Lsh(big.NewInt(1), 127)
var uint128Bound = new(big.Int).Lsh(big.NewInt(1), 128)

// encodeInt128 packs a decimal string into 16 little-endian bytes,
// two's complement for the signed flavor.
func encodeInt128(e *chain.Encoder, t *Type, v interface{}) error {
	s, err := numericString(v)
	if err != nil {
		return fmt.Errorf("%v: %w", t.Name, err)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("%w: %v wants a decimal string", ErrBadValue, t.Name)
	}
	if t.Builtin == BuiltinUint128 {
		if n.Sign() < 0 || n.Cmp(uint128Bound) >= 0 {
			return fmt.Errorf("%w: %v out of range", ErrBadValue, t.Name)
		}
	} else {
		neg := new(big.Int).Neg(int128Bound)
		if n.Cmp(neg) < 0 || n.Cmp(int128Bound) >= 0 {
			return fmt.Errorf("%w: %v out of range", ErrBadValue, t.Name)
		}
		if n.Sign() < 0 {
			n = new(big.Int).Add(n, uint128Bound)
		}
	}
	var out [16]byte
	raw := n.Bytes() // big-endian
	for i, b := range raw {
		out[len(raw)-1-i] = b
	}
	e.WriteRaw(out[:])
	return nil
}

// encodeFixedHex writes a fixed width blob given as a hex string.
func encodeFixedHex(e *chain.Encoder, t *Type, v interface{}, width int) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: %v wants a hex string", ErrBadValue, t.Name)
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != width {
		return fmt.Errorf("%w: %v wants %v hex bytes", ErrBadValue, t.Name, width)
	}
	e.WriteRaw(b)
	return nil
}

func toBytes(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		decoded, err := hex.DecodeString(b)
		if err != nil {
			return nil, fmt.Errorf("%w: bad hex", ErrBadValue)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: wants hex bytes", ErrBadValue)
	}
}

func numericString(v interface{}) (string, error) {
	switch n := v.(type) {
	case string:
		return n, nil
	case json.Number:
		return n.String(), nil
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float64:
		if n != math.Trunc(n) {
			return "", fmt.Errorf("%w: not an integer", ErrBadValue)
		}
		return strconv.FormatInt(int64(n), 10), nil
	default:
		return "", fmt.Errorf("%w: wants a number", ErrBadValue)
	}
}

func toInt64(v interface{}, min, max int64) (int64, error) {
	s, err := numericString(v)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadValue, s)
	}
	if i < min || i > max {
		return 0, fmt.Errorf("%w: %v out of range", ErrBadValue, s)
	}
	return i, nil
}

func toUint64(v interface{}, max uint64) (uint64, error) {
	s, err := numericString(v)
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadValue, s)
	}
	if u > max {
		return 0, fmt.Errorf("%w: %v out of range", ErrBadValue, s)
	}
	return u, nil
}

func toFloat64(v interface{}) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	case json.Number:
		return f.Float64()
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrBadValue, f)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: wants a float", ErrBadValue)
	}
}

// parseTimeString accepts the node layouts with or without millis.
func parseTimeString(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05.000", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrBadValue, s)
}
