package abi

import (
	"fmt"
	"strings"

	"github.com/anyswap/eosio-client/chain"
)

// BuiltinType enumerates the primitive types every registry resolves
// without consulting the ABI document.
type BuiltinType uint8

const (
	BuiltinBool BuiltinType = iota
	BuiltinInt8
	BuiltinUint8
	BuiltinInt16
	BuiltinUint16
	BuiltinInt32
	BuiltinUint32
	BuiltinInt64
	BuiltinUint64
	BuiltinInt128
	BuiltinUint128
	BuiltinVarInt32
	BuiltinVarUint32
	BuiltinFloat32
	BuiltinFloat64
	BuiltinFloat128
	BuiltinTimePoint
	BuiltinTimePointSec
	BuiltinBlockTimestamp
	BuiltinName
	BuiltinBytes
	BuiltinString
	BuiltinChecksum160
	BuiltinChecksum256
	BuiltinChecksum512
	BuiltinPublicKey
	BuiltinSignature
	BuiltinSymbol
	BuiltinSymbolCode
	BuiltinAsset
	BuiltinExtendedAsset
)

var builtinTypes = map[string]BuiltinType{
	"bool":                 BuiltinBool,
	"int8":                 BuiltinInt8,
	"uint8":                BuiltinUint8,
	"int16":                BuiltinInt16,
	"uint16":               BuiltinUint16,
	"int32":                BuiltinInt32,
	"uint32":               BuiltinUint32,
	"int64":                BuiltinInt64,
	"uint64":               BuiltinUint64,
	"int128":               BuiltinInt128,
	"uint128":              BuiltinUint128,
	"varint32":             BuiltinVarInt32,
	"varuint32":            BuiltinVarUint32,
	"float32":              BuiltinFloat32,
	"float64":              BuiltinFloat64,
	"float128":             BuiltinFloat128,
	"time_point":           BuiltinTimePoint,
	"time_point_sec":       BuiltinTimePointSec,
	"block_timestamp_type": BuiltinBlockTimestamp,
	"name":                 BuiltinName,
	"bytes":                BuiltinBytes,
	"string":               BuiltinString,
	"checksum160":          BuiltinChecksum160,
	"checksum256":          BuiltinChecksum256,
	"checksum512":          BuiltinChecksum512,
	"public_key":           BuiltinPublicKey,
	"signature":            BuiltinSignature,
	"symbol":               BuiltinSymbol,
	"symbol_code":          BuiltinSymbolCode,
	"asset":                BuiltinAsset,
	"extended_asset":       BuiltinExtendedAsset,
}

// Kind discriminates resolution plan nodes.
type Kind uint8

const (
	KindBuiltin Kind = iota
	KindStruct
	KindVariant
	KindArray
	KindOptional
	KindExtension
)

// Type is a resolved encode/decode plan for one type expression.
// Plans are immutable once built and safe for concurrent reuse.
type Type struct {
	Name    string
	Kind    Kind
	Builtin BuiltinType
	Struct  *StructDef
	Variant *VariantDef
	Elem    *Type
}

type resolvedField struct {
	Name string
	Type *Type
}

// maximum alias indirections before a chain is treated as cyclic
const maxAliasDepth = 16

// Registry is an immutable lookup built once per ABI document. It is
// safe for use by concurrent callers without locking.
type Registry struct {
	abi          *ABI
	typedefs     map[string]string
	structs      map[string]*StructDef
	variants     map[string]*VariantDef
	actions      map[chain.Name]string
	tables       map[chain.Name]string
	structFields map[string][]resolvedField
}

// NewRegistry validates an ABI document and builds the type registry.
// Every struct base, field type, alias and variant member must resolve
// or construction fails.
func NewRegistry(a *ABI) (*Registry, error) {
	r := &Registry{
		abi:          a,
		typedefs:     make(map[string]string, len(a.Types)),
		structs:      make(map[string]*StructDef, len(a.Structs)),
		variants:     make(map[string]*VariantDef, len(a.Variants)),
		actions:      make(map[chain.Name]string, len(a.Actions)),
		tables:       make(map[chain.Name]string, len(a.Tables)),
		structFields: make(map[string][]resolvedField, len(a.Structs)),
	}
	for _, t := range a.Types {
		r.typedefs[t.NewTypeName] = t.Type
	}
	for i := range a.Structs {
		r.structs[a.Structs[i].Name] = &a.Structs[i]
	}
	for i := range a.Variants {
		r.variants[a.Variants[i].Name] = &a.Variants[i]
	}
	for _, act := range a.Actions {
		r.actions[act.Name] = act.Type
	}
	for _, tbl := range a.Tables {
		r.tables[tbl.Name] = tbl.Type
	}

	for i := range a.Structs {
		fields, err := r.resolveStructFields(&a.Structs[i], nil)
		if err != nil {
			return nil, fmt.Errorf("struct %v: %w", a.Structs[i].Name, err)
		}
		r.structFields[a.Structs[i].Name] = fields
	}
	for _, v := range a.Variants {
		for _, member := range v.Types {
			if _, err := r.ResolveType(member); err != nil {
				return nil, fmt.Errorf("variant %v: %w", v.Name, err)
			}
		}
	}
	for _, act := range a.Actions {
		if _, err := r.ResolveType(act.Type); err != nil {
			return nil, fmt.Errorf("action %v: %w", act.Name, err)
		}
	}
	for _, tbl := range a.Tables {
		if _, err := r.ResolveType(tbl.Type); err != nil {
			return nil, fmt.Errorf("table %v: %w", tbl.Name, err)
		}
	}
	return r, nil
}

// resolveStructFields flattens the base chain root-first and resolves
// every field type. seen guards against cyclic base chains.
func (r *Registry) resolveStructFields(sd *StructDef, seen []string) ([]resolvedField, error) {
	for _, name := range seen {
		if name == sd.Name {
			return nil, fmt.Errorf("%w: base %v", ErrCyclicDefinition, sd.Name)
		}
	}
	var fields []resolvedField
	if sd.Base != "" {
		base, ok := r.structs[r.dealias(sd.Base)]
		if !ok {
			return nil, fmt.Errorf("%w: base %v", ErrUnknownType, sd.Base)
		}
		baseFields, err := r.resolveStructFields(base, append(seen, sd.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, baseFields...)
	}
	for _, f := range sd.Fields {
		t, err := r.ResolveType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %v: %w", f.Name, err)
		}
		fields = append(fields, resolvedField{Name: f.Name, Type: t})
	}
	return fields, nil
}

// dealias follows the typedef chain for a bare name, stopping at the
// depth guard; cycle errors surface from ResolveType.
func (r *Registry) dealias(name string) string {
	for i := 0; i < maxAliasDepth; i++ {
		next, ok := r.typedefs[name]
		if !ok {
			return name
		}
		name = next
	}
	return name
}

// ResolveType parses a type name expression into a plan. Trailing
// modifiers bind right to left: `$` binary extension, `?` optional,
// `[]` array.
func (r *Registry) ResolveType(expr string) (*Type, error) {
	return r.resolve(expr, 0)
}

func (r *Registry) resolve(expr string, depth int) (*Type, error) {
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("%w: %v", ErrCyclicDefinition, expr)
	}
	switch {
	case strings.HasSuffix(expr, "$"):
		elem, err := r.resolve(strings.TrimSuffix(expr, "$"), depth)
		if err != nil {
			return nil, err
		}
		return &Type{Name: expr, Kind: KindExtension, Elem: elem}, nil
	case strings.HasSuffix(expr, "[]"):
		elem, err := r.resolve(strings.TrimSuffix(expr, "[]"), depth)
		if err != nil {
			return nil, err
		}
		return &Type{Name: expr, Kind: KindArray, Elem: elem}, nil
	case strings.HasSuffix(expr, "?"):
		elem, err := r.resolve(strings.TrimSuffix(expr, "?"), depth)
		if err != nil {
			return nil, err
		}
		return &Type{Name: expr, Kind: KindOptional, Elem: elem}, nil
	}
	if builtin, ok := builtinTypes[expr]; ok {
		return &Type{Name: expr, Kind: KindBuiltin, Builtin: builtin}, nil
	}
	if aliased, ok := r.typedefs[expr]; ok {
		return r.resolve(aliased, depth+1)
	}
	if sd, ok := r.structs[expr]; ok {
		return &Type{Name: expr, Kind: KindStruct, Struct: sd}, nil
	}
	if vd, ok := r.variants[expr]; ok {
		return &Type{Name: expr, Kind: KindVariant, Variant: vd}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownType, expr)
}

// fieldsOf returns the flattened, resolved field list of a struct plan.
func (r *Registry) fieldsOf(t *Type) ([]resolvedField, error) {
	fields, ok := r.structFields[t.Struct.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t.Struct.Name)
	}
	return fields, nil
}

// ActionType returns the argument struct type bound to an action name.
func (r *Registry) ActionType(name chain.Name) (string, error) {
	t, ok := r.actions[name]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownAction, name)
	}
	return t, nil
}

// TableType returns the row type bound to a table name.
func (r *Registry) TableType(name chain.Name) (string, error) {
	t, ok := r.tables[name]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownTable, name)
	}
	return t, nil
}

// ABI returns the document the registry was built from.
func (r *Registry) ABI() *ABI {
	return r.abi
}
