package abi

import (
	"errors"
)

// common errors
var (
	ErrUnknownType      = errors.New("type does not resolve within the abi")
	ErrCyclicDefinition = errors.New("cyclic type alias or base struct chain")
	ErrMissingField     = errors.New("value is missing a required struct field")
	ErrBadValue         = errors.New("value does not match the target type")
	ErrVariantTag       = errors.New("variant tag out of range")
	ErrOptionalFlag     = errors.New("optional presence flag is not 0 or 1")
	ErrSizeMismatch     = errors.New("encoded data size does not match type")
	ErrExtensionOrder   = errors.New("binary extension field follows an omitted one")
	ErrUnknownAction    = errors.New("action is not bound by the abi")
	ErrUnknownTable     = errors.New("table is not bound by the abi")
)
