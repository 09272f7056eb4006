package abi

import "math/big"

// U8Value is a wrapper for uint8
type U8Value struct {
	Value uint8
}

// U32Value is a wrapper for uint32
type U32Value struct {
	Value uint32
}

// U64Value is a wrapper for uint64
type U64Value struct {
	Value uint64
}

// BigUIntValue is a wrapper for a non-negative big integer
type BigUIntValue struct {
	Value *big.Int
}

// BytesValue is a wrapper for a byte slice (also used for token identifiers)
type BytesValue struct {
	Value []byte
}

// StringValue is a wrapper for a string
type StringValue struct {
	Value string
}

// AddressValue is a wrapper for a 32 bytes public key
type AddressValue struct {
	Value []byte
}

// Field is a field of a struct or of an enum variant
type Field struct {
	Name  string
	Value any
}

// StructValue is a struct (collection of fields)
type StructValue struct {
	Fields []Field
}

// EnumValue is an enum (discriminant and fields)
// When decoding, FieldsProvider returns the fields to decode into for a given discriminant.
type EnumValue struct {
	Discriminant   uint8
	Fields         []Field
	FieldsProvider func(discriminant uint8) []Field
}

// InputMultiValue is a multi-value used for encoding
type InputMultiValue struct {
	Items []any
}

// OutputMultiValue is a multi-value used for decoding
type OutputMultiValue struct {
	Items []any
}

// InputVariadicValues holds variadic values used for encoding
type InputVariadicValues struct {
	Items []any
}

// OutputVariadicValues holds variadic values used for decoding
type OutputVariadicValues struct {
	Items       []any
	ItemCreator func() any
}
