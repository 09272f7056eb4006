package abi

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// codec is the default codec for encoding and decoding
//
// See:
// - https://docs.multiversx.com/developers/data/simple-values
// - https://docs.multiversx.com/developers/data/composite-values
// - https://docs.multiversx.com/developers/data/custom-types
type codec struct {
}

// NewCodec creates a new default codec.
func NewCodec() *codec {
	return &codec{}
}

// EncodeNested encodes the value as a nested item (length-prefixed where needed)
func (c *codec) EncodeNested(value any) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	err := c.doEncodeNested(buffer, value)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func (c *codec) doEncodeNested(writer io.Writer, value any) error {
	switch value := dereference(value).(type) {
	case U8Value:
		return c.encodeNestedNumber(writer, value.Value, 1)
	case U32Value:
		return c.encodeNestedNumber(writer, value.Value, 4)
	case U64Value:
		return c.encodeNestedNumber(writer, value.Value, 8)
	case BigUIntValue:
		return c.encodeNestedBigUInt(writer, value)
	case AddressValue:
		return c.encodeNestedAddress(writer, value)
	case StringValue:
		return c.encodeNestedBytes(writer, []byte(value.Value))
	case BytesValue:
		return c.encodeNestedBytes(writer, value.Value)
	case StructValue:
		return c.encodeNestedFields(writer, value.Fields)
	case EnumValue:
		return c.encodeNestedEnum(writer, value)
	default:
		return fmt.Errorf("unsupported type for nested encoding: %T", value)
	}
}

// EncodeTopLevel encodes the value as a top-level item (an argument or a return value)
func (c *codec) EncodeTopLevel(value any) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	err := c.doEncodeTopLevel(buffer, value)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func (c *codec) doEncodeTopLevel(writer io.Writer, value any) error {
	switch value := dereference(value).(type) {
	case U8Value:
		return c.encodeTopLevelUnsignedNumber(writer, uint64(value.Value))
	case U32Value:
		return c.encodeTopLevelUnsignedNumber(writer, uint64(value.Value))
	case U64Value:
		return c.encodeTopLevelUnsignedNumber(writer, value.Value)
	case BigUIntValue:
		return c.encodeTopLevelBigUInt(writer, value)
	case AddressValue:
		return c.encodeTopLevelAddress(writer, value)
	case StringValue:
		_, err := writer.Write([]byte(value.Value))
		return err
	case BytesValue:
		_, err := writer.Write(value.Value)
		return err
	case StructValue:
		return c.encodeNestedFields(writer, value.Fields)
	case EnumValue:
		return c.encodeTopLevelEnum(writer, value)
	default:
		return fmt.Errorf("unsupported type for top-level encoding: %T", value)
	}
}

// DecodeNested decodes the nested-encoded data into the provided value (a pointer)
func (c *codec) DecodeNested(data []byte, value any) error {
	reader := bytes.NewReader(data)
	err := c.doDecodeNested(reader, value)
	if err != nil {
		return fmt.Errorf("cannot decode (nested) %T, because of: %w", value, err)
	}

	return nil
}

func (c *codec) doDecodeNested(reader io.Reader, value any) error {
	switch value := value.(type) {
	case *U8Value:
		return c.decodeNestedNumber(reader, &value.Value, 1)
	case *U32Value:
		return c.decodeNestedNumber(reader, &value.Value, 4)
	case *U64Value:
		return c.decodeNestedNumber(reader, &value.Value, 8)
	case *BigUIntValue:
		return c.decodeNestedBigUInt(reader, value)
	case *AddressValue:
		return c.decodeNestedAddress(reader, value)
	case *StringValue:
		data, err := c.decodeNestedBytes(reader)
		if err != nil {
			return err
		}

		value.Value = string(data)
		return nil
	case *BytesValue:
		data, err := c.decodeNestedBytes(reader)
		if err != nil {
			return err
		}

		value.Value = data
		return nil
	case *StructValue:
		return c.decodeNestedFields(reader, value.Fields)
	case *EnumValue:
		return c.decodeNestedEnum(reader, value)
	default:
		return fmt.Errorf("unsupported type for nested decoding: %T", value)
	}
}

// DecodeTopLevel decodes the top-level-encoded data into the provided value (a pointer)
func (c *codec) DecodeTopLevel(data []byte, value any) error {
	err := c.doDecodeTopLevel(data, value)
	if err != nil {
		return fmt.Errorf("cannot decode (top-level) %T, because of: %w", value, err)
	}

	return nil
}

func (c *codec) doDecodeTopLevel(data []byte, value any) error {
	switch value := value.(type) {
	case *U8Value:
		n, err := c.decodeTopLevelUnsignedNumber(data, math.MaxUint8)
		if err != nil {
			return err
		}

		value.Value = uint8(n)
	case *U32Value:
		n, err := c.decodeTopLevelUnsignedNumber(data, math.MaxUint32)
		if err != nil {
			return err
		}

		value.Value = uint32(n)
	case *U64Value:
		n, err := c.decodeTopLevelUnsignedNumber(data, math.MaxUint64)
		if err != nil {
			return err
		}

		value.Value = n
	case *BigUIntValue:
		value.Value = c.decodeTopLevelBigUInt(data)
	case *AddressValue:
		return c.decodeTopLevelAddress(data, value)
	case *StringValue:
		value.Value = string(data)
	case *BytesValue:
		value.Value = data
	case *StructValue:
		return c.decodeTopLevelStruct(data, value)
	case *EnumValue:
		return c.decodeTopLevelEnum(data, value)
	default:
		return fmt.Errorf("unsupported type for top-level decoding: %T", value)
	}

	return nil
}

func dereference(value any) any {
	switch value := value.(type) {
	case *U8Value:
		return *value
	case *U32Value:
		return *value
	case *U64Value:
		return *value
	case *BigUIntValue:
		return *value
	case *AddressValue:
		return *value
	case *StringValue:
		return *value
	case *BytesValue:
		return *value
	case *StructValue:
		return *value
	case *EnumValue:
		return *value
	default:
		return value
	}
}
