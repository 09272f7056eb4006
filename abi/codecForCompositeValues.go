package abi

import (
	"bytes"
	"fmt"
	"io"
)

func (c *codec) encodeNestedFields(writer io.Writer, fields []Field) error {
	for _, field := range fields {
		err := c.doEncodeNested(writer, field.Value)
		if err != nil {
			return fmt.Errorf("cannot encode field '%s', because of: %w", field.Name, err)
		}
	}

	return nil
}

func (c *codec) decodeNestedFields(reader io.Reader, fields []Field) error {
	for _, field := range fields {
		err := c.doDecodeNested(reader, field.Value)
		if err != nil {
			return fmt.Errorf("cannot decode field '%s', because of: %w", field.Name, err)
		}
	}

	return nil
}

func (c *codec) decodeTopLevelStruct(data []byte, value *StructValue) error {
	reader := bytes.NewReader(data)
	return c.decodeNestedFields(reader, value.Fields)
}

func (c *codec) encodeNestedEnum(writer io.Writer, value EnumValue) error {
	err := c.encodeNestedNumber(writer, value.Discriminant, 1)
	if err != nil {
		return err
	}

	return c.encodeNestedFields(writer, value.Fields)
}

// a fieldless variant with discriminant 0 is encoded as empty bytes at top level
func (c *codec) encodeTopLevelEnum(writer io.Writer, value EnumValue) error {
	if value.Discriminant == 0 && len(value.Fields) == 0 {
		return nil
	}

	return c.encodeNestedEnum(writer, value)
}

func (c *codec) decodeNestedEnum(reader io.Reader, value *EnumValue) error {
	err := c.decodeNestedNumber(reader, &value.Discriminant, 1)
	if err != nil {
		return err
	}

	if value.FieldsProvider == nil {
		return errNilFieldsProvider
	}

	fields := value.FieldsProvider(value.Discriminant)
	err = c.decodeNestedFields(reader, fields)
	if err != nil {
		return err
	}

	value.Fields = fields
	return nil
}

func (c *codec) decodeTopLevelEnum(data []byte, value *EnumValue) error {
	if len(data) == 0 {
		value.Discriminant = 0
		value.Fields = nil
		return nil
	}

	reader := bytes.NewReader(data)
	return c.decodeNestedEnum(reader, value)
}
