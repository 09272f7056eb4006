package abi

import (
	"encoding/hex"
	"errors"
	"strings"
)

const partsSeparator = "@"

type valuesCodec interface {
	EncodeNested(value any) ([]byte, error)
	EncodeTopLevel(value any) ([]byte, error)
	DecodeNested(data []byte, value any) error
	DecodeTopLevel(data []byte, value any) error
}

type serializer struct {
	codec valuesCodec
}

// NewSerializer creates a serializer which splits values into '@'-separated, hex-encoded parts
func NewSerializer(codec valuesCodec) *serializer {
	return &serializer{
		codec: codec,
	}
}

// NewDefaultSerializer creates a serializer over the default codec
func NewDefaultSerializer() *serializer {
	return NewSerializer(NewCodec())
}

// Serialize encodes the input values into a '@'-separated hex string
func (s *serializer) Serialize(inputValues []any) (string, error) {
	parts, err := s.SerializeToParts(inputValues)
	if err != nil {
		return "", err
	}

	return s.encodeParts(parts), nil
}

// SerializeToParts encodes the input values into raw parts (one per top-level value)
func (s *serializer) SerializeToParts(inputValues []any) ([][]byte, error) {
	partsHolder := newEmptyPartsHolder()

	err := s.doSerialize(partsHolder, inputValues)
	if err != nil {
		return nil, err
	}

	return partsHolder.getParts(), nil
}

func (s *serializer) doSerialize(partsHolder *partsHolder, inputValues []any) error {
	var err error

	for i, value := range inputValues {
		if value == nil {
			return errors.New("cannot serialize nil value")
		}

		switch value := value.(type) {
		case InputMultiValue:
			err = s.serializeItems(partsHolder, value.Items)
		case InputVariadicValues:
			if i != len(inputValues)-1 {
				return errors.New("variadic values must be last among input values")
			}

			err = s.serializeItems(partsHolder, value.Items)
		default:
			partsHolder.appendEmptyPart()
			err = s.serializeDirectlyEncodableValue(partsHolder, value)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Deserialize decodes a '@'-separated hex string into the output values
func (s *serializer) Deserialize(data string, outputValues []any) error {
	parts, err := s.decodeIntoParts(data)
	if err != nil {
		return err
	}

	return s.DeserializeParts(parts, outputValues)
}

// DeserializeParts decodes raw parts (as returned by a VM query) into the output values
func (s *serializer) DeserializeParts(parts [][]byte, outputValues []any) error {
	partsHolder := newPartsHolder(parts)

	return s.doDeserialize(partsHolder, outputValues)
}

func (s *serializer) doDeserialize(partsHolder *partsHolder, outputValues []any) error {
	var err error

	for i, value := range outputValues {
		if value == nil {
			return errors.New("cannot deserialize into nil value")
		}

		switch value := value.(type) {
		case *OutputMultiValue:
			err = s.doDeserialize(partsHolder, value.Items)
		case *OutputVariadicValues:
			if i != len(outputValues)-1 {
				return errors.New("variadic values must be last among output values")
			}

			err = s.deserializeOutputVariadicValues(partsHolder, value)
		default:
			err = s.deserializeDirectlyEncodableValue(partsHolder, value)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (s *serializer) serializeItems(partsHolder *partsHolder, items []any) error {
	for _, item := range items {
		err := s.doSerialize(partsHolder, []any{item})
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *serializer) serializeDirectlyEncodableValue(partsHolder *partsHolder, value any) error {
	data, err := s.codec.EncodeTopLevel(value)
	if err != nil {
		return err
	}

	return partsHolder.appendToLastPart(data)
}

func (s *serializer) deserializeOutputVariadicValues(partsHolder *partsHolder, value *OutputVariadicValues) error {
	if value.ItemCreator == nil {
		return errNilItemCreator
	}

	for !partsHolder.isFocusedBeyondLastPart() {
		newItem := value.ItemCreator()

		err := s.doDeserialize(partsHolder, []any{newItem})
		if err != nil {
			return err
		}

		value.Items = append(value.Items, newItem)
	}

	return nil
}

func (s *serializer) deserializeDirectlyEncodableValue(partsHolder *partsHolder, value any) error {
	part, err := partsHolder.readWholeFocusedPart()
	if err != nil {
		return err
	}

	err = s.codec.DecodeTopLevel(part, value)
	if err != nil {
		return err
	}

	return partsHolder.focusOnNextPart()
}

func (s *serializer) encodeParts(parts [][]byte) string {
	partsHex := make([]string, len(parts))

	for i, part := range parts {
		partsHex[i] = hex.EncodeToString(part)
	}

	return strings.Join(partsHex, partsSeparator)
}

func (s *serializer) decodeIntoParts(encoded string) ([][]byte, error) {
	partsHex := strings.Split(encoded, partsSeparator)
	parts := make([][]byte, len(partsHex))

	for i, partHex := range partsHex {
		part, err := hex.DecodeString(partHex)
		if err != nil {
			return nil, err
		}

		parts[i] = part
	}

	return parts, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (s *serializer) IsInterfaceNil() bool {
	return s == nil
}
