package abi

import (
	"encoding/binary"
	"io"
	"math/big"
)

const pubKeyLength = 32

func (c *codec) encodeNestedNumber(writer io.Writer, value any, numBytes int) error {
	buffer := make([]byte, 8)
	switch value := value.(type) {
	case uint8:
		buffer[7] = value
	case uint32:
		binary.BigEndian.PutUint32(buffer[4:], value)
	case uint64:
		binary.BigEndian.PutUint64(buffer, value)
	}

	_, err := writer.Write(buffer[8-numBytes:])
	return err
}

func (c *codec) decodeNestedNumber(reader io.Reader, value any, numBytes int) error {
	data, err := readBytesExactly(reader, numBytes)
	if err != nil {
		return err
	}

	switch value := value.(type) {
	case *uint8:
		*value = data[0]
	case *uint32:
		*value = binary.BigEndian.Uint32(data)
	case *uint64:
		*value = binary.BigEndian.Uint64(data)
	}

	return nil
}

func (c *codec) encodeTopLevelUnsignedNumber(writer io.Writer, value uint64) error {
	b := big.NewInt(0).SetUint64(value)
	_, err := writer.Write(b.Bytes())
	return err
}

func (c *codec) decodeTopLevelUnsignedNumber(data []byte, maxValue uint64) (uint64, error) {
	b := big.NewInt(0).SetBytes(data)
	if !b.IsUint64() {
		return 0, errNumberOverflow
	}

	n := b.Uint64()
	if n > maxValue {
		return 0, errNumberOverflow
	}

	return n, nil
}

func (c *codec) encodeNestedBigUInt(writer io.Writer, value BigUIntValue) error {
	data, err := bigUIntBytes(value)
	if err != nil {
		return err
	}

	return c.encodeNestedBytes(writer, data)
}

func (c *codec) encodeTopLevelBigUInt(writer io.Writer, value BigUIntValue) error {
	data, err := bigUIntBytes(value)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	return err
}

func (c *codec) decodeNestedBigUInt(reader io.Reader, value *BigUIntValue) error {
	data, err := c.decodeNestedBytes(reader)
	if err != nil {
		return err
	}

	value.Value = big.NewInt(0).SetBytes(data)
	return nil
}

func (c *codec) decodeTopLevelBigUInt(data []byte) *big.Int {
	return big.NewInt(0).SetBytes(data)
}

func bigUIntBytes(value BigUIntValue) ([]byte, error) {
	if value.Value == nil {
		return nil, errNilBigUInt
	}
	if value.Value.Sign() < 0 {
		return nil, errNegativeBigUInt
	}

	return value.Value.Bytes(), nil
}

func (c *codec) encodeNestedBytes(writer io.Writer, data []byte) error {
	err := c.encodeNestedNumber(writer, uint32(len(data)), 4)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	return err
}

func (c *codec) decodeNestedBytes(reader io.Reader) ([]byte, error) {
	var length uint32
	err := c.decodeNestedNumber(reader, &length, 4)
	if err != nil {
		return nil, err
	}

	return readBytesExactly(reader, int(length))
}

func (c *codec) encodeNestedAddress(writer io.Writer, value AddressValue) error {
	return c.encodeTopLevelAddress(writer, value)
}

func (c *codec) encodeTopLevelAddress(writer io.Writer, value AddressValue) error {
	err := checkPubKeyLength(value.Value)
	if err != nil {
		return err
	}

	_, err = writer.Write(value.Value)
	return err
}

func (c *codec) decodeNestedAddress(reader io.Reader, value *AddressValue) error {
	data, err := readBytesExactly(reader, pubKeyLength)
	if err != nil {
		return err
	}

	value.Value = data
	return nil
}

func (c *codec) decodeTopLevelAddress(data []byte, value *AddressValue) error {
	err := checkPubKeyLength(data)
	if err != nil {
		return err
	}

	value.Value = data
	return nil
}

func checkPubKeyLength(pubkey []byte) error {
	if len(pubkey) != pubKeyLength {
		return errInvalidPubKeyLength
	}

	return nil
}

func readBytesExactly(reader io.Reader, numBytes int) ([]byte, error) {
	if numBytes == 0 {
		return []byte{}, nil
	}

	data := make([]byte, numBytes)
	_, err := io.ReadFull(reader, data)
	if err != nil {
		return nil, err
	}

	return data, nil
}
