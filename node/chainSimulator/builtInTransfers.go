package chainSimulator

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const dataSeparator = "@"

// callInput is the contract call carried by a transaction data field, after the built-in transfers were unwrapped
type callInput struct {
	destination []byte
	function    string
	arguments   [][]byte
	payments    []data.EsdtPayment
}

type deployInput struct {
	code         []byte
	codeMetadata []byte
	arguments    [][]byte
}

func parseCallData(receiver []byte, txData []byte) (*callInput, error) {
	input := &callInput{
		destination: receiver,
		arguments:   make([][]byte, 0),
		payments:    make([]data.EsdtPayment, 0),
	}
	if len(txData) == 0 {
		return input, nil
	}

	parts := strings.Split(string(txData), dataSeparator)
	switch parts[0] {
	case core.BuiltInFunctionESDTTransfer:
		return parseESDTTransfer(input, parts[1:])
	case core.BuiltInFunctionMultiESDTNFTTransfer:
		return parseMultiESDTNFTTransfer(input, parts[1:])
	default:
		input.function = parts[0]
		arguments, err := decodeHexParts(parts[1:])
		if err != nil {
			return nil, err
		}
		input.arguments = arguments

		return input, nil
	}
}

// ESDTTransfer@token@amount[@function@arguments...]
func parseESDTTransfer(input *callInput, parts []string) (*callInput, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %s requires token and amount", ErrInvalidTransferData, core.BuiltInFunctionESDTTransfer)
	}

	payment, err := decodePayment(parts[0], "", parts[1])
	if err != nil {
		return nil, err
	}
	input.payments = append(input.payments, payment)

	return parseFunctionAndArguments(input, parts[2:])
}

// MultiESDTNFTTransfer@destination@count[@token@nonce@amount]*[@function@arguments...]
func parseMultiESDTNFTTransfer(input *callInput, parts []string) (*callInput, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %s requires destination and count", ErrInvalidTransferData, core.BuiltInFunctionMultiESDTNFTTransfer)
	}

	destination, err := hex.DecodeString(parts[0])
	if err != nil || len(destination) != common.AddressLength {
		return nil, fmt.Errorf("%w: invalid destination", ErrInvalidTransferData)
	}
	input.destination = destination

	count, err := decodeHexUint(parts[1])
	if err != nil {
		return nil, err
	}

	parts = parts[2:]
	if uint64(len(parts)) < 3*count {
		return nil, fmt.Errorf("%w: expected %d payments", ErrInvalidTransferData, count)
	}

	for i := uint64(0); i < count; i++ {
		payment, errDecode := decodePayment(parts[3*i], parts[3*i+1], parts[3*i+2])
		if errDecode != nil {
			return nil, errDecode
		}

		input.payments = append(input.payments, payment)
	}

	return parseFunctionAndArguments(input, parts[3*count:])
}

func parseFunctionAndArguments(input *callInput, parts []string) (*callInput, error) {
	if len(parts) == 0 {
		return input, nil
	}

	function, err := hex.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid function", ErrInvalidTransferData)
	}
	input.function = string(function)

	input.arguments, err = decodeHexParts(parts[1:])
	if err != nil {
		return nil, err
	}

	return input, nil
}

// code@vmType@codeMetadata[@arguments...]
func parseDeployData(txData []byte) (*deployInput, error) {
	parts := strings.Split(string(txData), dataSeparator)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: requires code, VM type and code metadata", ErrInvalidDeployData)
	}
	if parts[1] != common.WasmVMType {
		return nil, fmt.Errorf("%w: unknown VM type %s", ErrInvalidDeployData, parts[1])
	}

	decoded, err := decodeHexParts(parts)
	if err != nil {
		return nil, err
	}
	if len(decoded[0]) == 0 {
		return nil, fmt.Errorf("%w: empty code", ErrInvalidDeployData)
	}

	return &deployInput{
		code:         decoded[0],
		codeMetadata: decoded[2],
		arguments:    decoded[3:],
	}, nil
}

func decodePayment(tokenHex string, nonceHex string, amountHex string) (data.EsdtPayment, error) {
	token, err := hex.DecodeString(tokenHex)
	if err != nil || len(token) == 0 {
		return data.EsdtPayment{}, fmt.Errorf("%w: invalid token identifier", ErrInvalidTransferData)
	}

	nonce, err := decodeHexUint(nonceHex)
	if err != nil {
		return data.EsdtPayment{}, err
	}

	amount, err := decodeHexBigInt(amountHex)
	if err != nil {
		return data.EsdtPayment{}, err
	}

	return data.EsdtPayment{
		TokenIdentifier: string(token),
		Nonce:           nonce,
		Amount:          amount,
	}, nil
}

func decodeHexParts(parts []string) ([][]byte, error) {
	decoded := make([][]byte, 0, len(parts))
	for i, part := range parts {
		buff, err := hex.DecodeString(part)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d is not hex encoded", ErrInvalidTransferData, i)
		}

		decoded = append(decoded, buff)
	}

	return decoded, nil
}

func decodeHexBigInt(part string) (*big.Int, error) {
	buff, err := hex.DecodeString(part)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not hex encoded", ErrInvalidTransferData, part)
	}

	return big.NewInt(0).SetBytes(buff), nil
}

func decodeHexUint(part string) (uint64, error) {
	value, err := decodeHexBigInt(part)
	if err != nil {
		return 0, err
	}
	if !value.IsUint64() {
		return 0, fmt.Errorf("%w: %s overflows uint64", ErrInvalidTransferData, part)
	}

	return value.Uint64(), nil
}
