package txBuilder

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	logger "github.com/multiversx/mx-chain-logger-go"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-esdt-fee-interactor/abi"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const atSep = "@"

var log = logger.GetOrCreate("process/txBuilder")

// ArgsTxBuilder is the DTO used to create a new txBuilder
type ArgsTxBuilder struct {
	Serializer       ArgumentsSerializer
	AddressConverter core.PubkeyConverter
}

// ArgsInvocation holds the inputs of a contract call
type ArgsInvocation struct {
	Sender      []byte
	Destination []byte
	GasLimit    uint64
	Function    string
	Arguments   [][]byte
	Payments    []data.EsdtPayment
	Value       *big.Int
}

// ArgsFrontendTransaction holds the network parameters stamped on a request before signing
type ArgsFrontendTransaction struct {
	Nonce    uint64
	GasPrice uint64
	ChainID  string
	Version  uint32
}

type txBuilder struct {
	serializer       ArgumentsSerializer
	addressConverter core.PubkeyConverter
}

// NewTxBuilder creates a builder of structurally correct deploy, call and query requests.
// Amounts, token identifiers and fees are never validated.
func NewTxBuilder(args ArgsTxBuilder) (*txBuilder, error) {
	if check.IfNil(args.Serializer) {
		return nil, ErrNilSerializer
	}
	if check.IfNil(args.AddressConverter) {
		return nil, ErrNilAddressConverter
	}

	return &txBuilder{
		serializer:       args.Serializer,
		addressConverter: args.AddressConverter,
	}, nil
}

// BuildDeploy creates the request deploying a payable contract. The request has no destination and no payments.
func (tb *txBuilder) BuildDeploy(sender []byte, gasLimit uint64, code []byte, arguments ...[]byte) (*data.TransactionRequest, error) {
	err := checkAddress(sender)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, ErrEmptyContractCode
	}
	if gasLimit == 0 {
		return nil, ErrZeroGasLimit
	}

	codeMetadata := &vmcommon.CodeMetadata{
		Payable: true,
	}

	parts := make([]string, 0, 3+len(arguments))
	parts = append(parts, hex.EncodeToString(code), common.WasmVMType, hex.EncodeToString(codeMetadata.ToBytes()))
	for _, arg := range arguments {
		parts = append(parts, hex.EncodeToString(arg))
	}

	return &data.TransactionRequest{
		Sender:    sender,
		Receiver:  common.SystemDeployAddress,
		Arguments: arguments,
		GasLimit:  gasLimit,
		Value:     big.NewInt(0),
		Data:      []byte(strings.Join(parts, atSep)),
		IsDeploy:  true,
	}, nil
}

// BuildInvocation creates a contract call request. Zero payments produce a plain call (optionally with native
// value), one fungible payment an ESDTTransfer and anything else a MultiESDTNFTTransfer sent to self.
// The payments order is preserved.
func (tb *txBuilder) BuildInvocation(args ArgsInvocation) (*data.TransactionRequest, error) {
	err := checkAddress(args.Sender)
	if err != nil {
		return nil, err
	}
	err = checkAddress(args.Destination)
	if err != nil {
		return nil, err
	}
	if len(args.Function) == 0 {
		return nil, ErrEmptyFunction
	}
	if args.GasLimit == 0 {
		return nil, ErrZeroGasLimit
	}
	for i, payment := range args.Payments {
		if payment.Amount == nil {
			return nil, fmt.Errorf("%w for payment %d", ErrNilAmount, i)
		}
	}

	value := big.NewInt(0)
	if args.Value != nil {
		value = new(big.Int).Set(args.Value)
	}

	request := &data.TransactionRequest{
		Sender:    args.Sender,
		Receiver:  args.Destination,
		Function:  args.Function,
		Arguments: args.Arguments,
		Payments:  args.Payments,
		GasLimit:  args.GasLimit,
		Value:     value,
	}

	switch {
	case len(args.Payments) == 0:
		request.Data = []byte(joinCall(args.Function, args.Arguments))
	case len(args.Payments) == 1 && args.Payments[0].Nonce == 0:
		request.Data, err = tb.buildSingleTransferData(args)
	default:
		request.Receiver = args.Sender
		request.Data, err = tb.buildMultiTransferData(args)
	}
	if err != nil {
		return nil, err
	}

	log.Trace("built invocation",
		"function", args.Function,
		"num payments", len(args.Payments),
		"value", value.String(),
		"data", string(request.Data),
	)

	return request, nil
}

func (tb *txBuilder) buildSingleTransferData(args ArgsInvocation) ([]byte, error) {
	payment := args.Payments[0]
	parts, err := tb.serializer.SerializeToParts([]any{
		abi.StringValue{Value: payment.TokenIdentifier},
		abi.BigUIntValue{Value: payment.Amount},
	})
	if err != nil {
		return nil, err
	}

	transferData := core.BuiltInFunctionESDTTransfer + atSep + joinParts(parts) + atSep + joinEncodedCall(args.Function, args.Arguments)

	return []byte(transferData), nil
}

func (tb *txBuilder) buildMultiTransferData(args ArgsInvocation) ([]byte, error) {
	values := []any{
		abi.AddressValue{Value: args.Destination},
		abi.U32Value{Value: uint32(len(args.Payments))},
	}
	for _, payment := range args.Payments {
		values = append(values,
			abi.StringValue{Value: payment.TokenIdentifier},
			abi.U64Value{Value: payment.Nonce},
			abi.BigUIntValue{Value: payment.Amount},
		)
	}

	parts, err := tb.serializer.SerializeToParts(values)
	if err != nil {
		return nil, err
	}

	transferData := core.BuiltInFunctionMultiESDTNFTTransfer + atSep + joinParts(parts) + atSep + joinEncodedCall(args.Function, args.Arguments)

	return []byte(transferData), nil
}

// BuildQuery creates a read-only request: no sender, no gas, no payments
func (tb *txBuilder) BuildQuery(destination []byte, function string, arguments [][]byte) (*data.QueryRequest, error) {
	err := checkAddress(destination)
	if err != nil {
		return nil, err
	}
	if len(function) == 0 {
		return nil, ErrEmptyFunction
	}

	return &data.QueryRequest{
		ScAddress: destination,
		Function:  function,
		Arguments: arguments,
	}, nil
}

// CreateFrontendTransaction stamps the request with the network parameters, producing the unsigned transaction
func (tb *txBuilder) CreateFrontendTransaction(request *data.TransactionRequest, args ArgsFrontendTransaction) (*transaction.FrontendTransaction, error) {
	if request == nil {
		return nil, ErrNilRequest
	}

	sender, err := tb.addressConverter.Encode(request.Sender)
	if err != nil {
		return nil, err
	}
	receiver, err := tb.addressConverter.Encode(request.Receiver)
	if err != nil {
		return nil, err
	}

	value := "0"
	if request.Value != nil {
		value = request.Value.String()
	}

	return &transaction.FrontendTransaction{
		Nonce:    args.Nonce,
		Value:    value,
		Receiver: receiver,
		Sender:   sender,
		GasPrice: args.GasPrice,
		GasLimit: request.GasLimit,
		Data:     request.Data,
		ChainID:  args.ChainID,
		Version:  args.Version,
	}, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (tb *txBuilder) IsInterfaceNil() bool {
	return tb == nil
}

func checkAddress(address []byte) error {
	if len(address) != common.AddressLength {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, common.AddressLength, len(address))
	}

	return nil
}

func joinCall(function string, arguments [][]byte) string {
	if len(arguments) == 0 {
		return function
	}

	return function + atSep + joinParts(arguments)
}

// the function name travels hex encoded when it follows a built-in transfer function
func joinEncodedCall(function string, arguments [][]byte) string {
	parts := make([][]byte, 0, 1+len(arguments))
	parts = append(parts, []byte(function))
	parts = append(parts, arguments...)

	return joinParts(parts)
}

func joinParts(parts [][]byte) string {
	partsHex := make([]string, len(parts))
	for i, part := range parts {
		partsHex[i] = hex.EncodeToString(part)
	}

	return strings.Join(partsHex, atSep)
}
