package interactor

import (
	"context"
	"fmt"
	"math/big"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-esdt-fee-interactor/abi"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/multiversx/mx-esdt-fee-interactor/process/txBuilder"
)

const (
	setExactValueFeeFunction = "setExactValueFee"
	setPercentageFeeFunction = "setPercentageFee"
	transferFunction         = "transfer"
	claimFeesFunction        = "claimFees"
	getTokenFeeFunction      = "getTokenFee"
	getPaidFeesFunction      = "getPaidFees"
)

var log = logger.GetOrCreate("process/interactor")

// ArgsContractInteractor is the DTO used to create a new contract interactor
type ArgsContractInteractor struct {
	Gateway                 GatewayClient
	Wallet                  Wallet
	State                   StateHandler
	Builder                 TransactionBuilder
	Classifier              OutcomeClassifier
	Serializer              ValuesSerializer
	AddressConverter        core.PubkeyConverter
	ContractCode            []byte
	DeployGasLimit          uint64
	CallGasLimit            uint64
	ForceTransactionVersion uint32
}

type contractInteractor struct {
	gateway                 GatewayClient
	wallet                  Wallet
	state                   StateHandler
	builder                 TransactionBuilder
	classifier              OutcomeClassifier
	serializer              ValuesSerializer
	addressConverter        core.PubkeyConverter
	contractCode            []byte
	deployGasLimit          uint64
	callGasLimit            uint64
	forceTransactionVersion uint32

	networkConfig *data.NetworkConfig
	nonce         uint64
	nonceFetched  bool
}

// NewContractInteractor creates the component driving the fee contract. Calls are issued strictly sequentially
// and the component is not safe for concurrent use.
func NewContractInteractor(args ArgsContractInteractor) (*contractInteractor, error) {
	err := checkArgs(args)
	if err != nil {
		return nil, err
	}

	return &contractInteractor{
		gateway:                 args.Gateway,
		wallet:                  args.Wallet,
		state:                   args.State,
		builder:                 args.Builder,
		classifier:              args.Classifier,
		serializer:              args.Serializer,
		addressConverter:        args.AddressConverter,
		contractCode:            args.ContractCode,
		deployGasLimit:          args.DeployGasLimit,
		callGasLimit:            args.CallGasLimit,
		forceTransactionVersion: args.ForceTransactionVersion,
	}, nil
}

func checkArgs(args ArgsContractInteractor) error {
	if check.IfNil(args.Gateway) {
		return ErrNilGatewayClient
	}
	if check.IfNil(args.Wallet) {
		return ErrNilWallet
	}
	if check.IfNil(args.State) {
		return ErrNilStateHandler
	}
	if check.IfNil(args.Builder) {
		return ErrNilTransactionBuilder
	}
	if check.IfNil(args.Classifier) {
		return ErrNilOutcomeClassifier
	}
	if check.IfNil(args.Serializer) {
		return ErrNilSerializer
	}
	if check.IfNil(args.AddressConverter) {
		return ErrNilAddressConverter
	}
	if args.DeployGasLimit == 0 {
		return fmt.Errorf("%w for deploy", ErrInvalidGasLimit)
	}
	if args.CallGasLimit == 0 {
		return fmt.Errorf("%w for calls", ErrInvalidGasLimit)
	}

	return nil
}

// Deploy deploys a new payable instance of the contract and records its address
func (ci *contractInteractor) Deploy(ctx context.Context) (string, error) {
	if len(ci.contractCode) == 0 {
		return "", ErrEmptyContractCode
	}

	request, err := ci.builder.BuildDeploy(ci.wallet.Address(), ci.deployGasLimit, ci.contractCode)
	if err != nil {
		return "", err
	}

	result, outcome, err := ci.execute(ctx, request)
	if err != nil {
		return "", err
	}
	if !outcome.IsSuccess() {
		return "", outcome.Failure
	}

	address, err := ci.classifier.ExtractDeployedAddress(result)
	if err != nil {
		return "", err
	}

	err = ci.state.SetAddress(address)
	if err != nil {
		return "", err
	}

	log.Info("new contract deployed", "address", address, "hash", outcome.TxHash)

	return address, nil
}

// SetExactValueFee requires each transfer of token to be accompanied by feeAmount of feeToken
func (ci *contractInteractor) SetExactValueFee(ctx context.Context, feeToken string, feeAmount *big.Int, token string) (*data.Outcome, error) {
	return ci.callWithValues(ctx, setExactValueFeeFunction, []any{
		abi.StringValue{Value: feeToken},
		abi.BigUIntValue{Value: feeAmount},
		abi.StringValue{Value: token},
	}, nil, nil)
}

// SetPercentageFee retains feePercent (out of 10000) of each transfer of token
func (ci *contractInteractor) SetPercentageFee(ctx context.Context, feePercent uint32, token string) (*data.Outcome, error) {
	return ci.callWithValues(ctx, setPercentageFeeFunction, []any{
		abi.U32Value{Value: feePercent},
		abi.StringValue{Value: token},
	}, nil, nil)
}

// SetFeePolicy issues the configuration request matching the policy type
func (ci *contractInteractor) SetFeePolicy(ctx context.Context, policy data.FeePolicy) (*data.Outcome, error) {
	switch policy.Type {
	case data.FeeExactValue:
		return ci.SetExactValueFee(ctx, policy.FeeToken, policy.FeeAmount, policy.Token)
	case data.FeePercentage:
		return ci.SetPercentageFee(ctx, policy.FeePercent, policy.Token)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeeType, policy.Type)
	}
}

// TransferWithFee transfers amount of token together with the fee payment, in this exact order
func (ci *contractInteractor) TransferWithFee(ctx context.Context, token string, amount *big.Int, feeToken string, feeAmount *big.Int) (*data.Outcome, error) {
	return ci.Transfer(ctx,
		data.NewFungiblePayment(token, amount),
		data.NewFungiblePayment(feeToken, feeAmount),
	)
}

// Transfer calls the transfer endpoint with an arbitrary list of payments, forwarded back to the wallet
func (ci *contractInteractor) Transfer(ctx context.Context, payments ...data.EsdtPayment) (*data.Outcome, error) {
	return ci.callWithValues(ctx, transferFunction, []any{
		abi.AddressValue{Value: ci.wallet.Address()},
	}, payments, nil)
}

// TransferNative calls the transfer endpoint with a native value and no token payment
func (ci *contractInteractor) TransferNative(ctx context.Context, value *big.Int) (*data.Outcome, error) {
	return ci.callWithValues(ctx, transferFunction, []any{
		abi.AddressValue{Value: ci.wallet.Address()},
	}, nil, value)
}

// ClaimFees sweeps the accumulated fees to the contract owner
func (ci *contractInteractor) ClaimFees(ctx context.Context) (*data.Outcome, error) {
	return ci.callWithValues(ctx, claimFeesFunction, nil, nil, nil)
}

// TokenFee returns the fee configured for token. A declared query failure is returned as error.
func (ci *contractInteractor) TokenFee(ctx context.Context, token string) (*data.TokenFee, error) {
	returnData, err := ci.query(ctx, getTokenFeeFunction, []any{abi.StringValue{Value: token}})
	if err != nil {
		return nil, err
	}

	return ci.decodeTokenFee(returnData)
}

// PaidFees returns the fees collected and not yet claimed. A declared query failure is returned as error.
func (ci *contractInteractor) PaidFees(ctx context.Context) ([]data.PaidFee, error) {
	returnData, err := ci.query(ctx, getPaidFeesFunction, nil)
	if err != nil {
		return nil, err
	}

	return ci.decodePaidFees(returnData)
}

// AssertExpected checks the outcome against the expected declared failure (nil meaning success)
func (ci *contractInteractor) AssertExpected(outcome *data.Outcome, expected *data.DeclaredFailure) error {
	return ci.classifier.AssertExpected(outcome, expected)
}

// WalletAddress returns the bech32 address of the sender
func (ci *contractInteractor) WalletAddress() string {
	return ci.wallet.Bech32Address()
}

func (ci *contractInteractor) callWithValues(
	ctx context.Context,
	function string,
	values []any,
	payments []data.EsdtPayment,
	value *big.Int,
) (*data.Outcome, error) {
	contractAddress, err := ci.contractAddress()
	if err != nil {
		return nil, err
	}

	arguments, err := ci.serializer.SerializeToParts(values)
	if err != nil {
		return nil, err
	}

	request, err := ci.builder.BuildInvocation(txBuilder.ArgsInvocation{
		Sender:      ci.wallet.Address(),
		Destination: contractAddress,
		GasLimit:    ci.callGasLimit,
		Function:    function,
		Arguments:   arguments,
		Payments:    payments,
		Value:       value,
	})
	if err != nil {
		return nil, err
	}

	_, outcome, err := ci.execute(ctx, request)
	if err != nil {
		return nil, err
	}

	log.Debug("call executed", "function", function, "outcome", outcome.String())

	return outcome, nil
}

func (ci *contractInteractor) execute(ctx context.Context, request *data.TransactionRequest) (*transaction.ApiTransactionResult, *data.Outcome, error) {
	tx, err := ci.prepareTransaction(ctx, request)
	if err != nil {
		return nil, nil, err
	}

	txHash, err := ci.gateway.SendTransaction(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	ci.nonce++

	result, err := ci.gateway.WaitForTransaction(ctx, txHash)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := ci.classifier.ClassifyTransaction(result)
	if err != nil {
		return nil, nil, err
	}
	if len(outcome.TxHash) == 0 {
		outcome.TxHash = txHash
	}

	return result, outcome, nil
}

func (ci *contractInteractor) prepareTransaction(ctx context.Context, request *data.TransactionRequest) (*transaction.FrontendTransaction, error) {
	networkConfig, err := ci.getNetworkConfig(ctx)
	if err != nil {
		return nil, err
	}

	nonce, err := ci.getNonce(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := ci.builder.CreateFrontendTransaction(request, txBuilder.ArgsFrontendTransaction{
		Nonce:    nonce,
		GasPrice: networkConfig.MinGasPrice,
		ChainID:  networkConfig.ChainID,
		Version:  ci.transactionVersion(networkConfig),
	})
	if err != nil {
		return nil, err
	}

	err = ci.wallet.SignTransaction(tx)
	if err != nil {
		return nil, err
	}

	return tx, nil
}

func (ci *contractInteractor) transactionVersion(networkConfig *data.NetworkConfig) uint32 {
	if ci.forceTransactionVersion > 0 {
		return ci.forceTransactionVersion
	}
	if networkConfig.MinTransactionVersion > 0 {
		return networkConfig.MinTransactionVersion
	}

	return common.DefaultTransactionVersion
}

func (ci *contractInteractor) getNetworkConfig(ctx context.Context) (*data.NetworkConfig, error) {
	if ci.networkConfig != nil {
		return ci.networkConfig, nil
	}

	networkConfig, err := ci.gateway.GetNetworkConfig(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug("fetched network config", "chain ID", networkConfig.ChainID, "min gas price", networkConfig.MinGasPrice)
	ci.networkConfig = networkConfig

	return networkConfig, nil
}

func (ci *contractInteractor) getNonce(ctx context.Context) (uint64, error) {
	if ci.nonceFetched {
		return ci.nonce, nil
	}

	account, err := ci.gateway.GetAccount(ctx, ci.wallet.Bech32Address())
	if err != nil {
		return 0, err
	}

	ci.nonce = account.Nonce
	ci.nonceFetched = true

	return ci.nonce, nil
}

func (ci *contractInteractor) contractAddress() ([]byte, error) {
	address, err := ci.state.CurrentAddress()
	if err != nil {
		return nil, err
	}

	return ci.addressConverter.Decode(address)
}

func (ci *contractInteractor) query(ctx context.Context, function string, values []any) ([][]byte, error) {
	contractAddress, err := ci.contractAddress()
	if err != nil {
		return nil, err
	}

	arguments, err := ci.serializer.SerializeToParts(values)
	if err != nil {
		return nil, err
	}

	query, err := ci.builder.BuildQuery(contractAddress, function, arguments)
	if err != nil {
		return nil, err
	}

	bech32Address, err := ci.addressConverter.Encode(contractAddress)
	if err != nil {
		return nil, err
	}

	vmOutput, err := ci.gateway.ExecuteQuery(ctx, query, bech32Address)
	if err != nil {
		return nil, err
	}

	outcome, err := ci.classifier.ClassifyQuery(vmOutput)
	if err != nil {
		return nil, err
	}
	if !outcome.IsSuccess() {
		return nil, outcome.Failure
	}

	return outcome.ReturnData, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (ci *contractInteractor) IsInterfaceNil() bool {
	return ci == nil
}
