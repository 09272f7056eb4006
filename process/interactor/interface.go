package interactor

import (
	"context"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/multiversx/mx-esdt-fee-interactor/process/txBuilder"
)

// GatewayClient defines the remote collaborator executing transactions and queries
type GatewayClient interface {
	GetNetworkConfig(ctx context.Context) (*data.NetworkConfig, error)
	GetAccount(ctx context.Context, address string) (*data.Account, error)
	SendTransaction(ctx context.Context, tx *transaction.FrontendTransaction) (string, error)
	WaitForTransaction(ctx context.Context, txHash string) (*transaction.ApiTransactionResult, error)
	ExecuteQuery(ctx context.Context, query *data.QueryRequest, scAddress string) (*vm.VMOutputApi, error)
	IsInterfaceNil() bool
}

// Wallet defines the sender identity
type Wallet interface {
	Address() []byte
	Bech32Address() string
	SignTransaction(tx *transaction.FrontendTransaction) error
	IsInterfaceNil() bool
}

// StateHandler defines the persisted contract address
type StateHandler interface {
	SetAddress(address string) error
	CurrentAddress() (string, error)
	Close() error
	IsInterfaceNil() bool
}

// TransactionBuilder defines the component creating the outbound requests
type TransactionBuilder interface {
	BuildDeploy(sender []byte, gasLimit uint64, code []byte, arguments ...[]byte) (*data.TransactionRequest, error)
	BuildInvocation(args txBuilder.ArgsInvocation) (*data.TransactionRequest, error)
	BuildQuery(destination []byte, function string, arguments [][]byte) (*data.QueryRequest, error)
	CreateFrontendTransaction(request *data.TransactionRequest, args txBuilder.ArgsFrontendTransaction) (*transaction.FrontendTransaction, error)
	IsInterfaceNil() bool
}

// OutcomeClassifier defines the component interpreting the raw results
type OutcomeClassifier interface {
	ClassifyTransaction(tx *transaction.ApiTransactionResult) (*data.Outcome, error)
	ClassifyQuery(vmOutput *vm.VMOutputApi) (*data.Outcome, error)
	ExtractDeployedAddress(tx *transaction.ApiTransactionResult) (string, error)
	AssertExpected(outcome *data.Outcome, expected *data.DeclaredFailure) error
	IsInterfaceNil() bool
}

// ValuesSerializer defines the typed arguments and results codec
type ValuesSerializer interface {
	SerializeToParts(inputValues []any) ([][]byte, error)
	DeserializeParts(parts [][]byte, outputValues []any) error
	IsInterfaceNil() bool
}
