package testscommon

import (
	"context"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

// GatewayClientStub -
type GatewayClientStub struct {
	GetNetworkConfigCalled   func(ctx context.Context) (*data.NetworkConfig, error)
	GetAccountCalled         func(ctx context.Context, address string) (*data.Account, error)
	SendTransactionCalled    func(ctx context.Context, tx *transaction.FrontendTransaction) (string, error)
	WaitForTransactionCalled func(ctx context.Context, txHash string) (*transaction.ApiTransactionResult, error)
	ExecuteQueryCalled       func(ctx context.Context, query *data.QueryRequest, scAddress string) (*vm.VMOutputApi, error)
}

// GetNetworkConfig -
func (stub *GatewayClientStub) GetNetworkConfig(ctx context.Context) (*data.NetworkConfig, error) {
	if stub.GetNetworkConfigCalled != nil {
		return stub.GetNetworkConfigCalled(ctx)
	}

	return &data.NetworkConfig{
		ChainID:               "chain",
		MinGasPrice:           1000000000,
		MinTransactionVersion: 1,
	}, nil
}

// GetAccount -
func (stub *GatewayClientStub) GetAccount(ctx context.Context, address string) (*data.Account, error) {
	if stub.GetAccountCalled != nil {
		return stub.GetAccountCalled(ctx, address)
	}

	return &data.Account{Address: address}, nil
}

// SendTransaction -
func (stub *GatewayClientStub) SendTransaction(ctx context.Context, tx *transaction.FrontendTransaction) (string, error) {
	if stub.SendTransactionCalled != nil {
		return stub.SendTransactionCalled(ctx, tx)
	}

	return "", nil
}

// WaitForTransaction -
func (stub *GatewayClientStub) WaitForTransaction(ctx context.Context, txHash string) (*transaction.ApiTransactionResult, error) {
	if stub.WaitForTransactionCalled != nil {
		return stub.WaitForTransactionCalled(ctx, txHash)
	}

	return &transaction.ApiTransactionResult{Hash: txHash, Status: transaction.TxStatusSuccess}, nil
}

// ExecuteQuery -
func (stub *GatewayClientStub) ExecuteQuery(ctx context.Context, query *data.QueryRequest, scAddress string) (*vm.VMOutputApi, error) {
	if stub.ExecuteQueryCalled != nil {
		return stub.ExecuteQueryCalled(ctx, query, scAddress)
	}

	return &vm.VMOutputApi{ReturnCode: "ok"}, nil
}

// IsInterfaceNil -
func (stub *GatewayClientStub) IsInterfaceNil() bool {
	return stub == nil
}
