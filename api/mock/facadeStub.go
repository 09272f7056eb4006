package mock

import (
	"math/big"

	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

// FacadeStub -
type FacadeStub struct {
	GetNetworkConfigCalled     func() *data.NetworkConfig
	GetAccountCalled           func(address string) (*data.Account, error)
	GetESDTBalanceCalled       func(address string, tokenIdentifier string) (*big.Int, error)
	SendTransactionCalled      func(tx *transaction.FrontendTransaction) (string, error)
	GetTransactionStatusCalled func(txHash string) (transaction.TxStatus, error)
	GetTransactionCalled       func(txHash string, withResults bool) (*transaction.ApiTransactionResult, error)
	ExecuteQueryCalled         func(request *data.VmValueRequest) (*vm.VMOutputApi, error)
}

// GetNetworkConfig -
func (stub *FacadeStub) GetNetworkConfig() *data.NetworkConfig {
	if stub.GetNetworkConfigCalled != nil {
		return stub.GetNetworkConfigCalled()
	}

	return &data.NetworkConfig{}
}

// GetAccount -
func (stub *FacadeStub) GetAccount(address string) (*data.Account, error) {
	if stub.GetAccountCalled != nil {
		return stub.GetAccountCalled(address)
	}

	return &data.Account{Address: address, Balance: "0"}, nil
}

// GetESDTBalance -
func (stub *FacadeStub) GetESDTBalance(address string, tokenIdentifier string) (*big.Int, error) {
	if stub.GetESDTBalanceCalled != nil {
		return stub.GetESDTBalanceCalled(address, tokenIdentifier)
	}

	return big.NewInt(0), nil
}

// SendTransaction -
func (stub *FacadeStub) SendTransaction(tx *transaction.FrontendTransaction) (string, error) {
	if stub.SendTransactionCalled != nil {
		return stub.SendTransactionCalled(tx)
	}

	return "", nil
}

// GetTransactionStatus -
func (stub *FacadeStub) GetTransactionStatus(txHash string) (transaction.TxStatus, error) {
	if stub.GetTransactionStatusCalled != nil {
		return stub.GetTransactionStatusCalled(txHash)
	}

	return transaction.TxStatusPending, nil
}

// GetTransaction -
func (stub *FacadeStub) GetTransaction(txHash string, withResults bool) (*transaction.ApiTransactionResult, error) {
	if stub.GetTransactionCalled != nil {
		return stub.GetTransactionCalled(txHash, withResults)
	}

	return &transaction.ApiTransactionResult{Hash: txHash}, nil
}

// ExecuteQuery -
func (stub *FacadeStub) ExecuteQuery(request *data.VmValueRequest) (*vm.VMOutputApi, error) {
	if stub.ExecuteQueryCalled != nil {
		return stub.ExecuteQueryCalled(request)
	}

	return &vm.VMOutputApi{}, nil
}

// IsInterfaceNil -
func (stub *FacadeStub) IsInterfaceNil() bool {
	return stub == nil
}
