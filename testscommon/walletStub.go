package testscommon

import "github.com/multiversx/mx-chain-core-go/data/transaction"

// WalletStub -
type WalletStub struct {
	AddressCalled         func() []byte
	Bech32AddressCalled   func() string
	SignTransactionCalled func(tx *transaction.FrontendTransaction) error
}

// Address -
func (stub *WalletStub) Address() []byte {
	if stub.AddressCalled != nil {
		return stub.AddressCalled()
	}

	return make([]byte, 32)
}

// Bech32Address -
func (stub *WalletStub) Bech32Address() string {
	if stub.Bech32AddressCalled != nil {
		return stub.Bech32AddressCalled()
	}

	return ""
}

// SignTransaction -
func (stub *WalletStub) SignTransaction(tx *transaction.FrontendTransaction) error {
	if stub.SignTransactionCalled != nil {
		return stub.SignTransactionCalled(tx)
	}

	return nil
}

// IsInterfaceNil -
func (stub *WalletStub) IsInterfaceNil() bool {
	return stub == nil
}
