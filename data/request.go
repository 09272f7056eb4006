package data

import "math/big"

// TransactionRequest is a structurally complete outbound request, not yet nonce-stamped nor signed
type TransactionRequest struct {
	Sender    []byte
	Receiver  []byte
	Function  string
	Arguments [][]byte
	Payments  []EsdtPayment
	GasLimit  uint64
	Value     *big.Int
	Data      []byte
	IsDeploy  bool
}

// QueryRequest is a read-only request: no sender, no gas, no payments
type QueryRequest struct {
	ScAddress []byte
	Function  string
	Arguments [][]byte
}
