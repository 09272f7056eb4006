package data

import (
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
)

// ReturnCode defines the type of the code field of the gateway responses
type ReturnCode string

const (
	// ReturnCodeSuccess defines a successful request
	ReturnCodeSuccess ReturnCode = "successful"
	// ReturnCodeInternalError defines a request which hasn't been executed successfully due to an internal error
	ReturnCodeInternalError ReturnCode = "internal_issue"
	// ReturnCodeRequestError defines a request which hasn't been executed successfully due to a bad request received
	ReturnCodeRequestError ReturnCode = "bad_request"
)

// GenericAPIResponse is the envelope of every gateway response
type GenericAPIResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
	Code  ReturnCode  `json:"code"`
}

// NetworkConfig holds the network parameters needed to build transactions
type NetworkConfig struct {
	ChainID               string `json:"erd_chain_id"`
	MinGasPrice           uint64 `json:"erd_min_gas_price"`
	MinGasLimit           uint64 `json:"erd_min_gas_limit"`
	GasPerDataByte        uint64 `json:"erd_gas_per_data_byte"`
	MinTransactionVersion uint32 `json:"erd_min_transaction_version"`
}

// NetworkConfigResponse is the data of the network config endpoint
type NetworkConfigResponse struct {
	Config *NetworkConfig `json:"config"`
}

// Account is the account view returned by the address endpoint
type Account struct {
	Address      string `json:"address"`
	Nonce        uint64 `json:"nonce"`
	Balance      string `json:"balance"`
	Code         string `json:"code,omitempty"`
	OwnerAddress string `json:"ownerAddress,omitempty"`
}

// AccountResponse is the data of the address endpoint
type AccountResponse struct {
	Account *Account `json:"account"`
}

// SendTransactionResponse is the data of the send transaction endpoint
type SendTransactionResponse struct {
	TxHash string `json:"txHash"`
}

// ProcessStatusResponse is the data of the transaction process-status endpoint
type ProcessStatusResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// VmValueRequest is the body of the VM query endpoint
type VmValueRequest struct {
	Address    string   `json:"scAddress"`
	FuncName   string   `json:"funcName"`
	CallerAddr string   `json:"caller,omitempty"`
	CallValue  string   `json:"value,omitempty"`
	Args       []string `json:"args"`
}

// TransactionResponse is the data of the transaction endpoint
type TransactionResponse struct {
	Transaction *transaction.ApiTransactionResult `json:"transaction"`
}

// VmValuesResponse is the data of the VM query endpoint
type VmValuesResponse struct {
	Data *vm.VMOutputApi `json:"data"`
}
