package common

import (
	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/pubkeyConverter"
)

const (
	// AddressLength is the length in bytes of an account address
	AddressLength = 32

	// AddressHRP is the human-readable part of the bech32 addresses
	AddressHRP = "erd"

	// WasmVMType is the hex encoded VM type of the deployed contracts
	WasmVMType = "0500"

	// SCDeployIdentifier is the identifier of the log event emitted when a contract is deployed
	SCDeployIdentifier = "SCDeploy"

	// InternalVMErrorsIdentifier is the identifier of the log event emitted on VM internal failures
	InternalVMErrorsIdentifier = "internalVMErrors"

	// SignalErrorIdentifier is the identifier of the log event emitted on declared failures
	SignalErrorIdentifier = core.SignalErrorOperation

	// OkReturnCodeHex is the hex encoded "ok" marker of a successful smart contract result
	OkReturnCodeHex = "6f6b"

	// DefaultTransactionVersion is the transaction version used when the network does not impose one
	DefaultTransactionVersion = uint32(1)
)

// SystemDeployAddress is the receiver of every deploy transaction
var SystemDeployAddress = make([]byte, AddressLength)

// NewAddressConverter creates the bech32 converter used for every account address
func NewAddressConverter() (core.PubkeyConverter, error) {
	return pubkeyConverter.NewBech32PubkeyConverter(AddressLength, AddressHRP)
}

// IsContractAddress returns true if the address was derived for a smart contract (8 leading zero bytes)
func IsContractAddress(address []byte) bool {
	if len(address) != AddressLength {
		return false
	}

	for _, b := range address[:8] {
		if b != 0 {
			return false
		}
	}

	return true
}
