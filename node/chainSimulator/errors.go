package chainSimulator

import "errors"

// ErrNilAddressConverter signals that a nil address converter has been provided
var ErrNilAddressConverter = errors.New("nil address converter")

// ErrNilTransaction signals that a nil transaction has been provided
var ErrNilTransaction = errors.New("nil transaction")

// ErrNilQuery signals that a nil query has been provided
var ErrNilQuery = errors.New("nil query")

// ErrInvalidChainID signals that the transaction was built for another chain
var ErrInvalidChainID = errors.New("invalid chain ID")

// ErrInvalidVersion signals that the transaction version is lower than the minimum one
var ErrInvalidVersion = errors.New("invalid transaction version")

// ErrInsufficientGasPrice signals that the gas price is lower than the minimum one
var ErrInsufficientGasPrice = errors.New("insufficient gas price")

// ErrInsufficientGasLimit signals that the gas limit does not cover the data field
var ErrInsufficientGasLimit = errors.New("insufficient gas limit")

// ErrInvalidNonce signals that the transaction nonce does not match the sender account nonce
var ErrInvalidNonce = errors.New("invalid transaction nonce")

// ErrInsufficientFunds signals that an account cannot cover a transfer or the transaction fee
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidValue signals that a value could not be parsed as a non-negative integer
var ErrInvalidValue = errors.New("invalid value")

// ErrInvalidAddress signals that an address could not be decoded
var ErrInvalidAddress = errors.New("invalid address")

// ErrTransactionNotFound signals that no transaction with the given hash was received
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrNotAContract signals that the queried address holds no contract
var ErrNotAContract = errors.New("address is not a smart contract")

// ErrInvalidTransferData signals a malformed built-in transfer data field
var ErrInvalidTransferData = errors.New("invalid built-in transfer data")

// ErrInvalidDeployData signals a malformed deploy data field
var ErrInvalidDeployData = errors.New("invalid deploy data")
