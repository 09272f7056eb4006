package state

import "errors"

// ErrNotDeployed signals that an operation needs a deployed contract but no address was persisted
var ErrNotDeployed = errors.New("no contract address persisted, deploy the contract first")

// ErrEmptyAddress signals that an empty contract address has been provided
var ErrEmptyAddress = errors.New("empty contract address")

// ErrInvalidAddress signals that the provided contract address is not a valid bech32 address
var ErrInvalidAddress = errors.New("invalid contract address")

// ErrCorruptedState signals that the state file exists but could not be decoded
var ErrCorruptedState = errors.New("corrupted state file")

// ErrNilAddressConverter signals that a nil address converter has been provided
var ErrNilAddressConverter = errors.New("nil address converter")
