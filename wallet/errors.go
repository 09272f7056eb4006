package wallet

import "errors"

// ErrNilAddressConverter signals that a nil address converter has been provided
var ErrNilAddressConverter = errors.New("nil address converter")

// ErrNilTransaction signals that a nil transaction has been provided
var ErrNilTransaction = errors.New("nil transaction")

// ErrInvalidSecretKeyLength signals that the secret key has an unexpected length
var ErrInvalidSecretKeyLength = errors.New("invalid secret key length")

// ErrAddressMismatch signals that the address written in the pem file does not match the secret key
var ErrAddressMismatch = errors.New("pem address does not match the secret key")

// ErrInvalidSignature signals that a transaction signature could not be verified
var ErrInvalidSignature = errors.New("invalid transaction signature")
