package txBuilder

import "errors"

// ErrNilSerializer signals that a nil arguments serializer has been provided
var ErrNilSerializer = errors.New("nil serializer")

// ErrNilAddressConverter signals that a nil address converter has been provided
var ErrNilAddressConverter = errors.New("nil address converter")

// ErrInvalidAddress signals that an address does not have the expected length
var ErrInvalidAddress = errors.New("invalid address")

// ErrEmptyFunction signals that an empty function name has been provided
var ErrEmptyFunction = errors.New("empty function name")

// ErrEmptyContractCode signals that an empty contract code has been provided
var ErrEmptyContractCode = errors.New("empty contract code")

// ErrNilAmount signals that a payment carries a nil amount
var ErrNilAmount = errors.New("nil amount")

// ErrNilRequest signals that a nil request has been provided
var ErrNilRequest = errors.New("nil request")

// ErrZeroGasLimit signals that a zero gas limit has been provided
var ErrZeroGasLimit = errors.New("zero gas limit")
