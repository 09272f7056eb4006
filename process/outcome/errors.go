package outcome

import "errors"

// ErrNilTransactionResult signals that a nil transaction result has been provided
var ErrNilTransactionResult = errors.New("nil transaction result")

// ErrNilVMOutput signals that a nil VM output has been provided
var ErrNilVMOutput = errors.New("nil vm output")

// ErrNilOutcome signals that a nil outcome has been provided
var ErrNilOutcome = errors.New("nil outcome")

// ErrUnexpectedOutcome signals that an outcome does not match the expected declared failure
var ErrUnexpectedOutcome = errors.New("unexpected outcome")

// ErrTransactionNotExecuted signals that the transaction is not in a final state
var ErrTransactionNotExecuted = errors.New("transaction not executed")

// ErrMissingDeployEvent signals that a successful deploy did not emit the deploy event
var ErrMissingDeployEvent = errors.New("missing deploy event")

// ErrNilAddressConverter signals that a nil address converter has been provided
var ErrNilAddressConverter = errors.New("nil address converter")
