package common

import "errors"

// ErrEmptyContractCode signals that the contract code file holds no code
var ErrEmptyContractCode = errors.New("empty contract code")

// ErrInvalidContractBundle signals that the contract bundle could not be parsed
var ErrInvalidContractBundle = errors.New("invalid contract bundle")

// ErrEmptyFilePath signals that an empty file path has been provided
var ErrEmptyFilePath = errors.New("empty file path")
