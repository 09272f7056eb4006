package gateway

import "github.com/pkg/errors"

// ErrEmptyURL signals that an empty gateway url has been provided
var ErrEmptyURL = errors.New("empty gateway url")

// ErrInvalidPollingInterval signals that an invalid status polling interval has been provided
var ErrInvalidPollingInterval = errors.New("invalid status polling interval")

// ErrNilTransaction signals that a nil transaction has been provided
var ErrNilTransaction = errors.New("nil transaction")

// ErrNilQuery signals that a nil query has been provided
var ErrNilQuery = errors.New("nil query")

// ErrGatewayRequestFailed signals that the gateway answered with an error
var ErrGatewayRequestFailed = errors.New("gateway request failed")

// ErrEmptyResponse signals that the gateway answered without the expected data
var ErrEmptyResponse = errors.New("empty gateway response")
