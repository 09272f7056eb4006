package middleware

import "errors"

// ErrInvalidMaxNumRequests signals that a provided number of requests is invalid
var ErrInvalidMaxNumRequests = errors.New("max number of requests value is invalid")

// ErrNilRegisterer signals that a nil prometheus registerer has been provided
var ErrNilRegisterer = errors.New("nil prometheus registerer")

// ErrTooManyRequests signals that too many requests were simultaneously received
var ErrTooManyRequests = errors.New("too many requests")

// ErrDuplicatedEndpointThrottler signals that the same endpoint was given more than one throttler
var ErrDuplicatedEndpointThrottler = errors.New("duplicated endpoint throttler")
