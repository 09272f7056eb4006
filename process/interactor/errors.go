package interactor

import "errors"

// ErrNilGatewayClient signals that a nil gateway client has been provided
var ErrNilGatewayClient = errors.New("nil gateway client")

// ErrNilWallet signals that a nil wallet has been provided
var ErrNilWallet = errors.New("nil wallet")

// ErrNilStateHandler signals that a nil state handler has been provided
var ErrNilStateHandler = errors.New("nil state handler")

// ErrNilTransactionBuilder signals that a nil transaction builder has been provided
var ErrNilTransactionBuilder = errors.New("nil transaction builder")

// ErrNilOutcomeClassifier signals that a nil outcome classifier has been provided
var ErrNilOutcomeClassifier = errors.New("nil outcome classifier")

// ErrNilSerializer signals that a nil serializer has been provided
var ErrNilSerializer = errors.New("nil serializer")

// ErrNilAddressConverter signals that a nil address converter has been provided
var ErrNilAddressConverter = errors.New("nil address converter")

// ErrInvalidGasLimit signals that a zero gas limit has been provided
var ErrInvalidGasLimit = errors.New("invalid gas limit")

// ErrEmptyContractCode signals that no contract code is available for deploy
var ErrEmptyContractCode = errors.New("empty contract code")

// ErrUnknownFeeType signals that a fee policy of unknown type has been provided
var ErrUnknownFeeType = errors.New("unknown fee type")

// ErrScenarioFailed signals that a scenario step did not behave as expected
var ErrScenarioFailed = errors.New("scenario failed")
