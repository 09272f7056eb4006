package outcome

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	logger "github.com/multiversx/mx-chain-logger-go"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const (
	atSep               = "@"
	messageTopicIndex   = 1
	deployedTopicIndex  = 0
	okReturnCodeMarker  = atSep + common.OkReturnCodeHex
	executionFailedText = "execution failed"
)

var log = logger.GetOrCreate("process/outcome")

type outcomeClassifier struct {
	addressConverter core.PubkeyConverter
}

// NewOutcomeClassifier creates the component interpreting raw transaction and query results
func NewOutcomeClassifier(addressConverter core.PubkeyConverter) (*outcomeClassifier, error) {
	if check.IfNil(addressConverter) {
		return nil, ErrNilAddressConverter
	}

	return &outcomeClassifier{
		addressConverter: addressConverter,
	}, nil
}

// ClassifyTransaction interprets an executed transaction as a success (with its return data) or as a declared failure
func (oc *outcomeClassifier) ClassifyTransaction(tx *transaction.ApiTransactionResult) (*data.Outcome, error) {
	if tx == nil {
		return nil, ErrNilTransactionResult
	}
	if tx.Status == transaction.TxStatusPending {
		return nil, fmt.Errorf("%w: transaction %s is %s", ErrTransactionNotExecuted, tx.Hash, tx.Status)
	}

	failure := oc.findDeclaredFailure(tx)
	if failure != nil {
		log.Debug("transaction failed", "hash", tx.Hash, "code", failure.Code.String(), "message", failure.Message)
		return data.NewFailureOutcome(tx.Hash, failure), nil
	}

	if tx.Status == transaction.TxStatusFail || tx.Status == transaction.TxStatusInvalid {
		return data.NewFailureOutcome(tx.Hash, data.NewDeclaredFailure(vmcommon.ExecutionFailed, oc.failureReason(tx))), nil
	}

	returnData, err := oc.extractReturnData(tx)
	if err != nil {
		return nil, err
	}

	return data.NewSuccessOutcome(tx.Hash, returnData), nil
}

// ClassifyQuery interprets the output of a VM query
func (oc *outcomeClassifier) ClassifyQuery(vmOutput *vm.VMOutputApi) (*data.Outcome, error) {
	if vmOutput == nil {
		return nil, ErrNilVMOutput
	}

	code := ReturnCodeFromString(vmOutput.ReturnCode)
	if code != vmcommon.Ok {
		return data.NewFailureOutcome("", data.NewDeclaredFailure(code, vmOutput.ReturnMessage)), nil
	}

	return data.NewSuccessOutcome("", vmOutput.ReturnData), nil
}

// ExtractDeployedAddress returns the bech32 address of the contract created by a successful deploy transaction
func (oc *outcomeClassifier) ExtractDeployedAddress(tx *transaction.ApiTransactionResult) (string, error) {
	if tx == nil {
		return "", ErrNilTransactionResult
	}

	for _, event := range collectEvents(tx) {
		if event.Identifier != common.SCDeployIdentifier {
			continue
		}

		if len(event.Topics) > deployedTopicIndex && len(event.Topics[deployedTopicIndex]) == common.AddressLength {
			return oc.addressConverter.Encode(event.Topics[deployedTopicIndex])
		}
		if len(event.Address) > 0 {
			return event.Address, nil
		}
	}

	return "", fmt.Errorf("%w in transaction %s", ErrMissingDeployEvent, tx.Hash)
}

// AssertExpected returns nil only if the outcome is a failure with exactly the expected code and message
func (oc *outcomeClassifier) AssertExpected(outcome *data.Outcome, expected *data.DeclaredFailure) error {
	if outcome == nil {
		return ErrNilOutcome
	}
	if expected == nil {
		if outcome.IsSuccess() {
			return nil
		}

		return fmt.Errorf("%w: expected success, got %s", ErrUnexpectedOutcome, outcome.String())
	}
	if outcome.IsSuccess() {
		return fmt.Errorf("%w: expected failure %s, got %s", ErrUnexpectedOutcome, expected.Error(), outcome.String())
	}
	if !outcome.Failure.Equals(expected) {
		return fmt.Errorf("%w: expected failure %s, got %s", ErrUnexpectedOutcome, expected.Error(), outcome.Failure.Error())
	}

	return nil
}

func (oc *outcomeClassifier) findDeclaredFailure(tx *transaction.ApiTransactionResult) *data.DeclaredFailure {
	for _, event := range collectEvents(tx) {
		isErrorEvent := event.Identifier == common.SignalErrorIdentifier || event.Identifier == common.InternalVMErrorsIdentifier
		if !isErrorEvent {
			continue
		}

		message := ""
		if len(event.Topics) > messageTopicIndex {
			message = string(event.Topics[messageTopicIndex])
		}
		if event.Identifier == common.InternalVMErrorsIdentifier && len(message) == 0 {
			message = string(event.Data)
		}

		return data.NewDeclaredFailure(returnCodeFromEventData(event.Data), message)
	}

	return nil
}

func (oc *outcomeClassifier) failureReason(tx *transaction.ApiTransactionResult) string {
	for _, scr := range tx.SmartContractResults {
		if scr != nil && len(scr.ReturnMessage) > 0 {
			return scr.ReturnMessage
		}
	}

	return executionFailedText
}

func (oc *outcomeClassifier) extractReturnData(tx *transaction.ApiTransactionResult) ([][]byte, error) {
	for _, scr := range tx.SmartContractResults {
		if scr == nil || !strings.HasPrefix(scr.Data, okReturnCodeMarker) {
			continue
		}

		return parseReturnData(scr.Data)
	}

	return make([][]byte, 0), nil
}

// parseReturnData splits "@6f6b@<hex>@<hex>..." into the raw values following the ok marker
func parseReturnData(scrData string) ([][]byte, error) {
	parts := strings.Split(strings.TrimPrefix(scrData, okReturnCodeMarker), atSep)
	returnData := make([][]byte, 0, len(parts))
	for i, part := range parts {
		if i == 0 {
			// text between the ok marker and the first separator, always empty
			continue
		}

		decoded, err := hex.DecodeString(part)
		if err != nil {
			return nil, fmt.Errorf("%w while decoding return value %d", err, i-1)
		}

		returnData = append(returnData, decoded)
	}

	return returnData, nil
}

func collectEvents(tx *transaction.ApiTransactionResult) []*transaction.Events {
	events := make([]*transaction.Events, 0)
	events = appendEvents(events, tx.Logs)
	for _, scr := range tx.SmartContractResults {
		if scr != nil {
			events = appendEvents(events, scr.Logs)
		}
	}

	return events
}

func appendEvents(events []*transaction.Events, logs *transaction.ApiLogs) []*transaction.Events {
	if logs == nil {
		return events
	}

	for _, event := range logs.Events {
		if event != nil {
			events = append(events, event)
		}
	}

	return events
}

// IsInterfaceNil returns true if there is no value under the interface
func (oc *outcomeClassifier) IsInterfaceNil() bool {
	return oc == nil
}
