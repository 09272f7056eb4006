package data

import (
	"fmt"

	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
)

// DeclaredFailure is a structured rejection (return code and message) emitted by the contract or by the protocol
type DeclaredFailure struct {
	Code    vmcommon.ReturnCode
	Message string
}

// NewDeclaredFailure creates a new declared failure
func NewDeclaredFailure(code vmcommon.ReturnCode, message string) *DeclaredFailure {
	return &DeclaredFailure{
		Code:    code,
		Message: message,
	}
}

// Error returns the error string, so a declared failure can travel as an error
func (df *DeclaredFailure) Error() string {
	return fmt.Sprintf("%s (code %d): %s", df.Code.String(), int(df.Code), df.Message)
}

// Equals returns true if both the code and the message match exactly
func (df *DeclaredFailure) Equals(other *DeclaredFailure) bool {
	if df == nil || other == nil {
		return df == other
	}

	return df.Code == other.Code && df.Message == other.Message
}

// Outcome is the classified result of a remote call: exactly one of ReturnData (success) or Failure is meaningful
type Outcome struct {
	TxHash     string
	ReturnData [][]byte
	Failure    *DeclaredFailure
}

// NewSuccessOutcome creates a successful outcome
func NewSuccessOutcome(txHash string, returnData [][]byte) *Outcome {
	if returnData == nil {
		returnData = make([][]byte, 0)
	}

	return &Outcome{
		TxHash:     txHash,
		ReturnData: returnData,
	}
}

// NewFailureOutcome creates a failed outcome
func NewFailureOutcome(txHash string, failure *DeclaredFailure) *Outcome {
	return &Outcome{
		TxHash:  txHash,
		Failure: failure,
	}
}

// IsSuccess returns true if the remote call succeeded
func (o *Outcome) IsSuccess() bool {
	return o.Failure == nil
}

// String returns a human-readable form of the outcome
func (o *Outcome) String() string {
	if o.IsSuccess() {
		return fmt.Sprintf("Success(%d values) tx=%s", len(o.ReturnData), o.TxHash)
	}

	return fmt.Sprintf("Failure(%d, %q) tx=%s", int(o.Failure.Code), o.Failure.Message, o.TxHash)
}
