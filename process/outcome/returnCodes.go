package outcome

import (
	"encoding/hex"
	"strings"

	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
)

const maxKnownReturnCode = vmcommon.SimulateFailed

// ReturnCodeFromString maps the textual form of a return code (as written by the VM) to its value.
// Unknown texts map to UserError.
func ReturnCodeFromString(text string) vmcommon.ReturnCode {
	text = strings.TrimSpace(text)
	for code := vmcommon.Ok; code <= maxKnownReturnCode; code++ {
		if code.String() == text {
			return code
		}
	}

	return vmcommon.UserError
}

// returnCodeFromEventData decodes the "@<hex(return code text)>" data of an error log event
func returnCodeFromEventData(eventData []byte) vmcommon.ReturnCode {
	parts := strings.Split(string(eventData), "@")
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}

		decoded, err := hex.DecodeString(part)
		if err != nil {
			continue
		}

		return ReturnCodeFromString(string(decoded))
	}

	return vmcommon.UserError
}
