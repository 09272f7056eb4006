package chainSimulator

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"golang.org/x/crypto/blake2b"
)

const transactionTypeNormal = "normal"

func (s *simulator) newTransactionResult(tx *transaction.FrontendTransaction, txHash string) *transaction.ApiTransactionResult {
	round := uint64(s.roundHandler.Index())

	return &transaction.ApiTransactionResult{
		Type:       transactionTypeNormal,
		Hash:       txHash,
		Nonce:      tx.Nonce,
		Round:      round,
		Value:      tx.Value,
		Receiver:   tx.Receiver,
		Sender:     tx.Sender,
		GasPrice:   tx.GasPrice,
		GasLimit:   tx.GasLimit,
		Data:       tx.Data,
		Signature:  tx.Signature,
		BlockNonce: round,
		Timestamp:  s.roundHandler.TimeStamp().Unix(),
		ChainID:    tx.ChainID,
		Version:    tx.Version,
		Status:     transaction.TxStatusPending,
	}
}

func (s *simulator) encodeAddress(address []byte) string {
	encoded, err := s.addressConverter.Encode(address)
	if err != nil {
		log.Warn("cannot encode address", "address", hex.EncodeToString(address), "error", err.Error())
		return ""
	}

	return encoded
}

func (s *simulator) createDeployLogs(contractAddress []byte, owner []byte) *transaction.ApiLogs {
	bech32Contract := s.encodeAddress(contractAddress)

	return &transaction.ApiLogs{
		Address: bech32Contract,
		Events: []*transaction.Events{
			{
				Address:    bech32Contract,
				Identifier: common.SCDeployIdentifier,
				Topics:     [][]byte{contractAddress, owner},
			},
		},
	}
}

// createSignalErrorLogs emits the error event the way the VM does: the message as second topic and the
// "@"-prefixed hex encoded return code as data
func (s *simulator) createSignalErrorLogs(tx *validatedTransaction, failure *data.DeclaredFailure) *transaction.ApiLogs {
	bech32Receiver := s.encodeAddress(tx.receiver)

	return &transaction.ApiLogs{
		Address: bech32Receiver,
		Events: []*transaction.Events{
			{
				Address:    bech32Receiver,
				Identifier: core.SignalErrorOperation,
				Topics:     [][]byte{tx.sender, []byte(failure.Message)},
				Data:       []byte("@" + hex.EncodeToString([]byte(failure.Code.String()))),
			},
		},
	}
}

func (s *simulator) createOkResult(
	result *transaction.ApiTransactionResult,
	tx *validatedTransaction,
	contractAddress []byte,
	returnData [][]byte,
) *transaction.ApiSmartContractResult {
	parts := make([]string, 0, len(returnData)+2)
	parts = append(parts, "", common.OkReturnCodeHex)
	for _, value := range returnData {
		parts = append(parts, hex.EncodeToString(value))
	}

	return &transaction.ApiSmartContractResult{
		Hash:           computeResultHash(result.Hash, 0),
		Nonce:          tx.nonce + 1,
		Value:          big.NewInt(0),
		RcvAddr:        result.Sender,
		SndAddr:        s.encodeAddress(contractAddress),
		Data:           strings.Join(parts, dataSeparator),
		PrevTxHash:     result.Hash,
		OriginalTxHash: result.Hash,
	}
}

func (s *simulator) createTransferResult(
	result *transaction.ApiTransactionResult,
	sender []byte,
	receiver []byte,
	payments []data.EsdtPayment,
	index int,
) *transaction.ApiSmartContractResult {
	parts := []string{
		core.BuiltInFunctionMultiESDTNFTTransfer,
		hex.EncodeToString(receiver),
		hex.EncodeToString(big.NewInt(int64(len(payments))).Bytes()),
	}
	for _, payment := range payments {
		parts = append(parts,
			hex.EncodeToString([]byte(payment.TokenIdentifier)),
			hex.EncodeToString(big.NewInt(0).SetUint64(payment.Nonce).Bytes()),
			hex.EncodeToString(payment.Amount.Bytes()),
		)
	}

	bech32Sender := s.encodeAddress(sender)

	return &transaction.ApiSmartContractResult{
		Hash:           computeResultHash(result.Hash, index),
		Value:          big.NewInt(0),
		RcvAddr:        bech32Sender,
		SndAddr:        bech32Sender,
		Data:           strings.Join(parts, dataSeparator),
		PrevTxHash:     result.Hash,
		OriginalTxHash: result.Hash,
	}
}

func computeResultHash(txHash string, index int) string {
	hash := blake2b.Sum256([]byte(fmt.Sprintf("%s-%d", txHash, index)))
	return hex.EncodeToString(hash[:])
}
