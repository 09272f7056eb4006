package groups

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-esdt-fee-interactor/api/errors"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const (
	sendTransactionPath  = "/send"
	getTransactionPath   = "/:txhash"
	getProcessStatusPath = "/:txhash/process-status"
	urlParamWithResults  = "withResults"
	txHashParam          = "txhash"
)

// transactionFacadeHandler defines the methods to be implemented by a facade for transaction requests
type transactionFacadeHandler interface {
	SendTransaction(tx *transaction.FrontendTransaction) (string, error)
	GetTransactionStatus(txHash string) (transaction.TxStatus, error)
	GetTransaction(txHash string, withResults bool) (*transaction.ApiTransactionResult, error)
	IsInterfaceNil() bool
}

type transactionGroup struct {
	*baseGroup
	facade transactionFacadeHandler
}

// NewTransactionGroup returns a new instance of transactionGroup
func NewTransactionGroup(facade transactionFacadeHandler) (*transactionGroup, error) {
	if check.IfNil(facade) {
		return nil, fmt.Errorf("%w for transaction group", errors.ErrNilFacadeHandler)
	}

	tg := &transactionGroup{
		facade:    facade,
		baseGroup: &baseGroup{},
	}

	tg.endpoints = []*shared.EndpointHandlerData{
		{
			Path:    sendTransactionPath,
			Method:  http.MethodPost,
			Handler: tg.sendTransaction,
		},
		{
			Path:    getTransactionPath,
			Method:  http.MethodGet,
			Handler: tg.getTransaction,
		},
		{
			Path:    getProcessStatusPath,
			Method:  http.MethodGet,
			Handler: tg.getProcessStatus,
		},
	}

	return tg, nil
}

// sendTransaction will receive a signed transaction from the client and execute it
func (tg *transactionGroup) sendTransaction(c *gin.Context) {
	ftx := transaction.FrontendTransaction{}
	err := c.ShouldBindJSON(&ftx)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrInvalidJSONRequest, err)
		return
	}

	txHash, err := tg.facade.SendTransaction(&ftx)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrTxGenerationFailed, err)
		return
	}

	shared.RespondWithSuccess(c, data.SendTransactionResponse{TxHash: txHash})
}

// getProcessStatus returns the execution status of the transaction
func (tg *transactionGroup) getProcessStatus(c *gin.Context) {
	txHash := c.Param(txHashParam)
	if txHash == "" {
		shared.RespondWithValidationError(c, errors.ErrGetTransaction, errors.ErrValidationEmptyTxHash)
		return
	}

	status, err := tg.facade.GetTransactionStatus(txHash)
	if err != nil {
		shared.RespondWithInternalError(c, errors.ErrGetTransaction, err)
		return
	}

	shared.RespondWithSuccess(c, data.ProcessStatusResponse{Status: string(status)})
}

// getTransaction returns the transaction, together with its results when requested
func (tg *transactionGroup) getTransaction(c *gin.Context) {
	txHash := c.Param(txHashParam)
	if txHash == "" {
		shared.RespondWithValidationError(c, errors.ErrGetTransaction, errors.ErrValidationEmptyTxHash)
		return
	}

	withResults, err := parseBoolUrlParam(c, urlParamWithResults)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrGetTransaction, errors.ErrBadUrlParams)
		return
	}

	tx, err := tg.facade.GetTransaction(txHash, withResults)
	if err != nil {
		shared.RespondWithInternalError(c, errors.ErrGetTransaction, err)
		return
	}

	shared.RespondWithSuccess(c, data.TransactionResponse{Transaction: tx})
}

// IsInterfaceNil returns true if there is no value under the interface
func (tg *transactionGroup) IsInterfaceNil() bool {
	return tg == nil
}
