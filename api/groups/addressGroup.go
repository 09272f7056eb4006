package groups

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-esdt-fee-interactor/api/errors"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const (
	getAccountPath     = "/:address"
	getESDTBalancePath = "/:address/esdt/:tokenIdentifier"
)

// addressFacadeHandler defines the methods to be implemented by a facade for handling address requests
type addressFacadeHandler interface {
	GetAccount(address string) (*data.Account, error)
	GetESDTBalance(address string, tokenIdentifier string) (*big.Int, error)
	IsInterfaceNil() bool
}

type addressGroup struct {
	*baseGroup
	facade addressFacadeHandler
}

type esdtTokenData struct {
	TokenIdentifier string `json:"tokenIdentifier"`
	Balance         string `json:"balance"`
}

// NewAddressGroup returns a new instance of addressGroup
func NewAddressGroup(facade addressFacadeHandler) (*addressGroup, error) {
	if check.IfNil(facade) {
		return nil, fmt.Errorf("%w for address group", errors.ErrNilFacadeHandler)
	}

	ag := &addressGroup{
		facade:    facade,
		baseGroup: &baseGroup{},
	}

	ag.endpoints = []*shared.EndpointHandlerData{
		{
			Path:    getAccountPath,
			Method:  http.MethodGet,
			Handler: ag.getAccount,
		},
		{
			Path:    getESDTBalancePath,
			Method:  http.MethodGet,
			Handler: ag.getESDTBalance,
		},
	}

	return ag, nil
}

// getAccount returns a response containing information about the account correlated with provided address
func (ag *addressGroup) getAccount(c *gin.Context) {
	addr := c.Param("address")
	if addr == "" {
		shared.RespondWithValidationError(c, errors.ErrCouldNotGetAccount, errors.ErrEmptyAddress)
		return
	}

	account, err := ag.facade.GetAccount(addr)
	if err != nil {
		shared.RespondWithInternalError(c, errors.ErrCouldNotGetAccount, err)
		return
	}

	shared.RespondWithSuccess(c, data.AccountResponse{Account: account})
}

// getESDTBalance returns the balance of the given token held by the address parameter
func (ag *addressGroup) getESDTBalance(c *gin.Context) {
	addr := c.Param("address")
	if addr == "" {
		shared.RespondWithValidationError(c, errors.ErrGetESDTBalance, errors.ErrEmptyAddress)
		return
	}

	tokenIdentifier := c.Param("tokenIdentifier")
	if tokenIdentifier == "" {
		shared.RespondWithValidationError(c, errors.ErrGetESDTBalance, errors.ErrEmptyTokenIdentifier)
		return
	}

	balance, err := ag.facade.GetESDTBalance(addr, tokenIdentifier)
	if err != nil {
		shared.RespondWithInternalError(c, errors.ErrGetESDTBalance, err)
		return
	}

	tokenData := esdtTokenData{
		TokenIdentifier: tokenIdentifier,
		Balance:         balance.String(),
	}

	shared.RespondWithSuccess(c, gin.H{"tokenData": tokenData})
}

// IsInterfaceNil returns true if there is no value under the interface
func (ag *addressGroup) IsInterfaceNil() bool {
	return ag == nil
}
