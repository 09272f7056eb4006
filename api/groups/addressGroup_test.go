package groups_test

import (
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apiErrors "github.com/multiversx/mx-esdt-fee-interactor/api/errors"
	"github.com/multiversx/mx-esdt-fee-interactor/api/groups"
	"github.com/multiversx/mx-esdt-fee-interactor/api/mock"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountResponse struct {
	Data  data.AccountResponse `json:"data"`
	Error string               `json:"error"`
	Code  string               `json:"code"`
}

type esdtTokenResponse struct {
	Data struct {
		TokenData struct {
			TokenIdentifier string `json:"tokenIdentifier"`
			Balance         string `json:"balance"`
		} `json:"tokenData"`
	} `json:"data"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestNewAddressGroup(t *testing.T) {
	t.Parallel()

	t.Run("nil facade", func(t *testing.T) {
		ag, err := groups.NewAddressGroup(nil)
		require.True(t, errors.Is(err, apiErrors.ErrNilFacadeHandler))
		require.Nil(t, ag)
	})

	t.Run("should work", func(t *testing.T) {
		ag, err := groups.NewAddressGroup(&mock.FacadeStub{})
		require.NoError(t, err)
		require.NotNil(t, ag)
	})
}

func TestAddressRoute_EmptyTrailReturns404(t *testing.T) {
	t.Parallel()

	addrGroup, err := groups.NewAddressGroup(&mock.FacadeStub{})
	require.NoError(t, err)

	ws := startWebServer(addrGroup, "address", getRoutesConfig())

	req, _ := http.NewRequest(http.MethodGet, "/address", nil)
	resp := httptest.NewRecorder()
	ws.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAddressGroup_getAccount(t *testing.T) {
	t.Parallel()

	t.Run("facade error should error", func(t *testing.T) {
		t.Parallel()

		facade := &mock.FacadeStub{
			GetAccountCalled: func(address string) (*data.Account, error) {
				return nil, expectedErr
			},
		}

		addrGroup, err := groups.NewAddressGroup(facade)
		require.NoError(t, err)

		ws := startWebServer(addrGroup, "address", getRoutesConfig())

		req, _ := http.NewRequest(http.MethodGet, "/address/erd1alice", nil)
		resp := httptest.NewRecorder()
		ws.ServeHTTP(resp, req)

		response := accountResponse{}
		loadResponse(resp.Body, &response)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, string(data.ReturnCodeInternalError), response.Code)
		assert.Equal(t, formatExpectedErr(apiErrors.ErrCouldNotGetAccount, expectedErr), response.Error)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		facade := &mock.FacadeStub{
			GetAccountCalled: func(address string) (*data.Account, error) {
				return &data.Account{
					Address: address,
					Nonce:   7,
					Balance: big.NewInt(100).String(),
				}, nil
			},
		}

		addrGroup, err := groups.NewAddressGroup(facade)
		require.NoError(t, err)

		ws := startWebServer(addrGroup, "address", getRoutesConfig())

		req, _ := http.NewRequest(http.MethodGet, "/address/erd1alice", nil)
		resp := httptest.NewRecorder()
		ws.ServeHTTP(resp, req)

		response := accountResponse{}
		loadResponse(resp.Body, &response)
		assert.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, response.Data.Account)
		assert.Equal(t, "erd1alice", response.Data.Account.Address)
		assert.Equal(t, uint64(7), response.Data.Account.Nonce)
		assert.Equal(t, "100", response.Data.Account.Balance)
		assert.Empty(t, response.Error)
	})
}

func TestAddressGroup_getESDTBalance(t *testing.T) {
	t.Parallel()

	t.Run("facade error should error", func(t *testing.T) {
		t.Parallel()

		facade := &mock.FacadeStub{
			GetESDTBalanceCalled: func(address string, tokenIdentifier string) (*big.Int, error) {
				return nil, expectedErr
			},
		}

		addrGroup, err := groups.NewAddressGroup(facade)
		require.NoError(t, err)

		ws := startWebServer(addrGroup, "address", getRoutesConfig())

		req, _ := http.NewRequest(http.MethodGet, "/address/erd1alice/esdt/XMAS-43a751", nil)
		resp := httptest.NewRecorder()
		ws.ServeHTTP(resp, req)

		response := esdtTokenResponse{}
		loadResponse(resp.Body, &response)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.True(t, strings.Contains(response.Error, expectedErr.Error()))
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		facade := &mock.FacadeStub{
			GetESDTBalanceCalled: func(address string, tokenIdentifier string) (*big.Int, error) {
				assert.Equal(t, "erd1alice", address)
				assert.Equal(t, "XMAS-43a751", tokenIdentifier)

				return big.NewInt(1000), nil
			},
		}

		addrGroup, err := groups.NewAddressGroup(facade)
		require.NoError(t, err)

		ws := startWebServer(addrGroup, "address", getRoutesConfig())

		req, _ := http.NewRequest(http.MethodGet, "/address/erd1alice/esdt/XMAS-43a751", nil)
		resp := httptest.NewRecorder()
		ws.ServeHTTP(resp, req)

		response := esdtTokenResponse{}
		loadResponse(resp.Body, &response)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "XMAS-43a751", response.Data.TokenData.TokenIdentifier)
		assert.Equal(t, "1000", response.Data.TokenData.Balance)
	})
}

func TestAddressGroup_IsInterfaceNil(t *testing.T) {
	t.Parallel()

	addrGroup, _ := groups.NewAddressGroup(nil)
	require.True(t, addrGroup.IsInterfaceNil())

	addrGroup, _ = groups.NewAddressGroup(&mock.FacadeStub{})
	require.False(t, addrGroup.IsInterfaceNil())
}
