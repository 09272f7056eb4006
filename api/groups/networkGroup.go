package groups

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-esdt-fee-interactor/api/errors"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const getConfigPath = "/config"

// networkFacadeHandler defines the methods to be implemented by a facade for handling network requests
type networkFacadeHandler interface {
	GetNetworkConfig() *data.NetworkConfig
	IsInterfaceNil() bool
}

type networkGroup struct {
	*baseGroup
	facade networkFacadeHandler
}

// NewNetworkGroup returns a new instance of networkGroup
func NewNetworkGroup(facade networkFacadeHandler) (*networkGroup, error) {
	if check.IfNil(facade) {
		return nil, fmt.Errorf("%w for network group", errors.ErrNilFacadeHandler)
	}

	ng := &networkGroup{
		facade:    facade,
		baseGroup: &baseGroup{},
	}

	ng.endpoints = []*shared.EndpointHandlerData{
		{
			Path:    getConfigPath,
			Method:  http.MethodGet,
			Handler: ng.getNetworkConfig,
		},
	}

	return ng, nil
}

// getNetworkConfig returns the parameters needed for building transactions
func (ng *networkGroup) getNetworkConfig(c *gin.Context) {
	shared.RespondWithSuccess(c, data.NetworkConfigResponse{Config: ng.facade.GetNetworkConfig()})
}

// IsInterfaceNil returns true if there is no value under the interface
func (ng *networkGroup) IsInterfaceNil() bool {
	return ng == nil
}
