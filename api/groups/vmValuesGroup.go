package groups

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-esdt-fee-interactor/api/errors"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

const queryPath = "/query"

// vmValuesFacadeHandler defines the methods to be implemented by a facade for vm-values requests
type vmValuesFacadeHandler interface {
	ExecuteQuery(request *data.VmValueRequest) (*vm.VMOutputApi, error)
	IsInterfaceNil() bool
}

type vmValuesGroup struct {
	*baseGroup
	facade vmValuesFacadeHandler
}

// NewVmValuesGroup returns a new instance of vmValuesGroup
func NewVmValuesGroup(facade vmValuesFacadeHandler) (*vmValuesGroup, error) {
	if check.IfNil(facade) {
		return nil, fmt.Errorf("%w for vm-values group", errors.ErrNilFacadeHandler)
	}

	vvg := &vmValuesGroup{
		facade:    facade,
		baseGroup: &baseGroup{},
	}

	vvg.endpoints = []*shared.EndpointHandlerData{
		{
			Path:    queryPath,
			Method:  http.MethodPost,
			Handler: vvg.executeQuery,
		},
	}

	return vvg, nil
}

// executeQuery runs a read-only contract call and returns the whole VM output
func (vvg *vmValuesGroup) executeQuery(c *gin.Context) {
	request := data.VmValueRequest{}
	err := c.ShouldBindJSON(&request)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrInvalidJSONRequest, err)
		return
	}

	vmOutput, err := vvg.facade.ExecuteQuery(&request)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrQueryError, err)
		return
	}

	shared.RespondWithSuccess(c, data.VmValuesResponse{Data: vmOutput})
}

// IsInterfaceNil returns true if there is no value under the interface
func (vvg *vmValuesGroup) IsInterfaceNil() bool {
	return vvg == nil
}
