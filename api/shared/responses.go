package shared

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

// RespondWith will respond with the generic API response
func RespondWith(c *gin.Context, status int, dataField interface{}, err string, code data.ReturnCode) {
	c.JSON(
		status,
		data.GenericAPIResponse{
			Data:  dataField,
			Error: err,
			Code:  code,
		},
	)
}

// RespondWithSuccess will respond with the generic API response having the provided data field
func RespondWithSuccess(c *gin.Context, dataField interface{}) {
	RespondWith(c, http.StatusOK, dataField, "", data.ReturnCodeSuccess)
}

// RespondWithValidationError should be called when the request cannot be satisfied due to a (request) validation error
func RespondWithValidationError(c *gin.Context, err error, innerErr error) {
	errMessage := fmt.Sprintf("%s: %s", err.Error(), innerErr.Error())
	RespondWith(c, http.StatusBadRequest, nil, errMessage, data.ReturnCodeRequestError)
}

// RespondWithInternalError should be called when the request cannot be satisfied due to an internal error
func RespondWithInternalError(c *gin.Context, err error, innerErr error) {
	errMessage := fmt.Sprintf("%s: %s", err.Error(), innerErr.Error())
	RespondWith(c, http.StatusInternalServerError, nil, errMessage, data.ReturnCodeInternalError)
}
