package shared

import (
	"math/big"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/data/transaction"
	"github.com/multiversx/mx-chain-core-go/data/vm"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

// FacadeHandler defines all the methods the gin groups can call on the chain simulator
type FacadeHandler interface {
	GetNetworkConfig() *data.NetworkConfig
	GetAccount(address string) (*data.Account, error)
	GetESDTBalance(address string, tokenIdentifier string) (*big.Int, error)
	SendTransaction(tx *transaction.FrontendTransaction) (string, error)
	GetTransactionStatus(txHash string) (transaction.TxStatus, error)
	GetTransaction(txHash string, withResults bool) (*transaction.ApiTransactionResult, error)
	ExecuteQuery(request *data.VmValueRequest) (*vm.VMOutputApi, error)
	IsInterfaceNil() bool
}

// GroupHandler defines the actions needed to be performed by a gin API group
type GroupHandler interface {
	RegisterRoutes(ws *gin.RouterGroup, apiConfig config.ApiRoutesConfig, additionalMiddlewares []MiddlewareProcessor)
	IsInterfaceNil() bool
}

// MiddlewareProcessor defines a processor used internally by the web server when processing requests
type MiddlewareProcessor interface {
	MiddlewareHandlerFunc() gin.HandlerFunc
	IsInterfaceNil() bool
}

// HttpServerCloser defines the basic actions of starting and closing that a web server should be able to do
type HttpServerCloser interface {
	Start()
	Close() error
	IsInterfaceNil() bool
}

// EndpointHandlerData holds the items needed for creating a new gin HandlerFunc
type EndpointHandlerData struct {
	Path    string
	Method  string
	Handler gin.HandlerFunc
}
