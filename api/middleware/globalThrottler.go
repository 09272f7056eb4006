package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

// globalThrottler limits the number of requests processed at the same time. Endpoints with their own limit
// get a dedicated slot pool and do not consume the server wide one.
type globalThrottler struct {
	serverSlots    chan struct{}
	endpointsSlots map[string]chan struct{}
}

// NewGlobalThrottler creates a new instance of a globalThrottler
func NewGlobalThrottler(maxConnections uint32, endpointsThrottlers []config.EndpointsThrottlersConfig) (*globalThrottler, error) {
	if maxConnections == 0 {
		return nil, ErrInvalidMaxNumRequests
	}

	endpointsSlots := make(map[string]chan struct{}, len(endpointsThrottlers))
	for _, endpointThrottler := range endpointsThrottlers {
		if endpointThrottler.MaxNumGoRoutines == 0 {
			return nil, fmt.Errorf("%w for endpoint %s", ErrInvalidMaxNumRequests, endpointThrottler.Endpoint)
		}
		if _, exists := endpointsSlots[endpointThrottler.Endpoint]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatedEndpointThrottler, endpointThrottler.Endpoint)
		}

		endpointsSlots[endpointThrottler.Endpoint] = make(chan struct{}, endpointThrottler.MaxNumGoRoutines)
	}

	return &globalThrottler{
		serverSlots:    make(chan struct{}, maxConnections),
		endpointsSlots: endpointsSlots,
	}, nil
}

// MiddlewareHandlerFunc returns the handler func used by the gin server to limit simultaneous requests
func (gt *globalThrottler) MiddlewareHandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		slots, hasOwnLimit := gt.endpointsSlots[endpoint]
		if !hasOwnLimit {
			slots = gt.serverSlots
		}

		select {
		case slots <- struct{}{}:
		default:
			errMessage := fmt.Sprintf("%s: %d simultaneous requests", ErrTooManyRequests.Error(), cap(slots))
			if hasOwnLimit {
				errMessage += " on " + endpoint
			}
			shared.RespondWith(c, http.StatusTooManyRequests, nil, errMessage, data.ReturnCodeRequestError)
			c.Abort()
			return
		}
		defer func() {
			<-slots
		}()

		c.Next()
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (gt *globalThrottler) IsInterfaceNil() bool {
	return gt == nil
}
