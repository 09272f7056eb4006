package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
)

type sourceEndpointKey struct {
	source   string
	endpoint string
}

// sourceThrottler counts the requests of each source until the next Reset. Endpoints with their own quota are
// counted separately, the others share the server wide quota of the source.
type sourceThrottler struct {
	mutRequests     sync.Mutex
	requests        map[sourceEndpointKey]uint32
	defaultQuota    uint32
	endpointsQuotas map[string]uint32
}

// NewSourceThrottler creates a new instance of a sourceThrottler. An endpoint throttler with a zero
// SameSourceRequests keeps the server wide quota.
func NewSourceThrottler(maxNumRequests uint32, endpointsThrottlers []config.EndpointsThrottlersConfig) (*sourceThrottler, error) {
	if maxNumRequests == 0 {
		return nil, ErrInvalidMaxNumRequests
	}

	endpointsQuotas := make(map[string]uint32)
	for _, endpointThrottler := range endpointsThrottlers {
		if endpointThrottler.SameSourceRequests == 0 {
			continue
		}

		endpointsQuotas[endpointThrottler.Endpoint] = endpointThrottler.SameSourceRequests
	}

	return &sourceThrottler{
		requests:        make(map[sourceEndpointKey]uint32),
		defaultQuota:    maxNumRequests,
		endpointsQuotas: endpointsQuotas,
	}, nil
}

// MiddlewareHandlerFunc returns the handler func used by the gin server to limit requests originating from the same source
func (st *sourceThrottler) MiddlewareHandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		source, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			shared.RespondWith(c, http.StatusInternalServerError, nil, err.Error(), data.ReturnCodeInternalError)
			c.Abort()
			return
		}

		key, quota := st.keyAndQuota(source, c.FullPath())

		st.mutRequests.Lock()
		isQuotaReached := st.requests[key] >= quota
		st.requests[key]++
		st.mutRequests.Unlock()

		if isQuotaReached {
			errMessage := fmt.Sprintf("%s from %s", ErrTooManyRequests.Error(), source)
			if len(key.endpoint) > 0 {
				errMessage += " on " + key.endpoint
			}
			shared.RespondWith(c, http.StatusTooManyRequests, nil, errMessage, data.ReturnCodeRequestError)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (st *sourceThrottler) keyAndQuota(source string, endpoint string) (sourceEndpointKey, uint32) {
	quota, hasOwnQuota := st.endpointsQuotas[endpoint]
	if !hasOwnQuota {
		return sourceEndpointKey{source: source}, st.defaultQuota
	}

	return sourceEndpointKey{source: source, endpoint: endpoint}, quota
}

// Reset resets all accumulated counters
func (st *sourceThrottler) Reset() {
	st.mutRequests.Lock()
	st.requests = make(map[sourceEndpointKey]uint32)
	st.mutRequests.Unlock()
}

// IsInterfaceNil returns true if there is no value under the interface
func (st *sourceThrottler) IsInterfaceNil() bool {
	return st == nil
}
