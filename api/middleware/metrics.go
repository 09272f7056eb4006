package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "chain_simulator"

// metricsMiddleware counts the served requests and observes their duration
type metricsMiddleware struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware creates the request collectors and registers them on the provided registerer
func NewMetricsMiddleware(registerer prometheus.Registerer) (*metricsMiddleware, error) {
	if registerer == nil {
		return nil, ErrNilRegisterer
	}

	mm := &metricsMiddleware{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "api_requests_total",
			Help:      "number of REST requests served, by route, method and status",
		}, []string{"path", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "api_request_duration_seconds",
			Help:      "duration of the REST requests, by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}

	for _, collector := range []prometheus.Collector{mm.requests, mm.duration} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, err
		}
	}

	return mm, nil
}

// MiddlewareHandlerFunc returns the handler func updating the request collectors
func (mm *metricsMiddleware) MiddlewareHandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// the matched route keeps the label cardinality bounded
		path := c.FullPath()
		if len(path) == 0 {
			path = "unmatched"
		}

		mm.requests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		mm.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (mm *metricsMiddleware) IsInterfaceNil() bool {
	return mm == nil
}
