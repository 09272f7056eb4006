package middleware_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-esdt-fee-interactor/api/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("nil registerer should error", func(t *testing.T) {
		t.Parallel()

		mm, err := middleware.NewMetricsMiddleware(nil)
		assert.True(t, check.IfNil(mm))
		assert.Equal(t, middleware.ErrNilRegisterer, err)
	})
	t.Run("double registration should error", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewRegistry()
		_, err := middleware.NewMetricsMiddleware(registry)
		require.NoError(t, err)

		_, err = middleware.NewMetricsMiddleware(registry)
		assert.Error(t, err)
	})
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	mm, err := middleware.NewMetricsMiddleware(registry)
	require.NoError(t, err)

	ws := startServerWithMiddleware(okHandler, mm.MiddlewareHandlerFunc())
	assert.Equal(t, http.StatusOK, doRequest(ws, "127.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, doRequest(ws, "127.0.0.1:1000").Code)

	expected := `
# HELP chain_simulator_api_requests_total number of REST requests served, by route, method and status
# TYPE chain_simulator_api_requests_total counter
chain_simulator_api_requests_total{method="GET",path="/network/config",status="200"} 2
`
	err = testutil.GatherAndCompare(registry, strings.NewReader(expected), "chain_simulator_api_requests_total")
	assert.NoError(t, err)

	count, err := testutil.GatherAndCount(registry, "chain_simulator_api_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
