package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseLoggerMiddleware_MiddlewareHandlerFunc(t *testing.T) {
	t.Parallel()

	t.Run("fast successful request is not logged", func(t *testing.T) {
		t.Parallel()

		rlm := NewResponseLoggerMiddleware(time.Hour)
		numPrints := 0
		rlm.printRequestFunc = func(_ string, _ string, _ time.Duration, _ int, _ string, _ string) {
			numPrints++
		}

		ws := gin.New()
		ws.Use(rlm.MiddlewareHandlerFunc())
		ws.GET("/ok", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		resp := httptest.NewRecorder()
		ws.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Zero(t, numPrints)
	})
	t.Run("bad request is logged with the consumed request body", func(t *testing.T) {
		t.Parallel()

		rlm := NewResponseLoggerMiddleware(time.Hour)
		var printedTitle, printedRequest, printedResponse string
		var printedStatus int
		rlm.printRequestFunc = func(title string, _ string, _ time.Duration, status int, request string, response string) {
			printedTitle = title
			printedStatus = status
			printedRequest = request
			printedResponse = response
		}

		ws := gin.New()
		ws.Use(rlm.MiddlewareHandlerFunc())
		ws.POST("/send", func(c *gin.Context) {
			body := make(map[string]interface{})
			err := c.ShouldBindJSON(&body)
			require.NoError(t, err)

			c.String(http.StatusBadRequest, "invalid nonce")
		})

		req, _ := http.NewRequest(http.MethodPost, "/send", bytes.NewBufferString(`{"nonce": 7}`))
		resp := httptest.NewRecorder()
		ws.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, printedStatus)
		assert.Equal(t, "[bad request] api request", printedTitle)
		assert.Equal(t, `{"nonce":7}`, printedRequest)
		assert.Equal(t, "invalidnonce", printedResponse)
	})
}

func TestResponseLoggerMiddleware_computeLogTitle(t *testing.T) {
	t.Parallel()

	rlm := NewResponseLoggerMiddleware(time.Second)
	assert.Equal(t, "[too long] api request", rlm.computeLogTitle(http.StatusOK))
	assert.Equal(t, "[internal error] api request", rlm.computeLogTitle(http.StatusInternalServerError))
	assert.Equal(t, "http code 404 api request", rlm.computeLogTitle(http.StatusNotFound))
}
