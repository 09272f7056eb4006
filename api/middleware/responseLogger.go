package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
)

const (
	prefixDurationTooLong = "[too long]"
	prefixBadRequest      = "[bad request]"
	prefixInternalError   = "[internal error]"
	responseMaxLength     = 100
	requestNotAvailable   = "n/a"
)

type responseLoggerMiddleware struct {
	thresholdDurationForLoggingRequest time.Duration
	printRequestFunc                   func(title string, path string, duration time.Duration, status int, request string, response string)
}

// NewResponseLoggerMiddleware returns a new instance of responseLoggerMiddleware
func NewResponseLoggerMiddleware(thresholdDurationForLoggingRequest time.Duration) *responseLoggerMiddleware {
	rlm := &responseLoggerMiddleware{
		thresholdDurationForLoggingRequest: thresholdDurationForLoggingRequest,
	}

	rlm.printRequestFunc = rlm.printRequest

	return rlm
}

// MiddlewareHandlerFunc logs details about a request if it is not successful or its duration is higher than a threshold
func (rlm *responseLoggerMiddleware) MiddlewareHandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()

		// the handlers consume the request body so it is buffered before calling them
		request := readRequestBody(c)

		bw := &bodyWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		latency := time.Since(t)
		status := c.Writer.Status()

		shouldLogRequest := latency > rlm.thresholdDurationForLoggingRequest || status != http.StatusOK
		if shouldLogRequest {
			responseBodyString := removeWhitespacesFromString(bw.body.String())
			title := rlm.computeLogTitle(status)
			rlm.printRequestFunc(title, c.Request.RequestURI, latency, status, request, responseBodyString)
		}
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (rlm *responseLoggerMiddleware) IsInterfaceNil() bool {
	return rlm == nil
}

func readRequestBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return requestNotAvailable
	}

	reqBodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Error("cannot read request body", "error", err)
		return requestNotAvailable
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(reqBodyBytes))

	if len(reqBodyBytes) == 0 {
		return requestNotAvailable
	}

	return removeWhitespacesFromString(string(reqBodyBytes))
}

func (rlm *responseLoggerMiddleware) computeLogTitle(status int) string {
	logPrefix := prefixDurationTooLong
	switch {
	case status == http.StatusBadRequest:
		logPrefix = prefixBadRequest
	case status == http.StatusInternalServerError:
		logPrefix = prefixInternalError
	case status != http.StatusOK:
		logPrefix = fmt.Sprintf("http code %d", status)
	}

	return fmt.Sprintf("%s api request", logPrefix)
}

func (rlm *responseLoggerMiddleware) printRequest(title string, path string, duration time.Duration, status int, request string, response string) {
	if len(response) > responseMaxLength {
		response = response[:responseMaxLength] + "..."
	}

	log.Debug(title,
		"path", path,
		"duration", duration,
		"status", status,
		"request", request,
		"response", response,
	)
}

func removeWhitespacesFromString(str string) string {
	var b strings.Builder
	b.Grow(len(str))
	for _, ch := range str {
		if !unicode.IsSpace(ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
