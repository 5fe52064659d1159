package utils

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the correlation id echoed back on every response.
const RequestIDHeader = "X-Request-ID"

const contextRequestID = "requestID"

// ErrorResponse is the body every failed request carries. The requestId lets
// support match a customer report to the server logs.
type ErrorResponse struct {
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// RequestID returns the correlation id for the current request, minting one
// when the client did not send its own.
func RequestID(c *gin.Context) string {
	if id, ok := c.Get(contextRequestID); ok {
		return id.(string)
	}
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(contextRequestID, id)
	c.Header(RequestIDHeader, id)
	return id
}

// ErrorHandler recovers from handler panics, logs the request context and
// stack, and answers with a generic 500 so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Recovered from panic",
					zap.Any("error", err),
					zap.String("requestId", RequestID(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("clientIp", c.ClientIP()),
					zap.ByteString("stack", debug.Stack()),
				)

				// A dead connection cannot take a response; writing to it
				// would just panic again.
				if isBrokenConnection(err) {
					c.Abort()
					return
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message:   "Internal Server Error",
					Details:   "An unexpected error occurred. Please try again later.",
					RequestID: RequestID(c),
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response and logs it with the
// request's correlation id.
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message,
		zap.String("details", details),
		zap.String("requestId", RequestID(c)),
		zap.Int("status", status),
	)
	c.JSON(status, ErrorResponse{Message: message, Details: details, RequestID: RequestID(c)})
}

func isBrokenConnection(recovered interface{}) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
