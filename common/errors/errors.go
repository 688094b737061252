package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emekaobi/storefront-backend/common/logger"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches a cause to a taxonomy error without mutating it.
func Wrap(base *Error, err error) *Error {
	return New(base.Code, base.Message, err)
}

// Common error types
var (
	ErrInvalidInput   = New(http.StatusBadRequest, "Invalid request payload", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Checkout error types
var (
	ErrEmptyCart        = New(http.StatusBadRequest, "Your cart is empty!", nil)
	ErrCheckoutInFlight = New(http.StatusConflict, "A payment is already in progress for this session", nil)
	ErrGateway          = New(http.StatusBadGateway, "Payment initialization failed. Please try again later.", nil)
)

// Authentication error types
var (
	ErrMissingToken = New(http.StatusUnauthorized, "Missing token", nil)
	ErrInvalidToken = New(http.StatusUnauthorized, "Invalid token", nil)
	ErrAccessDenied = New(http.StatusForbidden, "Access denied", nil)
)

// ErrorMiddleware converts errors attached to the gin context into JSON
// responses. Handlers report failures with c.Error; the response and the log
// line (carrying the request id) are produced here in one place.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := err.(*Error)
		if !ok {
			appErr = Wrap(ErrInternalServer, err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("Request failed",
				zap.String("request_id", logger.RequestID(c)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("code", appErr.Code),
				zap.Error(appErr))
		} else {
			logger.Log.Warn("Request rejected",
				zap.String("request_id", logger.RequestID(c)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("code", appErr.Code),
				zap.String("message", appErr.Message))
		}

		if !c.Writer.Written() {
			c.JSON(appErr.Code, appErr)
		}
	}
}
