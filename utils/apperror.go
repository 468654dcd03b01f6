package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes. Every failure an operation reports to a caller carries one.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeNotFound           = "NOT_FOUND"
	CodeFailedPrecondition = "FAILED_PRECONDITION"
	CodeResourceExhausted  = "RESOURCE_EXHAUSTED"
	CodeInternal           = "INTERNAL"
)

// FailedPrecondition reason codes, carried in Details["reason"] so clients can
// render a precise message without parsing free text.
const (
	ReasonScheduleNotAvailable = "SCHEDULE_NOT_AVAILABLE"
	ReasonActiveOrderConflict  = "ACTIVE_ORDER_CONFLICT"
	ReasonOrderAlreadyClaimed  = "ORDER_ALREADY_CLAIMED"
	ReasonOrderNotClaimable    = "ORDER_NOT_CLAIMABLE"
)

// AppError is a structured service error.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// WithDetails attaches the structured detail payload and returns the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps an error code to its HTTP status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a JSON response. Unknown error types are reported
// as INTERNAL without leaking their message.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		GetLogger().Error("unexpected error", zap.Error(err))
		appErr = NewAppError(CodeInternal, "An unexpected error occurred. Please try again later.")
	}
	c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr})
}

// ErrorHandler is a middleware that catches panics and returns structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", r))
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": NewAppError(CodeInternal, "An unexpected error occurred. Please try again later."),
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
