package utils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeFailedPrecondition, http.StatusPreconditionFailed},
		{CodeResourceExhausted, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		err := NewAppError(tt.code, "boom")
		assert.Equal(t, tt.want, err.HTTPStatus(), tt.code)
	}
}

func TestAppErrorWrapping(t *testing.T) {
	appErr := NewAppError(CodeFailedPrecondition, "order is already claimed").
		WithDetails(map[string]any{"reason": ReasonOrderAlreadyClaimed})

	assert.Equal(t, "FAILED_PRECONDITION: order is already claimed", appErr.Error())
	assert.Equal(t, ReasonOrderAlreadyClaimed, appErr.Details["reason"])

	// errors.As digs it out of a wrapped chain.
	wrapped := fmt.Errorf("claim failed: %w", appErr)
	var out *AppError
	assert.ErrorAs(t, wrapped, &out)
	assert.Equal(t, CodeFailedPrecondition, out.Code)
}
