package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("issue receipt: %w", NewConflictError("Receipt already issued"))

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Receipt already issued", appErr.Message)

	plain := GetAppError(errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "connection refused", plain.Message)
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(NewNotFoundError("Order"), http.StatusNotFound))
	assert.False(t, HasCode(NewNotFoundError("Order"), http.StatusConflict))
	assert.False(t, HasCode(errors.New("boom"), http.StatusNotFound))
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("amount", "must be greater than zero")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "amount", err.Errors[0].Field)
}
