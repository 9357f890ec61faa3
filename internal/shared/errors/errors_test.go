package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		typ  ErrorType
	}{
		{"validation", NewValidationError("Missing required field: businessName"), http.StatusBadRequest, ErrorTypeValidation},
		{"unauthorized", NewUnauthorizedError("authentication required"), http.StatusUnauthorized, ErrorTypeUnauthorized},
		{"forbidden", NewForbiddenError("tool not included in plan"), http.StatusForbidden, ErrorTypeForbidden},
		{"not found", NewNotFoundError("tool not found"), http.StatusNotFound, ErrorTypeNotFound},
		{"rate limited", NewRateLimitedError("usage limit reached"), http.StatusTooManyRequests, ErrorTypeRateLimited},
		{"provider", NewProviderError("Failed to generate analysis"), http.StatusInternalServerError, ErrorTypeProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.typ, tt.err.Type)
		})
	}
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("run tool: %w", NewRateLimitedError("usage limit reached", "0 runs left"))

	appErr := GetAppError(wrapped)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, "0 runs left", appErr.Details)
	}
	assert.True(t, IsRateLimitedError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
}

func TestAuthErrorUnwrapsToAppError(t *testing.T) {
	err := fmt.Errorf("login: %w", NewInvalidCredentialsError())

	appErr := GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	}
	assert.False(t, ShouldLogAuthError(err))
	assert.True(t, ShouldLogAuthError(fmt.Errorf("boom")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'a@b.c' for key 'email'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: users.email")))
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
}
