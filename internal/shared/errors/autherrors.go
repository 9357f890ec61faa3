package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountInactive    ErrorType = "account_inactive"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeOAuthError         ErrorType = "oauth_error"
)

// AuthError wraps an AppError with a hint whether the failure is worth an
// error-level log line. Wrong passwords and expired tokens are not.
type AuthError struct {
	*AppError
	ShouldLog bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError does not reveal whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{Type: ErrorTypeInvalidCredentials, Message: "Invalid email or password", Code: http.StatusUnauthorized},
	}
}

func NewAccountInactiveError() *AuthError {
	return &AuthError{
		AppError: &AppError{Type: ErrorTypeAccountInactive, Message: "Account is not active", Code: http.StatusForbidden},
	}
}

func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
	}
}

func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: true,
	}
}

func NewOAuthError(provider string, stage string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeOAuthError,
			Message: fmt.Sprintf("OAuth authentication failed with %s", provider),
			Code:    http.StatusBadGateway,
			Details: fmt.Sprintf("failed at %s stage", stage),
		},
		ShouldLog: true,
	}
}

func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError reports whether err deserves an error-level log line.
// Errors that are not AuthErrors always do.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}
