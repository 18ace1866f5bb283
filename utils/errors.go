package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError represents a service-level error with context
type ServiceError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Details    string `json:"details,omitempty"`
	Cause      error  `json:"-"` // Original error, not exposed in JSON
}

func (e ServiceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e ServiceError) Unwrap() error {
	return e.Cause
}

// GetServiceError extracts a ServiceError from an error chain
func GetServiceError(err error) (ServiceError, bool) {
	var serviceErr ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return ServiceError{}, false
}

// Common service error constructors

func NewValidationError(message string) error {
	return ServiceError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(resource string) error {
	return ServiceError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

// NewInvalidStateError covers lifecycle violations: cancelling a
// non-scheduled notification, mutating a terminal one, re-sending.
func NewInvalidStateError(message string) error {
	return ServiceError{
		Code:       "INVALID_STATE",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewUnauthorizedError(message string) error {
	return ServiceError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string) error {
	return ServiceError{
		Code:       "FORBIDDEN",
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string) error {
	return ServiceError{
		Code:       "CONFLICT",
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string) error {
	return ServiceError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func NewDatabaseError(operation string, cause error) error {
	return ServiceError{
		Code:       "DATABASE_ERROR",
		Message:    fmt.Sprintf("Database operation failed: %s", operation),
		Cause:      cause,
		StatusCode: http.StatusInternalServerError,
	}
}

// Sentinel errors for the delivery engine. ErrEmptyAudience never surfaces
// as an API error; it is recorded as status=failed on the notification.
var (
	ErrEmptyAudience      = errors.New("resolved audience is empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func NewInvalidCredentialsError() error {
	return ServiceError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid credentials",
		StatusCode: http.StatusUnauthorized,
		Cause:      ErrInvalidCredentials,
	}
}

func NewNotificationNotFoundError() error {
	return NewNotFoundError("Notification")
}

func NewUserNotFoundError() error {
	return NewNotFoundError("User")
}
