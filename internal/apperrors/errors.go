package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to act.
var ErrForbidden = errors.New("access denied")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries the {code, status, message} shape used by the response
// envelope so business logic can produce wire-ready errors directly.
type AppError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given HTTP code and message,
// wrapping the underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Status: "error", Message: message, Err: err}
}

// NewValidation creates a 400 business-rule/validation error.
func NewValidation(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Status: "error", Message: message, Err: ErrValidation}
}

// NewNotFound creates a 404 error.
func NewNotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Status: "error", Message: message, Err: ErrNotFound}
}

// NewUnauthorized creates a 401 error.
func NewUnauthorized(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Status: "error", Message: message, Err: ErrUnauthorized}
}

// NewForbidden creates a 403 error.
func NewForbidden(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Status: "error", Message: message, Err: ErrForbidden}
}

// NewConflict creates a 409 error.
func NewConflict(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Status: "error", Message: message, Err: ErrConflict}
}

// NewInternal creates a 500 error. The original message is kept for diagnostics.
func NewInternal(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Status: "error", Message: message, Err: err}
}

// HTTPStatus resolves the HTTP status code for any error, falling back to the
// sentinel mapping when the error is not an AppError.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
