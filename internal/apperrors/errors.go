package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an operation was attempted from an illegal lifecycle state.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrInsufficientBalance indicates a withdrawal exceeding the available savings balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInternal indicates an unexpected failure in the storage layer.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside a message and the wrapped cause.
// Repositories use it to surface storage failures without leaking driver errors upward.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// Is lets errors.Is(err, ErrInternal) match any 5xx AppError.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
