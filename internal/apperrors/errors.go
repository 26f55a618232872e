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

// ErrInvalidAmount indicates a non-positive or malformed monetary value.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// ErrInvalidState indicates an operation not permitted in the entity's current state,
// e.g. applying a movement to a closed ledger account or reopening an open one.
var ErrInvalidState = errors.New("operation not allowed in current state")

// ErrNotSettleable indicates an attempt to close a ledger account whose net balance is not zero.
var ErrNotSettleable = errors.New("account net balance is not zero")

// ErrConcurrentModification indicates a lost-update was detected while mutating a row.
// Callers may retry the operation a bounded number of times.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected storage or transport failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and a message.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
