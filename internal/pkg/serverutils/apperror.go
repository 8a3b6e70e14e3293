package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the chat domain. ValidationError and AuthRequired are
// surfaced to the caller for corrective action; TransientIO marks a failed
// backend call (surfaced on critical paths, swallowed and logged on best-effort
// presence paths).
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeTransientIO  = "TRANSIENT_IO_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Status:  fiber.StatusBadRequest,
	}
}

func NewAuthRequired(message string) *AppError {
	return &AppError{
		Code:    CodeAuthRequired,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	}
}

func NewTransientIOError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeTransientIO,
		Message: message,
		Status:  fiber.StatusServiceUnavailable,
		Err:     err,
	}
}

func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

func IsAuthRequired(err error) bool {
	return hasCode(err, CodeAuthRequired)
}

func IsTransientIO(err error) bool {
	return hasCode(err, CodeTransientIO)
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
