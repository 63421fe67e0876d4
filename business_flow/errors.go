// Package businessflow contains the core business logic and use cases for calculator workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Calculator errors
	ErrActionNotFound       = errors.New("action not found")
	ErrConfirmationRequired = errors.New("confirmation flag is required")
	ErrSourceNotConfigured  = errors.New("calculator source file is not configured")
	ErrInvalidValidFromDate = errors.New("valid_from date is invalid")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

func GetBusinessError(err error) *BusinessError {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr
	}
	return nil
}
