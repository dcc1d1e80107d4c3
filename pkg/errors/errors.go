package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrAmountOutOfRange    = errors.New("loan amount out of range")
	ErrTermOutOfRange      = errors.New("loan term out of range")
	ErrMissingPurpose      = errors.New("loan purpose is required")
	ErrUnauthenticated     = errors.New("owner identity is required")
	ErrAllocationExhausted = errors.New("referral code allocation retries exhausted")
	ErrCodeTaken           = errors.New("referral code already taken")
	ErrAlreadyAllocated    = errors.New("referral code already allocated for owner")
	ErrNotFound            = errors.New("record not found")
	ErrInvalidDeposit      = errors.New("invalid deposit amount")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeOutOfRange          = "OUT_OF_RANGE"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeUnauthenticated     = "UNAUTHENTICATED"
	ErrCodeAllocationExhausted = "ALLOCATION_EXHAUSTED"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeStoreUnavailable    = "STORE_UNAVAILABLE"
	ErrCodeNotFound            = "NOT_FOUND"
)

// Wrap common errors with business context
func WrapInvalidInput(message string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidInput, message, ErrInvalidInput)
}

func WrapAmountOutOfRange(min, max string) *BusinessError {
	return NewBusinessError(
		ErrCodeOutOfRange,
		fmt.Sprintf("Loan amount must be between %s and %s", min, max),
		ErrAmountOutOfRange,
	)
}

func WrapTermOutOfRange(min, max int) *BusinessError {
	return NewBusinessError(
		ErrCodeOutOfRange,
		fmt.Sprintf("Loan term must be between %d and %d years", min, max),
		ErrTermOutOfRange,
	)
}

func WrapMissingPurpose() *BusinessError {
	return NewBusinessError(
		ErrCodeMissingField,
		"Please provide a loan purpose",
		ErrMissingPurpose,
	)
}

func WrapUnauthenticated() *BusinessError {
	return NewBusinessError(
		ErrCodeUnauthenticated,
		"User is not authenticated",
		ErrUnauthenticated,
	)
}

func WrapAllocationExhausted(attempts int) *BusinessError {
	return NewBusinessError(
		ErrCodeAllocationExhausted,
		fmt.Sprintf("Could not allocate a unique referral code after %d attempts", attempts),
		ErrAllocationExhausted,
	)
}

func WrapConflict(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeConflict,
		"Record conflicts with an existing one",
		err,
	)
}

func WrapStoreError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStoreUnavailable,
		"store operation failed",
		err,
	)
}

func WrapNotFound(what string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s not found", what),
		ErrNotFound,
	)
}

func WrapInvalidDeposit(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("Invalid deposit amount: %s", amount),
		ErrInvalidDeposit,
	)
}

// CodeOf extracts the business error code, or an empty string for plain errors.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
