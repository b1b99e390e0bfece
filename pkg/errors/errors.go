package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrClientNotFound        = errors.New("client not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrInvalidClientName     = errors.New("invalid client name")
	ErrInvalidPhone          = errors.New("invalid phone number")
	ErrInvalidPaymentAmount  = errors.New("invalid payment amount")
	ErrInvalidDueDate        = errors.New("invalid due date")
	ErrPaymentAlreadyPaid    = errors.New("payment is already paid")
	ErrDeliveryFailed        = errors.New("message delivery failed")
	ErrReminderRunInProgress = errors.New("reminder run already in progress")
	ErrRunLockLost           = errors.New("reminder run lock lost")
	ErrValidation            = errors.New("validation failed")
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
	ErrCodeClientNotFound        = "CLIENT_NOT_FOUND"
	ErrCodePaymentNotFound       = "PAYMENT_NOT_FOUND"
	ErrCodeInvalidClientName     = "INVALID_CLIENT_NAME"
	ErrCodeInvalidPhone          = "INVALID_PHONE"
	ErrCodeInvalidPaymentAmount  = "INVALID_PAYMENT_AMOUNT"
	ErrCodeInvalidDueDate        = "INVALID_DUE_DATE"
	ErrCodePaymentAlreadyPaid    = "PAYMENT_ALREADY_PAID"
	ErrCodeDeliveryFailed        = "DELIVERY_FAILED"
	ErrCodeReminderRunInProgress = "REMINDER_RUN_IN_PROGRESS"
	ErrCodeRunLockLost           = "REMINDER_RUN_LOCK_LOST"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// Code extracts the business error code from err, or "" when err is not a BusinessError.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func WrapClientNotFound(clientID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %d not found", clientID),
		ErrClientNotFound,
	)
}

func WrapClientNameNotFound(name string) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client named %q not found", name),
		ErrClientNotFound,
	)
}

func WrapPaymentNotFound(paymentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %d not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapInvalidClientName() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidClientName,
		"Client name is required",
		ErrInvalidClientName,
	)
}

func WrapInvalidPhone(phone string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPhone,
		fmt.Sprintf("Phone %q must have between 10 and 14 digits", phone),
		ErrInvalidPhone,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapInvalidDueDate(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDueDate,
		fmt.Sprintf("Invalid due date: %s", reason),
		ErrInvalidDueDate,
	)
}

func WrapPaymentAlreadyPaid(paymentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadyPaid,
		fmt.Sprintf("Payment with ID %d is already paid", paymentID),
		ErrPaymentAlreadyPaid,
	)
}

func WrapDeliveryFailed(phone string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDeliveryFailed,
		fmt.Sprintf("Could not deliver message to %s", phone),
		fmt.Errorf("%w: %v", ErrDeliveryFailed, err),
	)
}

func WrapReminderRunInProgress() *BusinessError {
	return NewBusinessError(
		ErrCodeReminderRunInProgress,
		"Another reminder run is in progress",
		ErrReminderRunInProgress,
	)
}

func WrapRunLockLost() *BusinessError {
	return NewBusinessError(
		ErrCodeRunLockLost,
		"Reminder run lock expired or was taken by another run",
		ErrRunLockLost,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		"Request validation failed",
		fmt.Errorf("%w: %v", ErrValidation, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
