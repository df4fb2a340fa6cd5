// Package errors defines the application error model. Every error the
// API can return to a client is declared here with its HTTP status and
// a stable business error code.
package errors

import (
	"net/http"

	"bookbridge/internal/errors"
)

// AppError is the contract the HTTP error middleware renders from.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is the standard AppError implementation. The predefined
// errors below are shared sentinels; use WrapMessage or WithDetails to
// attach per-call context instead of mutating them.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError builds an immutable application error value.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage annotates the error with context while keeping it
// discoverable through errors.As.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying details.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined application errors.
var (
	// User accounts.
	ErrUserNotFound       = NewBaseError(http.StatusNotFound, "USER_NOT_FOUND", "user not found", "")
	ErrUserAlreadyExists  = NewBaseError(http.StatusConflict, "USER_ALREADY_EXISTS", "this email is already registered", "")
	ErrUserCreationFailed = NewBaseError(http.StatusInternalServerError, "USER_CREATION_FAILED", "failed to create user", "")

	// Authentication.
	ErrInvalidCredentials  = NewBaseError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "incorrect email or password", "")
	ErrUnauthorized        = NewBaseError(http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", "")
	ErrRefreshTokenInvalid = NewBaseError(http.StatusUnauthorized, "REFRESH_TOKEN_INVALID", "invalid or expired refresh token", "")
	ErrPasswordHashFailed  = NewBaseError(http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "failed to process password", "")

	// Input validation.
	ErrValidationFailed = NewBaseError(http.StatusBadRequest, "VALIDATION_FAILED", "input validation failed", "")

	// Catalog.
	ErrCategoryNotFound      = NewBaseError(http.StatusNotFound, "CATEGORY_NOT_FOUND", "category not found", "")
	ErrCategoryAlreadyExists = NewBaseError(http.StatusConflict, "CATEGORY_ALREADY_EXISTS", "a category with this name already exists", "")
	ErrBookNotFound          = NewBaseError(http.StatusNotFound, "BOOK_NOT_FOUND", "book not found", "")
	ErrISBNAlreadyExists     = NewBaseError(http.StatusConflict, "ISBN_ALREADY_EXISTS", "a book with this ISBN already exists", "")

	// Orders.
	ErrOrderNotFound      = NewBaseError(http.StatusNotFound, "ORDER_NOT_FOUND", "order not found", "")
	ErrInsufficientStock  = NewBaseError(http.StatusConflict, "INSUFFICIENT_STOCK", "insufficient stock", "")
	ErrInvalidOrderStatus = NewBaseError(http.StatusBadRequest, "INVALID_ORDER_STATUS", "invalid order status", "")

	// Persistence.
	ErrTransactionFailed = NewBaseError(http.StatusInternalServerError, "TRANSACTION_FAILED", "database transaction failed", "")

	// General.
	ErrInternalError = NewBaseError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", "")
	ErrForbidden     = NewBaseError(http.StatusForbidden, "FORBIDDEN", "access denied", "")
	ErrNotFound      = NewBaseError(http.StatusNotFound, "NOT_FOUND", "resource not found", "")
	ErrConflict      = NewBaseError(http.StatusConflict, "CONFLICT", "resource conflict", "")
)

// DatabaseExecuteError wraps an unexpected database failure. The raw
// error stays server-side; clients only see the generic message.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError builds an AppError around a database failure.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
