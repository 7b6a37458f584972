package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
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

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// Access control
var (
	ErrAuthenticationRequired = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"Authentication credentials were not provided.",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Given token not valid for any token type.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"No active account found with the given credentials.",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"You do not have permission to perform this action.",
		"",
	)
)

// Missing resources
var (
	ErrNotFound = NewBaseError(http.StatusNotFound, "NOT_FOUND", "Not found.", "")

	ErrUserNotFound       = NewBaseError(http.StatusNotFound, "USER_NOT_FOUND", "User not found.", "")
	ErrCustomerNotFound   = NewBaseError(http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found.", "")
	ErrCollectionNotFound = NewBaseError(http.StatusNotFound, "COLLECTION_NOT_FOUND", "Collection not found.", "")
	ErrProductNotFound    = NewBaseError(http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found.", "")
	ErrPromotionNotFound  = NewBaseError(http.StatusNotFound, "PROMOTION_NOT_FOUND", "Promotion not found.", "")
	ErrReviewNotFound     = NewBaseError(http.StatusNotFound, "REVIEW_NOT_FOUND", "Review not found.", "")
	ErrCartNotFound       = NewBaseError(http.StatusNotFound, "CART_NOT_FOUND", "Cart not found.", "")
	ErrCartItemNotFound   = NewBaseError(http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Cart item not found.", "")
	ErrOrderNotFound      = NewBaseError(http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found.", "")
)

// Relational integrity
var (
	ErrIntegrityViolation = NewBaseError(
		http.StatusBadRequest,
		"INTEGRITY_VIOLATION",
		"The operation violates a data integrity rule.",
		"",
	)

	ErrCollectionHasProducts = NewBaseError(
		http.StatusBadRequest,
		"COLLECTION_HAS_PRODUCTS",
		"Collection cannot be deleted because it includes one or more products.",
		"",
	)

	ErrProductHasOrderItems = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_HAS_ORDER_ITEMS",
		"Product cannot be deleted because it is associated with an order item.",
		"",
	)

	ErrInsufficientInventory = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_INVENTORY",
		"Not enough inventory to fulfil the order.",
		"",
	)
)

// General errors
var (
	ErrMalformedRequest = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Malformed request body.",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed.",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error, please try again later.",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed."
}

func (e *DatabaseExecuteError) Details() string {
	return e.details
}
