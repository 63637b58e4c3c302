// Package errors provides the structured error types used across the Tramex
// API. Service-layer code returns AppError values so handlers can respond
// with consistent codes and never leak internal details to clients.
package errors

import "net/http"

// AppError is a structured application error carrying a stable error code,
// a human-readable message, the HTTP status to respond with, and an optional
// wrapped internal error for logging.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as the wrapped error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication and authorization.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Users.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrInvalidRole    = &AppError{Code: "INVALID_ROLE", Message: "Unknown role", StatusCode: http.StatusBadRequest}
)

// Transactions.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransition   = &AppError{Code: "INVALID_TRANSITION", Message: "Status change not permitted", StatusCode: http.StatusConflict}
	ErrTransactionLocked   = &AppError{Code: "TRANSACTION_LOCKED", Message: "Completed or cancelled transactions cannot be edited", StatusCode: http.StatusConflict}
	ErrUnsupportedCurrency = &AppError{Code: "UNSUPPORTED_CURRENCY", Message: "Currency is not supported", StatusCode: http.StatusBadRequest}
)

// Mobile-money networks.
var (
	ErrNetworkNotFound = &AppError{Code: "NETWORK_NOT_FOUND", Message: "Mobile money network not found", StatusCode: http.StatusNotFound}
	ErrNetworkInactive = &AppError{Code: "NETWORK_INACTIVE", Message: "Mobile money network is not active", StatusCode: http.StatusBadRequest}
	ErrNetworkCountry  = &AppError{Code: "NETWORK_WRONG_COUNTRY", Message: "Network does not serve the transfer corridor", StatusCode: http.StatusBadRequest}
)

// Clients and merchandise.
var (
	ErrClientNotFound      = &AppError{Code: "CLIENT_NOT_FOUND", Message: "Client not found", StatusCode: http.StatusNotFound}
	ErrMerchandiseNotFound = &AppError{Code: "MERCHANDISE_NOT_FOUND", Message: "Merchandise not found", StatusCode: http.StatusNotFound}
)

// Parcels.
var (
	ErrParcelNotFound = &AppError{Code: "PARCEL_NOT_FOUND", Message: "Parcel not found", StatusCode: http.StatusNotFound}
)
