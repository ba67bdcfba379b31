package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Transport & decoding errors (GATEWAY_*)
	ErrorCodeTransport         ErrorCode = "GATEWAY_TRANSPORT"
	ErrorCodeMalformedResponse ErrorCode = "GATEWAY_MALFORMED_RESPONSE"

	// Bank-side business errors (BANK_*)
	ErrorCodeBankAccess  ErrorCode = "BANK_ACCESS_DENIED"
	ErrorCodeBankRequest ErrorCode = "BANK_REQUEST_REJECTED"

	// Transaction errors (TXN_*)
	ErrorCodeTxnNotFound ErrorCode = "TXN_NOT_FOUND"

	// Configuration errors (CONFIG_*)
	ErrorCodeInvalidConfig ErrorCode = "CONFIG_INVALID"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// NewTransportError wraps an HTTP transport failure
func NewTransportError(err error) *DomainError {
	return WrapError(ErrorCodeTransport, "gateway request failed", err)
}

// NewMalformedResponseError reports a response the adapter could not map
func NewMalformedResponseError(reason string) *DomainError {
	return NewDomainError(ErrorCodeMalformedResponse, reason)
}

// NewBankAccessError reports a systemic access failure, carrying the gateway message
func NewBankAccessError(gatewayMessage string) *DomainError {
	return NewDomainError(ErrorCodeBankAccess, gatewayMessage)
}

// NewBankRequestError reports a rejected request, carrying the gateway message
func NewBankRequestError(gatewayMessage string) *DomainError {
	return NewDomainError(ErrorCodeBankRequest, gatewayMessage)
}

// NewTransactionNotFoundError reports that the gateway knows no such order
func NewTransactionNotFoundError(transactionID string) *DomainError {
	return NewDomainError(ErrorCodeTxnNotFound, "transaction not found").
		WithDetail("transaction_id", transactionID)
}

// NewInvalidConfigurationError reports an unusable adapter configuration
func NewInvalidConfigurationError(reason string) *DomainError {
	return NewDomainError(ErrorCodeInvalidConfig, reason)
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsTransactionNotFound checks for the expected-absence lookup outcome,
// which callers typically handle instead of treating as a hard failure
func IsTransactionNotFound(err error) bool {
	return GetErrorCode(err) == ErrorCodeTxnNotFound
}

// IsBankError checks if the gateway itself rejected the call
func IsBankError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeBankAccess || code == ErrorCodeBankRequest
}

// IsTransportError checks if the HTTP call never completed
func IsTransportError(err error) bool {
	return GetErrorCode(err) == ErrorCodeTransport
}

// Common domain errors
var (
	// ErrUpdateNotSupported is returned by gateways without a status push/pull channel.
	ErrUpdateNotSupported = errors.New("transaction update is not supported by this gateway")
)
