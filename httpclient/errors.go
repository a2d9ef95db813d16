package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorType identifies the classification of a transport error.
type ErrorType int

const (
	// ValidationError indicates a caller-side contract violation detected
	// before any network I/O. Never retried.
	ValidationError ErrorType = iota + 1
	// NetworkError indicates a transport-layer failure (connection error,
	// timeout, partial body). Retryable.
	NetworkError
	// APIError indicates a non-2xx response from the remote API.
	APIError
)

// Error types whose 404 responses signal a soft "record absent" rather than a
// real failure. Resource-client helpers translate these into nil results.
const (
	ErrorTypeRecordNotFound        = "record-not-found"
	ErrorTypeRecordOrTokenNotFound = "record-or-token-not-found"
)

// ClientError is the common interface implemented by all transport errors.
type ClientError interface {
	error
	Type() ErrorType
}

// validationError reports invalid request input before any I/O happens.
type validationError struct {
	message string
	field   string
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(message, field string) ClientError {
	return &validationError{message: message, field: field}
}

func (e *validationError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("validation error: %s (field: %s)", e.message, e.field)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

func (e *validationError) Type() ErrorType { return ValidationError }

// networkError wraps a transport-layer failure.
type networkError struct {
	message string
	err     error
	timeout bool
}

// NewNetworkError creates a network error wrapping the underlying cause.
func NewNetworkError(message string, err error) ClientError {
	return &networkError{message: message, err: err}
}

// NewTimeoutError creates a network error marked as a timeout.
func NewTimeoutError(message string, err error) ClientError {
	return &networkError{message: message, err: err, timeout: true}
}

func (e *networkError) Error() string {
	kind := "network error"
	if e.timeout {
		kind = "timeout error"
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", kind, e.message, e.err)
	}
	return fmt.Sprintf("%s: %s", kind, e.message)
}

func (e *networkError) Type() ErrorType { return NetworkError }

func (e *networkError) Unwrap() error { return e.err }

// Timeout reports whether the failure was a timeout.
func (e *networkError) Timeout() bool { return e.timeout }

// APIErr is a terminal (or retry-exhausted) non-2xx response from the remote
// API, enriched with whatever the error envelope carried plus diagnostic
// context about the failing call.
type APIErr struct {
	StatusCode int
	// ErrType is the machine-readable error identifier from the response
	// envelope, e.g. "record-not-found".
	ErrType string
	Message string
	Data    any
	Method  string
	// Attempt is the 1-based attempt number on which the error surfaced.
	Attempt int
}

// errorEnvelope mirrors the API's error response shape.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Data    any    `json:"data"`
	} `json:"error"`
}

// NewAPIError builds an APIErr from a non-2xx response body. A body that does
// not carry the error envelope still yields a usable error from the raw text.
func NewAPIError(method string, statusCode, attempt int, body []byte) *APIErr {
	apiErr := &APIErr{
		StatusCode: statusCode,
		Method:     method,
		Attempt:    attempt,
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		apiErr.ErrType = envelope.Error.Type
		apiErr.Data = envelope.Error.Data
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("unexpected status %d", statusCode)
	}
	return apiErr
}

func (e *APIErr) Error() string {
	if e.ErrType != "" {
		return fmt.Sprintf("API error %d (%s): %s (%s, attempt %d)", e.StatusCode, e.ErrType, e.Message, e.Method, e.Attempt)
	}
	return fmt.Sprintf("API error %d: %s (%s, attempt %d)", e.StatusCode, e.Message, e.Method, e.Attempt)
}

func (e *APIErr) Type() ErrorType { return APIError }

// IsSuccessStatus reports whether the status code counts as success.
func IsSuccessStatus(statusCode int) bool {
	return statusCode < 300
}

// isRetryableStatus reports whether a failed response may be retried:
// rate limiting (429) and server-side errors (5xx).
func isRetryableStatus(statusCode int) bool {
	return statusCode == 429 || statusCode >= 500
}

// IsErrorType reports whether err is a ClientError of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type() == errorType
	}
	return false
}

// IsAPIStatusError reports whether err is an API error with the given status.
func IsAPIStatusError(err error, statusCode int) bool {
	var apiErr *APIErr
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// IsRecordNotFound reports whether err is the API's "record absent" signal:
// a 404 whose error type marks a missing record rather than a bad request.
func IsRecordNotFound(err error) bool {
	var apiErr *APIErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		return false
	}
	return apiErr.ErrType == ErrorTypeRecordNotFound || apiErr.ErrType == ErrorTypeRecordOrTokenNotFound
}
