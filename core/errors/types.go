// ABOUTME: Error taxonomy for the access layer, markup parser and API
// ABOUTME: Typed errors with errors.As helpers so callers can branch on failure kind

package errors

import (
	"errors"
	"fmt"
)

// TransportError is a connection, timeout or TLS failure before any HTTP
// status was received.
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a response whose status code the caller does not accept.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface. The format is part of the access
// layer's result messages.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// ParseError is malformed markup that no parser strategy accepted.
type ParseError struct {
	Parser string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parser: %v", e.Parser, e.Err)
}

// Unwrap returns the parser library's error
func (e *ParseError) Unwrap() error { return e.Err }

// RetryableError marks a failure as transient so the retry loop attempts
// the request again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// ValidationError represents a rejected input value
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsStatus checks if an error is a StatusError
func IsStatus(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsRetryable checks if an error was marked transient
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
