// Package errors defines the structured error envelope returned by every
// API endpoint.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies an API error for status mapping.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindBadRequest         ErrorKind = "bad_request"
	KindNotFound           ErrorKind = "not_found"
	KindTooLarge           ErrorKind = "too_large"
	KindRateLimited        ErrorKind = "rate_limited"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
)

// APIError is the JSON error body sent to clients.
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to its HTTP status code.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details.
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{Kind: KindValidation, Message: message, Details: fields}
}

// NewBadRequestError creates a bad request error.
func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(resource string) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewTooLargeError creates a payload too large error.
func NewTooLargeError(message string) *APIError {
	return &APIError{Kind: KindTooLarge, Message: message}
}

// NewRateLimitedError creates a rate limited error.
func NewRateLimitedError(message string) *APIError {
	return &APIError{Kind: KindRateLimited, Message: message}
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}

// NewServiceUnavailableError creates a service unavailable error.
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{Kind: KindServiceUnavailable, Message: message}
}
