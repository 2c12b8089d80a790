package api

import (
	"context"
	"errors"
	"fmt"
)

// NetworkError means no HTTP response was received.
type NetworkError struct {
	Method string
	URL    string
	Cause  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// HTTPError means the backend answered with a status outside 2xx.
// Message carries the body's "detail" or "error" field when present.
type HTTPError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// AppError means the HTTP call succeeded but the body reported success=false.
type AppError struct {
	Endpoint string
	Message  string
}

func (e *AppError) Error() string {
	return e.Message
}

// ContractError means a successful response did not match its JSON schema.
type ContractError struct {
	Endpoint string
	Cause    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Cause)
}

func (e *ContractError) Unwrap() error {
	return e.Cause
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsHTTPError reports whether err is (or wraps) an HTTPError, returning it.
func IsHTTPError(err error) (*HTTPError, bool) {
	var target *HTTPError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// UserMessage turns an error from this package into the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		netErr      *NetworkError
		httpErr     *HTTPError
		appErr      *AppError
		contractErr *ContractError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI service took too long to respond. Please try again."
	case errors.As(err, &netErr):
		return fmt.Sprintf("Failed to connect to AI service: %v", netErr.Cause)
	case errors.As(err, &httpErr):
		return httpErr.Error()
	case errors.As(err, &appErr):
		return appErr.Message
	case errors.As(err, &contractErr):
		return "The AI service returned an unexpected response."
	default:
		return err.Error()
	}
}
