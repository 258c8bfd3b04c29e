package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/air846/personal-blog-system/pkg/domain"
)

// APIError is an application-level failure: the transport succeeded but the
// envelope code was not 200.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api code %d: %s", e.Code, e.Message)
}

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string // server-provided message, may be empty
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError is a transport failure with no server response.
type NetworkError struct {
	Err error
	// Canceled is set when the caller's context ended before a response arrived.
	Canceled bool
}

func (e *NetworkError) Error() string {
	if e.Canceled {
		return fmt.Sprintf("request canceled: %v", e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RequestError is a failure to build the request before anything was sent.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("build request: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the
// given status code or an APIError with the given envelope code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// IsUnauthorized reports whether err is an authentication failure at either layer.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// Message returns the user-facing text for err, matching the notice the
// client emitted when the error occurred.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return envelopeNotice(apiErr.Message)
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return statusNotice(httpErr.StatusCode, httpErr.Message)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return msgNetwork
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return msgRequestConfig
	}
	if err == nil {
		return ""
	}
	return msgRequestFailed
}

func envelopeNotice(message string) string {
	if message == "" {
		return msgRequestFailed
	}
	return message
}

// statusNotice maps an HTTP status to its fixed notice text.
func statusNotice(status int, serverMessage string) string {
	switch status {
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusInternalServerError:
		return msgServerError
	default:
		return envelopeNotice(serverMessage)
	}
}

// unauthorizedCode reports whether an envelope code forces re-login.
func unauthorizedCode(code int) bool {
	return code == domain.CodeUnauthorized
}
