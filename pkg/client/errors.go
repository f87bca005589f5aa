package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is a 409 response
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsForbidden reports whether err is a 403 response
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsBusy reports whether err is a retryable 503 contention response
func IsBusy(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusServiceUnavailable &&
		apiErr.Code == "BUSY"
}

// IsInvalidState reports whether err is a decision against an already
// decided proposal
func IsInvalidState(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == "INVALID_STATE"
}
