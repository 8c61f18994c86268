package apiclient

import (
	"errors"
	"fmt"
)

// CodeUnknown is the error code for transport-level failures where no HTTP
// response was received.
const CodeUnknown = "UNKNOWN_ERROR"

// ErrSessionExpired signals that the bearer token could not be refreshed and
// all auth state has been torn down. The HTTP layer converts it into a
// redirect to the login page instead of surfacing it to callers.
var ErrSessionExpired = errors.New("session expired")

// APIError is the uniform error shape produced whenever a backend call
// fails, regardless of origin (network failure, non-2xx status, or a failed
// refresh attempt).
type APIError struct {
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

// IsStatus reports whether err is an APIError carrying the given HTTP status
// as its code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == fmt.Sprintf("%d", status)
}

func transportError(err error) *APIError {
	return &APIError{
		Message: "request failed",
		Code:    CodeUnknown,
		Details: err.Error(),
	}
}

func statusError(status int, message string, details interface{}) *APIError {
	if message == "" {
		message = "request failed"
	}
	return &APIError{
		Message: message,
		Code:    fmt.Sprintf("%d", status),
		Details: details,
	}
}
