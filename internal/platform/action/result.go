// Package action defines the uniform result shape every resource action
// returns. Expected failures are values, not errors: UI-facing handlers
// never need to distinguish a network fault from a backend rejection, they
// read Success and Error. Session expiry is the one escalated case, flagged
// by its code so the HTTP layer can tear the session down.
package action

import (
	"errors"

	"github.com/gestox/gestox/internal/platform/apiclient"
)

// CodeSessionExpired marks results whose failure requires a full session
// teardown instead of an inline error message.
const CodeSessionExpired = "SESSION_EXPIRED"

// Result is the outcome of a single-record action.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ListResult is the outcome of a list action. Data is never nil: failed
// list loads degrade to an empty list.
type ListResult[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: &data}
}

// Done is a success without a payload (deletes).
func Done[T any]() Result[T] {
	return Result[T]{Success: true}
}

func Fail[T any](err error) Result[T] {
	msg, code := describe(err)
	return Result[T]{Success: false, Error: msg, Code: code}
}

func OKList[T any](data []T, total int) ListResult[T] {
	if data == nil {
		data = []T{}
	}
	return ListResult[T]{Success: true, Data: data, Total: total}
}

func FailList[T any](err error) ListResult[T] {
	msg, code := describe(err)
	return ListResult[T]{Success: false, Data: []T{}, Error: msg, Code: code}
}

// Expired reports whether a result code demands session teardown.
func Expired(code string) bool {
	return code == CodeSessionExpired
}

func describe(err error) (message, code string) {
	if errors.Is(err, apiclient.ErrSessionExpired) {
		return "session expired", CodeSessionExpired
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, apiErr.Code
	}
	return "unexpected error", apiclient.CodeUnknown
}
