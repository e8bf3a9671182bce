// Package errors provides structured error types for the quibraries client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Inspection of failed upstream responses (status code and body)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure surfaced by the client carries exactly one of:
//   - CONFIGURATION: missing or invalid credential at construction
//   - INVALID_ARGUMENT: a required identifying parameter is missing
//   - NETWORK_ERROR / TIMEOUT: transport-level failures
//   - REMOTE_ERROR: the API answered with a non-2xx status
//   - MALFORMED_RESPONSE: the body is not a JSON object or array of objects
//
// # Usage
//
//	_, err := client.Project(ctx, "pypi", "")
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle validation error
//	}
//
//	var remote *errors.RemoteError
//	if stderrors.As(err, &remote) {
//	    fmt.Println(remote.StatusCode, string(remote.Body))
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeConfiguration     Code = "CONFIGURATION"
	ErrCodeInvalidArgument   Code = "INVALID_ARGUMENT"
	ErrCodeNetwork           Code = "NETWORK_ERROR"
	ErrCodeTimeout           Code = "TIMEOUT"
	ErrCodeRemote            Code = "REMOTE_ERROR"
	ErrCodeMalformedResponse Code = "MALFORMED_RESPONSE"
	ErrCodeInternal          Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error or *RemoteError with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the chain holds neither an *Error nor a *RemoteError.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return ErrCodeRemote
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Summary()
	}
	return err.Error()
}

// maxBodyInMessage bounds how much of a response body is echoed in Error().
const maxBodyInMessage = 256

// RemoteError describes a non-2xx answer from the API.
// The full body is kept for caller inspection; Error() truncates it.
type RemoteError struct {
	Method     string
	URL        string // Request URL with the API key redacted
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	body := string(e.Body)
	if len(body) > maxBodyInMessage {
		body = body[:maxBodyInMessage] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s: %s", ErrCodeRemote, e.Summary())
	}
	return fmt.Sprintf("%s: %s: %s", ErrCodeRemote, e.Summary(), body)
}

// Summary returns "<METHOD> <url>: <status> <text>".
func (e *RemoteError) Summary() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Code returns the error code for this error type.
func (e *RemoteError) Code() Code {
	return ErrCodeRemote
}

// IsNotFound reports whether err is a RemoteError with status 404.
func IsNotFound(err error) bool {
	return remoteStatus(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a RemoteError with status 401 or 403.
// libraries.io answers 403 for an unknown API key.
func IsUnauthorized(err error) bool {
	s := remoteStatus(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}

func remoteStatus(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
