// Package output provides structured output and error handling for the ghnotes CLI.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (bad args, note not found, invalid repo)
// 2 = System error (network failure, I/O error, unexpected API response)
// 3 = Auth error (missing token, invalid credentials, rate limited)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitAuthError   = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, unknown refs, malformed repo specs.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: network failures, I/O errors, malformed API responses.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewAuthError creates an error for authentication problems (exit code 3).
// Use for: missing token, rejected credentials, exhausted rate limits.
func NewAuthError(message string) *ExitError {
	return &ExitError{
		Code:    ExitAuthError,
		Message: message,
	}
}

// NewAuthErrorWithCause creates an auth error wrapping an underlying cause.
func NewAuthErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitAuthError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
