package docagent

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// Structured response parsing.
	ENOJSON     = "no_json"
	EUNBALANCED = "unbalanced_structure"
	EINCOMPLETE = "incomplete_structure"
	EMALFORMED  = "malformed_decision"

	// Remote model calls.
	ERATELIMIT         = "rate_limit"
	EEXHAUSTED         = "exhausted_retries"
	EUPSTREAM          = "upstream"
	EMALFORMEDRESPONSE = "malformed_upstream_response"

	// Agent loop.
	EUNRECOGNIZED = "unrecognized_action"
	EBUDGET       = "budget_exhausted"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("docagent error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
