package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced to handlers. Validation and forbidden errors are
// input-dependent and never worth retrying; conflict errors are
// state-dependent and may succeed with different input; external errors come
// from a gateway or map provider and leave local state intact.
const (
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeForbidden  = "forbidden"
	CodeExternal   = "external"
)

// Error is the typed error returned by booking and payment operations.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(format string, args ...interface{}) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...interface{}) error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewExternalError(format string, args ...interface{}) error {
	return &Error{Code: CodeExternal, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code, or empty for untyped errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
